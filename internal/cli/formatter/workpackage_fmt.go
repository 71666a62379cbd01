package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/danvoss/stride/internal/domain"
)

// WorkPackageInspectData holds all data needed to render a work package
// inspect view.
type WorkPackageInspectData struct {
	WorkPackage *domain.WorkPackage
	Contact     *domain.Contact
	Phases      []*domain.Phase
	Items       map[string][]*domain.Item // phaseID -> items
}

// FormatWorkPackageList renders a styled work package list inside a bordered box.
func FormatWorkPackageList(packages []*domain.WorkPackage) string {
	headers := []string{"ID", "NAME", "STATUS", "START"}
	rows := make([][]string, 0, len(packages))

	for _, w := range packages {
		startStr := Dim("--")
		if w.EffectiveStartDate != nil {
			startStr = StyleFg.Render(w.EffectiveStartDate.Format("2006-01-02"))
		}

		rows = append(rows, []string{
			w.DisplayID(),
			Bold(w.Name),
			StatusPill(w.Status),
			startStr,
		})
	}

	table := RenderTable(headers, rows)
	return RenderBox("Work Packages", table)
}

// FormatWorkPackageInspect renders a styled inspect card with metadata on the
// left and the phase timeline on the right.
func FormatWorkPackageInspect(data WorkPackageInspectData) string {
	leftPanel := buildMetadataPanel(data)
	rightPanel := FormatPhaseTimeline(data.Phases)

	spacing := "    "
	combined := lipgloss.JoinHorizontal(lipgloss.Top, leftPanel, spacing, rightPanel)

	return RenderBox("", combined)
}

func buildMetadataPanel(data WorkPackageInspectData) string {
	w := data.WorkPackage
	var b strings.Builder

	b.WriteString(StyleBold.Render(w.Name) + "\n\n")

	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("STATUS"), StatusPill(w.Status)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("ID    "), Dim(w.ShortID)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("UUID  "), TruncID(w.ID)))

	if w.EffectiveStartDate != nil {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("START "), StyleFg.Render(HumanDate(*w.EffectiveStartDate))))
	} else {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("START "), Dim("not set")))
	}

	if data.Contact != nil {
		b.WriteString(fmt.Sprintf("%s  %s %s\n", StyleDim.Render("CLIENT"), StyleFg.Render(data.Contact.Name), StageBadge(data.Contact.Stage)))
	}

	if w.ArchivedAt != nil {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("ARCHVD"), HumanTimestamp(*w.ArchivedAt)))
	}

	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("UPDATED"), HumanTimestamp(w.UpdatedAt)))

	// Effort totals across phases.
	var totalHours float64
	var totalDays int
	for _, p := range data.Phases {
		totalHours += p.TotalEstimatedHours
		totalDays += p.PhaseTotalDuration
	}
	b.WriteString(fmt.Sprintf("%s  %s %s\n", StyleDim.Render("EFFORT"),
		StyleFg.Render(FormatHours(totalHours)), Dim("("+FormatDays(totalDays)+")")))

	return lipgloss.NewStyle().Width(45).Render(b.String())
}

// FormatPhaseTimeline renders the ordered phase chain with estimated and
// actual dates side by side.
func FormatPhaseTimeline(phases []*domain.Phase) string {
	if len(phases) == 0 {
		return StyleDim.Render("No phases")
	}

	var b strings.Builder
	b.WriteString(Header("Timeline"))
	b.WriteString("\n")

	headers := []string{"#", "PHASE", "STATUS", "EFFORT", "EST START", "EST END", "ACT START", "ACT END"}
	rows := make([][]string, 0, len(phases))
	done := 0

	for _, p := range phases {
		if p.Status == domain.PhaseCompleted {
			done++
		}
		effort := fmt.Sprintf("%s %s", FormatHours(p.TotalEstimatedHours), Dim("/ "+FormatDays(p.PhaseTotalDuration)))
		rows = append(rows, []string{
			Dim(fmt.Sprintf("%d", p.Position)),
			Bold(p.Name),
			PhaseStatusPill(p.Status),
			effort,
			DateOrDash(p.EstimatedStartDate),
			DateOrDash(p.EstimatedEndDate),
			DateOrDash(p.ActualStartDate),
			DateOrDash(p.ActualEndDate),
		})
	}

	b.WriteString(RenderTable(headers, rows))

	if len(phases) > 0 {
		pct := float64(done) / float64(len(phases))
		b.WriteString("\n" + Dim("Progress ") + RenderProgress(pct, 12) + "\n")
	}

	return b.String()
}
