package formatter

import (
	"fmt"
	"strings"

	"github.com/danvoss/stride/internal/domain"
	"github.com/danvoss/stride/internal/service"
)

const statusProgressBarWidth = 10

// FormatOverview formats the work package overviews into a styled CLI
// dashboard string.
func FormatOverview(overviews []service.WorkPackageOverview) string {
	var b strings.Builder

	headers := []string{"ID", "NAME", "STATUS", "PROGRESS", "HEALTH", "EFFORT"}
	rows := make([][]string, 0, len(overviews))

	var behind, atRisk, onTrack int

	for _, o := range overviews {
		switch o.Health {
		case domain.HealthBehind:
			behind++
		case domain.HealthAtRisk:
			atRisk++
		case domain.HealthOnTrack:
			onTrack++
		}

		done := 0
		for _, p := range o.Phases {
			if p.Status == domain.PhaseCompleted {
				done++
			}
		}
		pct := 0.0
		if len(o.Phases) > 0 {
			pct = float64(done) / float64(len(o.Phases))
		}

		effort := fmt.Sprintf("%s %s", FormatHours(o.TotalHours), Dim("/ "+FormatDays(o.TotalDays)))

		rows = append(rows, []string{
			o.WorkPackage.DisplayID(),
			Bold(o.WorkPackage.Name),
			StatusPill(o.WorkPackage.Status),
			RenderProgress(pct, statusProgressBarWidth),
			HealthIndicator(o.Health),
			effort,
		})
	}

	b.WriteString(RenderTable(headers, rows))

	b.WriteString("\n")
	behindPart := StyleRed.Render(fmt.Sprintf("%d Behind", behind))
	atRiskPart := StyleYellow.Render(fmt.Sprintf("%d At Risk", atRisk))
	onTrackPart := StyleGreen.Render(fmt.Sprintf("%d On Track", onTrack))
	b.WriteString(fmt.Sprintf("%s, %s, %s\n", behindPart, atRiskPart, onTrackPart))

	return RenderBox("Status", b.String())
}

// FormatWorkPackageStatus formats a single work package overview with its
// full phase timeline.
func FormatWorkPackageStatus(o *service.WorkPackageOverview) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s [%s]  %s\n\n",
		Bold(o.WorkPackage.Name), o.WorkPackage.DisplayID(), HealthIndicator(o.Health)))

	b.WriteString(FormatPhaseTimeline(o.Phases))

	return RenderBox("", b.String())
}
