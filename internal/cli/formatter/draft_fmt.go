package formatter

import (
	"fmt"
	"strings"

	"github.com/danvoss/stride/internal/service"
)

// FormatDraft renders a generated outreach draft for review.
func FormatDraft(contactName string, draft *service.OutreachDraft) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s  %s\n\n", StyleDim.Render("TO     "), Bold(contactName)))
	if draft.Subject != "" {
		b.WriteString(fmt.Sprintf("%s  %s\n\n", StyleDim.Render("SUBJECT"), StyleFg.Render(draft.Subject)))
	}
	b.WriteString(StyleFg.Render(draft.Body) + "\n")
	if draft.Model != "" {
		b.WriteString("\n" + Dim("drafted by "+draft.Model) + "\n")
	}

	return RenderBox("Outreach Draft", b.String())
}

// FormatImportAccepted renders the success message after a work package import.
func FormatImportAccepted(result *service.ImportResult) string {
	var b strings.Builder

	b.WriteString(StyleGreen.Render("Work package imported successfully!") + "\n\n")
	b.WriteString(fmt.Sprintf("  %s  %s [%s]\n", StyleDim.Render("PACKAGE"), Bold(result.WorkPackage.Name), result.WorkPackage.ShortID))
	b.WriteString(fmt.Sprintf("  %s  %d phases, %d items\n", StyleDim.Render("CONTENT"), result.PhaseCount, result.ItemCount))

	return RenderBox("", b.String())
}
