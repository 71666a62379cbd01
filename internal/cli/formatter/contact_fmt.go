package formatter

import (
	"fmt"
	"strings"

	"github.com/danvoss/stride/internal/domain"
)

// FormatContactList renders a styled contact list inside a bordered box.
func FormatContactList(contacts []*domain.Contact) string {
	headers := []string{"ID", "NAME", "COMPANY", "STAGE", "EMAIL"}
	rows := make([][]string, 0, len(contacts))

	for _, c := range contacts {
		company := Dim("--")
		if c.Company != "" {
			company = StyleFg.Render(c.Company)
		}
		rows = append(rows, []string{
			TruncID(c.ID),
			Bold(c.Name),
			company,
			StageBadge(c.Stage),
			Dim(c.Email),
		})
	}

	table := RenderTable(headers, rows)
	return RenderBox("Contacts", table)
}

// FormatContactInspect renders a single contact as a styled card.
func FormatContactInspect(c *domain.Contact) string {
	var b strings.Builder

	b.WriteString(StyleBold.Render(c.Name) + "  " + StageBadge(c.Stage) + "\n\n")
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("UUID   "), TruncID(c.ID)))
	if c.Company != "" {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("COMPANY"), StyleFg.Render(c.Company)))
	}
	if c.Email != "" {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("EMAIL  "), StyleFg.Render(c.Email)))
	}
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("UPDATED"), HumanTimestamp(c.UpdatedAt)))

	if c.Notes != "" {
		b.WriteString("\n" + Header("Notes") + "\n")
		b.WriteString(StyleFg.Render(c.Notes) + "\n")
	}

	return RenderBox("", b.String())
}
