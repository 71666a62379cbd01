package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/danvoss/stride/internal/domain"
	"github.com/danvoss/stride/internal/testutil"
)

func TestRelativeDateFrom(t *testing.T) {
	now := testutil.Date(2026, time.September, 1)

	assert.Equal(t, "Today", RelativeDateFrom(now, now))
	assert.Equal(t, "Tomorrow", RelativeDateFrom(now.AddDate(0, 0, 1), now))
	assert.Equal(t, "Yesterday", RelativeDateFrom(now.AddDate(0, 0, -1), now))
	assert.Equal(t, "In 5d", RelativeDateFrom(now.AddDate(0, 0, 5), now))
	assert.Equal(t, "In 3w", RelativeDateFrom(now.AddDate(0, 0, 21), now))
	assert.Equal(t, "In 3mo", RelativeDateFrom(now.AddDate(0, 0, 90), now))
	assert.Equal(t, "5d ago", RelativeDateFrom(now.AddDate(0, 0, -5), now))
	assert.Equal(t, "3w ago", RelativeDateFrom(now.AddDate(0, 0, -21), now))
	assert.Equal(t, "3mo ago", RelativeDateFrom(now.AddDate(0, 0, -90), now))
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "0h", FormatHours(0))
	assert.Equal(t, "0h", FormatHours(-4))
	assert.Equal(t, "16h", FormatHours(16))
	assert.Equal(t, "12.5h", FormatHours(12.5))
}

func TestFormatDays(t *testing.T) {
	assert.Equal(t, "0 days", FormatDays(0))
	assert.Equal(t, "1 day", FormatDays(1))
	assert.Equal(t, "3 days", FormatDays(3))
}

func TestDateOrDash(t *testing.T) {
	d := testutil.Date(2026, time.September, 1)
	assert.Contains(t, DateOrDash(&d), "2026-09-01")
	assert.Contains(t, DateOrDash(nil), "--")
}

func TestTruncID(t *testing.T) {
	assert.Contains(t, TruncID("abcdef12-3456-7890"), "abcdef12")
	assert.NotContains(t, TruncID("abcdef12-3456-7890"), "3456")
	assert.Contains(t, TruncID("short"), "short")
}

func TestStatusPills(t *testing.T) {
	assert.Contains(t, StatusPill(domain.WorkPackageActive), "Active")
	assert.Contains(t, StatusPill(domain.WorkPackageArchived), "Archived")
	assert.Contains(t, PhaseStatusPill(domain.PhaseInProgress), "In Progress")
	assert.Contains(t, StageBadge(domain.StageQualified), "Qualified")
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable(
		[]string{"ID", "NAME"},
		[][]string{
			{"WEB01", "Website Redesign"},
			{"APP02", "App"},
		},
	)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Contains(t, lines[0], "ID")
	assert.Contains(t, lines[0], "NAME")
	assert.Contains(t, lines[1], "─")
	assert.Contains(t, lines[2], "Website Redesign")
	// Short cells are padded so the NAME column starts at the same offset.
	assert.Contains(t, lines[3], "APP02  ")
}

func TestRenderTable_Empty(t *testing.T) {
	assert.Equal(t, "", RenderTable(nil, nil))
}

func TestRenderProgress(t *testing.T) {
	out := RenderProgress(0.5, 10)
	assert.Contains(t, out, " 50%")
	assert.Contains(t, out, filledBlock)
	assert.Contains(t, out, emptyBlock)

	full := RenderProgress(1.0, 10)
	assert.Contains(t, full, "100%")
	assert.NotContains(t, full, emptyBlock)

	clamped := RenderProgress(1.7, 10)
	assert.Contains(t, clamped, "100%")
}
