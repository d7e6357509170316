package output

import (
	"context"
	"fmt"
	"sort"

	"github.com/swcurran/toggl-cli/internal/api"
	"github.com/swcurran/toggl-cli/internal/timeutil"
)

// EntryLine renders one time entry as a single line: a running marker, the
// description, the project and the elapsed time, with the id appended in
// verbose mode.
func (f *Formatter) EntryLine(ctx context.Context, te *api.TimeEntry, projects *api.ProjectList) string {
	marker := "  "
	if te.IsRunning() {
		marker = f.styled(styleRunning, "* ")
	}

	projectName := " "
	if pid, ok := te.ProjectID(); ok {
		if project, err := projects.FindByID(ctx, pid); err == nil {
			projectName = " " + f.styled(styleProject, "@"+project.Name()) + " "
		}
	}

	elapsed := ""
	if seconds, err := te.NormalizedDuration(); err == nil {
		elapsed = f.styled(styleDuration, timeutil.FormatElapsed(seconds))
	}

	line := marker + te.Description() + projectName + elapsed
	if f.Verbose {
		if id, ok := te.ID(); ok {
			line += f.styled(styleMuted, fmt.Sprintf(" [%d]", id))
		}
	}
	return line
}

// PrintEntries renders recent entries bucketed by day with per-day totals.
func (f *Formatter) PrintEntries(ctx context.Context, entries []*api.TimeEntry, projects *api.ProjectList) {
	days := map[string][]*api.TimeEntry{}
	for _, te := range entries {
		start, err := te.StartTime()
		if err != nil {
			continue
		}
		day := start.Format("2006-01-02")
		days[day] = append(days[day], te)
	}

	dates := make([]string, 0, len(days))
	for day := range days {
		dates = append(dates, day)
	}
	sort.Strings(dates)

	for _, day := range dates {
		f.Println(f.styled(styleDate, day))
		var total int64
		for _, te := range days[day] {
			f.Println(f.EntryLine(ctx, te, projects))
			if seconds, err := te.NormalizedDuration(); err == nil {
				total += seconds
			}
		}
		f.Printf("  (%s)\n", timeutil.FormatElapsed(total))
	}
}

// PrintStatus renders the currently running entry, or a hint when idle.
func (f *Formatter) PrintStatus(ctx context.Context, te *api.TimeEntry, projects *api.ProjectList) {
	if te == nil {
		f.Println(f.styled(styleMuted, "No time entry is running."))
		f.Println(f.styled(styleMuted, "Use 'toggl start <description>' to begin."))
		return
	}
	f.Println(f.EntryLine(ctx, te, projects))
}
