// Package history renders the reading history for the history command.
package history

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"golang.org/x/term"

	"github.com/robco-termlink/wastelandhub/internal/model"
)

const (
	terminalWidthBackup = 80
	timeLayout          = "2006-01-02 15:04:05"

	colorReset = "\x1b[0m"
)

var outcomeColors = map[string]string{
	model.OutcomeCompleted:  "\x1b[32m",
	model.OutcomeSkipped:    "\x1b[33m",
	model.OutcomeCanceled:   "\x1b[31m",
	model.OutcomeSuperseded: "\x1b[90m",
}

// Options controls Render output.
type Options struct {
	// Width limits line width; zero uses the terminal width.
	Width int
	// ForceColor enables color even when w is not a terminal.
	ForceColor bool
	// Location formats timestamps; nil uses local time.
	Location *time.Location
}

// Render writes reads as a table followed by per-key totals.
func Render(w io.Writer, reads []model.ReadRecord, counts map[string]int, opts Options) error {
	if len(reads) == 0 {
		_, err := fmt.Fprintln(w, "No reads recorded yet.")
		return err
	}
	width := opts.Width
	if width <= 0 {
		width = terminalWidth()
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	useColor := shouldUseColor(w, opts.ForceColor)

	rows := make([][]string, 0, len(reads))
	for _, r := range reads {
		rows = append(rows, []string{
			r.EndedAt.In(loc).Format(timeLayout),
			r.LogKey,
			r.Outcome,
			fmt.Sprintf("%d/%d", r.Revealed, r.Total),
			fmt.Sprintf("%d", r.CPS),
		})
	}
	lines := formatTable([]string{"ENDED", "LOG", "OUTCOME", "SHOWN", "CPS"}, rows, map[int]bool{3: true, 4: true})
	for i, line := range lines {
		line = truncateLine(line, width)
		if useColor && i > 0 {
			line = colorize(line, reads[i-1].Outcome)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	if len(counts) == 0 {
		return nil
	}
	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	totals := make([][]string, 0, len(keys))
	for _, key := range keys {
		totals = append(totals, []string{key, fmt.Sprintf("%d", counts[key])})
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	for _, line := range formatTable([]string{"LOG", "READS"}, totals, map[int]bool{1: true}) {
		if _, err := fmt.Fprintln(w, truncateLine(line, width)); err != nil {
			return err
		}
	}
	return nil
}

func colorize(line, outcome string) string {
	code, ok := outcomeColors[outcome]
	if !ok {
		return line
	}
	return code + line + colorReset
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

// Summary is a one-line description of reads, used by the logs list command.
func Summary(counts map[string]int, key string) string {
	n := counts[key]
	switch n {
	case 0:
		return "unread"
	case 1:
		return "read once"
	default:
		return fmt.Sprintf("read %d times", n)
	}
}
