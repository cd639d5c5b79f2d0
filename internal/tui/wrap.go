package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type cell struct {
	r       rune
	width   int
	isSpace bool
}

// wrapText word-wraps text to width display cells. Existing line breaks are
// kept; words wider than the line are split.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, wrapLine(line, width)...)
	}
	return strings.Join(out, "\n")
}

func wrapLine(line string, width int) []string {
	cells := make([]cell, 0, len(line))
	for _, r := range line {
		cells = append(cells, cell{r: r, width: runewidth.RuneWidth(r), isSpace: r == ' '})
	}

	var out []string
	cur := make([]cell, 0, len(cells))
	curWidth := 0
	lastSpace := -1
	for i := 0; i < len(cells); {
		c := cells[i]
		if curWidth+c.width > width && len(cur) > 0 {
			switch {
			case c.isSpace:
				out = append(out, renderCells(cur))
				cur = cur[:0]
				i++
			case lastSpace >= 0:
				out = append(out, renderCells(cur[:lastSpace]))
				cur = append([]cell{}, cur[lastSpace+1:]...)
			default:
				out = append(out, renderCells(cur))
				cur = cur[:0]
			}
			curWidth = widthOf(cur)
			lastSpace = lastSpaceIndex(cur)
			continue
		}
		cur = append(cur, c)
		curWidth += c.width
		if c.isSpace {
			lastSpace = len(cur) - 1
		}
		i++
	}
	return append(out, renderCells(cur))
}

func renderCells(cells []cell) string {
	var b strings.Builder
	for _, c := range cells {
		b.WriteRune(c.r)
	}
	return b.String()
}

func widthOf(cells []cell) int {
	total := 0
	for _, c := range cells {
		total += c.width
	}
	return total
}

func lastSpaceIndex(cells []cell) int {
	for i := len(cells) - 1; i >= 0; i-- {
		if cells[i].isSpace {
			return i
		}
	}
	return -1
}
