package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	missingColor = color.New(color.FgMagenta, color.Bold)
	gutterColor  = color.New(color.FgBlue)
	caretColor   = color.New(color.FgGreen, color.Bold)
)

func kindColor(k Kind) *color.Color {
	switch k {
	case InvariantViolation:
		return errorColor
	case Warning:
		return warningColor
	default:
		return missingColor
	}
}

// Format writes d with the offending source line and a caret under the
// column. Tabs and wide runes before the column are measured by display
// width so the caret lines up in a terminal. Colors follow color.NoColor.
func Format(w io.Writer, file, source string, d Diagnostic) error {
	var sb strings.Builder
	sb.WriteString(kindColor(d.Kind).Sprint(d.Kind.String()))
	fmt.Fprintf(&sb, ": %s\n", d.Message)

	lines := strings.Split(source, "\n")
	if d.Loc.Line < 1 || d.Loc.Line > len(lines) {
		if file != "" {
			fmt.Fprintf(&sb, "  --> %s\n", file)
		}
		_, err := io.WriteString(w, sb.String())
		return err
	}

	line := strings.TrimRight(lines[d.Loc.Line-1], "\r")
	col := max(d.Loc.Column, 1)
	prefix := line
	if col-1 < len(line) {
		prefix = line[:col-1]
	}

	fmt.Fprintf(&sb, "  --> %s:%d:%d\n", file, d.Loc.Line, col)
	sb.WriteString(gutterColor.Sprint("   |") + "\n")
	sb.WriteString(gutterColor.Sprintf("%3d|", d.Loc.Line) + " " + expandTabs(line) + "\n")
	sb.WriteString(gutterColor.Sprint("   |") + " " + strings.Repeat(" ", displayWidth(prefix)) + caretColor.Sprint("^") + "\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

// FormatAll writes every diagnostic, separated by blank lines.
func FormatAll(w io.Writer, file, source string, items []Diagnostic) error {
	for i, d := range items {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := Format(w, file, source, d); err != nil {
			return err
		}
	}
	return nil
}

// expandTabs replaces tabs with spaces up to the next multiple of four
// display cells.
func expandTabs(s string) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}
	var sb strings.Builder
	width := 0
	for _, r := range s {
		if r == '\t' {
			n := 4 - width%4
			sb.WriteString(strings.Repeat(" ", n))
			width += n
			continue
		}
		sb.WriteRune(r)
		width += runewidth.RuneWidth(r)
	}
	return sb.String()
}

// displayWidth measures s in terminal cells with tabs expanded as in
// expandTabs.
func displayWidth(s string) int {
	width := 0
	for _, r := range s {
		if r == '\t' {
			width += 4 - width%4
			continue
		}
		width += runewidth.RuneWidth(r)
	}
	return width
}
