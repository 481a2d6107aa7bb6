// Package output renders console reports.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
)

const sectionWidth = 61 // inner width between │ and line end

// Section renders a box-drawing framed output section.
type Section struct {
	w     io.Writer
	name  string
	color bool
}

// NewSection creates a section and writes its header.
func NewSection(w io.Writer, name string, color bool) *Section {
	s := &Section{w: w, name: name, color: color}
	s.writeHeader()
	return s
}

// Row writes a content line inside the section frame.
func (s *Section) Row(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	fmt.Fprintf(s.w, "    │ %s\n", line)
}

// Field writes an aligned key-value row, skipping empty values.
func (s *Section) Field(key, value string) {
	if value == "" {
		return
	}
	s.Row("%-22s%s", key, value)
}

// Separator writes a mid-section divider.
func (s *Section) Separator() {
	fmt.Fprintf(s.w, "    ├%s\n", strings.Repeat("─", sectionWidth))
}

// Close writes the section footer.
func (s *Section) Close() {
	fmt.Fprintf(s.w, "    └%s\n", strings.Repeat("─", sectionWidth))
}

// writeHeader renders: ── Name ────────────────────────────────
func (s *Section) writeHeader() {
	label := fmt.Sprintf("── %s ", s.name)

	fill := sectionWidth + 4 - len([]rune(label)) - 2
	if fill < 1 {
		fill = 1
	}

	if s.color {
		// dim cyan for header
		fmt.Fprintf(s.w, "\n    \033[2;36m%s%s──\033[0m\n", label, strings.Repeat("─", fill))
	} else {
		fmt.Fprintf(s.w, "\n    %s%s──\n", label, strings.Repeat("─", fill))
	}
}

func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// UseColor returns true if colored output should be used.
// Respects NO_COLOR env, TERM=dumb, and terminal detection.
func UseColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isTerminal()
}
