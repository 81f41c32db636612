package terminal

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/mainbong/file_manager/internal/workdir"
)

var (
	successStyle = color.New(color.FgGreen)
	noticeStyle  = color.New(color.FgYellow)
	failureStyle = color.New(color.FgRed, color.Bold)
	headerStyle  = color.New(color.FgCyan, color.Bold)
	contentStyle = color.New(color.FgHiBlue)
	dirStyle     = color.New(color.FgBlue, color.Bold)
	mutedStyle   = color.New(color.FgHiBlack)
)

// Renderer formats session output for line-oriented displays.
type Renderer struct {
	writer     io.Writer
	linePrefix string
}

// NewRenderer creates a renderer that writes to the provided writer.
func NewRenderer(writer io.Writer) *Renderer {
	return &Renderer{writer: writer}
}

// SetLinePrefix sets a prefix for each rendered line.
func (r *Renderer) SetLinePrefix(prefix string) {
	r.linePrefix = prefix
}

// KindStyle returns the color used for outcomes of kind k.
func KindStyle(k workdir.Kind) *color.Color {
	switch k {
	case workdir.Success:
		return successStyle
	case workdir.Failure:
		return failureStyle
	default:
		return noticeStyle
	}
}

// Outcome prints the outcome message, followed by the file content for a
// successful read.
func (r *Renderer) Outcome(o workdir.Outcome) {
	r.printLine(o.Message, KindStyle(o.Kind))
	if o.Op != workdir.OpReadFile || !o.OK() {
		return
	}

	if o.Content == "" {
		r.printLine("(empty file)", mutedStyle)
		return
	}
	gutter := mutedStyle.Sprint("│ ")
	for _, line := range strings.Split(strings.TrimSuffix(o.Content, "\n"), "\n") {
		r.printLine(gutter+contentStyle.Sprint(line), nil)
	}
}

// Warn prints a highlighted notice.
func (r *Renderer) Warn(format string, args ...interface{}) {
	r.printLine(fmt.Sprintf(format, args...), noticeStyle)
}

// Heading prints a bold section title.
func (r *Renderer) Heading(format string, args ...interface{}) {
	r.printLine(fmt.Sprintf(format, args...), headerStyle)
}

// Line prints text unstyled.
func (r *Renderer) Line(format string, args ...interface{}) {
	r.printLine(fmt.Sprintf(format, args...), nil)
}

// Listing prints the entries of dir as a table.
func (r *Renderer) Listing(dir string, entries []workdir.Entry) {
	r.Heading("Folder: %s", dir)
	if len(entries) == 0 {
		r.printLine("(empty folder)", mutedStyle)
		return
	}

	rows := [][]string{{"Name", "Type", "Size", "Modified"}}
	for _, e := range entries {
		kind, size := "file", HumanSize(e.Size)
		name := e.Name
		if e.IsDir {
			kind, size = "dir", "-"
			name += "/"
		}
		rows = append(rows, []string{name, kind, size, e.ModTime.Format("2006-01-02 15:04")})
	}
	r.Table(rows)
}

// Table prints rows with a bordered layout; the first row is the header.
func (r *Renderer) Table(rows [][]string) {
	if len(rows) == 0 {
		return
	}

	colCount := 0
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	if colCount == 0 {
		return
	}

	widths := make([]int, colCount)
	for _, row := range rows {
		for i := 0; i < colCount; i++ {
			val := ""
			if i < len(row) {
				val = row[i]
			}
			if w := displayWidth(val); w > widths[i] {
				widths[i] = w
			}
		}
	}

	border := func() string {
		var b strings.Builder
		b.WriteString("+")
		for _, w := range widths {
			b.WriteString(strings.Repeat("-", w+2))
			b.WriteString("+")
		}
		return b.String()
	}

	r.printLine(border(), nil)
	for idx, row := range rows {
		r.renderTableRow(row, widths, idx == 0)
		if idx == 0 && len(rows) > 1 {
			r.printLine(border(), nil)
		}
	}
	r.printLine(border(), nil)
}

func (r *Renderer) renderTableRow(row []string, widths []int, header bool) {
	var b strings.Builder
	b.WriteString("|")
	for i := 0; i < len(widths); i++ {
		val := ""
		if i < len(row) {
			val = row[i]
		}
		padding := widths[i] - displayWidth(val)
		b.WriteString(" ")
		if !header && strings.HasSuffix(val, "/") {
			b.WriteString(dirStyle.Sprint(val))
		} else {
			b.WriteString(val)
		}
		b.WriteString(strings.Repeat(" ", padding))
		b.WriteString(" |")
	}
	if header {
		r.printLine(b.String(), color.New(color.FgHiWhite, color.Bold))
	} else {
		r.printLine(b.String(), nil)
	}
}

func (r *Renderer) printLine(text string, style *color.Color) {
	if r.linePrefix != "" {
		fmt.Fprint(r.writer, r.linePrefix)
	}
	if style != nil {
		style.Fprintln(r.writer, text)
		return
	}
	fmt.Fprintln(r.writer, text)
}

func displayWidth(s string) int {
	return len([]rune(s))
}

// HumanSize formats a byte count using binary units.
func HumanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return strconv.FormatInt(n, 10) + " B"
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
