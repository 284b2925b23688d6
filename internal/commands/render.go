package commands

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ledgerkit/internal/fx"
)

const (
	colorText    lipgloss.Color = "#cdd6f4"
	colorSubtext lipgloss.Color = "#7f849c"
	colorBlue    lipgloss.Color = "#89b4fa"
	colorGreen   lipgloss.Color = "#a6e3a1"
	colorRed     lipgloss.Color = "#f38ba8"
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(colorBlue).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(colorSubtext)
	headerStyle = lipgloss.NewStyle().Foreground(colorText).Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	okStyle     = lipgloss.NewStyle().Foreground(colorGreen)
	badStyle    = lipgloss.NewStyle().Foreground(colorRed)
)

// printer renders amounts in one locale.
type printer struct {
	w      io.Writer
	locale string
}

func (p printer) amount(d decimal.Decimal) string {
	return fx.FormatAmount(d, p.locale)
}

// blank renders zero as an empty cell.
func (p printer) blank(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return p.amount(d)
}

func (p printer) title(s string) {
	io.WriteString(p.w, titleStyle.Render(s)+"\n")
}

// table writes rows with the first textCols columns left-aligned and the
// rest right-aligned.
func (p printer) table(headers []string, rows [][]string, textCols int) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(labelStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := cellStyle
			if row == table.HeaderRow {
				s = headerStyle
			}
			if col >= textCols {
				return s.Align(lipgloss.Right)
			}
			return s
		})
	io.WriteString(p.w, t.String()+"\n")
}

// pairs writes label/value lines with labels padded to a common width.
func (p printer) pairs(kv [][2]string) {
	width := 0
	for _, pair := range kv {
		width = max(width, lipgloss.Width(pair[0]))
	}
	var b strings.Builder
	for _, pair := range kv {
		b.WriteString("  ")
		b.WriteString(labelStyle.Render(pair[0] + strings.Repeat(" ", width-lipgloss.Width(pair[0]))))
		b.WriteString("  ")
		b.WriteString(pair[1])
		b.WriteString("\n")
	}
	io.WriteString(p.w, b.String())
}

func (p printer) status(ok bool, yes, no string) string {
	if ok {
		return okStyle.Render(yes)
	}
	return badStyle.Render(no)
}
