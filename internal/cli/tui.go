package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/barchart/pkg/chart"
	bio "github.com/matzehuels/barchart/pkg/io"
)

// Preview styles
var (
	previewBarStyle      = lipgloss.NewStyle().Foreground(colorGray)
	previewSelectedStyle = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	previewDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	previewErrorStyle    = lipgloss.NewStyle().Foreground(colorRed)
)

// blocks are the eighth-height glyphs used for the top cell of a bar.
var blocks = []string{" ", "▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"}

const (
	previewRows     = 12
	previewBarWidth = 3
)

// =============================================================================
// PreviewModel - Interactive chart preview
// =============================================================================

// PreviewModel is the bubbletea model for the preview command. It owns a
// plotted engine and steps it through the definition's frames with Update.
type PreviewModel struct {
	def    *bio.Definition
	eng    *chart.Engine
	frame  int // 0 for the chart's own values, n for def.Frames[n-1]
	cursor int
	err    error
}

// NewPreviewModel creates a preview of an engine already plotted from def
// and showing frame.
func NewPreviewModel(def *bio.Definition, eng *chart.Engine, frame int) PreviewModel {
	return PreviewModel{def: def, eng: eng, frame: frame}
}

func (m PreviewModel) Init() tea.Cmd {
	return nil
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "left", "h":
		if m.frame > m.firstFrame() {
			m.step(m.frame - 1)
		}
	case "right", "l":
		if m.frame < len(m.def.Frames) {
			m.step(m.frame + 1)
		}
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.def.Chart.Size-1 {
			m.cursor++
		}
	}
	return m, nil
}

// firstFrame is the lowest frame that has values to show.
func (m PreviewModel) firstFrame() int {
	if len(m.def.Chart.Values) == 0 && len(m.def.Frames) > 0 {
		return 1
	}
	return 0
}

// step applies frame to the engine. Only the bars change.
func (m *PreviewModel) step(frame int) {
	values := m.def.Chart.Values
	if frame > 0 {
		var err error
		if values, err = m.def.Frame(frame - 1); err != nil {
			m.err = err
			return
		}
	}
	if m.err = m.eng.Update(values); m.err == nil {
		m.frame = frame
	}
}

func (m PreviewModel) View() string {
	var b strings.Builder
	l := m.eng.Layout()

	title := m.def.Chart.Title
	if title == "" {
		title = "Bar chart"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("  ")
	b.WriteString(previewDimStyle.Render(m.frameLabel()))
	b.WriteString("\n")
	b.WriteString(previewDimStyle.Render("←/→ frames  ↑/↓ select bar  q quit"))
	b.WriteString("\n\n")

	b.WriteString(m.renderBars(l))
	b.WriteString("\n")
	b.WriteString(m.renderTable(l))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(previewErrorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	return b.String()
}

func (m PreviewModel) frameLabel() string {
	if m.frame == 0 {
		return fmt.Sprintf("initial values (%d frames)", len(m.def.Frames))
	}
	return fmt.Sprintf("frame %d/%d", m.frame, len(m.def.Frames))
}

// renderBars draws the bars as columns of block glyphs scaled to the
// content box height.
func (m PreviewModel) renderBars(l *chart.Layout) string {
	eighths := make([]int, len(l.Bars))
	for i, bar := range l.Bars {
		if l.Content.Height > 0 {
			eighths[i] = int(bar.Height / l.Content.Height * previewRows * 8)
		}
	}

	var b strings.Builder
	for row := previewRows - 1; row >= 0; row-- {
		for i, e := range eighths {
			fill := min(max(e-row*8, 0), 8)
			cell := strings.Repeat(blocks[fill], previewBarWidth)
			if i == m.cursor {
				b.WriteString(previewSelectedStyle.Render(cell))
			} else {
				b.WriteString(previewBarStyle.Render(cell))
			}
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}
	b.WriteString(previewDimStyle.Render(strings.Repeat("─", len(l.Bars)*(previewBarWidth+1))))
	b.WriteString("\n")
	return b.String()
}

// renderTable lists the geometry of every bar.
func (m PreviewModel) renderTable(l *chart.Layout) string {
	rows := make([][]string, len(l.Bars))
	for i, bar := range l.Bars {
		label := ""
		if i < len(m.def.Chart.XLabels) {
			label = m.def.Chart.XLabels[i]
		}
		rows[i] = []string{
			strconv.Itoa(i + 1),
			label,
			formatNum(bar.Value),
			formatNum(bar.X),
			formatNum(bar.Y),
			formatNum(bar.Width),
			formatNum(bar.Height),
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Label", "Value", "X", "Y", "Width", "Height").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row == m.cursor:
				return previewSelectedStyle
			case col >= 2:
				return StyleNumber
			}
			return lipgloss.NewStyle()
		})
	return t.Render()
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
