package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/atomicstack/darktriad/internal/format/table"
	"github.com/atomicstack/darktriad/internal/glyph"
	"github.com/atomicstack/darktriad/internal/theme"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
)

const (
	copyMaxWidth = 72
	debugActions = 4
	auraCells    = 10
	sideMargin   = "  "
	buttonGap    = "  "
	logoMark     = "◬"
	logoFallback = "D T T"
)

// block is a run of rendered lines placed with one horizontal offset.
type block struct {
	lines []string
	width int
}

func newBlock(s string) block {
	lines := strings.Split(s, "\n")
	w := 0
	for _, line := range lines {
		if lw := ansi.StringWidth(line); lw > w {
			w = lw
		}
	}
	return block{lines: lines, width: w}
}

type canvas struct {
	width int
	lines []string
}

// place appends b centred and returns its top-left corner.
func (c *canvas) place(b block) (int, int) {
	x := 0
	if c.width > b.width {
		x = (c.width - b.width) / 2
	}
	y := len(c.lines)
	pad := strings.Repeat(" ", x)
	for _, line := range b.lines {
		c.lines = append(c.lines, pad+line)
	}
	return x, y
}

func (c *canvas) left(b block) {
	for _, line := range b.lines {
		c.lines = append(c.lines, sideMargin+line)
	}
}

func (c *canvas) blank() {
	c.lines = append(c.lines, "")
}

// View implements tea.Model. It also records the hitboxes used by mouse
// handling, so positions always refer to the frame on screen.
func (m *Model) View() string {
	m.hits = hitboxes{}
	if m.loading {
		return m.viewLoading()
	}

	top := []string{m.navLine(), ""}

	mid := &canvas{width: m.width}
	tb := m.titleBlock()
	titleX, titleY := mid.place(tb)
	mid.blank()
	buttonsY := -1
	var buttonX []int
	var buttonW []int
	if m.picker != nil {
		mid.place(m.pickerBlock())
	} else {
		for _, line := range m.copyLines() {
			mid.place(newBlock(line))
		}
		mid.blank()
		mid.place(m.panelBlock())
		if m.visibility.Buttons && len(m.controls) > 0 {
			mid.blank()
			row, offsets, widths := m.buttonRow()
			var x int
			x, buttonsY = mid.place(row)
			buttonX = make([]int, len(offsets))
			for i, off := range offsets {
				buttonX[i] = x + off
			}
			buttonW = widths
		}
	}

	bottom := &canvas{width: m.width}
	bottom.left(newBlock(m.auraLine()))
	if m.showDebug {
		bottom.left(m.debugBlock())
	}
	if msg := m.statusLine(); msg != "" {
		bottom.left(newBlock(msg))
	}
	if m.showFooter {
		bottom.left(newBlock(m.helpLine()))
	}

	lines := append([]string(nil), top...)
	pad := 0
	if m.height > 0 {
		if free := m.height - len(top) - len(mid.lines) - len(bottom.lines); free > 0 {
			pad = free / 2
		}
	}
	for i := 0; i < pad; i++ {
		lines = append(lines, "")
	}
	offsetY := len(lines)
	lines = append(lines, mid.lines...)
	if m.height > 0 {
		for len(lines)+len(bottom.lines) < m.height {
			lines = append(lines, "")
		}
	}
	lines = append(lines, bottom.lines...)

	m.hits.title = box{x0: titleX, x1: titleX + tb.width, y0: offsetY + titleY, y1: offsetY + titleY + 1, ok: true}
	if buttonsY >= 0 {
		m.hits.buttons = make([]box, len(buttonX))
		for i := range buttonX {
			m.hits.buttons[i] = box{
				x0: buttonX[i], x1: buttonX[i] + buttonW[i],
				y0: offsetY + buttonsY, y1: offsetY + buttonsY + 3,
				ok: true,
			}
		}
	}

	if m.height > 0 && len(lines) > m.height {
		lines = lines[:m.height]
	}
	for i, line := range lines {
		lines[i] = fitWidth(line, m.width)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) viewLoading() string {
	text := styles.Loading.Render(strings.ToUpper(loadingCopy))
	if m.width <= 0 || m.height <= 0 {
		return text
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, text)
}

func (m *Model) navLine() string {
	if !m.visibility.Nav {
		return ""
	}
	mark := logoFallback
	if m.config.Logo != "" {
		mark = logoMark
	}
	left := styles.Nav.Render(mark+"  ORDER OF THE ") + styles.Title.Render("DARK TRIAD")
	cycle := styles.Nav.Render("[ ") + styles.NavAction.Render("CYCLE VISION") + styles.Nav.Render(" ]")
	right := cycle + "   " + styles.Nav.Render("[ LOGIN ]")

	wl, wr := ansi.StringWidth(left), ansi.StringWidth(right)
	gap := m.width - 2 - wl - wr
	if gap < 3 {
		gap = 3
	}
	x0 := 1 + wl + gap
	m.hits.cycle = box{x0: x0, x1: x0 + ansi.StringWidth(cycle), y0: 0, y1: 1, ok: true}
	return " " + left + strings.Repeat(" ", gap) + right
}

func spaced(text string) string {
	words := strings.Fields(text)
	for i, word := range words {
		words[i] = strings.Join(strings.Split(word, ""), " ")
	}
	return strings.Join(words, "   ")
}

// titleBlock renders the title with the active glitch layer echoed beneath
// it, shifted one column left or right.
func (m *Model) titleBlock() block {
	title := " " + styles.TitleDark.Render(spaced("THE DARK")) + "   " + styles.Title.Render(spaced("TRIAD"))
	shift := "  "
	if m.glitch == 0 {
		shift = ""
	}
	ghost := shift + styles.Glitch[m.glitch%3].Render(spaced("THE DARK TRIAD"))
	return newBlock(title + "\n" + ghost)
}

func (m *Model) copyLines() []string {
	w := copyMaxWidth
	if m.width > 0 && m.width-4 < w {
		w = m.width - 4
	}
	if w < 10 {
		w = 10
	}
	wrapped := strings.Split(wordwrap.String(strings.ToUpper(centerCopy), w), "\n")
	out := make([]string, len(wrapped))
	for i, line := range wrapped {
		out[i] = styles.Copy.Render(strings.TrimSpace(line))
	}
	return out
}

func (m *Model) panelBlock() block {
	cur := m.current
	opacity := m.overlayOpacity()
	lines := []string{
		styles.PanelLabel.Render("VISION ") + styles.PanelValue.Render(cur.ID) +
			styles.PanelLabel.Render(" · ") + styles.PanelValue.Render(cur.DisplayLabel()),
		styles.PanelLabel.Render("KIND ") + styles.PanelValue.Render(string(cur.Kind)) +
			styles.PanelLabel.Render("   VEIL ") + theme.Aura(opacity).Render("  ") +
			" " + styles.PanelValue.Render(fmt.Sprintf("%.2f", opacity)),
	}
	switch {
	case m.playErr != nil:
		lines = append(lines, styles.PanelWarn.Render("STATIC FRAME · playback blocked"))
	case cur.Static():
		lines = append(lines, styles.PanelLabel.Render("STILL IMAGE"))
	default:
		lines = append(lines, styles.PanelLabel.Render("CLOCK ")+
			styles.PanelValue.Render(fmt.Sprintf("%s %.1fs", m.clock, m.mediaTime)))
	}
	return newBlock(styles.Panel.Render(strings.Join(lines, "\n")))
}

// buttonRow renders the glyph controls side by side and reports the
// column offset and width of each one.
func (m *Model) buttonRow() (block, []int, []int) {
	parts := make([]string, 0, len(m.controls)*2)
	offsets := make([]int, len(m.controls))
	widths := make([]int, len(m.controls))
	x := 0
	for i, c := range m.controls {
		style := styles.Button
		switch c.Mode() {
		case glyph.ModeSteady:
			style = styles.ButtonSteady
		case glyph.ModeReveal:
			style = styles.ButtonFocused
		}
		rendered := style.Render(m.buttonLabel(i))
		if i > 0 {
			parts = append(parts, buttonGap)
			x += len(buttonGap)
		}
		offsets[i] = x
		widths[i] = lipgloss.Width(rendered)
		x += widths[i]
		parts = append(parts, rendered)
	}
	return newBlock(lipgloss.JoinHorizontal(lipgloss.Top, parts...)), offsets, widths
}

func (m *Model) pickerBlock() block {
	p := m.picker
	lines := []string{styles.Header.Render(strings.ToUpper(p.Title)), m.filterLine()}
	rows := p.Visible(pickerMaxVisible)
	if len(rows) == 0 {
		lines = append(lines, styles.FilterPlaceholder.Render("no visions match"))
	}
	for i, item := range rows {
		idx := p.ViewportOffset + i
		label := item.Label
		if item.ID != item.Label {
			label = fmt.Sprintf("%s (%s)", item.Label, item.ID)
		}
		if idx == p.Cursor {
			lines = append(lines, styles.SelectedItem.Render("▸ "+label)+" "+styles.ItemDetail.Render(item.Detail))
			continue
		}
		lines = append(lines, styles.Item.Render("  "+label)+" "+styles.ItemDetail.Render(item.Detail))
	}
	return newBlock(strings.Join(lines, "\n"))
}

func (m *Model) filterLine() string {
	prompt := styles.FilterPrompt.Render("» ")
	p := m.picker
	if p.Filter == "" {
		return prompt + styles.FilterPlaceholder.Render("(type to filter)")
	}
	runes := []rune(p.Filter)
	pos := p.FilterCursorPos()
	return prompt + styles.Filter.Render(string(runes[:pos])) + "▏" + styles.Filter.Render(string(runes[pos:]))
}

func (m *Model) auraLine() string {
	filled := int(math.Round((m.intensity - minIntensity) / (maxIntensity - minIntensity) * auraCells))
	bar := strings.Repeat("▮", filled) + strings.Repeat("▯", auraCells-filled)
	return styles.PanelLabel.Render("AURA INTENSITY ") + styles.PanelValue.Render(bar) +
		" " + styles.PanelValue.Render(fmt.Sprintf("%.2f", m.intensity))
}

func (m *Model) debugBlock() block {
	lines := table.Pairs([][2]string{
		{"FPS", fmt.Sprintf("%d", m.fps)},
		{"GLYPH RATE", fmt.Sprintf("%dms", m.config.GlyphRateMs)},
		{"REVEAL", fmt.Sprintf("%dms", m.config.RevealDurationMs)},
		{"BACKGROUND", m.current.ID},
	})
	actions := m.actions
	if len(actions) > debugActions {
		actions = actions[:debugActions]
	}
	if len(actions) > 0 {
		lines = append(lines, strings.Repeat("─", 12))
		lines = append(lines, actions...)
	}
	return newBlock(styles.Overlay.Render(strings.Join(lines, "\n")))
}

func (m *Model) statusLine() string {
	switch {
	case m.errMsg != "":
		return styles.Error.Render(m.errMsg)
	case m.backendErr != "":
		return styles.PanelWarn.Render("reload failed: " + m.backendErr)
	}
	return ""
}

func (m *Model) helpLine() string {
	if m.picker != nil {
		return styles.Footer.Render(m.help.View(pickerKeys))
	}
	return styles.Footer.Render(m.help.View(m.keys))
}

func fitWidth(line string, width int) string {
	if width <= 0 || ansi.StringWidth(line) <= width {
		return line
	}
	return truncate.StringWithTail(line, uint(width), "…")
}
