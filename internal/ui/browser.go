package ui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vietdv277/devenv/pkg/types"
)

// ErrCancelled is returned when the user leaves the browser without a selection
var ErrCancelled = errors.New("selection cancelled")

const (
	listHeight       = 8
	detailLabelWidth = 13
	minWidth         = 60
	maxWidth         = 140

	rowColWidthOwner    = 12
	rowColWidthProvider = 10
	rowColWidthExpires  = 16
	rowColWidthState    = 11
	// cursor(3) + Owner(12) + sp(2) + Provider(10) + sp(2) + Expires(16) + sp(2) + State(11) + sp(2) = 60
	rowFixedWidth = 3 + rowColWidthOwner + 2 + rowColWidthProvider + 2 + rowColWidthExpires + 2 + rowColWidthState + 2
)

// BrowserModel is the bubbletea model for browsing report rows
type BrowserModel struct {
	report       *types.Report
	rows         []types.ReportRow
	filtered     []types.ReportRow
	cursor       int
	offset       int
	search       string
	selected     *types.ReportRow
	quitting     bool
	cancelled    bool
	termWidth    int
	contentWidth int
	colWidths    []int // [Owner, Provider, Expires, State, Hostname]
}

// NewBrowserModel creates a browser over the report rows
func NewBrowserModel(report *types.Report) BrowserModel {
	m := BrowserModel{
		report:    report,
		rows:      report.Rows,
		filtered:  report.Rows,
		termWidth: 80,
	}
	m.calculateWidths()
	return m
}

func (m *BrowserModel) calculateWidths() {
	m.contentWidth = m.termWidth - 2
	if m.contentWidth < minWidth {
		m.contentWidth = minWidth
	}
	if m.contentWidth > maxWidth {
		m.contentWidth = maxWidth
	}

	hostWidth := m.contentWidth - rowFixedWidth
	if hostWidth < 10 {
		hostWidth = 10
	}
	m.colWidths = []int{rowColWidthOwner, rowColWidthProvider, rowColWidthExpires, rowColWidthState, hostWidth}
}

// Init implements tea.Model.
func (m BrowserModel) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update implements tea.Model.
func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.calculateWidths()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			m.cancelled = true
			return m, tea.Quit

		case tea.KeyEnter:
			if len(m.filtered) > 0 {
				selected := m.filtered[m.cursor]
				m.selected = &selected
				m.quitting = true
				return m, tea.Quit
			}

		case tea.KeyUp:
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}

		case tea.KeyDown:
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
				if m.cursor >= m.offset+listHeight {
					m.offset = m.cursor - listHeight + 1
				}
			}

		case tea.KeyBackspace:
			if len(m.search) > 0 {
				m.search = m.search[:len(m.search)-1]
				m.filterRows()
			}

		case tea.KeyRunes:
			m.search += string(msg.Runes)
			m.filterRows()
		}
	}

	return m, nil
}

func (m *BrowserModel) filterRows() {
	if m.search == "" {
		m.filtered = m.rows
	} else {
		query := strings.ToLower(m.search)
		m.filtered = nil
		for _, r := range m.rows {
			if strings.Contains(strings.ToLower(r.Hostname), query) ||
				strings.Contains(strings.ToLower(r.Owner), query) ||
				strings.Contains(strings.ToLower(r.IPAddress), query) ||
				strings.Contains(strings.ToLower(r.Provider), query) ||
				strings.Contains(strings.ToLower(r.Specs), query) {
				m.filtered = append(m.filtered, r)
			}
		}
	}
	if m.cursor >= len(m.filtered) {
		if len(m.filtered) > 0 {
			m.cursor = len(m.filtered) - 1
		} else {
			m.cursor = 0
		}
	}
	m.offset = 0
}

// View implements tea.Model.
func (m BrowserModel) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	w := m.contentWidth

	sb.WriteString(BorderStyle.Render(TopLeft + strings.Repeat(Horizontal, w) + TopRight))
	sb.WriteString("\n")

	sb.WriteString(m.line(NameStyle.Render(padRight(" > "+m.search, w))))
	sb.WriteString(m.blankLine())

	visibleEnd := m.offset + listHeight
	if visibleEnd > len(m.filtered) {
		visibleEnd = len(m.filtered)
	}
	for i := m.offset; i < visibleEnd; i++ {
		sb.WriteString(m.renderRow(i))
	}
	for i := visibleEnd; i < m.offset+listHeight; i++ {
		sb.WriteString(m.blankLine())
	}

	sb.WriteString(m.blankLine())
	sb.WriteString(BorderStyle.Render(LeftT + strings.Repeat(Horizontal, w) + RightT))
	sb.WriteString("\n")

	sb.WriteString(m.renderDetailsPanel())

	sb.WriteString(BorderStyle.Render(BottomLeft + strings.Repeat(Horizontal, w) + BottomRight))
	sb.WriteString("\n")

	sb.WriteString(m.renderStatusBar())

	return sb.String()
}

func (m BrowserModel) line(content string) string {
	return BorderStyle.Render(Vertical) + content + BorderStyle.Render(Vertical) + "\n"
}

func (m BrowserModel) blankLine() string {
	return m.line(strings.Repeat(" ", m.contentWidth))
}

func (m BrowserModel) renderRow(idx int) string {
	r := m.filtered[idx]

	var line strings.Builder
	plainWidth := 0

	if idx == m.cursor {
		line.WriteString(" > ")
	} else {
		line.WriteString("   ")
	}
	plainWidth += 3

	cells := []struct {
		text  string
		style lipgloss.Style
	}{
		{r.Owner, IDStyle},
		{r.Provider, ProviderStyle(r.Provider)},
		{r.Expiration, MutedStyle},
		{stateIndicator(r.State) + " " + r.State, StateStyle(r.State)},
		{r.Hostname, NameStyle},
	}
	for i, c := range cells {
		line.WriteString(c.style.Render(padRight(c.text, m.colWidths[i])))
		plainWidth += m.colWidths[i]
		if i < len(cells)-1 {
			line.WriteString("  ")
			plainWidth += 2
		}
	}

	if plainWidth < m.contentWidth {
		line.WriteString(strings.Repeat(" ", m.contentWidth-plainWidth))
	}

	return m.line(line.String())
}

func (m BrowserModel) renderDetailsPanel() string {
	var sb strings.Builder
	w := m.contentWidth

	sb.WriteString(m.line(HeaderStyle.Render(padRight(" VM Details", w))))
	sb.WriteString(m.line(MutedStyle.Render(padRight(" "+strings.Repeat("─", 20), w))))

	details := m.details()
	if len(m.filtered) == 0 {
		sb.WriteString(m.line(MutedStyle.Render(padRight(" No VMs found", w))))
		for i := 0; i < len(details)+1; i++ {
			sb.WriteString(m.blankLine())
		}
		return sb.String()
	}

	for _, d := range details {
		labelText := padRight(d.label, detailLabelWidth)
		valueText := d.value
		maxValueWidth := w - 1 - detailLabelWidth
		if runewidth.StringWidth(valueText) > maxValueWidth {
			valueText = runewidth.Truncate(valueText, maxValueWidth, "...")
		}

		plainWidth := 1 + detailLabelWidth + runewidth.StringWidth(valueText)
		content := MutedStyle.Render(" "+labelText) + d.style.Render(valueText)
		if plainWidth < w {
			content += strings.Repeat(" ", w-plainWidth)
		}
		sb.WriteString(m.line(content))
	}

	sb.WriteString(m.blankLine())
	return sb.String()
}

type detail struct {
	label string
	value string
	style lipgloss.Style
}

func (m BrowserModel) details() []detail {
	var r types.ReportRow
	if len(m.filtered) > 0 {
		r = m.filtered[m.cursor]
	}

	ds := []detail{
		{"Hostname:", r.Hostname, NameStyle},
		{"Owner:", r.Owner, IDStyle},
		{"Prefix:", r.Prefix, IDStyle},
		{"IP Address:", r.IPAddress, IPStyle},
		{"Specs:", r.Specs, SpecsStyle},
		{"Provider:", r.Provider, ProviderStyle(r.Provider)},
		{"Zone:", formatOptional(r.VM.Zone), MutedStyle},
		{"Created:", formatCreated(r.VM), MutedStyle},
		{"Cost:", r.Cost, CostStyle},
		{"Expiration:", r.Expiration, PendingStyle},
	}
	if m.report.ShowPassword {
		ds = append(ds, detail{"Password:", r.Password, MutedStyle})
	}
	return ds
}

func (m BrowserModel) renderStatusBar() string {
	var sb strings.Builder
	w := m.contentWidth + 2

	countInfo := fmt.Sprintf("  %d/%d VMs", len(m.filtered), len(m.rows))
	hintsPlain := "[Enter:select] [Esc:quit]"

	padding := w - runewidth.StringWidth(countInfo) - runewidth.StringWidth(hintsPlain)

	sb.WriteString(countInfo)
	if padding > 0 {
		sb.WriteString(strings.Repeat(" ", padding))
	}
	sb.WriteString(HintStyle.Render(hintsPlain))
	sb.WriteString("\n")

	return sb.String()
}

func formatOptional(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func formatCreated(vm types.VM) string {
	if vm.CreatedAt.IsZero() {
		return "-"
	}
	return vm.CreatedAt.UTC().Format("2006-01-02 15:04:05")
}

// BrowseReport runs the interactive report browser and returns the chosen row
func BrowseReport(report *types.Report) (*types.ReportRow, error) {
	if report == nil || len(report.Rows) == 0 {
		return nil, fmt.Errorf("no VMs available")
	}

	p := tea.NewProgram(NewBrowserModel(report))

	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("error running browser: %w", err)
	}

	result := finalModel.(BrowserModel)
	if result.cancelled {
		return nil, ErrCancelled
	}

	return result.selected, nil
}

// RenderDetails renders a single report row as a labelled list
func RenderDetails(report *types.Report, row types.ReportRow) string {
	m := BrowserModel{report: report, filtered: []types.ReportRow{row}}

	var sb strings.Builder
	for _, d := range m.details() {
		sb.WriteString(MutedStyle.Render(padRight(d.label, detailLabelWidth)))
		sb.WriteString(d.style.Render(d.value))
		sb.WriteString("\n")
	}
	return sb.String()
}
