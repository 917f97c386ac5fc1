package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietdv277/devenv/pkg/types"
)

func sampleReport(showPassword bool) *types.Report {
	return &types.Report{
		ShowPassword: showPassword,
		Rows: []types.ReportRow{
			{
				IPAddress: "10.0.0.5", Hostname: "api.alice.dc1", Owner: "alice", Prefix: "api",
				Specs: "t2.small", Provider: "aws", Cost: "$1.00 ($0.023/hr)",
				Expiration: types.Unknown, State: "running", Password: "None",
			},
			{
				IPAddress: "10.120.0.9", Hostname: "kafka-node1.bob.eng.dal09.upsight-vm.com", Owner: "bob", Prefix: "kafka",
				Specs: "2 CPU, 4096 MB RAM", Provider: "softlayer", Cost: "$2.40 ($0.050/hr)",
				Expiration: "2026-10-26 09:00", State: "running", Password: "s3cret",
			},
		},
	}
}

func TestRenderTable(t *testing.T) {
	out := RenderTable([]string{"Size", "Price"}, [][]string{{"t2.micro", "0.0116"}, {"t2.large"}}, nil)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[0], TopLeft))
	assert.True(t, strings.HasPrefix(lines[5], BottomLeft))
	assert.Contains(t, lines[1], "Size")
	assert.Contains(t, lines[3], "t2.micro")
	assert.Contains(t, lines[4], "t2.large")
}

func TestColumnWidths(t *testing.T) {
	widths := columnWidths([]string{"A", "Hostname"}, [][]string{{"abcd", "x"}, {strings.Repeat("z", 100)}})
	assert.Equal(t, []int{maxColumnWidth, 8}, widths)
}

func TestRenderReport(t *testing.T) {
	report := sampleReport(false)
	out := RenderReport(report, types.ReportTotals{VMs: 2, Owners: 2, CostPerHour: 0.073, CostAccrued: 3.4})

	assert.Contains(t, out, "IP Address")
	assert.Contains(t, out, "Expiration")
	assert.NotContains(t, out, "Password")
	assert.NotContains(t, out, "s3cret")
	assert.Contains(t, out, "2 VMs, 2 owners")
	assert.Contains(t, out, "$3.40 accrued")

	alice := strings.Index(out, "api.alice.dc1")
	bob := strings.Index(out, "kafka-node1.bob")
	require.NotEqual(t, -1, alice)
	require.NotEqual(t, -1, bob)
	assert.Less(t, alice, bob, "rows keep report order")
}

func TestRenderReport_WithPassword(t *testing.T) {
	out := RenderReport(sampleReport(true), types.ReportTotals{})
	assert.Contains(t, out, "Password")
	assert.Contains(t, out, "s3cret")
	assert.Contains(t, out, "None")
}

func TestBrowserModel_Filter(t *testing.T) {
	m := NewBrowserModel(sampleReport(false))

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("bob")})
	m = next.(BrowserModel)
	require.Len(t, m.filtered, 1)
	assert.Equal(t, "bob", m.filtered[0].Owner)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(BrowserModel)
	require.NotNil(t, cmd)
	require.NotNil(t, m.selected)
	assert.Equal(t, "kafka", m.selected.Prefix)
	assert.False(t, m.cancelled)
}

func TestBrowserModel_ViewAndCancel(t *testing.T) {
	m := NewBrowserModel(sampleReport(true))

	view := m.View()
	assert.Contains(t, view, "VM Details")
	assert.Contains(t, view, "2/2 VMs")
	assert.Contains(t, view, "Password:")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(BrowserModel)
	assert.Equal(t, 1, m.cursor)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(BrowserModel)
	assert.True(t, m.cancelled)
	assert.Empty(t, m.View())
}

func TestRenderDetails(t *testing.T) {
	report := sampleReport(false)
	out := RenderDetails(report, report.Rows[1])
	assert.Contains(t, out, "Owner:")
	assert.Contains(t, out, "kafka-node1.bob.eng.dal09.upsight-vm.com")
	assert.NotContains(t, out, "Password:")
}
