package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vietdv277/devenv/pkg/types"
)

// maxColumnWidth caps a column; longer cells are truncated with "..."
const maxColumnWidth = 48

// CellStyler picks the style of a data cell
type CellStyler func(col int, value string) lipgloss.Style

// ColumnStyles styles each column with a fixed style; extra columns are unstyled
func ColumnStyles(styles ...lipgloss.Style) CellStyler {
	return func(col int, _ string) lipgloss.Style {
		if col < len(styles) {
			return styles[col]
		}
		return lipgloss.NewStyle()
	}
}

// RenderTable renders rows in a rounded box table sized to its content
func RenderTable(headers []string, rows [][]string, styler CellStyler) string {
	widths := columnWidths(headers, rows)

	var sb strings.Builder

	// Top border
	writeBorder(&sb, widths, TopLeft, TopT, TopRight)

	// Header row
	sb.WriteString(BorderStyle.Render(Vertical))
	for i, h := range headers {
		sb.WriteString(HeaderStyle.Render(" " + padRight(h, widths[i]) + " "))
		sb.WriteString(BorderStyle.Render(Vertical))
	}
	sb.WriteString("\n")

	// Header separator
	writeBorder(&sb, widths, LeftT, Cross, RightT)

	// Data rows
	for _, row := range rows {
		sb.WriteString(BorderStyle.Render(Vertical))
		for i := range headers {
			value := ""
			if i < len(row) {
				value = row[i]
			}
			style := lipgloss.NewStyle()
			if styler != nil {
				style = styler(i, value)
			}
			sb.WriteString(style.Render(" " + padRight(value, widths[i]) + " "))
			sb.WriteString(BorderStyle.Render(Vertical))
		}
		sb.WriteString("\n")
	}

	// Bottom border
	writeBorder(&sb, widths, BottomLeft, BottomT, BottomRight)

	return sb.String()
}

func writeBorder(sb *strings.Builder, widths []int, left, mid, right string) {
	sb.WriteString(BorderStyle.Render(left))
	for i, w := range widths {
		sb.WriteString(BorderStyle.Render(strings.Repeat(Horizontal, w+2)))
		if i < len(widths)-1 {
			sb.WriteString(BorderStyle.Render(mid))
		}
	}
	sb.WriteString(BorderStyle.Render(right))
	sb.WriteString("\n")
}

func columnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			if w := runewidth.StringWidth(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}
	for i := range widths {
		if widths[i] > maxColumnWidth {
			widths[i] = maxColumnWidth
		}
	}
	return widths
}

// RenderReport renders the inventory report with its summary line
func RenderReport(report *types.Report, totals types.ReportTotals) string {
	columns := report.Columns()
	rows := make([][]string, 0, len(report.Rows))
	for _, r := range report.Rows {
		rows = append(rows, report.Cells(r))
	}

	var sb strings.Builder
	sb.WriteString(RenderTable(columns, rows, reportStyler(columns)))
	sb.WriteString(renderSummary(report, totals))
	sb.WriteString("\n")
	return sb.String()
}

// PrintReport writes the rendered report to w
func PrintReport(w io.Writer, report *types.Report, totals types.ReportTotals) error {
	_, err := io.WriteString(w, RenderReport(report, totals))
	return err
}

func reportStyler(columns []string) CellStyler {
	return func(col int, value string) lipgloss.Style {
		switch columns[col] {
		case "IP Address":
			return IPStyle
		case "Hostname":
			return NameStyle
		case "Specs":
			return SpecsStyle
		case "Provider":
			return ProviderStyle(value)
		case "Cost":
			return CostStyle
		case "Expiration":
			if value == types.Unknown {
				return MutedStyle
			}
			return PendingStyle
		case "State":
			return StateStyle(value)
		default:
			return MutedStyle
		}
	}
}

func renderSummary(report *types.Report, totals types.ReportTotals) string {
	perProvider := map[string]int{}
	for _, r := range report.Rows {
		perProvider[r.Provider]++
	}

	var parts []string
	for _, p := range []types.Provider{types.ProviderAWS, types.ProviderSoftLayer} {
		if c := perProvider[string(p)]; c > 0 {
			parts = append(parts, ProviderStyle(string(p)).Render(fmt.Sprintf("%d %s", c, p)))
		}
	}

	summary := fmt.Sprintf("  %d VMs, %d owners", totals.VMs, totals.Owners)
	if len(parts) > 0 {
		summary += " (" + strings.Join(parts, ", ") + ")"
	}
	summary += "  " + CostStyle.Render(fmt.Sprintf("$%.2f accrued, $%.3f/hr", totals.CostAccrued, totals.CostPerHour))
	return summary
}
