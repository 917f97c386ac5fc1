package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vietdv277/devenv/pkg/types"
)

// Box drawing characters
const (
	TopLeft     = "╭"
	TopRight    = "╮"
	BottomLeft  = "╰"
	BottomRight = "╯"
	Horizontal  = "─"
	Vertical    = "│"
	LeftT       = "├"
	RightT      = "┤"
	TopT        = "┬"
	BottomT     = "┴"
	Cross       = "┼"
)

// Color palette
const (
	ColorBorder    = "240"
	ColorHeader    = "252"
	ColorID        = "214"
	ColorName      = "81"
	ColorIP        = "252"
	ColorSpecs     = "252"
	ColorCost      = "221"
	ColorAWS       = "208"
	ColorSoftLayer = "39"
	ColorRunning   = "82"
	ColorStopped   = "245"
	ColorPending   = "214"
	ColorMuted     = "240"
	ColorHint      = "245"
)

// Shared styles
var (
	BorderStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBorder))
	HeaderStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorHeader))
	IDStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorID))
	NameStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorName))
	IPStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorIP))
	SpecsStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSpecs))
	CostStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorCost))
	AWSStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAWS))
	SoftLayerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSoftLayer))
	RunningStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorRunning))
	StoppedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorStopped))
	PendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPending))
	MutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorMuted))
	HintStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHint))
)

// ProviderStyle returns the accent style of a provider
func ProviderStyle(p string) lipgloss.Style {
	switch types.Provider(p) {
	case types.ProviderAWS:
		return AWSStyle
	case types.ProviderSoftLayer:
		return SoftLayerStyle
	default:
		return MutedStyle
	}
}

// StateStyle returns the style of a VM state
func StateStyle(state string) lipgloss.Style {
	switch state {
	case "running":
		return RunningStyle
	case "pending", "stopping", "shutting-down":
		return PendingStyle
	default:
		return StoppedStyle
	}
}

func stateIndicator(state string) string {
	switch state {
	case "running":
		return "●"
	case "pending", "stopping", "shutting-down":
		return "◐"
	default:
		return "○"
	}
}

// padRight pads a string to the specified display width using runewidth
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return runewidth.Truncate(s, width, "...")
	}
	return s + strings.Repeat(" ", width-sw)
}
