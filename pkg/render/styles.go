// Package render formats collection listings and responses for the terminal.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Minimal color palette
var (
	DimColor    = lipgloss.Color("#6c6c6c")
	TextColor   = lipgloss.Color("#e0e0e0")
	AccentColor = lipgloss.Color("#7aa2f7")
	ErrorColor  = lipgloss.Color("#f7768e")
	OkColor     = lipgloss.Color("#9ece6a")
	WarnColor   = lipgloss.Color("#e0af68")
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(AccentColor).
			Bold(true)

	CellStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Padding(0, 1)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimColor)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(OkColor)

	FolderStyle = lipgloss.NewStyle().
			Foreground(AccentColor).
			Bold(true)
)

// methodColors colors the common HTTP verbs. Anything else is rendered plain.
var methodColors = map[string]lipgloss.Color{
	"GET":    OkColor,
	"POST":   AccentColor,
	"PUT":    WarnColor,
	"PATCH":  WarnColor,
	"DELETE": ErrorColor,
}

// MethodStyle returns the style for an HTTP method.
func MethodStyle(method string) lipgloss.Style {
	style := lipgloss.NewStyle().Bold(true)
	if c, ok := methodColors[strings.ToUpper(method)]; ok {
		return style.Foreground(c)
	}
	return style.Foreground(TextColor)
}

// folderColor maps a stored folder color to a terminal color. Hex values are
// used as is; a few names are translated to the palette.
func folderColor(color string) (lipgloss.TerminalColor, bool) {
	switch strings.ToLower(color) {
	case "":
		return nil, false
	case "red":
		return ErrorColor, true
	case "green":
		return OkColor, true
	case "blue":
		return AccentColor, true
	case "yellow", "orange":
		return WarnColor, true
	}
	if strings.HasPrefix(color, "#") {
		return lipgloss.Color(color), true
	}
	return nil, false
}
