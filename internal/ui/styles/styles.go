// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Semantic color names - Text hierarchy
	TextPrimaryColor   = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#CCCCCC"} // Main/primary text
	TextSecondaryColor = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"} // Page ids, secondary info
	TextMutedColor     = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#696969"} // Hints, help text, footers

	// Semantic color names - Border
	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"} // Unfocused borders
	BorderDisplayColor = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"} // Simulated display bezel

	// Semantic color names - Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	// Selection indicator color (used for ">" prefix in the page list)
	SelectionIndicatorColor = lipgloss.AdaptiveColor{Light: "#1A5276", Dark: "#FFFFFF"}

	// Button colors
	ButtonTextColor           = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}
	ButtonPrimaryBgColor      = lipgloss.AdaptiveColor{Light: "#1A5276", Dark: "#1A5276"}
	ButtonPrimaryFocusBgColor = lipgloss.AdaptiveColor{Light: "#3498DB", Dark: "#3498DB"}

	// Overlay colors
	OverlayTitleColor  = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#C9C9C9"}
	OverlayBorderColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#8C8C8C"}

	// Toast notification colors
	ToastBorderSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	ToastBorderErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}
	ToastBorderInfoColor    = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}
	ToastBorderWarnColor    = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}

	// Log level colors
	LogDebugColor = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#696969"}
	LogInfoColor  = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#CCCCCC"}
	LogWarnColor  = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}
	LogErrorColor = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}
)

var (
	// SelectionIndicatorStyle renders the ">" prefix of the active page.
	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(SelectionIndicatorColor)

	baseButtonStyle = lipgloss.NewStyle().Padding(0, 2).Bold(true)

	// ButtonStyle is a navigation button at rest.
	ButtonStyle = baseButtonStyle.
			Foreground(ButtonTextColor).
			Background(ButtonPrimaryBgColor)

	// ButtonPressedStyle is a navigation button right after a press.
	ButtonPressedStyle = baseButtonStyle.
				Foreground(ButtonTextColor).
				Background(ButtonPrimaryFocusBgColor).
				Underline(true).
				UnderlineSpaces(true)

	// PanelTitleStyle is a panel heading.
	PanelTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(OverlayTitleColor)

	// DisplayStyle frames the simulated display.
	DisplayStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(BorderDisplayColor)

	// MutedStyle is used for hints and secondary text.
	MutedStyle = lipgloss.NewStyle().Foreground(TextMutedColor)

	// SecondaryStyle is used for ids and counters.
	SecondaryStyle = lipgloss.NewStyle().Foreground(TextSecondaryColor)
)
