package home

import (
	"charm.land/lipgloss/v2"

	"github.com/adidahl/techlingo-agent-framework/internal/ui/theme"
)

const bannerArt = `
 ████████╗███████╗ ██████╗██╗  ██╗██╗     ██╗███╗   ██╗ ██████╗  ██████╗
 ╚══██╔══╝██╔════╝██╔════╝██║  ██║██║     ██║████╗  ██║██╔════╝ ██╔═══██╗
    ██║   █████╗  ██║     ███████║██║     ██║██╔██╗ ██║██║  ███╗██║   ██║
    ██║   ██╔══╝  ██║     ██╔══██║██║     ██║██║╚██╗██║██║   ██║██║   ██║
    ██║   ███████╗╚██████╗██║  ██║███████╗██║██║ ╚████║╚██████╔╝╚██████╔╝
    ╚═╝   ╚══════╝ ╚═════╝╚═╝  ╚═╝╚══════╝╚═╝╚═╝  ╚═══╝ ╚═════╝  ╚═════╝`

const bannerCompact = "T E C H L I N G O"

// renderBanner returns the TECHLINGO banner styled in the primary color.
// Uses a compact fallback for terminals narrower than 76 columns.
func renderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 76 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
