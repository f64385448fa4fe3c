package directory

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/planetdetroit/leadlines/internal/domain"
)

// TierStyle returns the terminal style for a progress tier, colored with the
// tier's fixed palette entry.
func TierStyle(t domain.Tier) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Color()))
}
