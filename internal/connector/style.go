package connector

import (
	"strings"

	"github.com/brizzai/linkedin-connector/internal/auth/models"
	"github.com/charmbracelet/lipgloss"
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#0a66c2")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color("#0a66c2")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#0a66c2", Dark: "#70b5f9"}).
			Width(12)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8c8c8c")).
			Render
)

// renderIdentity formats the fetched profile as a bordered card
func renderIdentity(identity *models.UserIdentity) string {
	email := identity.Email
	if email == "" {
		email = mutedStyle("(unavailable)")
	}

	rows := []string{
		titleStyle.Render("Profile Information"),
		"",
		labelStyle.Render("ID") + identity.ID,
		labelStyle.Render("First Name") + identity.FirstName,
		labelStyle.Render("Last Name") + identity.LastName,
		labelStyle.Render("Email") + email,
	}
	return cardStyle.Render(strings.Join(rows, "\n"))
}
