package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0A66C2")).
			Bold(true)

	taglineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1D3"))

	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#0A66C2")).
			Padding(0, 2)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA86B")).
			Bold(true)

	scoreStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))
)

func showBanner() {
	lines := lipgloss.JoinVertical(lipgloss.Center,
		headerStyle.Render("linkedpost"),
		taglineStyle.Render("newsletters in, LinkedIn posts out"),
	)
	fmt.Println(borderStyle.Render(lines))
}
