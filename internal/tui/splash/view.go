package splash

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/quill/internal/components"
	"github.com/alexisbeaulieu97/quill/internal/domain/appearance"
)

const (
	heroTitle = "Quill"
	heroLead  = "Notes that keep up with you."
	pitchBody = "Capture a thought in one keystroke, find it again in two. " +
		"Quill lives in your terminal, syncs quietly and never asks you to file anything."
)

// View renders the current model state
func (m Model) View() string {
	width := min(m.width, 72)
	if width <= 0 {
		width = 72
	}

	sections := []string{
		m.renderHeader(width),
		m.renderHero(),
		components.NewCard(components.CardData{
			Title:  "Why Quill",
			Icon:   "✎",
			Body:   pitchBody,
			Footer: "Private beta, rolling invites.",
		}).WithWidth(width).ViewWithContext(m.ctx),
		m.renderCTA(),
	}
	if status := m.renderStatus(); status != "" {
		sections = append(sections, status)
	}
	sections = append(sections, m.help.View(keys))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader(width int) string {
	label := fmt.Sprintf("theme: %s", m.state.Selection)
	if m.state.Selection == appearance.SelectionSystem {
		label = fmt.Sprintf("theme: system (%s)", m.state.Effective)
	}
	caption := m.typography(components.TypographyVariantCaption).Render(label)
	toggle := m.toggle.ViewWithContext(m.ctx)

	gap := width - lipgloss.Width(caption) - lipgloss.Width(toggle)
	if gap < 1 {
		gap = 1
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, caption, strings.Repeat(" ", gap), toggle)
}

func (m Model) renderHero() string {
	title := m.typography(components.TypographyVariantHero).Render(heroTitle)
	lead := m.typography(components.TypographyVariantLead).Render(heroLead)
	return lipgloss.JoinVertical(lipgloss.Left, title, lead)
}

func (m Model) typography(variant components.TypographyVariant) lipgloss.Style {
	return m.ctx.NewStyle().Inherit(m.tokens.Typography.For(variant))
}

func (m Model) renderCTA() string {
	if m.submitted != "" {
		return components.SuccessAlert(fmt.Sprintf("%s is on the list. We'll write soon.", m.submitted)).ViewWithContext(m.ctx)
	}

	button := components.NewButton("Join the waitlist", components.ButtonOptions{
		Focus:    m.input.Focused(),
		Disabled: m.submitting,
	})
	row := lipgloss.JoinHorizontal(lipgloss.Center, m.input.View(), "  ", button.ViewWithContext(m.ctx))
	if m.submitting {
		row = lipgloss.JoinHorizontal(lipgloss.Center, row, " ", m.spinner.View())
	}
	return row
}

func (m Model) renderStatus() string {
	if m.errorMsg == "" {
		return ""
	}
	return components.ErrorAlert(m.errorMsg).ViewWithContext(m.ctx)
}
