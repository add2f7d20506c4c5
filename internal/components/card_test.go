package components

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/quill/internal/domain/appearance"
)

func plainContext() RenderContext {
	return ContextFor(&bytes.Buffer{}, appearance.EffectiveLight)
}

func TestCardRendersSections(t *testing.T) {
	out := NewCard(CardData{
		Title:  "Write at the speed of thought",
		Icon:   "✎",
		Body:   "Quill keeps every note one keystroke away.",
		Footer: "Private beta",
	}).WithWidth(50).ViewWithContext(plainContext())

	assert.Contains(t, out, "✎ Write at the speed of thought")
	assert.Contains(t, out, "Quill keeps every note")
	assert.Contains(t, out, "Private beta")
	for _, line := range strings.Split(out, "\n") {
		assert.Equal(t, 50, lipgloss.Width(line))
	}
}

func TestWrapText(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{"fits", "short text", 20, "short text"},
		{"wraps on words", "the quick brown fox", 10, "the quick\nbrown fox"},
		{"breaks long words", "abcdefghij", 4, "abcd\nefgh\nij"},
		{"wide runes count double", "日本語テキスト", 6, "日本語\nテキス\nト"},
		{"no width", "left alone", 0, "left alone"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, wrapText(tc.text, tc.width))
		})
	}
}

func TestButtonStates(t *testing.T) {
	ctx := plainContext()
	button := NewButton("Join", ButtonOptions{})
	normal := button.ViewWithContext(ctx)
	assert.Contains(t, normal, "Join")
	assert.Equal(t, "Join", button.Label())

	focused := button.WithFocus(true).buildStyle(lipgloss.NewStyle())
	assert.True(t, focused.GetUnderline())

	disabled := button.WithFocus(false).WithDisabled(true).buildStyle(lipgloss.NewStyle())
	assert.True(t, disabled.GetFaint())
}

func TestButtonGroupJoinsButtons(t *testing.T) {
	ctx := plainContext()
	out := NewButtonGroup(
		NewButton("One", ButtonOptions{}),
		NewButton("Two", ButtonOptions{Variant: ButtonVariantGhost}),
	).ViewWithContext(ctx)
	assert.Contains(t, out, "One")
	assert.Contains(t, out, "Two")
	assert.Empty(t, NewButtonGroup().ViewWithContext(ctx))
}

func TestAlerts(t *testing.T) {
	ctx := plainContext()
	assert.Contains(t, SuccessAlert("You're on the list").ViewWithContext(ctx), "✓ Done")
	assert.Contains(t, ErrorAlert("try again").ViewWithContext(ctx), "try again")
	assert.NotContains(t, InfoAlert("hint").ViewWithContext(ctx), "Done")
}
