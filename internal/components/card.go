package components

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// CardData represents the content of a card.
type CardData struct {
	// Title is the heading displayed in the card
	Title string
	// Icon is an optional glyph displayed before the title
	Icon string
	// Body is the main text, wrapped to the card width
	Body string
	// Footer is an optional line rendered in caption style
	Footer string
}

// Card is a bordered block of content.
type Card struct {
	data  CardData
	width int
}

// NewCard creates a new card with the given data.
func NewCard(data CardData) *Card {
	return &Card{data: data, width: 60}
}

// WithWidth sets the card's outer width in cells.
func (c *Card) WithWidth(width int) *Card {
	c.width = width
	return c
}

// View renders the card with the default renderer.
func (c *Card) View() string {
	return c.ViewWithContext(RenderContext{})
}

// ViewWithContext renders the card on ctx's renderer.
func (c *Card) ViewWithContext(ctx RenderContext) string {
	frame := Style(ctx.NewStyle(), CardBaseStyle()...)
	if c.width > 0 {
		frame = frame.Width(c.width - frame.GetHorizontalBorderSize())
	}

	var content []string
	if c.data.Title != "" {
		var header strings.Builder
		if c.data.Icon != "" {
			header.WriteString(Style(ctx.NewStyle(), Foreground(PaletteAccent)).Render(c.data.Icon + " "))
		}
		header.WriteString(Style(ctx.NewStyle(), Typography(TypographyVariantTitle), Foreground(PaletteBrand)).Render(c.data.Title))
		content = append(content, header.String())
	}
	if c.data.Body != "" {
		inner := c.width - frame.GetHorizontalFrameSize()
		content = append(content, Style(ctx.NewStyle(), Typography(TypographyVariantBody)).Render(wrapText(c.data.Body, inner)))
	}
	if c.data.Footer != "" {
		content = append(content, "", Style(ctx.NewStyle(), Typography(TypographyVariantCaption)).Render(c.data.Footer))
	}

	return frame.Render(lipgloss.JoinVertical(lipgloss.Left, content...))
}

// wrapText wraps text to maxWidth display cells, breaking words that are
// wider than a whole line.
func wrapText(text string, maxWidth int) string {
	if maxWidth <= 0 {
		return text
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return text
	}

	var lines []string
	current := ""
	for _, word := range words {
		for runewidth.StringWidth(word) > maxWidth {
			if current != "" {
				lines = append(lines, current)
				current = ""
			}
			head := runewidth.Truncate(word, maxWidth, "")
			if head == "" {
				_, size := utf8.DecodeRuneInString(word)
				head = word[:size]
			}
			lines = append(lines, head)
			word = word[len(head):]
		}
		if word == "" {
			continue
		}

		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if runewidth.StringWidth(candidate) <= maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	if current != "" {
		lines = append(lines, current)
	}

	return strings.Join(lines, "\n")
}
