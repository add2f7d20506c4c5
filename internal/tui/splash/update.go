package splash

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/quill/internal/domain/appearance"
	"github.com/alexisbeaulieu97/quill/internal/waitlist"
)

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case ThemeChangedMsg:
		m.state = msg.State
		return m, m.watch.Wait()

	case spinner.TickMsg:
		if !m.submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case SubmitDoneMsg:
		m.submitting = false
		if msg.Err != nil {
			m.logger.Warn(context.Background(), "waitlist submission failed", "error", msg.Err)
			m.errorMsg = submitErrorMessage(msg.Err)
			return m, nil
		}
		m.errorMsg = ""
		m.submitted = msg.Email
		m.input.Reset()
		m.input.Blur()
		return m, nil

	case ErrorMsg:
		m.errorMsg = msg.Message
		return m, nil
	}

	if m.input.Focused() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.input.Focused() {
		switch {
		case key.Matches(msg, keys.Blur), key.Matches(msg, keys.Focus):
			m.input.Blur()
			return m, nil
		case key.Matches(msg, keys.Submit):
			return m.submit()
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Toggle):
		return m.setTheme(m.toggle.Next())

	case key.Matches(msg, keys.System):
		return m.setTheme(appearance.SelectionSystem)

	case key.Matches(msg, keys.Focus), key.Matches(msg, keys.Submit):
		m.errorMsg = ""
		return m, m.input.Focus()
	}
	return m, nil
}

func (m Model) setTheme(sel appearance.Selection) (tea.Model, tea.Cmd) {
	if err := m.engine.SetTheme(sel); err != nil {
		m.errorMsg = fmt.Sprintf("Could not change theme: %v", err)
		return m, nil
	}
	m.state = m.engine.State()
	return m, nil
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	email := strings.TrimSpace(m.input.Value())
	if email == "" {
		m.errorMsg = "Enter an email address first."
		return m, nil
	}
	if m.submitter == nil {
		m.errorMsg = submitErrorMessage(waitlist.ErrNotConfigured)
		return m, nil
	}

	m.submitting = true
	m.errorMsg = ""
	return m, tea.Batch(m.spinner.Tick, submitCmd(m.submitter, email, m.submitTimeout))
}

func submitErrorMessage(err error) string {
	if errors.Is(err, waitlist.ErrNotConfigured) {
		return "The waitlist isn't open yet. Set waitlist.endpoint in your config."
	}
	var status *waitlist.StatusError
	if errors.As(err, &status) {
		return fmt.Sprintf("The waitlist said no (%d). Try again later.", status.StatusCode)
	}
	return fmt.Sprintf("Couldn't reach the waitlist: %v", err)
}
