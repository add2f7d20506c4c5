package splash

import "github.com/alexisbeaulieu97/quill/internal/theme"

// ThemeChangedMsg carries a state committed by the theme engine.
type ThemeChangedMsg struct {
	State theme.State
}

// SubmitDoneMsg reports the waitlist submission outcome.
type SubmitDoneMsg struct {
	Email string
	Err   error
}

// ErrorMsg surfaces a non-fatal failure in the status area.
type ErrorMsg struct {
	Message string
}
