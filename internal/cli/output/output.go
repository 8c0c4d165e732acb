// Package output provides rendering helpers shared by CLI commands.
//
// A Renderer pairs the command's writers with an output mode. Mode auto
// resolves to styled text on a terminal and to markdown when output is
// piped, so scripted use never sees ANSI escapes.
package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Mode selects how results and traces are rendered.
type Mode string

const (
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
)

// Valid reports whether m names a known mode.
func (m Mode) Valid() bool {
	switch m {
	case ModeAuto, ModeText, ModeMarkdown, ModeJSON:
		return true
	}
	return false
}

// Styles holds the lipgloss styles used for terminal output.
type Styles struct {
	Title   lipgloss.Style
	Step    lipgloss.Style
	Result  lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	enabled bool
}

// NewStyles builds the style set. When colored is false every style is
// a no-op, which keeps piped output clean.
func NewStyles(colored bool) *Styles {
	if !colored {
		return &Styles{}
	}
	return &Styles{
		Title:   lipgloss.NewStyle().Bold(true),
		Step:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		Result:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
		Error:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		enabled: true,
	}
}

// Enabled reports whether the styles actually color their input.
func (s *Styles) Enabled() bool { return s.enabled }

// Renderer carries the resolved output mode, writers, and styles for
// one command invocation.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	styles *Styles
}

// NewRenderer resolves mode (auto detects a terminal via termenv) and
// returns a renderer writing to out and errOut.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	resolved := mode
	if resolved == ModeAuto || !resolved.Valid() {
		if termenv.DefaultOutput().EnvNoColor() || termenv.ColorProfile() == termenv.Ascii {
			resolved = ModeMarkdown
		} else {
			resolved = ModeText
		}
	}
	return &Renderer{
		out:    out,
		errOut: errOut,
		mode:   resolved,
		styles: NewStyles(resolved == ModeText),
	}
}

// Out returns the destination for primary output.
func (r *Renderer) Out() io.Writer { return r.out }

// Err returns the destination for diagnostics.
func (r *Renderer) Err() io.Writer { return r.errOut }

// Mode returns the resolved output mode, never ModeAuto.
func (r *Renderer) Mode() Mode { return r.mode }

// Styles returns the style set matching the resolved mode.
func (r *Renderer) Styles() *Styles { return r.styles }
