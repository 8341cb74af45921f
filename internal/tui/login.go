package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/qkit-edu/qkit/internal/browser"
	"github.com/qkit-edu/qkit/pkg/client"
)

// webLoginTimeout bounds the wait for the browser sign-in callback.
const webLoginTimeout = 2 * time.Minute

// Authenticator signs a token in and hydrates the session with it.
type Authenticator interface {
	SignIn(ctx context.Context, token string) error
}

type loginDoneMsg struct {
	err error
}

// loginModel signs in with a pasted access token or through the web app.
type loginModel struct {
	auth     Authenticator
	webURL   string
	input    textinput.Model
	redirect string
	busy     bool
	err      string
	status   string
}

func newLoginModel(a Authenticator, webURL string) loginModel {
	ti := textinput.New()
	ti.Placeholder = "paste your access token"
	ti.Prompt = "> "
	ti.CharLimit = 4096
	ti.Width = 60
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	return loginModel{auth: a, webURL: webURL, input: ti}
}

// enter resets the form. redirect is where to go after signing in.
func (m loginModel) enter(redirect string) (loginModel, tea.Cmd) {
	m.redirect = safeRedirect(redirect)
	m.busy = false
	m.err = ""
	m.status = ""
	m.input.Reset()
	return m, m.input.Focus()
}

// safeRedirect keeps in-app absolute paths other than the login screen
// itself and maps everything else to "/".
func safeRedirect(redirect string) string {
	if !strings.HasPrefix(redirect, "/") || strings.HasPrefix(redirect, "//") {
		return "/"
	}
	p, _, _ := strings.Cut(redirect, "?")
	p, _, _ = strings.Cut(p, "#")
	if p = strings.TrimSuffix(p, "/"); p == "/login" {
		return "/"
	}
	return redirect
}

func (m loginModel) signIn(token string) tea.Cmd {
	a := m.auth
	if a == nil {
		return nil
	}
	return func() tea.Msg {
		return loginDoneMsg{err: a.SignIn(context.Background(), token)}
	}
}

func (m loginModel) webLogin() tea.Cmd {
	a, webURL := m.auth, m.webURL
	if a == nil {
		return nil
	}
	return func() tea.Msg {
		cb, err := browser.ListenCallback()
		if err != nil {
			return loginDoneMsg{err: err}
		}
		defer cb.Close() //nolint:errcheck
		if err := browser.Open(cb.LoginURL(webURL)); err != nil {
			return loginDoneMsg{err: fmt.Errorf("open %s: %w", cb.LoginURL(webURL), err)}
		}
		ctx, cancel := context.WithTimeout(context.Background(), webLoginTimeout)
		defer cancel()
		tok, err := cb.Wait(ctx)
		if err != nil {
			return loginDoneMsg{err: err}
		}
		return loginDoneMsg{err: a.SignIn(ctx, tok)}
	}
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		m.busy = false
		m.status = ""
		if msg.err != nil {
			m.err = client.ErrorMessage(msg.err, "sign in failed")
			return m, m.input.Focus()
		}
		m.err = ""
		m.input.Reset()
		return m, replaceTo(m.redirect)

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "enter":
			tok := strings.TrimSpace(m.input.Value())
			if tok == "" {
				m.err = "token is empty"
				return m, nil
			}
			m.busy = true
			m.err = ""
			m.status = "signing in..."
			m.input.Blur()
			return m, m.signIn(tok)
		case "ctrl+o":
			m.busy = true
			m.err = ""
			m.status = "waiting for the browser sign-in..."
			m.input.Blur()
			return m, m.webLogin()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m loginModel) View() string {
	var b strings.Builder
	b.WriteString(" " + titleStyle.Render("Sign in") + "\n")
	b.WriteString(" " + dimStyle.Render("Paste the access token from your QKIT account, or press ctrl+o to sign in with the browser.") + "\n\n")
	b.WriteString(" " + m.input.View() + "\n\n")
	if m.redirect != "" && m.redirect != "/" {
		b.WriteString(" " + metaStyle.Render("continues to "+m.redirect) + "\n")
	}
	if m.status != "" {
		b.WriteString(" " + accentStyle.Render(m.status) + "\n")
	}
	if m.err != "" {
		b.WriteString(" " + errorStyle.Render("error: "+m.err) + "\n")
	}
	return b.String()
}
