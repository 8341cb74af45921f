package tui

import (
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/qkit-edu/qkit/internal/browser"
	"github.com/qkit-edu/qkit/internal/router"
)

// pageModel renders routes that only exist in the web app, and the
// not-found page. Both offer the web link of the location.
type pageModel struct {
	webURL   string
	loc      router.Location
	notFound bool
	flash    string
}

func newPageModel(webURL string) pageModel {
	return pageModel{webURL: strings.TrimRight(webURL, "/")}
}

func (m pageModel) enter(loc router.Location) pageModel {
	m.loc = loc
	m.notFound = loc.View == router.ViewNotFound || len(loc.Matched) == 0
	m.flash = ""
	return m
}

func (m pageModel) link() string {
	return m.webURL + m.loc.FullPath
}

func (m pageModel) Update(msg tea.Msg) (pageModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "o":
		if err := browser.Open(m.link()); err != nil {
			m.flash = "open failed: " + err.Error()
		} else {
			m.flash = "opened in browser"
		}
	case "c":
		if err := clipboard.WriteAll(m.link()); err != nil {
			m.flash = "copy failed: " + err.Error()
		} else {
			m.flash = "link copied"
		}
	}
	return m, nil
}

func (m pageModel) View() string {
	var b strings.Builder
	if m.notFound {
		b.WriteString(" " + titleStyle.Render("404") + "  " + normalStyle.Render("Page not found") + "\n\n")
		b.WriteString(" " + dimStyle.Render("Nothing lives at ") + accentStyle.Render(m.loc.Path) + "\n")
		b.WriteString(" " + dimStyle.Render("Press 1 to go home.") + "\n")
	} else {
		title := m.loc.Meta().Title
		if title == "" {
			title = m.loc.Name
		}
		b.WriteString(" " + titleStyle.Render(title) + "\n\n")
		b.WriteString(" " + dimStyle.Render("This screen is only available in the web app:") + "\n")
		b.WriteString(" " + accentStyle.Render(m.link()) + "\n")
	}
	if m.flash != "" {
		b.WriteString("\n " + accentStyle.Render(m.flash) + "\n")
	}
	return b.String()
}
