// Package router resolves paths against the route table, runs navigation
// guards and keeps the navigation history of the terminal client.
package router

import (
	"net/url"
	"strings"
)

// AppTitle is the suffix of every screen title.
const AppTitle = "QKIT E-Learning"

// Meta is the per-route metadata the guards read. Flags are inherited
// along the matched chain.
type Meta struct {
	RequiresAuth  bool   `json:"requiresAuth"`
	GuestOnly     bool   `json:"guestOnly"`
	RequiresAdmin bool   `json:"requiresAdmin"`
	Title         string `json:"title"`
}

// Route is one node of the route table. Children paths are relative to the
// parent unless they start with "/".
type Route struct {
	Path     string
	Name     string
	View     string
	Meta     Meta
	Children []Route
}

// Location is a resolved navigation target.
type Location struct {
	Path     string
	FullPath string
	Name     string
	View     string
	Params   map[string]string
	Query    url.Values
	// Matched is the chain of route records, ancestors first.
	Matched []Route
}

// Start is the location before the first navigation.
var Start = Location{Path: "/", FullPath: "/", Query: url.Values{}}

// Meta merges the metadata of the matched chain: a flag is set if any
// record sets it, the title comes from the deepest record that has one.
func (l Location) Meta() Meta {
	var m Meta
	for _, r := range l.Matched {
		m.RequiresAuth = m.RequiresAuth || r.Meta.RequiresAuth
		m.GuestOnly = m.GuestOnly || r.Meta.GuestOnly
		m.RequiresAdmin = m.RequiresAdmin || r.Meta.RequiresAdmin
		if r.Meta.Title != "" {
			m.Title = r.Meta.Title
		}
	}
	return m
}

// Param returns the named path parameter.
func (l Location) Param(name string) string {
	return l.Params[name]
}

// Title renders the screen title of l.
func Title(l Location) string {
	if t := l.Meta().Title; t != "" {
		return t + " | " + AppTitle
	}
	return AppTitle
}

func joinPath(parent, child string) string {
	if strings.HasPrefix(child, "/") {
		return child
	}
	if child == "" {
		if parent == "" {
			return "/"
		}
		return parent
	}
	return strings.TrimRight(parent, "/") + "/" + child
}
