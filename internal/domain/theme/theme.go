// Package theme provides the color theme and background catalogs.
package theme

import (
	"github.com/cockroachdb/errors"
)

// ErrUnknownTheme is returned for an ID missing from the catalog.
var ErrUnknownTheme = errors.New("unknown theme")

// Theme is a named color palette. Colors are hex strings.
type Theme struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Primary         string `json:"primary"`
	Secondary       string `json:"secondary"`
	Accent          string `json:"accent"`
	Background      string `json:"background"`
	Text            string `json:"text"`
	BackgroundImage string `json:"backgroundImage,omitempty"`
}

// Background is a selectable background image.
type Background struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

var themes = []Theme{
	{ID: "purple", Name: "Modern Violet", Primary: "#8b5cf6", Secondary: "#a78bfa", Accent: "#c4b5fd", Background: "#2e1065", Text: "#ffffff"},
	{ID: "ocean", Name: "Ocean", Primary: "#0ea5e9", Secondary: "#38bdf8", Accent: "#7dd3fc", Background: "#164e63", Text: "#ffffff"},
	{ID: "forest", Name: "Forest", Primary: "#10b981", Secondary: "#34d399", Accent: "#6ee7b7", Background: "#064e3b", Text: "#ffffff"},
	{ID: "sunset", Name: "Sunset", Primary: "#f59e0b", Secondary: "#fbbf24", Accent: "#fcd34d", Background: "#7c2d12", Text: "#ffffff"},
	{ID: "dark", Name: "Dark", Primary: "#6b7280", Secondary: "#9ca3af", Accent: "#d1d5db", Background: "#111827", Text: "#ffffff"},
	{ID: "light", Name: "Light", Primary: "#3b82f6", Secondary: "#60a5fa", Accent: "#93c5fd", Background: "#eff6ff", Text: "#1f2937"},
}

var backgrounds = []Background{
	{ID: "mountains", Name: "Mountains", URL: "https://images.pexels.com/photos/417074/pexels-photo-417074.jpeg?auto=compress&cs=tinysrgb&w=1920&h=1080&fit=crop"},
	{ID: "ocean", Name: "Ocean", URL: "https://images.pexels.com/photos/1001682/pexels-photo-1001682.jpeg?auto=compress&cs=tinysrgb&w=1920&h=1080&fit=crop"},
	{ID: "forest", Name: "Forest", URL: "https://images.pexels.com/photos/1671325/pexels-photo-1671325.jpeg?auto=compress&cs=tinysrgb&w=1920&h=1080&fit=crop"},
	{ID: "city", Name: "City", URL: "https://images.pexels.com/photos/2422915/pexels-photo-2422915.jpeg?auto=compress&cs=tinysrgb&w=1920&h=1080&fit=crop"},
	{ID: "space", Name: "Space", URL: "https://images.pexels.com/photos/1169754/pexels-photo-1169754.jpeg?auto=compress&cs=tinysrgb&w=1920&h=1080&fit=crop"},
}

// All returns the theme catalog.
func All() []Theme {
	return append([]Theme(nil), themes...)
}

// Default returns the first catalog theme.
func Default() Theme {
	return themes[0]
}

// Lookup returns the theme with the given ID.
func Lookup(id string) (Theme, error) {
	for _, t := range themes {
		if t.ID == id {
			return t, nil
		}
	}
	return Theme{}, errors.Wrapf(ErrUnknownTheme, "id %s", id)
}

// Backgrounds returns the background image catalog.
func Backgrounds() []Background {
	return append([]Background(nil), backgrounds...)
}

// LookupBackground returns the background with the given ID.
func LookupBackground(id string) (Background, bool) {
	for _, b := range backgrounds {
		if b.ID == id {
			return b, true
		}
	}
	return Background{}, false
}
