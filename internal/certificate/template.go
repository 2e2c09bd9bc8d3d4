// Package certificate renders participation and merit certificates from
// declarative templates: static records of field positions, fonts and
// format strings. Templates are configuration, not logic; the renderer
// draws whatever the template declares.
package certificate

import (
	"fmt"
	"strings"
)

// Output formats a template may declare
const (
	OutputPDF = "pdf"
	OutputPNG = "png"
)

// RGB is a text color
type RGB struct {
	R, G, B int
}

// TextField binds one value to a position on the certificate page.
// Format is a template with {key} placeholders resolved from the field-value
// map at render time, e.g. "Venue: {venue} ({mode})".
type TextField struct {
	Format        string
	X, Y          float64
	Font          string
	Style         string
	Size          float64
	Color         RGB
	Align         string // L, C or R
	Uppercase     bool
	LetterSpacing int // extra spaces between letters
	Rotation      float64
	Opacity       float64 // 0 means fully opaque
}

// Template is a declarative certificate layout
type Template struct {
	ID       string
	Name     string
	Output   string
	Versions []int
	Fields   []TextField
}

// Latest returns the highest supported version
func (t *Template) Latest() int {
	latest := 0
	for _, v := range t.Versions {
		if v > latest {
			latest = v
		}
	}
	return latest
}

// SupportsVersion reports whether the template carries the given version
func (t *Template) SupportsVersion(version int) bool {
	for _, v := range t.Versions {
		if v == version {
			return true
		}
	}
	return false
}

// Registry resolves template ids to layouts and recommends a template for
// an event type
type Registry struct {
	templates map[string]*Template
	defaultID string
}

// NewRegistry creates a registry preloaded with the portal's built-in
// templates
func NewRegistry() *Registry {
	r := &Registry{
		templates: make(map[string]*Template),
		defaultID: "classic",
	}
	for _, t := range builtinTemplates() {
		r.templates[t.ID] = t
	}
	return r
}

// Get resolves a template by id and version. Version 0 means the latest
// supported version.
func (r *Registry) Get(id string, version int) (*Template, error) {
	t, ok := r.templates[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, id)
	}
	if version != 0 && !t.SupportsVersion(version) {
		return nil, fmt.Errorf("%w: %q version %d", ErrUnsupportedTemplateVersion, id, version)
	}
	return t, nil
}

// Has reports whether a template id is registered
func (r *Registry) Has(id string) bool {
	_, ok := r.templates[id]
	return ok
}

// Recommend picks a template for an event type. An explicit preference
// always wins when it names a registered template.
func (r *Registry) Recommend(eventType, preference string) string {
	if preference != "" && r.Has(preference) {
		return preference
	}

	switch strings.ToLower(strings.TrimSpace(eventType)) {
	case "workshop", "training":
		return "classic"
	case "seminar", "conference":
		return "formal"
	case "competition", "hackathon":
		return "modern"
	default:
		return r.defaultID
	}
}

// builtinTemplates is the static layout data for the shipped certificate
// designs. Coordinates are millimetres on a landscape A4 page.
func builtinTemplates() []*Template {
	return []*Template{
		{
			ID:       "classic",
			Name:     "Classic Participation",
			Output:   OutputPDF,
			Versions: []int{1, 2},
			Fields: []TextField{
				{Format: "{institution}", X: 148.5, Y: 30, Font: "Times", Style: "B", Size: 22, Align: "C", Color: RGB{30, 30, 90}},
				{Format: "CERTIFICATE OF PARTICIPATION", X: 148.5, Y: 55, Font: "Times", Style: "B", Size: 18, Align: "C", Uppercase: true, LetterSpacing: 1, Color: RGB{120, 90, 20}},
				{Format: "This is to certify that", X: 148.5, Y: 75, Font: "Times", Style: "I", Size: 12, Align: "C"},
				{Format: "{participant}", X: 148.5, Y: 90, Font: "Times", Style: "B", Size: 20, Align: "C", Color: RGB{20, 20, 20}},
				{Format: "has participated in {title}", X: 148.5, Y: 105, Font: "Times", Style: "", Size: 12, Align: "C"},
				{Format: "held from {dates}", X: 148.5, Y: 115, Font: "Times", Style: "", Size: 12, Align: "C"},
				{Format: "Venue: {venue} ({mode})", X: 148.5, Y: 125, Font: "Times", Style: "", Size: 11, Align: "C"},
				{Format: "Co-ordinator", X: 60, Y: 175, Font: "Times", Style: "B", Size: 11, Align: "C"},
				{Format: "Head of the Department", X: 237, Y: 175, Font: "Times", Style: "B", Size: 11, Align: "C"},
				{Format: "{institution}", X: 148.5, Y: 120, Font: "Times", Style: "B", Size: 50, Align: "C", Rotation: 30, Opacity: 0.08},
			},
		},
		{
			ID:       "formal",
			Name:     "Formal Seminar",
			Output:   OutputPDF,
			Versions: []int{1},
			Fields: []TextField{
				{Format: "{institution}", X: 148.5, Y: 28, Font: "Helvetica", Style: "B", Size: 20, Align: "C", Color: RGB{0, 0, 0}},
				{Format: "{centre}", X: 148.5, Y: 38, Font: "Helvetica", Style: "", Size: 13, Align: "C"},
				{Format: "CERTIFICATE", X: 148.5, Y: 58, Font: "Helvetica", Style: "B", Size: 24, Align: "C", Uppercase: true, LetterSpacing: 2, Color: RGB{80, 60, 10}},
				{Format: "{participant}", X: 148.5, Y: 88, Font: "Times", Style: "BI", Size: 20, Align: "C"},
				{Format: "attended {title} organised on {dates}", X: 148.5, Y: 104, Font: "Helvetica", Style: "", Size: 12, Align: "C"},
				{Format: "at {venue}", X: 148.5, Y: 114, Font: "Helvetica", Style: "", Size: 12, Align: "C"},
				{Format: "Convenor", X: 60, Y: 175, Font: "Helvetica", Style: "B", Size: 11, Align: "C"},
				{Format: "Registrar", X: 237, Y: 175, Font: "Helvetica", Style: "B", Size: 11, Align: "C"},
			},
		},
		{
			ID:       "modern",
			Name:     "Modern Achievement",
			Output:   OutputPNG,
			Versions: []int{1, 2},
			Fields: []TextField{
				{Format: "{title}", X: 148.5, Y: 35, Font: "Helvetica", Style: "B", Size: 18, Align: "C", Uppercase: true, LetterSpacing: 1, Color: RGB{10, 70, 120}},
				{Format: "CERTIFICATE OF ACHIEVEMENT", X: 148.5, Y: 58, Font: "Helvetica", Style: "B", Size: 22, Align: "C", Color: RGB{200, 120, 0}},
				{Format: "Awarded to", X: 148.5, Y: 78, Font: "Helvetica", Style: "I", Size: 12, Align: "C"},
				{Format: "{participant}", X: 148.5, Y: 94, Font: "Helvetica", Style: "B", Size: 24, Align: "C"},
				{Format: "for securing {position} in {event} held on {dates}", X: 148.5, Y: 112, Font: "Helvetica", Style: "", Size: 12, Align: "C"},
				{Format: "{institution}", X: 148.5, Y: 180, Font: "Helvetica", Style: "B", Size: 11, Align: "C"},
				{Format: "{event}", X: 148.5, Y: 120, Font: "Helvetica", Style: "B", Size: 46, Align: "C", Rotation: 25, Opacity: 0.1, Uppercase: true},
			},
		},
	}
}
