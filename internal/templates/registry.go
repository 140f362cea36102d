package templates

import (
	"github.com/invitarte/invitarte-api/internal/models"
)

// Page is the normalized model handed to the front-end for one invitation
// template: which template to mount, its section order, and the merged
// content values (template defaults overlaid by the event's design config).
type Page struct {
	Template string         `json:"template"`
	Sections []string       `json:"sections"`
	Values   map[string]any `json:"values"`
}

type Renderer interface {
	Slug() string
	Render(event *models.Event, config map[string]any) Page
}

// Registry maps template slugs to renderers. Resolution never fails: an
// unknown or empty slug resolves to the placeholder renderer.
type Registry struct {
	renderers map[string]Renderer
	fallback  Renderer
}

func NewRegistry() *Registry {
	r := &Registry{
		renderers: make(map[string]Renderer),
		fallback:  &placeholderRenderer{},
	}
	r.Register(&classicRenderer{})
	r.Register(&modernRenderer{})
	r.Register(&botanicRenderer{})
	return r
}

func (r *Registry) Register(renderer Renderer) {
	r.renderers[renderer.Slug()] = renderer
}

func (r *Registry) Resolve(slug string) Renderer {
	if renderer, ok := r.renderers[slug]; ok {
		return renderer
	}
	return r.fallback
}

func (r *Registry) Slugs() []string {
	slugs := make([]string, 0, len(r.renderers))
	for slug := range r.renderers {
		slugs = append(slugs, slug)
	}
	return slugs
}

// merged lays defaults down first, then the event's design config on top.
func merged(defaults, config map[string]any) map[string]any {
	values := make(map[string]any, len(defaults)+len(config))
	for k, v := range defaults {
		values[k] = v
	}
	for k, v := range config {
		values[k] = v
	}
	return values
}
