package templates

import (
	"github.com/invitarte/invitarte-api/internal/models"
)

type classicRenderer struct{}

func (r *classicRenderer) Slug() string { return "clasica" }

func (r *classicRenderer) Render(event *models.Event, config map[string]any) Page {
	return Page{
		Template: r.Slug(),
		Sections: []string{"hero", "countdown", "story", "gallery", "location", "rsvp"},
		Values: merged(map[string]any{
			"palette":    "marfil",
			"font":       "serif",
			"title":      event.Name,
			"show_music": false,
		}, config),
	}
}

type modernRenderer struct{}

func (r *modernRenderer) Slug() string { return "moderna" }

func (r *modernRenderer) Render(event *models.Event, config map[string]any) Page {
	return Page{
		Template: r.Slug(),
		Sections: []string{"hero", "details", "gallery", "countdown", "rsvp"},
		Values: merged(map[string]any{
			"palette":    "noche",
			"font":       "sans",
			"title":      event.Name,
			"show_music": true,
		}, config),
	}
}

type botanicRenderer struct{}

func (r *botanicRenderer) Slug() string { return "botanica" }

func (r *botanicRenderer) Render(event *models.Event, config map[string]any) Page {
	return Page{
		Template: r.Slug(),
		Sections: []string{"hero", "story", "location", "gallery", "rsvp"},
		Values: merged(map[string]any{
			"palette":    "eucalipto",
			"font":       "serif",
			"title":      event.Name,
			"show_music": false,
		}, config),
	}
}

// placeholderRenderer backs every unregistered template name so resolution
// can never hard-fail on a stale or mistyped slug.
type placeholderRenderer struct{}

func (r *placeholderRenderer) Slug() string { return "placeholder" }

func (r *placeholderRenderer) Render(event *models.Event, config map[string]any) Page {
	return Page{
		Template: r.Slug(),
		Sections: []string{"hero", "details", "rsvp"},
		Values: merged(map[string]any{
			"title": event.Name,
		}, config),
	}
}
