package handlers

import (
	"html/template"
	"log"
	"net/http"
)

// PageData is the envelope every template receives.
type PageData struct {
	Title   string
	IsAdmin bool
	Flashes []string
	Data    map[string]interface{}
}

// Renderer holds the parsed page templates. Each file under the template
// directory is addressed by its base name.
type Renderer struct {
	templates *template.Template
}

func NewRenderer(dir string) (*Renderer, error) {
	tmpl, err := template.ParseGlob(dir + "/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: tmpl}, nil
}

func (r *Renderer) Render(w http.ResponseWriter, name string, data PageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := r.templates.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("template %s: %v", name, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
