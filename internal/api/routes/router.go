package routes

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/TimCalavera/calavera-web/internal/api/handlers"
	"github.com/TimCalavera/calavera-web/internal/api/middleware"
	"github.com/TimCalavera/calavera-web/internal/utils"
)

// Router sets up all the routes for the application
func NewRouter(
	sessions *middleware.SessionManager,
	siteHandler *handlers.SiteHandler,
	authHandler *handlers.AuthHandler,
	adminHandler *handlers.AdminHandler,
	chatHandler *handlers.ChatHandler,
	healthHandler *handlers.HealthHandler,
	staticDir, uploadDir string,
) http.Handler {
	mux := http.NewServeMux()

	// Public pages
	mux.HandleFunc("/", siteHandler.Index)
	mux.HandleFunc("/struktur", siteHandler.Struktur)
	mux.HandleFunc("/jadwal", siteHandler.Jadwal)
	mux.HandleFunc("/galeri", siteHandler.Galeri)
	mux.HandleFunc("/siswa", siteHandler.Siswa)
	mux.HandleFunc("/calavera-ai", siteHandler.Chatbot)

	mux.HandleFunc("/health", healthHandler.Health)

	// Static assets; uploaded photos live under their own prefix
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	mux.Handle("/static/img/", http.StripPrefix("/static/img/", http.FileServer(http.Dir(uploadDir))))

	// Authentication
	mux.HandleFunc("/login", authHandler.Login)
	mux.HandleFunc("/logout", authHandler.Logout)

	// Chatbot API
	mux.HandleFunc("/api/chat", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case "POST", "OPTIONS":
			chatHandler.Chat(w, r)
		default:
			utils.WriteErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})
	mux.HandleFunc("/api/regenerate", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case "POST", "OPTIONS":
			chatHandler.Regenerate(w, r)
		default:
			utils.WriteErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})
	mux.HandleFunc("/api/clear", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case "POST", "OPTIONS":
			chatHandler.Clear(w, r)
		default:
			utils.WriteErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})
	mux.HandleFunc("/api/delete-message", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case "POST", "OPTIONS":
			chatHandler.DeleteMessage(w, r)
		default:
			utils.WriteErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	// Admin area, session gated
	mux.Handle("/admin", middleware.RequireAdmin(sessions, http.HandlerFunc(adminHandler.Dashboard)))
	mux.Handle("/admin/", middleware.RequireAdmin(sessions, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		routeAdmin(adminHandler, w, r)
	})))

	// Apply CORS middleware to all routes
	return middleware.CORSMiddleware(mux)
}

// routeAdmin dispatches /admin/<entity>, /admin/<entity>/delete/<id> and
// /admin/edit/<entity>/<id>.
func routeAdmin(h *handlers.AdminHandler, w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/admin"), "/"), "/")

	switch {
	case len(parts) == 1 && r.Method == http.MethodPost:
		switch parts[0] {
		case "struktur":
			h.AddStruktur(w, r)
		case "jadwal":
			h.AddJadwal(w, r)
		case "piket":
			h.AddPiket(w, r)
		case "siswa":
			h.AddSiswa(w, r)
		case "galeri":
			h.AddGaleri(w, r)
		default:
			http.NotFound(w, r)
		}

	case len(parts) == 3 && parts[1] == "delete":
		id, err := strconv.ParseInt(parts[2], 10, 64)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		switch parts[0] {
		case "struktur":
			h.DeleteStruktur(w, r, id)
		case "jadwal":
			h.DeleteJadwal(w, r, id)
		case "piket":
			h.DeletePiket(w, r, id)
		case "siswa":
			h.DeleteSiswa(w, r, id)
		case "galeri":
			h.DeleteGaleri(w, r, id)
		default:
			http.NotFound(w, r)
		}

	case len(parts) == 3 && parts[0] == "edit":
		id, err := strconv.ParseInt(parts[2], 10, 64)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		h.Edit(w, r, parts[1], id)

	// The gallery edit form posts back to its own path.
	case len(parts) == 3 && parts[0] == "galeri" && parts[1] == "edit":
		id, err := strconv.ParseInt(parts[2], 10, 64)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		h.EditGaleri(w, r, id)

	default:
		http.NotFound(w, r)
	}
}
