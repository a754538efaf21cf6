package handlers

import (
	"net/http"

	"github.com/TimCalavera/calavera-web/internal/api/middleware"
	"github.com/TimCalavera/calavera-web/internal/models"
	"github.com/TimCalavera/calavera-web/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
	sessions    *middleware.SessionManager
	renderer    *Renderer
}

func NewAuthHandler(authService services.AuthService, sessions *middleware.SessionManager, renderer *Renderer) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
		renderer:    renderer,
	}
}

// Login serves the login form on GET and checks credentials on POST.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h.sessions.IsAdmin(r) {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	if r.Method != http.MethodPost {
		h.renderer.Render(w, "login.html", PageData{
			Title:   "Login Admin",
			Flashes: h.sessions.PopFlashes(w, r),
		})
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	req := models.LoginRequest{
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
	}

	admin, err := h.authService.Login(r.Context(), req)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if admin == nil {
		h.sessions.Flash(w, r, "Username atau password salah!")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := h.sessions.LoginAdmin(w, r, admin.Username); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	h.sessions.Flash(w, r, "Login berhasil!")
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.LogoutAdmin(w, r)
	h.sessions.Flash(w, r, "Anda telah logout")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
