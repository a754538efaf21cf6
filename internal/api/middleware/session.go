package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const sessionName = "calavera-session"

// SessionManager wraps the signed cookie session shared by the admin pages
// and the chatbot. The admin flag and the chat session id both live here.
type SessionManager struct {
	store *sessions.CookieStore
}

func NewSessionManager(secret string) *SessionManager {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &SessionManager{store: store}
}

func (m *SessionManager) IsAdmin(r *http.Request) bool {
	session, _ := m.store.Get(r, sessionName)
	admin, ok := session.Values["admin"].(bool)
	return ok && admin
}

func (m *SessionManager) LoginAdmin(w http.ResponseWriter, r *http.Request, username string) error {
	session, _ := m.store.Get(r, sessionName)
	session.Values["admin"] = true
	session.Values["username"] = username
	return session.Save(r, w)
}

func (m *SessionManager) LogoutAdmin(w http.ResponseWriter, r *http.Request) error {
	session, _ := m.store.Get(r, sessionName)
	delete(session.Values, "admin")
	delete(session.Values, "username")
	return session.Save(r, w)
}

// ChatSessionID returns the caller's chat session id, minting one on first
// use so history and uploads stay scoped to this browser.
func (m *SessionManager) ChatSessionID(w http.ResponseWriter, r *http.Request) (string, error) {
	session, _ := m.store.Get(r, sessionName)
	if id, ok := session.Values["chat_session"].(string); ok && id != "" {
		return id, nil
	}

	id := uuid.NewString()
	session.Values["chat_session"] = id
	if err := session.Save(r, w); err != nil {
		return "", err
	}
	return id, nil
}

// Flash queues a one-shot message shown on the next rendered page.
func (m *SessionManager) Flash(w http.ResponseWriter, r *http.Request, message string) {
	session, _ := m.store.Get(r, sessionName)
	session.AddFlash(message)
	session.Save(r, w)
}

// PopFlashes drains queued flash messages.
func (m *SessionManager) PopFlashes(w http.ResponseWriter, r *http.Request) []string {
	session, _ := m.store.Get(r, sessionName)
	flashes := session.Flashes()
	if len(flashes) > 0 {
		session.Save(r, w)
	}

	out := make([]string, 0, len(flashes))
	for _, f := range flashes {
		if msg, ok := f.(string); ok {
			out = append(out, msg)
		}
	}
	return out
}
