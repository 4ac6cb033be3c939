package httpx

import (
	"net/http"

	"bookweb/internal/session"

	"github.com/sirupsen/logrus"
)

// RequireLogin redirects anonymous sessions to /login with a message.
func RequireLogin(sessions *session.Manager, log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := session.FromContext(r.Context())
			if s.IsLoggedIn() {
				next.ServeHTTP(w, r)
				return
			}
			if s != nil {
				s.AddFlash("Please log in first.")
				if err := sessions.Commit(w, r, s); err != nil {
					log.WithError(err).Warn("session commit failed")
				}
			}
			SeeOther(w, r, "/login")
		})
	}
}

// Commit saves the session and logs a failure. A failed save only loses page
// state; the response still goes out.
func Commit(sessions *session.Manager, log *logrus.Logger, w http.ResponseWriter, r *http.Request, s *session.Session) {
	if err := sessions.Commit(w, r, s); err != nil {
		log.WithError(err).WithField("request_id", RequestIDFrom(r)).Warn("session commit failed")
	}
}
