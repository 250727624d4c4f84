package http

import (
	"context"
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/courses-api/internal/user"
)

type contextKey string

const currentUserKey contextKey = "currentUser"

// CurrentUser returns the user attached to the request context by
// RequireAuth.
func CurrentUser(ctx context.Context) (*user.User, bool) {
	u, ok := ctx.Value(currentUserKey).(*user.User)
	return u, ok
}

// RequireAuth authenticates the request with HTTP Basic Authentication. On
// success the resolved user is stored in the request context; on any failure
// the chain stops with a 401 and a generic body. The failure reason is only
// logged, so a caller cannot probe which check failed.
func RequireAuth(userSvc user.Service) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, password, ok := r.BasicAuth()
			if !ok {
				log.Warn().Str("path", r.URL.Path).Msg("Auth header not found or malformed")
				respondWithError(w, http.StatusUnauthorized, "Access Denied")
				return
			}

			authedUser, err := userSvc.Authenticate(r.Context(), email, password)
			if err != nil {
				// Authenticate already logged whether the email or the
				// password was wrong.
				respondWithError(w, http.StatusUnauthorized, "Access Denied")
				return
			}

			log.Info().Str("email", authedUser.Email).Msg("Authentication successful")

			ctx := context.WithValue(r.Context(), currentUserKey, authedUser)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Recoverer is the process-wide error boundary: any panic escaping a handler
// becomes a 500 JSON response instead of tearing down the connection. Stack
// logging is gated by ENABLE_GLOBAL_ERROR_LOGGING.
func Recoverer(enableErrorLogging bool) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if enableErrorLogging {
						log.Error().
							Interface("panic_value", rec).
							Bytes("stack", debug.Stack()).
							Msg("Global error handler: recovered from panic")
					}
					respondWithJSON(w, http.StatusInternalServerError, map[string]interface{}{
						"message": "Internal Server Error",
						"error":   struct{}{},
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
