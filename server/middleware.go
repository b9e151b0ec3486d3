package server

// Some stuff stolen from 'https://github.com/dreamsofcode-io/nethttp'
import (
	"errors"
	"net/http"
	"time"

	"backend/api"
	"backend/database"
	"backend/server/util"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Middleware func(http.Handler) http.Handler

func CreateStack(xs ...Middleware) Middleware {
	return func(next http.Handler) http.Handler {
		for i := len(xs) - 1; i >= 0; i-- {
			x := xs[i]
			next = x(next)
		}

		return next
	}
}

type wrappedWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *wrappedWriter) WriteHeader(statusCode int) {
	w.ResponseWriter.WriteHeader(statusCode)
	w.statusCode = statusCode
}

// Flush keeps streamed responses working behind the logger.
func (w *wrappedWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (w *wrappedWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func Logging(log *zap.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapped := &wrappedWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(wrapped, r)

			log.Info("request",
				zap.Int("status", wrapped.statusCode),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Duration("took", time.Since(start)),
			)
		})
	}
}

// AuthMiddleware resolves the session cookie to a user and attaches the
// request scope. Requests without a live login session never reach next.
func AuthMiddleware(DB *gorm.DB, log *zap.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(api.SessionCookieName)
			if err != nil || cookie.Value == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			scopedDB := DB.WithContext(r.Context())
			session, err := database.GetLoginSession(scopedDB, cookie.Value)
			if errors.Is(err, database.ErrNotFound) {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			if err != nil {
				log.Error("resolve login session", zap.Error(err))
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}

			scope := &util.RequestScope{
				DB:   scopedDB,
				User: &session.User,
				Log:  log.With(zap.String("user", session.User.UUID)),
			}
			next.ServeHTTP(w, r.WithContext(util.WithScope(r.Context(), scope)))
		})
	}
}
