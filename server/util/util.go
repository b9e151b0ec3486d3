package util

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"backend/database"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type scopeKey struct{}

// RequestScope is everything a handler may touch for one request. It is
// built by the auth middleware and never shared between requests.
type RequestScope struct {
	DB   *gorm.DB
	User *database.User
	Log  *zap.Logger
}

func WithScope(ctx context.Context, scope *RequestScope) context.Context {
	return context.WithValue(ctx, scopeKey{}, scope)
}

func GetScope(r *http.Request) (*RequestScope, error) {
	scope, ok := r.Context().Value(scopeKey{}).(*RequestScope)
	if !ok || scope == nil || scope.User == nil {
		return nil, errors.New("request has no authenticated scope")
	}
	return scope, nil
}

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// DecodeJSON decodes a request body. An empty body decodes to the zero value
// when allowEmpty is set.
func DecodeJSON(r *http.Request, v interface{}, allowEmpty bool) error {
	if r.Body == nil || r.Body == http.NoBody {
		if allowEmpty {
			return nil
		}
		return errors.New("empty body")
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if allowEmpty && errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
