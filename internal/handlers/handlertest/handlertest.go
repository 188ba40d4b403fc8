// Package handlertest serves HTTP handlers in tests without tokens or rate limits.
package handlertest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"homestay/shared/constant"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

// Middleware lets every request through as the configured user.
type Middleware struct {
	UserID string
	Email  string
	Role   string
}

func Staff() *Middleware {
	return &Middleware{UserID: "u-staff", Email: "staff@homestay.id", Role: constant.RoleStaff}
}

func Admin() *Middleware {
	return &Middleware{UserID: "u-admin", Email: "admin@homestay.id", Role: constant.RoleAdmin}
}

func (m *Middleware) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), constant.ContextKeyUserID, m.UserID)
		ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, m.Email)
		ctx = context.WithValue(ctx, constant.ContextKeyUserRole, m.Role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Middleware) APIKey(next http.Handler) http.Handler { return next }

func (m *Middleware) RBAC(next http.Handler) http.Handler { return next }

func (m *Middleware) Tracing(next http.Handler) http.Handler { return next }

func (m *Middleware) RateLimit() func(http.Handler) http.Handler { return passthrough }

func (m *Middleware) LoginLimit() func(http.Handler) http.Handler { return passthrough }

func (m *Middleware) Secure() func(http.Handler) http.Handler { return passthrough }

func (m *Middleware) CORS() func(http.Handler) http.Handler { return passthrough }

func passthrough(next http.Handler) http.Handler { return next }

// Serve mounts routes under /v1 and performs one request against them.
func Serve(t *testing.T, routes func(chi.Router), method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader

	switch payload := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(payload)
	default:
		data, err := json.Marshal(payload)
		require.NoError(t, err)

		reader = bytes.NewReader(data)
	}

	router := chi.NewRouter()
	router.Route("/v1", routes)

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

// Decode unwraps the data envelope of a JSON response into out.
func Decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()

	envelope := struct {
		Data json.RawMessage `json:"data"`
	}{}

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

// ErrorMessage returns the error field of a JSON error response.
func ErrorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	res := struct {
		Error string `json:"error"`
	}{}

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))

	return res.Error
}
