package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"github.com/upb/greeting-app/internal/auth"
	"github.com/upb/greeting-app/middleware"
	"github.com/upb/greeting-app/services/users"
	"go.uber.org/zap"
)

// MockUsernameLookup is a mock implementation of users.UsernameLookup
type MockUsernameLookup struct {
	mock.Mock
}

func (m *MockUsernameLookup) CurrentUsername() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func newUserHandler(t *testing.T, name string, err error) (*UserHandler, *MockUsernameLookup) {
	t.Helper()
	lookup := new(MockUsernameLookup)
	lookup.On("CurrentUsername").Return(name, err).Maybe()
	logger := zap.NewNop()
	return NewUserHandler(users.NewService(lookup, logger), logger), lookup
}

var errLookup = errors.New("user: unknown userid 1001")

func withIdentity(req *http.Request, role auth.Role) *http.Request {
	return req.WithContext(middleware.WithIdentity(req.Context(), auth.NewIdentity("id-"+string(role), role)))
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func serve(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h(w, req)
	return w
}
