package middleware

import (
	"fmt"
	"net/http"

	"github.com/upb/greeting-app/internal/auth"
	"github.com/upb/greeting-app/services"
	"github.com/upb/greeting-app/utils"
	"go.uber.org/zap"
)

// AuthMiddleware provides the identity, permission and role steps of the
// authorization chain.
type AuthMiddleware struct {
	resolver auth.IdentityResolver
	logger   *zap.Logger
	denials  DenialRecorder
}

// DenialRecorder counts requests rejected by an authorization step.
type DenialRecorder interface {
	RecordDenial(step string, status int)
}

type nopRecorder struct{}

func (nopRecorder) RecordDenial(string, int) {}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(resolver auth.IdentityResolver, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		resolver: resolver,
		logger:   logger,
		denials:  nopRecorder{},
	}
}

// WithDenialRecorder reports every rejection to rec.
func (m *AuthMiddleware) WithDenialRecorder(rec DenialRecorder) *AuthMiddleware {
	if rec != nil {
		m.denials = rec
	}
	return m
}

// AttachIdentity resolves the caller's identity and stores it in the request
// context. A resolver failure or an unknown role ends the request with 401.
func (m *AuthMiddleware) AttachIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := GetRequestIDFromContext(ctx)

		identity, err := m.resolver.Resolve(r)
		if err == nil && identity != nil && !identity.Role.IsValid() {
			err = fmt.Errorf("unknown role %q", identity.Role)
		}
		if err != nil || identity == nil {
			m.logger.Warn("identity resolution failed",
				zap.String("request_id", requestID),
				zap.Error(err))
			m.reject(w, "identity", services.NewUnauthenticatedError(err))
			return
		}

		m.logger.Debug("identity attached",
			zap.String("request_id", requestID),
			zap.String("identity_id", identity.ID),
			zap.String("role", string(identity.Role)))

		next.ServeHTTP(w, r.WithContext(WithIdentity(ctx, identity)))
	})
}

// RequirePermission lets the request through only when the attached identity
// holds permission. It must run after AttachIdentity.
func (m *AuthMiddleware) RequirePermission(permission auth.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := GetRequestIDFromContext(ctx)

			identity := GetIdentityFromContext(ctx)
			if identity == nil {
				m.logger.Error("identity not found in context",
					zap.String("request_id", requestID))
				m.reject(w, "permission", services.NewUnauthenticatedError(nil))
				return
			}

			if !identity.HasPermission(permission) {
				m.logger.Warn("insufficient permissions",
					zap.String("request_id", requestID),
					zap.String("required_permission", string(permission)),
					zap.String("user_role", string(identity.Role)))
				m.reject(w, "permission", services.NewInsufficientPermissionsError(string(permission), string(identity.Role)))
				return
			}

			m.logger.Debug("permission check passed",
				zap.String("request_id", requestID),
				zap.String("required_permission", string(permission)))

			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole lets the request through only when the attached identity's role
// is one of roles. It must run after AttachIdentity.
func (m *AuthMiddleware) RequireRole(roles ...auth.Role) func(http.Handler) http.Handler {
	required := make([]string, 0, len(roles))
	for _, role := range roles {
		required = append(required, string(role))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := GetRequestIDFromContext(ctx)

			identity := GetIdentityFromContext(ctx)
			if identity == nil {
				m.logger.Error("identity not found in context",
					zap.String("request_id", requestID))
				m.reject(w, "role", services.NewUnauthenticatedError(nil))
				return
			}

			if !identity.HasAnyRole(roles...) {
				m.logger.Warn("insufficient role",
					zap.String("request_id", requestID),
					zap.Strings("required_roles", required),
					zap.String("user_role", string(identity.Role)))
				m.reject(w, "role", services.NewInsufficientRoleError(required, string(identity.Role)))
				return
			}

			m.logger.Debug("role check passed",
				zap.String("request_id", requestID),
				zap.Strings("required_roles", required))

			next.ServeHTTP(w, r)
		})
	}
}

// reject writes the error envelope for err and records the denial.
func (m *AuthMiddleware) reject(w http.ResponseWriter, step string, err *services.DomainError) {
	var status int
	var writeErr error
	switch err.Type {
	case services.ErrorTypeUnauthenticated:
		status = http.StatusUnauthorized
		writeErr = utils.WriteUnauthorized(w, err.Message)
	case services.ErrorTypeForbidden:
		status = http.StatusForbidden
		writeErr = utils.WriteForbidden(w, err.Message, err.Details)
	default:
		status = http.StatusInternalServerError
		writeErr = utils.WriteInternalServerError(w, err.Message, "")
	}
	if writeErr != nil {
		m.logger.Error("failed to write authorization error", zap.Error(writeErr))
	}
	m.denials.RecordDenial(step, status)
}
