package handlers

import (
	"net/http"

	"github.com/upb/greeting-app/services"
	"github.com/upb/greeting-app/utils"
	"go.uber.org/zap"
)

// HandleServiceError maps domain errors to HTTP responses
func HandleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if err == nil {
		return
	}

	message := services.GetErrorMessage(err)
	details := services.GetErrorDetails(err)

	switch {
	case services.IsUnauthenticatedError(err):
		if err := utils.WriteUnauthorized(w, message); err != nil {
			logger.Error("failed to write unauthorized response", zap.Error(err))
		}

	case services.IsForbiddenError(err):
		if err := utils.WriteForbidden(w, message, details); err != nil {
			logger.Error("failed to write forbidden response", zap.Error(err))
		}

	case services.IsNotFoundError(err):
		if err := utils.WriteNotFound(w, message); err != nil {
			logger.Error("failed to write not found response", zap.Error(err))
		}

	case services.IsInternalError(err):
		// The message is client-facing; the wrapped cause is only logged.
		logger.Error("internal server error", zap.Error(err))
		if err := utils.WriteInternalServerError(w, message, ""); err != nil {
			logger.Error("failed to write internal error response", zap.Error(err))
		}

	default:
		logger.Error("unhandled error type",
			zap.Error(err),
			zap.String("error_type", string(services.GetErrorType(err))))
		if err := utils.WriteInternalServerError(w, services.ErrInternal.Message, ""); err != nil {
			logger.Error("failed to write internal error response", zap.Error(err))
		}
	}
}

// NotFound answers unmatched routes with 404 {"error":{"message":"Route not found"}}.
func NotFound(logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("route not found",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path))
		HandleServiceError(w, services.ErrRouteNotFound, logger)
	}
}
