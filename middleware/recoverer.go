package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/upb/greeting-app/utils"
	"go.uber.org/zap"
)

// Recoverer turns a panicking handler into a 500 error envelope. The stack
// trace is logged always and returned to the client only when exposeStack is
// set (non-production).
func Recoverer(logger *zap.Logger, exposeStack bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				stack := string(debug.Stack())
				logger.Error("panic recovered",
					zap.String("request_id", GetRequestIDFromContext(r.Context())),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Any("panic", rec),
					zap.String("stack", stack))

				if !exposeStack {
					stack = ""
				}
				_ = utils.WriteInternalServerError(w, panicMessage(rec), stack)
			}()

			next.ServeHTTP(w, r)
		})
	}
}

func panicMessage(rec interface{}) string {
	var err error
	switch v := rec.(type) {
	case error:
		err = v
	case string:
		err = errors.New(v)
	default:
		err = fmt.Errorf("%v", v)
	}
	if err.Error() == "" {
		return "Internal Server Error"
	}
	return err.Error()
}
