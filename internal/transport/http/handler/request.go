package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recordhub/internal/app"
	"recordhub/internal/transport/http/middleware"
	"recordhub/internal/transport/http/response"
	"recordhub/internal/validation"
)

var errBadPayload = errors.New("invalid request payload")

func getUserIDFromContext(c *gin.Context) (uint, bool) {
	userIDAny, exists := c.Get(middleware.ContextUserIDKey)
	if !exists {
		return 0, false
	}
	userID, ok := userIDAny.(uint)
	return userID, ok
}

func parseID(c *gin.Context) (uint, bool) {
	return parseUintID(c.Param("id"))
}

func parseUintID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// bindFields reads a JSON object or a submitted form into raw fields.
// Form fields keep their first value and the method override is dropped.
func bindFields(c *gin.Context) (validation.Fields, error) {
	if c.ContentType() == gin.MIMEJSON {
		fields := validation.Fields{}
		if err := c.ShouldBindJSON(&fields); err != nil {
			return nil, errBadPayload
		}
		return fields, nil
	}

	if err := c.Request.ParseForm(); err != nil {
		return nil, errBadPayload
	}
	fields := validation.Fields{}
	for name, values := range c.Request.PostForm {
		if name == "_method" || len(values) == 0 {
			continue
		}
		fields[name] = values[0]
	}
	return fields, nil
}

// writeError maps service errors onto the JSON envelope.
func writeError(c *gin.Context, log *zap.Logger, err error, fallback string) {
	if fieldErrs, ok := validation.FromError(err); ok {
		response.ValidationFailed(c, fieldErrs)
		return
	}
	status, code, message := classify(err)
	if status == http.StatusInternalServerError {
		message = fallback
		log.Error(fallback, zap.Error(err), zap.String("request_id", c.GetString(middleware.ContextRequestIDKey)))
	}
	response.Error(c, status, code, message)
}

func classify(err error) (int, int, string) {
	switch {
	case errors.Is(err, errBadPayload), errors.Is(err, app.ErrInvalidInput):
		return http.StatusBadRequest, response.CodeBadRequest, err.Error()
	case errors.Is(err, app.ErrNotFound):
		return http.StatusNotFound, response.CodeNotFound, err.Error()
	case errors.Is(err, app.ErrUnauthorized):
		return http.StatusUnauthorized, response.CodeUnauthorized, err.Error()
	case errors.Is(err, app.ErrForbidden):
		return http.StatusForbidden, response.CodeForbidden, err.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, response.CodeTimeout, "request timed out"
	default:
		return http.StatusInternalServerError, response.CodeInternalServer, ""
	}
}
