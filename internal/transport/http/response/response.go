package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"recordhub/internal/validation"
)

const (
	CodeOK                 = 0
	CodeBadRequest         = 40000
	CodeEmailExists        = 40002
	CodeUnauthorized       = 40100
	CodeInvalidCredentials = 40101
	CodeForbidden          = 40300
	CodeNotFound           = 40400
	CodeValidationFailed   = 42200
	CodeInternalServer     = 50000
	CodeTimeout            = 50400
)

type APIResponse struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Data    interface{}       `json:"data,omitempty"`
	Errors  validation.Errors `json:"errors,omitempty"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Code:    CodeOK,
		Message: "ok",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{
		Code:    CodeOK,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, httpStatus, code int, message string) {
	c.JSON(httpStatus, APIResponse{
		Code:    code,
		Message: message,
	})
}

// ValidationFailed reports every failing field at once.
func ValidationFailed(c *gin.Context, errs validation.Errors) {
	c.JSON(http.StatusUnprocessableEntity, APIResponse{
		Code:    CodeValidationFailed,
		Message: validation.ErrValidationFailed.Error(),
		Errors:  errs,
	})
}
