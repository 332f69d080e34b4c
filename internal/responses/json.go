package responses

import (
	"errors"

	"github.com/gin-gonic/gin"

	"dbexplorer/internal/apperrors"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Kind    string      `json:"kind,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func Success(c *gin.Context, statusCode int, data interface{}, message string) {
	c.JSON(statusCode, APIResponse{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

func Fail(c *gin.Context, statusCode int, kind apperrors.Kind, err error, message string) {
	resp := APIResponse{
		Status:  "error",
		Kind:    string(kind),
		Message: message,
	}
	if err != nil {
		resp.Error = err.Error()
	}
	c.JSON(statusCode, resp)
}

// Error writes err with the status its kind maps to. Internal failures do not
// leak their detail.
func Error(c *gin.Context, err error) {
	kind := apperrors.KindOf(err)
	status := apperrors.HTTPStatus(kind)

	if kind == apperrors.KindInternal {
		Fail(c, status, kind, nil, "internal server error")
		return
	}
	Fail(c, status, kind, err, message(err))
}

// Abort is Error for middlewares.
func Abort(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}

func message(err error) string {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return ""
}
