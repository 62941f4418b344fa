package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// apiResponse is the JSON envelope of every /api route. RequestID echoes the
// X-Request-ID the request was logged under.
type apiResponse struct {
	Code      int            `json:"code"`
	Message   string         `json:"message"`
	Data      any            `json:"data,omitempty"`
	Meta      map[string]any `json:"meta,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
}

func Ok(c *gin.Context, data any, meta map[string]any) {
	c.JSON(http.StatusOK, apiResponse{
		Code:      0,
		Message:   "ok",
		Data:      data,
		Meta:      meta,
		RequestID: c.GetString("request_id"),
	})
}

func Error(c *gin.Context, status int, message string, meta map[string]any) {
	c.JSON(status, apiResponse{
		Code:      status,
		Message:   message,
		Meta:      meta,
		RequestID: c.GetString("request_id"),
	})
}

// Fail writes err with the status statusFor picks for it.
func Fail(c *gin.Context, err error) {
	status, message := statusFor(err)
	Error(c, status, message, nil)
}
