// Package httperr builds the error envelope shared by every endpoint:
//
//	{"error": {"message": "...", "request_id": "..."}, "detail": {...}}
//
// Conflict and rejection responses carry a machine-readable detail.reason.
package httperr

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestIDKey is where the logging middleware stores the request id.
const RequestIDKey = "request_id"

type Body struct {
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

type Response struct {
	Status int  `json:"-"`
	Error  Body `json:"error"`
	Detail any  `json:"detail,omitempty"`
}

// Reason is the detail payload for 409 and 422 responses.
type Reason struct {
	Reason string `json:"reason"`
}

func New(c *gin.Context, status int, msg string, detail any) Response {
	resp := Response{Status: status, Detail: detail}
	resp.Error.Message = msg
	if id, ok := c.Get(RequestIDKey); ok {
		resp.Error.RequestID, _ = id.(string)
	}
	return resp
}

// AbortWithError keeps err on the context for the request log and writes the envelope.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		err = errors.New(msg)
	}
	resp := New(c, status, msg, detail)

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

func AbortWithReason(c *gin.Context, status int, err error, msg, reason string) {
	AbortWithError(c, status, err, msg, Reason{Reason: reason})
}

// Abort is for middleware rejections that have no underlying error worth logging.
func Abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, New(c, status, msg, nil))
}

// AbortTooManyRequests rounds retryAfter up to whole seconds, never below one.
func AbortTooManyRequests(c *gin.Context, retryAfter time.Duration) {
	secs := int(math.Ceil(retryAfter.Seconds()))
	if secs < 1 {
		secs = 1
	}
	c.Header("Retry-After", strconv.Itoa(secs))
	Abort(c, http.StatusTooManyRequests, "Too many requests")
}
