package utils

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cppla/socialapi/apperr"
)

// JSONResponse defines the uniform structure for successful API responses.
type JSONResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Timestamp   time.Time         `json:"timestamp"`
	Status      int               `json:"status"`
	Error       string            `json:"error"`
	ErrorCode   string            `json:"errorCode"`
	Message     string            `json:"message"`
	Endpoint    string            `json:"endpoint"`
	RequestID   string            `json:"requestId"`
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
}

// Respond writes a JSON response with the given status code.
func Respond(ctx *gin.Context, status int, code int, message string, data interface{}) {
	ctx.JSON(status, JSONResponse{
		Code:    code,
		Message: message,
		Data:    data,
	})
}

// Success returns a standard success response.
func Success(ctx *gin.Context, data interface{}) {
	Respond(ctx, http.StatusOK, 0, "success", data)
}

// Created returns a standard success response with status 201.
func Created(ctx *gin.Context, data interface{}) {
	Respond(ctx, http.StatusCreated, 0, "success", data)
}

// Fail writes the ErrorResponse for err. Errors without a kind are reported
// as SYSTEM_001 and their detail only reaches the log.
func Fail(ctx *gin.Context, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		if k, ok := apperr.KindOf(err); ok {
			appErr = apperr.New(k)
		} else {
			appErr = apperr.Wrap(apperr.SystemInternal, err)
		}
	}

	kind := appErr.Kind
	status := kind.HTTPStatus()
	message := appErr.PublicMessage()
	if kind.Severity() == apperr.SeverityInternal {
		// never leak internal detail
		message = kind.Message()
	}

	resp := ErrorResponse{
		Timestamp:   time.Now(),
		Status:      status,
		Error:       http.StatusText(status),
		ErrorCode:   kind.Code(),
		Message:     message,
		Endpoint:    ctx.Request.URL.Path,
		RequestID:   requestID(ctx),
		FieldErrors: appErr.Fields,
	}

	fields := []zap.Field{
		zap.String("request_id", resp.RequestID),
		zap.String("kind", kind.Name()),
		zap.String("code", resp.ErrorCode),
		zap.String("method", ctx.Request.Method),
		zap.String("endpoint", resp.Endpoint),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError {
		Logger.Error("request failed", fields...)
	} else {
		Logger.Warn("request rejected", fields...)
	}
	ErrorResponses.WithLabelValues(resp.ErrorCode).Inc()

	ctx.AbortWithStatusJSON(status, resp)
}

// RouteNotFound answers unknown paths with a 404 ErrorResponse.
func RouteNotFound(ctx *gin.Context) {
	ctx.JSON(http.StatusNotFound, ErrorResponse{
		Timestamp: time.Now(),
		Status:    http.StatusNotFound,
		Error:     http.StatusText(http.StatusNotFound),
		ErrorCode: "NOT_FOUND",
		Message:   "api route not found",
		Endpoint:  ctx.Request.URL.Path,
		RequestID: requestID(ctx),
	})
}
