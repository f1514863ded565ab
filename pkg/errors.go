package pkg

import (
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// Reusable errors
var (
	ErrNonceNotFound  = errors.New("nonce not found in upstream response")
	ErrUpstreamStatus = errors.New("upstream returned a non-success status")
)

// ErrorCode defines a standardized error code
type ErrorCode struct {
	Code    string
	Status  int
	Message string // default message
	Details string // optional hint rendered next to the message
}

var (
	// Request validation
	ErrInvalidMethodCode    = ErrorCode{Code: "INVALID_METHOD", Status: http.StatusMethodNotAllowed, Message: "Only GET method allowed"}
	ErrMissingURLCode       = ErrorCode{Code: "MISSING_URL", Status: http.StatusBadRequest, Message: "URL parameter is required. Usage: /api/terabox?url=TERABOX_LINK"}
	ErrInvalidURLFormatCode = ErrorCode{Code: "INVALID_URL_FORMAT", Status: http.StatusBadRequest, Message: "Invalid TeraBox URL"}

	// Upstream handshake
	ErrNonceNotFoundCode   = ErrorCode{Code: "UPSTREAM_NONCE_NOT_FOUND", Status: http.StatusInternalServerError, Message: "Nonce not found in response", Details: UpstreamFailureDetails}
	ErrUpstreamHTTPCode    = ErrorCode{Code: "UPSTREAM_HTTP_ERROR", Status: http.StatusInternalServerError, Message: "HTTP error!", Details: UpstreamFailureDetails}
	ErrUpstreamParseCode   = ErrorCode{Code: "UPSTREAM_PARSE_ERROR", Status: http.StatusInternalServerError, Message: "invalid upstream response", Details: UpstreamFailureDetails}
	ErrUpstreamNetworkCode = ErrorCode{Code: "UPSTREAM_TRANSPORT_ERROR", Status: http.StatusInternalServerError, Message: "upstream request failed", Details: UpstreamFailureDetails}

	// Generic app
	ErrNotFoundCode = ErrorCode{Code: "APP_NOT_FOUND", Status: http.StatusNotFound, Message: "Not found"}
	ErrServerCode   = ErrorCode{Code: "APP_INTERNAL", Status: http.StatusInternalServerError, Message: "Internal server error"}
)

type AppError struct {
	Code    ErrorCode
	Message string // public-facing message
	Cause   error  // internal cause (wrapped)
}

func (e AppError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}
func (e AppError) Unwrap() error { return e.Cause }

func NewAppError(code ErrorCode, msg string, cause error) error {
	if msg == "" {
		msg = code.Message
	}
	return AppError{Code: code, Message: msg, Cause: cause}
}

// ErrorResponse is the failure envelope. Optional fields are only rendered when set.
type ErrorResponse struct {
	Status       int      `json:"-"`
	Code         string   `json:"-"`
	Success      bool     `json:"success"`
	Error        string   `json:"error"`
	Message      string   `json:"message,omitempty"`
	Details      string   `json:"details,omitempty"`
	Example      string   `json:"example,omitempty"`
	ValidFormats []string `json:"valid_formats,omitempty"`
}

// ToErrorResponse converts an error into an ErrorResponse and logs it.
// Errors that are not an AppError become a 500 carrying the raw error text in Message.
func ToErrorResponse(logger *zap.Logger, traceID string, err error) ErrorResponse {
	var appErr AppError
	if errors.As(err, &appErr) {
		resp := ErrorResponse{
			Status:  appErr.Code.Status,
			Code:    appErr.Code.Code,
			Error:   appErr.Message,
			Details: appErr.Code.Details,
		}
		if appErr.Code.Status >= http.StatusInternalServerError {
			logger.Error("application error", zap.String(TraceId, traceID), zap.String("code", appErr.Code.Code), zap.Error(err))
		} else {
			logger.Warn("request rejected", zap.String(TraceId, traceID), zap.String("code", appErr.Code.Code), zap.Error(err))
		}
		return resp
	}
	// Unknown error : 500
	logger.Error("unhandled error", zap.String(TraceId, traceID), zap.Error(err))
	return ErrorResponse{
		Status:  ErrServerCode.Status,
		Code:    ErrServerCode.Code,
		Error:   ErrServerCode.Message,
		Message: err.Error(),
	}
}
