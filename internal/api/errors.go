package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/travelinfo/travel-api/internal/api/shared"
	"github.com/travelinfo/travel-api/internal/domain"
	"github.com/travelinfo/travel-api/internal/platform/logger"
	"github.com/travelinfo/travel-api/internal/redact"
	"github.com/travelinfo/travel-api/internal/service"
	"github.com/travelinfo/travel-api/internal/service/auth"
	"github.com/travelinfo/travel-api/internal/store"
)

// ErrorCode is the RPC error code sent to clients.
type ErrorCode string

// RPC error codes.
const (
	CodeBadRequest         ErrorCode = "BAD_REQUEST"
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeNotFound           ErrorCode = "NOT_FOUND"
	CodeConflict           ErrorCode = "CONFLICT"
	CodeMethodNotSupported ErrorCode = "METHOD_NOT_SUPPORTED"
	CodeInternal           ErrorCode = "INTERNAL_SERVER_ERROR"
)

var codeStatus = map[ErrorCode]int{
	CodeBadRequest:         http.StatusBadRequest,
	CodeUnauthorized:       http.StatusUnauthorized,
	CodeForbidden:          http.StatusForbidden,
	CodeNotFound:           http.StatusNotFound,
	CodeConflict:           http.StatusConflict,
	CodeMethodNotSupported: http.StatusMethodNotAllowed,
	CodeInternal:           http.StatusInternalServerError,
}

// Dispatcher errors.
var (
	ErrProcedureNotFound  = errors.New("procedure not found")
	ErrMethodNotSupported = errors.New("method not supported")
)

// ErrorEnvelope is the body of every failed call.
type ErrorEnvelope struct {
	Error ErrorShape `json:"error"`
}

// ErrorShape is the client-visible description of a failure.
type ErrorShape struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Data    ErrorData `json:"data"`
}

// ErrorData carries machine-readable details of a failure.
type ErrorData struct {
	HTTPStatus int                 `json:"httpStatus"`
	Path       string              `json:"path,omitempty"`
	TraceID    string              `json:"traceId,omitempty"`
	Issues     []domain.FieldIssue `json:"issues,omitempty"`
	Constraint *ConstraintInfo     `json:"constraint,omitempty"`
	Detail     string              `json:"detail,omitempty"`
}

// ConstraintInfo describes a rejected write.
type ConstraintInfo struct {
	Kind   store.ConstraintKind `json:"kind"`
	Name   string               `json:"name,omitempty"`
	Table  string               `json:"table,omitempty"`
	Column string               `json:"column,omitempty"`
}

// ErrorTranslator maps errors from any pipeline stage to RPC errors.
type ErrorTranslator struct {
	// exposeDetail adds the redacted error text to internal errors.
	exposeDetail bool
	logger       *slog.Logger
}

// NewErrorTranslator creates a translator. Internal error detail is only
// exposed outside production.
func NewErrorTranslator(exposeDetail bool, logger *slog.Logger) *ErrorTranslator {
	if logger == nil {
		logger = slog.Default()
	}
	return &ErrorTranslator{exposeDetail: exposeDetail, logger: logger}
}

// Translate classifies err. It does not log.
func (t *ErrorTranslator) Translate(ctx context.Context, path string, err error) ErrorShape {
	shape := ErrorShape{
		Code:    CodeInternal,
		Message: "An unexpected error occurred",
		Data: ErrorData{
			Path:    path,
			TraceID: shared.GetTraceID(ctx),
		},
	}

	var (
		verr *domain.ValidationError
		cerr *store.ConstraintError
	)
	switch {
	case errors.As(err, &verr):
		shape.Code = CodeBadRequest
		shape.Message = validationMessage(verr)
		shape.Data.Issues = verr.Issues

	case errors.Is(err, domain.ErrUnauthenticated), auth.IsTokenError(err):
		shape.Code = CodeUnauthorized
		shape.Message = unauthorizedMessage(err)

	case errors.Is(err, domain.ErrForbidden):
		shape.Code = CodeForbidden
		shape.Message = forbiddenMessage(err)

	case errors.Is(err, service.ErrInvalidCredentials):
		shape.Code = CodeNotFound
		shape.Message = "Invalid email or password"

	case errors.Is(err, ErrProcedureNotFound):
		shape.Code = CodeNotFound
		shape.Message = fmt.Sprintf("No procedure found on path %q", path)

	case errors.Is(err, store.ErrNotFound):
		shape.Code = CodeNotFound
		shape.Message = notFoundMessage(err)

	case errors.Is(err, ErrMethodNotSupported):
		shape.Code = CodeMethodNotSupported
		shape.Message = err.Error()

	case errors.Is(err, store.ErrDuplicate):
		shape.Code = CodeConflict
		shape.Message = "Entity already exists"
		if errors.Is(err, store.ErrEmailExists) {
			shape.Message = "Email already exists"
		}
		if errors.As(err, &cerr) {
			shape.Data.Constraint = constraintInfo(cerr)
		}

	case errors.As(err, &cerr):
		shape.Code = CodeBadRequest
		shape.Message = constraintMessage(cerr)
		shape.Data.Constraint = constraintInfo(cerr)

	case errors.Is(err, store.ErrInvalidEntity):
		shape.Code = CodeBadRequest
		shape.Message = "Invalid entity data"

	default:
		if t.exposeDetail && err != nil {
			shape.Data.Detail = redact.Error(err)
		}
	}

	shape.Data.HTTPStatus = codeStatus[shape.Code]
	return shape
}

// WriteError translates err, logs it and writes the envelope. Server errors
// are logged at ERROR with redacted detail, client errors at DEBUG.
func (t *ErrorTranslator) WriteError(w http.ResponseWriter, r *http.Request, path string, err error) {
	ctx := r.Context()
	shape := t.Translate(ctx, path, err)

	level := slog.LevelDebug
	if shape.Data.HTTPStatus >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	logger.FromContextOrDefault(ctx, t.logger).LogAttrs(ctx, level, "procedure failed",
		slog.String("procedure", path),
		slog.String("code", string(shape.Code)),
		slog.Int("status_code", shape.Data.HTTPStatus),
		slog.String("error", redact.Error(err)),
		slog.String("error_type", fmt.Sprintf("%T", err)))

	shared.RespondWithJSON(w, r, shape.Data.HTTPStatus, ErrorEnvelope{Error: shape})
}

func validationMessage(verr *domain.ValidationError) string {
	switch len(verr.Issues) {
	case 0:
		return "Invalid input"
	case 1:
		return verr.Issues[0].Message
	default:
		return fmt.Sprintf("%s (and %d more)", verr.Issues[0].Message, len(verr.Issues)-1)
	}
}

func unauthorizedMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrExpiredToken), errors.Is(err, auth.ErrExpiredRefreshToken):
		return "Token expired"
	case auth.IsTokenError(err):
		return "Invalid token"
	default:
		return "Authentication required"
	}
}

func forbiddenMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrNotOwned):
		return "You can only modify your own reviews"
	case errors.Is(err, service.ErrAdminRequired):
		return "Only an admin can create an admin account"
	default:
		return "Insufficient permissions"
	}
}

func notFoundMessage(err error) string {
	switch {
	case errors.Is(err, store.ErrPlaceNotFound):
		return "Place not found"
	case errors.Is(err, store.ErrTaxiNotFound):
		return "Taxi not found"
	case errors.Is(err, store.ErrReviewNotFound):
		return "Review not found"
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"
	default:
		return "Not found"
	}
}

func constraintMessage(cerr *store.ConstraintError) string {
	switch cerr.Kind {
	case store.ConstraintForeignKey:
		if cerr.Column != "" {
			return fmt.Sprintf("Referenced %s does not exist", cerr.Column)
		}
		return "Referenced entity does not exist"
	case store.ConstraintNotNull:
		return "A required value is missing"
	default:
		return "Value violates a data constraint"
	}
}

func constraintInfo(cerr *store.ConstraintError) *ConstraintInfo {
	return &ConstraintInfo{
		Kind:   cerr.Kind,
		Name:   cerr.Constraint,
		Table:  cerr.Table,
		Column: cerr.Column,
	}
}
