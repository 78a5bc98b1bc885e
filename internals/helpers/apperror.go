package helper

import (
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"schoolku_backend/internals/helpers/numeric"
)

type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindInvariant
)

// AppError is the typed failure every controller returns; ErrorHandler turns it
// into a `{"error": ...}` body with the matching status.
type AppError struct {
	Kind    ErrorKind
	Message string
	Details fiber.Map
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func (e *AppError) Status() int {
	switch e.Kind {
	case KindValidation, KindInvariant:
		return fiber.StatusBadRequest
	case KindNotFound:
		return fiber.StatusNotFound
	case KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func (e *AppError) WithDetails(d fiber.Map) *AppError {
	e.Details = d
	return e
}

func Validation(msg string) *AppError { return &AppError{Kind: KindValidation, Message: msg} }
func NotFound(msg string) *AppError   { return &AppError{Kind: KindNotFound, Message: msg} }
func Conflict(msg string) *AppError   { return &AppError{Kind: KindConflict, Message: msg} }
func Invariant(msg string) *AppError  { return &AppError{Kind: KindInvariant, Message: msg} }

// Internal wraps err with msg; the wrapped error is logged, never sent to the client.
func Internal(err error, msg string) *AppError {
	return &AppError{Kind: KindInternal, Message: msg, Err: errors.Wrap(err, msg)}
}

/* ===============================
   Storage error mapping
=================================*/

// IsUniqueViolation reports whether err is the storage layer's duplicate-key signal
// (gorm translated, pgx, lib/pq or sqlite).
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "unique constraint failed") || strings.Contains(low, "duplicate key")
}

// MapDBError converts a storage error into an AppError. notFound and conflict are
// the client-facing messages for those two cases.
func MapDBError(err error, notFound, conflict string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NotFound(notFound)
	case IsUniqueViolation(err):
		return Conflict(conflict)
	default:
		return Internal(err, "database error")
	}
}

/* ===============================
   Fiber error handler
=================================*/

// ErrorHandler is installed as fiber.Config.ErrorHandler.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	body := fiber.Map{"error": "Internal server error"}

	var appErr *AppError
	var fiberErr *fiber.Error
	var fieldErrs validator.ValidationErrors

	switch {
	case errors.As(err, &appErr):
		status = appErr.Status()
		if appErr.Kind == KindInternal {
			log.Printf("[ERROR] %s %s: %+v", c.Method(), c.OriginalURL(), appErr.Err)
			break
		}
		body["error"] = appErr.Message
		if len(appErr.Details) > 0 {
			body["details"] = numeric.Normalize(appErr.Details)
		}
	case errors.As(err, &fieldErrs):
		status = fiber.StatusBadRequest
		body["error"] = "Validation failed"
		details := fiber.Map{}
		for _, fe := range fieldErrs {
			details[fe.Field()] = fe.Tag()
		}
		body["details"] = details
	case errors.As(err, &fiberErr):
		status = fiberErr.Code
		if status >= fiber.StatusInternalServerError {
			log.Printf("[ERROR] %s %s: %v", c.Method(), c.OriginalURL(), err)
		} else {
			body["error"] = fiberErr.Message
		}
	default:
		log.Printf("[ERROR] %s %s: %+v", c.Method(), c.OriginalURL(), err)
	}

	return c.Status(status).JSON(body)
}
