package helper

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func serve(t *testing.T, h fiber.Handler, body string) (int, map[string]any) {
	t.Helper()
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Post("/", h)

	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	res, err := app.Test(req, -1)
	require.NoError(t, err)
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return res.StatusCode, out
}

func TestErrorHandlerStatuses(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"validation", Validation("bad"), 400, "bad"},
		{"invariant", Invariant("blocked"), 400, "blocked"},
		{"not found", NotFound("missing"), 404, "missing"},
		{"conflict", Conflict("dup"), 409, "dup"},
		{"internal hides cause", Internal(errors.New("pq: connection refused"), "list fees"), 500, "Internal server error"},
		{"fiber error", fiber.NewError(401, "Invalid token"), 401, "Invalid token"},
		{"plain error", errors.New("boom"), 500, "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := serve(t, func(*fiber.Ctx) error { return tt.err }, "")
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.msg, body["error"])
			assert.NotContains(t, body, "details")
		})
	}
}

func TestErrorHandlerDetails(t *testing.T) {
	status, body := serve(t, func(*fiber.Ctx) error {
		return Validation("Payment amount cannot exceed balance amount").WithDetails(fiber.Map{
			"remainingBalance": decimal.RequireFromString("6000.00"),
		})
	}, "")
	assert.Equal(t, 400, status)
	assert.Equal(t, map[string]any{"remainingBalance": float64(6000)}, body["details"])
}

func TestMapDBError(t *testing.T) {
	assert.NoError(t, MapDBError(nil, "nf", "dup"))

	var appErr *AppError
	require.ErrorAs(t, MapDBError(gorm.ErrRecordNotFound, "nf", "dup"), &appErr)
	assert.Equal(t, KindNotFound, appErr.Kind)
	assert.Equal(t, "nf", appErr.Message)

	require.ErrorAs(t, MapDBError(errors.New("UNIQUE constraint failed: fees.fee_type"), "nf", "dup"), &appErr)
	assert.Equal(t, KindConflict, appErr.Kind)

	require.ErrorAs(t, MapDBError(errors.Wrap(gorm.ErrDuplicatedKey, "insert"), "nf", "dup"), &appErr)
	assert.Equal(t, KindConflict, appErr.Kind)

	require.ErrorAs(t, MapDBError(errors.New("syntax error"), "nf", "dup"), &appErr)
	assert.Equal(t, KindInternal, appErr.Kind)
}

type strictBody struct {
	Name  *string            `json:"name"`
	Topic PatchField[string] `json:"topic"`
}

func TestBindStrict(t *testing.T) {
	bind := func(body string) (int, map[string]any, strictBody) {
		var got strictBody
		status, out := serve(t, func(c *fiber.Ctx) error {
			if err := BindStrict(c, &got); err != nil {
				return err
			}
			return c.JSON(fiber.Map{"ok": true})
		}, body)
		return status, out, got
	}

	status, out, _ := bind(`{"name":"a","balance":0}`)
	assert.Equal(t, 400, status)
	assert.Equal(t, "Field not allowed: balance", out["error"])

	status, out, _ = bind(``)
	assert.Equal(t, 400, status)
	assert.Equal(t, "Request body is required", out["error"])

	status, _, _ = bind(`{"name":"a"} {}`)
	assert.Equal(t, 400, status)

	status, _, got := bind(`{"topic":null}`)
	assert.Equal(t, 200, status)
	assert.Nil(t, got.Name)
	v, present := got.Topic.Get()
	assert.True(t, present)
	assert.Nil(t, v)

	_, _, got = bind(`{"name":" x "}`)
	_, present = got.Topic.Get()
	assert.False(t, present)
	assert.Equal(t, "x", *TrimPtr(got.Name))
}
