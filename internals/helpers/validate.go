package helper

import (
	"bytes"
	"encoding/json"
	"io"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// Validate is the shared validator. Field errors are reported under their JSON
// names and the extra "username" rule is registered.
var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRe.MatchString(fl.Field().String())
	})
	return v
}

// Bind parses the request body into dst.
func Bind(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return Validation("Invalid request body")
	}
	return nil
}

// BindStrict decodes a JSON body and rejects fields dst does not declare.
func BindStrict(c *fiber.Ctx, dst any) error {
	body := c.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		return Validation("Request body is required")
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if strings.HasPrefix(err.Error(), "json: unknown field ") {
			field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
			return Validation("Field not allowed: " + field)
		}
		return Validation("Invalid request body")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return Validation("Invalid request body")
	}
	return nil
}
