package helper

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ParseID reads a positive integer path param.
func ParseID(c *fiber.Ctx, name string) (int64, error) {
	raw := strings.TrimSpace(c.Params(name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, Validation("Invalid " + name)
	}
	return id, nil
}

// Exists reports whether any row of model matches cond.
func Exists(db *gorm.DB, model any, cond string, args ...any) (bool, error) {
	var n int64
	if err := db.Model(model).Where(cond, args...).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// MustExist returns a NotFound error carrying msg when no row matches.
func MustExist(db *gorm.DB, model any, msg, cond string, args ...any) error {
	ok, err := Exists(db, model, cond, args...)
	if err != nil {
		return Internal(err, "existence check")
	}
	if !ok {
		return NotFound(msg)
	}
	return nil
}
