package helper

import (
	"github.com/gofiber/fiber/v2"

	"schoolku_backend/internals/helpers/numeric"
)

/* ===============================
   JSON responses (success)
   Every payload goes through numeric.Normalize so wide integers and decimals
   leave the process as plain JSON numbers.
=================================*/

// JsonList: {items, pagination}
func JsonList(c *fiber.Ctx, items any, pagination Pagination) error {
	return c.Status(fiber.StatusOK).JSON(numeric.Object{
		{Key: "items", Value: normalizeItems(items)},
		{Key: "pagination", Value: pagination},
	})
}

// JsonOK sends data as-is (detail routes and stats).
func JsonOK(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusOK).JSON(numeric.Normalize(data))
}

// JsonCreated: 201 {<key>, message}
func JsonCreated(c *fiber.Ctx, key string, data any, message string) error {
	return c.Status(fiber.StatusCreated).JSON(numeric.Object{
		{Key: key, Value: numeric.Normalize(data)},
		{Key: "message", Value: message},
	})
}

// JsonUpdated: {<key>, message}
func JsonUpdated(c *fiber.Ctx, key string, data any, message string) error {
	return c.Status(fiber.StatusOK).JSON(numeric.Object{
		{Key: key, Value: numeric.Normalize(data)},
		{Key: "message", Value: message},
	})
}

// JsonMessage: {message}
func JsonMessage(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": message})
}

func normalizeItems(items any) any {
	out := numeric.Normalize(items)
	if out == nil {
		return []any{}
	}
	return out
}
