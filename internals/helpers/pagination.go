package helper

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	DefaultPage = 1
	MaxLimit    = 500
)

// Page is the resolved page/limit pair of a list request.
type Page struct {
	Page  int
	Limit int
}

func (p Page) Offset() int { return (p.Page - 1) * p.Limit }

// Pagination is the metadata block of every list response.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// ParsePage reads ?page= and ?limit= (alias ?per_page=) from the request.
func ParsePage(c *fiber.Ctx, defaultLimit int) Page {
	limit := c.Query("limit")
	if strings.TrimSpace(limit) == "" {
		limit = c.Query("per_page")
	}
	return ParsePageParams(c.Query("page"), limit, defaultLimit)
}

// ParsePageParams resolves raw page/limit strings. Missing, non-numeric or
// non-positive values fall back to page 1 and defaultLimit; limit is capped at
// MaxLimit.
func ParsePageParams(rawPage, rawLimit string, defaultLimit int) Page {
	if defaultLimit <= 0 {
		defaultLimit = 20
	}
	page := atoiDefault(strings.TrimSpace(rawPage), DefaultPage)
	if page < 1 {
		page = DefaultPage
	}
	limit := atoiDefault(strings.TrimSpace(rawLimit), defaultLimit)
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Page{Page: page, Limit: limit}
}

// BuildPagination returns pages = ceil(total/limit); zero rows means zero pages.
func BuildPagination(total int64, p Page) Pagination {
	pages := 0
	if total > 0 && p.Limit > 0 {
		pages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
	return Pagination{
		Page:  p.Page,
		Limit: p.Limit,
		Total: total,
		Pages: pages,
	}
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
