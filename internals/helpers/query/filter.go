// Package query turns a request's query string into GORM scopes and runs the
// paginated list queries shared by every resource controller.
package query

import (
	"strconv"
	"strings"

	"gorm.io/gorm"
)

type Kind int

const (
	String Kind = iota
	Int
	Bool
)

// Exact maps one query param onto an equality predicate.
type Exact struct {
	Param  string
	Column string
	Kind   Kind
}

// Scope is one GORM condition; it is what db.Scopes expects.
type Scope = func(*gorm.DB) *gorm.DB

// Predicate is the opaque result of FilterSet.Build.
type Predicate []Scope

// FilterSet declares which params a resource understands.
type FilterSet struct {
	Exact       []Exact
	Search      []string // columns matched case-insensitively by ?search=
	SearchParam string   // defaults to "search"
	StatusParam string
	Status      map[string]Scope
}

// Build translates params into a Predicate. Unknown params, empty values and
// unknown status values are ignored. An Int param that does not parse matches
// nothing; a Bool param that does not parse is dropped.
func (f FilterSet) Build(params map[string]string) Predicate {
	var p Predicate

	for _, e := range f.Exact {
		raw := strings.TrimSpace(params[e.Param])
		if raw == "" {
			continue
		}
		col := e.Column
		switch e.Kind {
		case Int:
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				p = append(p, matchNothing)
				continue
			}
			p = append(p, eq(col, n))
		case Bool:
			b, err := strconv.ParseBool(raw)
			if err != nil {
				continue
			}
			p = append(p, eq(col, b))
		default:
			p = append(p, eq(col, raw))
		}
	}

	searchParam := f.SearchParam
	if searchParam == "" {
		searchParam = "search"
	}
	if term := strings.TrimSpace(params[searchParam]); term != "" && len(f.Search) > 0 {
		p = append(p, Search(term, f.Search...))
	}

	if f.StatusParam != "" {
		if s, ok := f.Status[strings.ToLower(strings.TrimSpace(params[f.StatusParam]))]; ok {
			p = append(p, s)
		}
	}
	return p
}

// Apply attaches every scope of p to db.
func (p Predicate) Apply(db *gorm.DB) *gorm.DB {
	if len(p) == 0 {
		return db
	}
	return db.Scopes(p...)
}

// With returns a copy of p extended with extra scopes.
func (p Predicate) With(extra ...Scope) Predicate {
	out := make(Predicate, 0, len(p)+len(extra))
	out = append(out, p...)
	return append(out, extra...)
}

func eq(col string, v any) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(col+" = ?", v)
	}
}

func matchNothing(db *gorm.DB) *gorm.DB {
	return db.Where("1 = 0")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search ORs a case-insensitive substring match across cols.
func Search(term string, cols ...string) Scope {
	kw := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
	parts := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, c := range cols {
		parts[i] = "LOWER(" + c + `) LIKE ? ESCAPE '\'`
		args[i] = kw
	}
	expr := "(" + strings.Join(parts, " OR ") + ")"
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(expr, args...)
	}
}

// Where wraps a raw condition as a Scope.
func Where(expr string, args ...any) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(expr, args...)
	}
}
