package query

import "gorm.io/gorm"

// Relation describes one association to preload alongside the parent rows.
//
// Columns must include the keys GORM needs to stitch children onto parents
// (the child's primary key plus its foreign key). There is no row cap: a preload
// limit would apply across all parents at once, so capped collections are
// fetched as their own ListQuery instead.
type Relation struct {
	Name    string // association path, e.g. "Student" or "Subject"
	Columns []string
	Order   string
}

// Expand attaches rels as preloads.
func Expand(db *gorm.DB, rels ...Relation) *gorm.DB {
	for _, r := range rels {
		r := r
		if len(r.Columns) == 0 && r.Order == "" {
			db = db.Preload(r.Name)
			continue
		}
		db = db.Preload(r.Name, func(tx *gorm.DB) *gorm.DB {
			if len(r.Columns) > 0 {
				tx = tx.Select(r.Columns)
			}
			if r.Order != "" {
				tx = tx.Order(r.Order)
			}
			return tx
		})
	}
	return db
}
