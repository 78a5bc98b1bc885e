package query

import "gorm.io/gorm"

// ListQuery is everything FindPage needs to fetch one page.
type ListQuery struct {
	Where     Predicate
	Select    []string // optional projection; the count ignores it
	Order     string
	Relations []Relation
	Offset    int
	Limit     int
}

// FindPage counts the rows matched by q.Where and returns the requested window.
// The returned slice is never nil.
func FindPage[T any](db *gorm.DB, q ListQuery) ([]T, int64, error) {
	var model T
	base := q.Where.Apply(db.Model(&model))

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	rows := make([]T, 0)
	if total == 0 || q.Offset >= int(total) {
		return rows, total, nil
	}

	tx := q.Where.Apply(db.Model(&model))
	if len(q.Select) > 0 {
		tx = tx.Select(q.Select)
	}
	tx = Expand(tx, q.Relations...)
	if q.Order != "" {
		tx = tx.Order(q.Order)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	if q.Offset > 0 {
		tx = tx.Offset(q.Offset)
	}
	if err := tx.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// FindAll is FindPage without the count. q.Limit, when set, caps the rows.
func FindAll[T any](db *gorm.DB, q ListQuery) ([]T, error) {
	var model T
	tx := q.Where.Apply(db.Model(&model))
	if len(q.Select) > 0 {
		tx = tx.Select(q.Select)
	}
	tx = Expand(tx, q.Relations...)
	if q.Order != "" {
		tx = tx.Order(q.Order)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	rows := make([]T, 0)
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
