package query

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type owner struct {
	ID   int64  `gorm:"column:owner_id;primaryKey"`
	Name string `gorm:"column:name"`
}

func (owner) TableName() string { return "owners" }

type item struct {
	ID      int64  `gorm:"column:item_id;primaryKey"`
	OwnerID int64  `gorm:"column:owner_id"`
	Title   string `gorm:"column:title"`
	Qty     int    `gorm:"column:qty"`
	Done    bool   `gorm:"column:done"`
	Owner   *owner `gorm:"foreignKey:OwnerID;references:ID"`
}

func (item) TableName() string { return "items" }

var seq int

func newDB(t *testing.T) *gorm.DB {
	t.Helper()
	seq++
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:querytest%d?mode=memory&cache=shared", seq)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&owner{}, &item{}))
	require.NoError(t, db.Create(&[]owner{{ID: 1, Name: "Ani"}, {ID: 2, Name: "Budi"}}).Error)
	rows := []item{
		{ID: 1, OwnerID: 1, Title: "Tuition 100%", Qty: 1},
		{ID: 2, OwnerID: 1, Title: "Tuition_A", Qty: 2, Done: true},
		{ID: 3, OwnerID: 2, Title: "Library", Qty: 3},
		{ID: 4, OwnerID: 2, Title: "TuitionXA", Qty: 4, Done: true},
		{ID: 5, OwnerID: 2, Title: "Lab", Qty: 5},
	}
	require.NoError(t, db.Create(&rows).Error)
	return db
}

var itemFilters = FilterSet{
	Exact: []Exact{
		{Param: "ownerId", Column: "owner_id", Kind: Int},
		{Param: "title", Column: "title"},
		{Param: "done", Column: "done", Kind: Bool},
	},
	Search:      []string{"title"},
	StatusParam: "state",
	Status: map[string]Scope{
		"big": Where("qty >= ?", 4),
	},
}

func ids(rows []item) []int64 {
	out := make([]int64, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ID)
	}
	return out
}

func TestFilterSetBuild(t *testing.T) {
	db := newDB(t)

	tests := []struct {
		name   string
		params map[string]string
		want   []int64
	}{
		{"no params", nil, []int64{1, 2, 3, 4, 5}},
		{"int", map[string]string{"ownerId": "2"}, []int64{3, 4, 5}},
		{"bad int matches nothing", map[string]string{"ownerId": "two"}, []int64{}},
		{"bool", map[string]string{"done": "true"}, []int64{2, 4}},
		{"bad bool ignored", map[string]string{"done": "maybe"}, []int64{1, 2, 3, 4, 5}},
		{"string exact", map[string]string{"title": "Lab"}, []int64{5}},
		{"blank ignored", map[string]string{"title": "  "}, []int64{1, 2, 3, 4, 5}},
		{"unknown ignored", map[string]string{"color": "red"}, []int64{1, 2, 3, 4, 5}},
		{"search case insensitive", map[string]string{"search": "LIB"}, []int64{3}},
		{"search escapes percent", map[string]string{"search": "100%"}, []int64{1}},
		{"search escapes underscore", map[string]string{"search": "n_a"}, []int64{2}},
		{"status", map[string]string{"state": "BIG"}, []int64{4, 5}},
		{"unknown status ignored", map[string]string{"state": "tiny"}, []int64{1, 2, 3, 4, 5}},
		{"combined", map[string]string{"ownerId": "2", "search": "tuition", "state": "big"}, []int64{4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := FindAll[item](db, ListQuery{Where: itemFilters.Build(tt.params), Order: "item_id ASC"})
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(rows))
		})
	}
}

func TestFindPage(t *testing.T) {
	db := newDB(t)

	rows, total, err := FindPage[item](db, ListQuery{Order: "item_id ASC", Offset: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Equal(t, []int64{3, 4}, ids(rows))

	rows, total, err = FindPage[item](db, ListQuery{Order: "item_id ASC", Offset: 10, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)

	rows, total, err = FindPage[item](db, ListQuery{
		Where: Predicate{Where("owner_id = ?", 99)},
		Limit: 10,
	})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NotNil(t, rows)
}

func TestExpandAndPredicateWith(t *testing.T) {
	db := newDB(t)
	base := itemFilters.Build(map[string]string{"ownerId": "2"})
	narrowed := base.With(Where("done = ?", false))
	assert.Len(t, base, 1)
	assert.Len(t, narrowed, 2)

	rows, err := FindAll[item](db, ListQuery{
		Where:     narrowed,
		Select:    []string{"item_id", "owner_id", "title"},
		Order:     "item_id DESC",
		Relations: []Relation{{Name: "Owner", Columns: []string{"owner_id", "name"}}},
		Limit:     1,
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(5), rows[0].ID)
	assert.Zero(t, rows[0].Qty)
	require.NotNil(t, rows[0].Owner)
	assert.Equal(t, "Budi", rows[0].Owner.Name)
}
