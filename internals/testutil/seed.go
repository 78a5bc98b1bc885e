package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	academics "schoolku_backend/internals/features/school/academics/model"
	classModel "schoolku_backend/internals/features/school/classes/classes/model"
)

func SeedTeacher(t *testing.T, db *gorm.DB, name string) int64 {
	t.Helper()
	email := name + "@school.test"
	row := academics.TeacherModel{Name: name, Email: &email}
	require.NoError(t, db.Create(&row).Error)
	return row.ID
}

func SeedSubject(t *testing.T, db *gorm.DB, name, code string) int64 {
	t.Helper()
	row := academics.SubjectModel{SubjectName: name, SubjectCode: code}
	require.NoError(t, db.Create(&row).Error)
	return row.ID
}

// SeedClass inserts an active class; maxStudents 0 leaves the capacity unset.
func SeedClass(t *testing.T, db *gorm.DB, name, section, year string, maxStudents int) int64 {
	t.Helper()
	row := classModel.ClassModel{ClassName: name, Section: section, AcademicYear: year, Active: true}
	if maxStudents > 0 {
		row.MaxStudents = &maxStudents
	}
	require.NoError(t, db.Create(&row).Error)
	return row.ID
}

func SeedStudent(t *testing.T, db *gorm.DB, name string, classID int64) int64 {
	t.Helper()
	row := academics.StudentModel{Name: name, Status: "active"}
	if classID > 0 {
		row.ClassID = &classID
	}
	require.NoError(t, db.Create(&row).Error)
	return row.ID
}
