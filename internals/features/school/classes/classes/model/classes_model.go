// file: internals/features/school/classes/classes/model/classes_model.go
package model

import (
	"time"

	academics "schoolku_backend/internals/features/school/academics/model"
)

// ClassModel merepresentasikan tabel `classes`
type ClassModel struct {
	// PK
	ID int64 `json:"classId" gorm:"column:class_id;primaryKey;autoIncrement"`

	// Identitas; (class_name, section, academic_year) unik
	ClassName    string `json:"className"    gorm:"column:class_name;type:varchar(120);not null;uniqueIndex:uq_classes_name_section_year"`
	Section      string `json:"section"      gorm:"column:section;type:varchar(20);not null;uniqueIndex:uq_classes_name_section_year"`
	AcademicYear string `json:"academicYear" gorm:"column:academic_year;type:varchar(20);not null;uniqueIndex:uq_classes_name_section_year;index"`

	// Wali kelas & kapasitas
	ClassTeacherID *int64 `json:"classTeacherId" gorm:"column:class_teacher_id;index"`
	MaxStudents    *int   `json:"maxStudents"    gorm:"column:max_students"` // > 0 bila diisi

	Active bool `json:"active" gorm:"column:active;not null"`

	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"column:updated_at;autoUpdateTime"`

	// Counter (subquery, read-only)
	StudentCount    int64 `json:"studentCount"    gorm:"->;-:migration;column:student_count"`
	AttendanceCount int64 `json:"attendanceCount" gorm:"->;-:migration;column:attendance_count"`
	MarkCount       int64 `json:"markCount"       gorm:"->;-:migration;column:mark_count"`
	FeeCount        int64 `json:"feeCount"        gorm:"->;-:migration;column:fee_count"`

	ClassTeacher *academics.TeacherBrief `json:"classTeacher" gorm:"foreignKey:ClassTeacherID;references:ID"`
}

func (ClassModel) TableName() string { return "classes" }

// CountColumns selects every class column plus the child counters.
var CountColumns = []string{
	"classes.*",
	"(SELECT COUNT(*) FROM students WHERE students.class_id = classes.class_id) AS student_count",
	"(SELECT COUNT(*) FROM attendance WHERE attendance.class_id = classes.class_id) AS attendance_count",
	"(SELECT COUNT(*) FROM marks WHERE marks.class_id = classes.class_id) AS mark_count",
	"(SELECT COUNT(*) FROM fees WHERE fees.class_id = classes.class_id) AS fee_count",
}

// DisplayName is "className - section".
func (m ClassModel) DisplayName() string {
	return m.ClassName + " - " + m.Section
}
