// file: internals/features/school/syllabus/syllabus/model/syllabus_model.go
package model

import (
	"time"

	academics "schoolku_backend/internals/features/school/academics/model"
)

const (
	StatusNotStarted = "not_started"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"

	MinPercentage = 0
	MaxPercentage = 100
)

// Statuses is the completion_status enum, in display order.
var Statuses = []string{StatusNotStarted, StatusInProgress, StatusCompleted}

func ValidStatus(s string) bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

func ValidPercentage(p int) bool {
	return p >= MinPercentage && p <= MaxPercentage
}

// SyllabusModel merepresentasikan tabel `syllabus`
type SyllabusModel struct {
	ID int64 `json:"syllabusId" gorm:"column:syllabus_id;primaryKey;autoIncrement"`

	// (class_id, subject_id, unit_name) unik
	ClassID   int64  `json:"classId"   gorm:"column:class_id;not null;uniqueIndex:uq_syllabus_class_subject_unit;index"`
	SubjectID int64  `json:"subjectId" gorm:"column:subject_id;not null;uniqueIndex:uq_syllabus_class_subject_unit;index"`
	UnitName  string `json:"unitName"  gorm:"column:unit_name;type:varchar(200);not null;uniqueIndex:uq_syllabus_class_subject_unit"`

	TeacherID int64 `json:"teacherId" gorm:"column:teacher_id;not null;index"`

	// Progres
	CompletionStatus     string  `json:"completionStatus"     gorm:"column:completion_status;type:varchar(20);not null;default:'not_started'"`
	CompletionPercentage int     `json:"completionPercentage" gorm:"column:completion_percentage;not null;default:0"` // 0..100
	CurrentTopic         *string `json:"currentTopic"         gorm:"column:current_topic;type:varchar(255)"`

	LastUpdated time.Time `json:"lastUpdated" gorm:"column:last_updated;not null;index"`
	CreatedAt   time.Time `json:"createdAt"   gorm:"column:created_at;autoCreateTime"`

	Class   *academics.ClassBrief   `json:"class,omitempty"   gorm:"foreignKey:ClassID;references:ID"`
	Subject *academics.SubjectBrief `json:"subject,omitempty" gorm:"foreignKey:SubjectID;references:ID"`
	Teacher *academics.TeacherBrief `json:"teacher,omitempty" gorm:"foreignKey:TeacherID;references:ID"`
}

func (SyllabusModel) TableName() string { return "syllabus" }
