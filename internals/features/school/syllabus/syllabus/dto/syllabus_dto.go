// file: internals/features/school/syllabus/syllabus/dto/syllabus_dto.go
package dto

import (
	"strings"
	"time"

	model "schoolku_backend/internals/features/school/syllabus/syllabus/model"
	helper "schoolku_backend/internals/helpers"
)

const (
	msgRequired   = "All required fields must be provided"
	msgPercentage = "Completion percentage must be between 0 and 100"
	msgStatus     = "Completion status must be one of: not_started, in_progress, completed"
)

/*
=========================================================
REQUEST: CREATE
=========================================================
*/
type CreateSyllabusRequest struct {
	ClassID              int64   `json:"classId"              validate:"required,gt=0"`
	SubjectID            int64   `json:"subjectId"            validate:"required,gt=0"`
	TeacherID            int64   `json:"teacherId"            validate:"required,gt=0"`
	UnitName             string  `json:"unitName"             validate:"required,max=200"`
	CompletionStatus     string  `json:"completionStatus"`
	CompletionPercentage *int    `json:"completionPercentage"`
	CurrentTopic         *string `json:"currentTopic"         validate:"omitempty,max=255"`
}

func (r *CreateSyllabusRequest) Normalize() {
	r.UnitName = strings.TrimSpace(r.UnitName)
	r.CompletionStatus = strings.ToLower(strings.TrimSpace(r.CompletionStatus))
	if r.CompletionStatus == "" {
		r.CompletionStatus = model.StatusNotStarted
	}
	r.CurrentTopic = helper.TrimPtr(r.CurrentTopic)
}

func (r *CreateSyllabusRequest) Validate() error {
	if r.ClassID == 0 || r.SubjectID == 0 || r.TeacherID == 0 || r.UnitName == "" {
		return helper.Validation(msgRequired)
	}
	if r.CompletionPercentage != nil && !model.ValidPercentage(*r.CompletionPercentage) {
		return helper.Validation(msgPercentage)
	}
	if !model.ValidStatus(r.CompletionStatus) {
		return helper.Validation(msgStatus)
	}
	return helper.Validate.Struct(r)
}

func (r CreateSyllabusRequest) ToModel(now time.Time) model.SyllabusModel {
	m := model.SyllabusModel{
		ClassID:          r.ClassID,
		SubjectID:        r.SubjectID,
		TeacherID:        r.TeacherID,
		UnitName:         r.UnitName,
		CompletionStatus: r.CompletionStatus,
		CurrentTopic:     r.CurrentTopic,
		LastUpdated:      now,
	}
	if r.CompletionPercentage != nil {
		m.CompletionPercentage = *r.CompletionPercentage
	}
	return m
}

/*
=========================================================
REQUEST: UPDATE (allow-list)
=========================================================
*/
type UpdateSyllabusRequest struct {
	UnitName             *string                   `json:"unitName"`
	CompletionStatus     *string                   `json:"completionStatus"`
	CompletionPercentage *int                      `json:"completionPercentage"`
	CurrentTopic         helper.PatchField[string] `json:"currentTopic"`
	TeacherID            *int64                    `json:"teacherId"`
}

func (r *UpdateSyllabusRequest) Normalize() {
	r.UnitName = helper.TrimPtr(r.UnitName)
	if r.CompletionStatus != nil {
		s := strings.ToLower(strings.TrimSpace(*r.CompletionStatus))
		r.CompletionStatus = &s
	}
	if r.CurrentTopic.Value != nil {
		r.CurrentTopic.Value = helper.TrimPtr(r.CurrentTopic.Value)
	}
}

func (r *UpdateSyllabusRequest) Validate() error {
	if r.CompletionPercentage != nil && !model.ValidPercentage(*r.CompletionPercentage) {
		return helper.Validation(msgPercentage)
	}
	if r.CompletionStatus != nil && !model.ValidStatus(*r.CompletionStatus) {
		return helper.Validation(msgStatus)
	}
	if r.UnitName != nil && len(*r.UnitName) > 200 {
		return helper.Validation("unitName must be at most 200 characters")
	}
	if r.TeacherID != nil && *r.TeacherID <= 0 {
		return helper.Validation("teacherId must be a positive integer")
	}
	return nil
}

// Apply writes the present fields onto m and returns the column map for Updates.
// last_updated is only stamped when something else changed.
func (r UpdateSyllabusRequest) Apply(m *model.SyllabusModel, now time.Time) map[string]any {
	cols := map[string]any{}
	if r.UnitName != nil {
		m.UnitName = *r.UnitName
		cols["unit_name"] = m.UnitName
	}
	if r.CompletionStatus != nil {
		m.CompletionStatus = *r.CompletionStatus
		cols["completion_status"] = m.CompletionStatus
	}
	if r.CompletionPercentage != nil {
		m.CompletionPercentage = *r.CompletionPercentage
		cols["completion_percentage"] = m.CompletionPercentage
	}
	if v, ok := r.CurrentTopic.Get(); ok {
		m.CurrentTopic = v
		cols["current_topic"] = v
	}
	if r.TeacherID != nil {
		m.TeacherID = *r.TeacherID
		cols["teacher_id"] = m.TeacherID
	}
	if len(cols) > 0 {
		m.LastUpdated = now
		cols["last_updated"] = now
	}
	return cols
}

/*
=========================================================
RESPONSE: STATS
=========================================================
*/
type OverallProgress struct {
	TotalUnits      int64 `json:"totalUnits"`
	AverageProgress int   `json:"averageProgress"`
}

type StatusProgress struct {
	Status          string `json:"status"`
	Count           int64  `json:"count"`
	AverageProgress int    `json:"averageProgress"`
}

type ClassProgress struct {
	ClassID         int64  `json:"classId"`
	ClassName       string `json:"className"`
	AverageProgress int    `json:"averageProgress"`
	UnitCount       int64  `json:"unitCount"`
}

type SubjectProgress struct {
	SubjectID       int64  `json:"subjectId"`
	SubjectCode     string `json:"subjectCode"`
	SubjectName     string `json:"subjectName"`
	AverageProgress int    `json:"averageProgress"`
	UnitCount       int64  `json:"unitCount"`
}

type SyllabusStats struct {
	Overall             OverallProgress   `json:"overall"`
	StatusDistribution  []StatusProgress  `json:"statusDistribution"`
	ClassWiseProgress   []ClassProgress   `json:"classWiseProgress"`
	SubjectWiseProgress []SubjectProgress `json:"subjectWiseProgress"`
}
