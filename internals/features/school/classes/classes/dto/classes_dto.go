// file: internals/features/school/classes/classes/dto/classes_dto.go
package dto

import (
	"strings"

	academics "schoolku_backend/internals/features/school/academics/model"
	model "schoolku_backend/internals/features/school/classes/classes/model"
	helper "schoolku_backend/internals/helpers"
)

/*
=========================================================
REQUEST: CREATE
=========================================================
*/
type CreateClassRequest struct {
	ClassID        *int64 `json:"classId"        validate:"omitempty,gt=0"`
	ClassName      string `json:"className"      validate:"required,max=120"`
	Section        string `json:"section"        validate:"required,max=20"`
	AcademicYear   string `json:"academicYear"   validate:"required,max=20"`
	ClassTeacherID *int64 `json:"classTeacherId" validate:"omitempty,gt=0"`
	MaxStudents    *int   `json:"maxStudents"`
	Active         *bool  `json:"active"`
}

func (r *CreateClassRequest) Normalize() {
	r.ClassName = strings.TrimSpace(r.ClassName)
	r.Section = strings.TrimSpace(r.Section)
	r.AcademicYear = strings.TrimSpace(r.AcademicYear)
}

func (r *CreateClassRequest) Validate() error {
	if r.MaxStudents != nil && *r.MaxStudents <= 0 {
		return helper.Validation("maxStudents must be a positive integer")
	}
	return helper.Validate.Struct(r)
}

func (r CreateClassRequest) ToModel() model.ClassModel {
	m := model.ClassModel{
		ClassName:      r.ClassName,
		Section:        r.Section,
		AcademicYear:   r.AcademicYear,
		ClassTeacherID: r.ClassTeacherID,
		MaxStudents:    r.MaxStudents,
		Active:         true,
	}
	if r.ClassID != nil {
		m.ID = *r.ClassID
	}
	if r.Active != nil {
		m.Active = *r.Active
	}
	return m
}

/*
=========================================================
REQUEST: UPDATE (allow-list)
=========================================================
*/
type UpdateClassRequest struct {
	ClassName      *string                  `json:"className"`
	Section        *string                  `json:"section"`
	AcademicYear   *string                  `json:"academicYear"`
	ClassTeacherID helper.PatchField[int64] `json:"classTeacherId"`
	MaxStudents    helper.PatchField[int]   `json:"maxStudents"`
	Active         *bool                    `json:"active"`
}

func (r *UpdateClassRequest) Normalize() {
	for _, p := range []**string{&r.ClassName, &r.Section, &r.AcademicYear} {
		if *p != nil {
			s := strings.TrimSpace(**p)
			*p = &s
		}
	}
}

func (r *UpdateClassRequest) Validate() error {
	if r.ClassName != nil && (*r.ClassName == "" || len(*r.ClassName) > 120) {
		return helper.Validation("className must be 1-120 characters")
	}
	if r.Section != nil && (*r.Section == "" || len(*r.Section) > 20) {
		return helper.Validation("section must be 1-20 characters")
	}
	if r.AcademicYear != nil && (*r.AcademicYear == "" || len(*r.AcademicYear) > 20) {
		return helper.Validation("academicYear must be 1-20 characters")
	}
	if v, ok := r.MaxStudents.Get(); ok && v != nil && *v <= 0 {
		return helper.Validation("maxStudents must be a positive integer")
	}
	if v, ok := r.ClassTeacherID.Get(); ok && v != nil && *v <= 0 {
		return helper.Validation("classTeacherId must be a positive integer")
	}
	return nil
}

// Apply writes the present fields onto m and returns the column map for Updates.
func (r UpdateClassRequest) Apply(m *model.ClassModel) map[string]any {
	cols := map[string]any{}
	if r.ClassName != nil {
		m.ClassName = *r.ClassName
		cols["class_name"] = m.ClassName
	}
	if r.Section != nil {
		m.Section = *r.Section
		cols["section"] = m.Section
	}
	if r.AcademicYear != nil {
		m.AcademicYear = *r.AcademicYear
		cols["academic_year"] = m.AcademicYear
	}
	if v, ok := r.ClassTeacherID.Get(); ok {
		m.ClassTeacherID = v
		cols["class_teacher_id"] = v
	}
	if v, ok := r.MaxStudents.Get(); ok {
		m.MaxStudents = v
		cols["max_students"] = v
	}
	if r.Active != nil {
		m.Active = *r.Active
		cols["active"] = m.Active
	}
	return cols
}

/*
=========================================================
RESPONSE
=========================================================
*/

// ClassDetail is the single-class payload with its child collections.
type ClassDetail struct {
	model.ClassModel
	Students   []academics.StudentBrief    `json:"students"`
	Attendance []academics.AttendanceBrief `json:"attendance"`
	Marks      []academics.MarkBrief       `json:"marks"`
	Fees       []academics.FeeBrief        `json:"fees"`
	Syllabus   []academics.SyllabusBrief   `json:"syllabus"`
}

type YearCount struct {
	AcademicYear string `json:"academicYear"`
	Count        int64  `json:"count"`
}

type Enrollment struct {
	ClassID               int64  `json:"classId"`
	ClassName             string `json:"className"`
	CurrentStudents       int64  `json:"currentStudents"`
	MaxStudents           int    `json:"maxStudents"`
	UtilizationPercentage int    `json:"utilizationPercentage"`
}

type ClassStats struct {
	Total            int64        `json:"total"`
	YearDistribution []YearCount  `json:"yearDistribution"`
	EnrollmentStats  []Enrollment `json:"enrollmentStats"`
}

func NewEnrollment(m model.ClassModel) Enrollment {
	e := Enrollment{
		ClassID:               m.ID,
		ClassName:             m.DisplayName(),
		CurrentStudents:       m.StudentCount,
		UtilizationPercentage: helper.Utilization(m.StudentCount, m.MaxStudents),
	}
	if m.MaxStudents != nil {
		e.MaxStudents = *m.MaxStudents
	}
	return e
}
