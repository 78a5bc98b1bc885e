// file: internals/features/school/academics/model/reference_model.go
package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Reference tables. They have no routes of their own; classes, fees and
// syllabus read them for existence checks and relation summaries.

// StudentModel merepresentasikan tabel `students`
type StudentModel struct {
	ID            int64     `json:"id"                      gorm:"column:student_id;primaryKey;autoIncrement"`
	Name          string    `json:"name"                    gorm:"column:name;type:varchar(120);not null"`
	Email         *string   `json:"email,omitempty"         gorm:"column:email;type:varchar(160)"`
	Phone         *string   `json:"phone,omitempty"         gorm:"column:phone;type:varchar(40)"`
	FatherName    *string   `json:"fatherName,omitempty"    gorm:"column:father_name;type:varchar(120)"`
	MotherName    *string   `json:"motherName,omitempty"    gorm:"column:mother_name;type:varchar(120)"`
	ParentContact *string   `json:"parentContact,omitempty" gorm:"column:parent_contact;type:varchar(40)"`
	Address       *string   `json:"address,omitempty"       gorm:"column:address;type:text"`
	ClassID       *int64    `json:"classId,omitempty"       gorm:"column:class_id;index"`
	Status        string    `json:"status"                  gorm:"column:status;type:varchar(20);not null"`
	CreatedAt     time.Time `json:"createdAt"               gorm:"column:created_at;autoCreateTime"`
}

func (StudentModel) TableName() string { return "students" }

// TeacherModel merepresentasikan tabel `teachers`
type TeacherModel struct {
	ID            int64     `json:"id"                      gorm:"column:teacher_id;primaryKey;autoIncrement"`
	Name          string    `json:"name"                    gorm:"column:name;type:varchar(120);not null"`
	Email         *string   `json:"email,omitempty"         gorm:"column:email;type:varchar(160)"`
	PhoneNumber   *string   `json:"phoneNumber,omitempty"   gorm:"column:phone_number;type:varchar(40)"`
	Qualification *string   `json:"qualification,omitempty" gorm:"column:qualification;type:varchar(160)"`
	CreatedAt     time.Time `json:"createdAt"               gorm:"column:created_at;autoCreateTime"`
}

func (TeacherModel) TableName() string { return "teachers" }

// SubjectModel merepresentasikan tabel `subjects`
type SubjectModel struct {
	ID              int64  `json:"subjectId"       gorm:"column:subject_id;primaryKey;autoIncrement"`
	SubjectName     string `json:"subjectName"     gorm:"column:subject_name;type:varchar(120);not null"`
	SubjectCode     string `json:"subjectCode"     gorm:"column:subject_code;type:varchar(40);not null"`
	MaxMarksPerExam int    `json:"maxMarksPerExam" gorm:"column:max_marks_per_exam;not null"`
}

func (SubjectModel) TableName() string { return "subjects" }

// AttendanceModel merepresentasikan tabel `attendance`
type AttendanceModel struct {
	ID        int64          `json:"attendanceId" gorm:"column:attendance_id;primaryKey;autoIncrement"`
	StudentID int64          `json:"studentId"    gorm:"column:student_id;not null;index"`
	ClassID   int64          `json:"classId"      gorm:"column:class_id;not null;index"`
	MarkedBy  *int64         `json:"markedBy"     gorm:"column:marked_by"`
	Date      datatypes.Date `json:"date"         gorm:"column:date;type:date;not null"`
	Status    string         `json:"status"       gorm:"column:status;type:varchar(20);not null"`
}

func (AttendanceModel) TableName() string { return "attendance" }

// MarkModel merepresentasikan tabel `marks`
type MarkModel struct {
	ID            int64           `json:"marksId"       gorm:"column:marks_id;primaryKey;autoIncrement"`
	StudentID     int64           `json:"studentId"     gorm:"column:student_id;not null;index"`
	ClassID       int64           `json:"classId"       gorm:"column:class_id;not null;index"`
	SubjectID     int64           `json:"subjectId"     gorm:"column:subject_id;not null"`
	TeacherID     *int64          `json:"teacherId"     gorm:"column:teacher_id"`
	ExamType      string          `json:"examType"      gorm:"column:exam_type;type:varchar(40);not null"`
	MarksObtained decimal.Decimal `json:"marksObtained" gorm:"column:marks_obtained;type:numeric(6,2);not null"`
	MaxMarks      decimal.Decimal `json:"maxMarks"      gorm:"column:max_marks;type:numeric(6,2);not null"`
	EntryDate     time.Time       `json:"entryDate"     gorm:"column:entry_date;not null"`
}

func (MarkModel) TableName() string { return "marks" }
