// file: internals/features/school/academics/model/brief_model.go
package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Brief models are read-only projections used as preload targets. They map to
// the same tables as the full models but never carry credentials or columns
// the caller did not ask for: every optional column is omitempty so an
// unselected column simply disappears from the payload.

type StudentBrief struct {
	ID            int64   `json:"id"                      gorm:"column:student_id;primaryKey"`
	Name          string  `json:"name"                    gorm:"column:name"`
	Email         *string `json:"email,omitempty"         gorm:"column:email"`
	Phone         *string `json:"phone,omitempty"         gorm:"column:phone"`
	FatherName    *string `json:"fatherName,omitempty"    gorm:"column:father_name"`
	MotherName    *string `json:"motherName,omitempty"    gorm:"column:mother_name"`
	ParentContact *string `json:"parentContact,omitempty" gorm:"column:parent_contact"`
	Address       *string `json:"address,omitempty"       gorm:"column:address"`
	ClassID       *int64  `json:"classId,omitempty"       gorm:"column:class_id"`
	Status        string  `json:"status,omitempty"        gorm:"column:status"`
}

func (StudentBrief) TableName() string { return "students" }

type TeacherBrief struct {
	ID            int64   `json:"id"                      gorm:"column:teacher_id;primaryKey"`
	Name          string  `json:"name"                    gorm:"column:name"`
	Email         *string `json:"email,omitempty"         gorm:"column:email"`
	PhoneNumber   *string `json:"phoneNumber,omitempty"   gorm:"column:phone_number"`
	Qualification *string `json:"qualification,omitempty" gorm:"column:qualification"`
}

func (TeacherBrief) TableName() string { return "teachers" }

type SubjectBrief struct {
	ID              int64  `json:"subjectId"                 gorm:"column:subject_id;primaryKey"`
	SubjectName     string `json:"subjectName"               gorm:"column:subject_name"`
	SubjectCode     string `json:"subjectCode,omitempty"     gorm:"column:subject_code"`
	MaxMarksPerExam *int   `json:"maxMarksPerExam,omitempty" gorm:"column:max_marks_per_exam"`
}

func (SubjectBrief) TableName() string { return "subjects" }

type ClassBrief struct {
	ID           int64  `json:"classId"                gorm:"column:class_id;primaryKey"`
	ClassName    string `json:"className"              gorm:"column:class_name"`
	Section      string `json:"section"                gorm:"column:section"`
	AcademicYear string `json:"academicYear,omitempty" gorm:"column:academic_year"`
}

func (ClassBrief) TableName() string { return "classes" }

type AttendanceBrief struct {
	ID        int64          `json:"attendanceId"      gorm:"column:attendance_id;primaryKey"`
	StudentID int64          `json:"studentId"         gorm:"column:student_id"`
	ClassID   int64          `json:"classId"           gorm:"column:class_id"`
	MarkedBy  *int64         `json:"markedBy"          gorm:"column:marked_by"`
	Date      datatypes.Date `json:"date"              gorm:"column:date"`
	Status    string         `json:"status"            gorm:"column:status"`
	Student   *StudentBrief  `json:"student,omitempty" gorm:"foreignKey:StudentID;references:ID"`
	Teacher   *TeacherBrief  `json:"teacher,omitempty" gorm:"foreignKey:MarkedBy;references:ID"`
}

func (AttendanceBrief) TableName() string { return "attendance" }

type MarkBrief struct {
	ID            int64           `json:"marksId"           gorm:"column:marks_id;primaryKey"`
	StudentID     int64           `json:"studentId"         gorm:"column:student_id"`
	ClassID       int64           `json:"classId"           gorm:"column:class_id"`
	SubjectID     int64           `json:"subjectId"         gorm:"column:subject_id"`
	TeacherID     *int64          `json:"teacherId"         gorm:"column:teacher_id"`
	ExamType      string          `json:"examType"          gorm:"column:exam_type"`
	MarksObtained decimal.Decimal `json:"marksObtained"     gorm:"column:marks_obtained"`
	MaxMarks      decimal.Decimal `json:"maxMarks"          gorm:"column:max_marks"`
	EntryDate     time.Time       `json:"entryDate"         gorm:"column:entry_date"`
	Student       *StudentBrief   `json:"student,omitempty" gorm:"foreignKey:StudentID;references:ID"`
	Subject       *SubjectBrief   `json:"subject,omitempty" gorm:"foreignKey:SubjectID;references:ID"`
	Teacher       *TeacherBrief   `json:"teacher,omitempty" gorm:"foreignKey:TeacherID;references:ID"`
}

func (MarkBrief) TableName() string { return "marks" }

type FeeBrief struct {
	ID           int64           `json:"feeId"             gorm:"column:fee_id;primaryKey"`
	StudentID    int64           `json:"studentId"         gorm:"column:student_id"`
	ClassID      int64           `json:"classId"           gorm:"column:class_id"`
	FeeType      string          `json:"feeType"           gorm:"column:fee_type"`
	AmountDue    decimal.Decimal `json:"amountDue"         gorm:"column:amount_due"`
	AmountPaid   decimal.Decimal `json:"amountPaid"        gorm:"column:amount_paid"`
	Balance      decimal.Decimal `json:"balance"           gorm:"column:balance"`
	AcademicYear string          `json:"academicYear"      gorm:"column:academic_year"`
	PaymentDate  *time.Time      `json:"paymentDate"       gorm:"column:payment_date"`
	CreatedAt    time.Time       `json:"createdAt"         gorm:"column:created_at"`
	Student      *StudentBrief   `json:"student,omitempty" gorm:"foreignKey:StudentID;references:ID"`
}

func (FeeBrief) TableName() string { return "fees" }

type SyllabusBrief struct {
	ID                   int64         `json:"syllabusId"        gorm:"column:syllabus_id;primaryKey"`
	ClassID              int64         `json:"classId"           gorm:"column:class_id"`
	SubjectID            int64         `json:"subjectId"         gorm:"column:subject_id"`
	TeacherID            int64         `json:"teacherId"         gorm:"column:teacher_id"`
	UnitName             string        `json:"unitName"          gorm:"column:unit_name"`
	CompletionStatus     string        `json:"completionStatus"  gorm:"column:completion_status"`
	CompletionPercentage int           `json:"completionPercentage" gorm:"column:completion_percentage"`
	CurrentTopic         *string       `json:"currentTopic"      gorm:"column:current_topic"`
	LastUpdated          time.Time     `json:"lastUpdated"       gorm:"column:last_updated"`
	Subject              *SubjectBrief `json:"subject,omitempty" gorm:"foreignKey:SubjectID;references:ID"`
	Teacher              *TeacherBrief `json:"teacher,omitempty" gorm:"foreignKey:TeacherID;references:ID"`
}

func (SyllabusBrief) TableName() string { return "syllabus" }
