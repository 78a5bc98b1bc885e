package database

import (
	"log"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	feeModel "schoolku_backend/internals/features/finance/fees/model"
	academics "schoolku_backend/internals/features/school/academics/model"
	classModel "schoolku_backend/internals/features/school/classes/classes/model"
	syllabusModel "schoolku_backend/internals/features/school/syllabus/syllabus/model"
	userModel "schoolku_backend/internals/features/users/user/model"
)

// Models lists every table owned by this service, parents first.
func Models() []any {
	return []any{
		&academics.TeacherModel{},
		&academics.SubjectModel{},
		&classModel.ClassModel{},
		&academics.StudentModel{},
		&academics.AttendanceModel{},
		&academics.MarkModel{},
		&feeModel.FeeModel{},
		&syllabusModel.SyllabusModel{},
		&userModel.UserModel{},
	}
}

// AutoMigrate creates or extends the tables for local runs and tests. It is
// not a replacement for reviewed SQL migrations.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return errors.Wrap(err, "auto migrate")
	}
	log.Printf("[INFO] auto-migrated %d tables", len(Models()))
	return nil
}
