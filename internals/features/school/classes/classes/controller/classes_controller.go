// file: internals/features/school/classes/classes/controller/classes_controller.go
package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	academics "schoolku_backend/internals/features/school/academics/model"
	d "schoolku_backend/internals/features/school/classes/classes/dto"
	m "schoolku_backend/internals/features/school/classes/classes/model"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/query"
)

type ClassController struct {
	DB *gorm.DB
}

func NewClassController(db *gorm.DB) *ClassController {
	return &ClassController{DB: db}
}

const (
	msgClassNotFound  = "Class not found"
	msgClassDuplicate = "Class with this name and section already exists for the academic year"
)

/* =========================
   List
   GET /api/classes
   ========================= */

func (ctl *ClassController) List(c *fiber.Ctx) error {
	p := helper.ParsePage(c, DefaultLimit)

	rows, total, err := query.FindPage[m.ClassModel](ctl.DB.WithContext(c.UserContext()), query.ListQuery{
		Where:     classFilters.Build(c.Queries()),
		Select:    m.CountColumns,
		Order:     classOrder,
		Relations: listRelations,
		Offset:    p.Offset(),
		Limit:     p.Limit,
	})
	if err != nil {
		return helper.Internal(err, "list classes")
	}
	return helper.JsonList(c, rows, helper.BuildPagination(total, p))
}

/* =========================
   Detail
   GET /api/classes/:id
   ========================= */

func (ctl *ClassController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return err
	}
	db := ctl.DB.WithContext(c.UserContext())

	var out d.ClassDetail
	if err := query.Expand(db.Model(&m.ClassModel{}).Select(m.CountColumns), detailRelations...).
		Where("classes.class_id = ?", id).
		Take(&out.ClassModel).Error; err != nil {
		return helper.MapDBError(err, msgClassNotFound, "")
	}

	if out.Students, err = query.FindAll[academics.StudentBrief](db, studentsOf(id)); err != nil {
		return helper.Internal(err, "class students")
	}
	if out.Attendance, err = query.FindAll[academics.AttendanceBrief](db, attendanceOf(id)); err != nil {
		return helper.Internal(err, "class attendance")
	}
	if out.Marks, err = query.FindAll[academics.MarkBrief](db, marksOf(id)); err != nil {
		return helper.Internal(err, "class marks")
	}
	if out.Fees, err = query.FindAll[academics.FeeBrief](db, feesOf(id)); err != nil {
		return helper.Internal(err, "class fees")
	}
	if out.Syllabus, err = query.FindAll[academics.SyllabusBrief](db, syllabusOf(id)); err != nil {
		return helper.Internal(err, "class syllabus")
	}
	return helper.JsonOK(c, out)
}

/* =========================
   Create
   POST /api/classes
   ========================= */

func (ctl *ClassController) Create(c *fiber.Ctx) error {
	var req d.CreateClassRequest
	if err := helper.Bind(c, &req); err != nil {
		return err
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return err
	}
	db := ctl.DB.WithContext(c.UserContext())

	if req.ClassID != nil {
		taken, err := helper.Exists(db, &m.ClassModel{}, "class_id = ?", *req.ClassID)
		if err != nil {
			return helper.Internal(err, "check class id")
		}
		if taken {
			return helper.Conflict("Class ID already exists")
		}
	}
	if req.ClassTeacherID != nil {
		if err := helper.MustExist(db, &academics.TeacherModel{}, "Class teacher not found", "teacher_id = ?", *req.ClassTeacherID); err != nil {
			return err
		}
	}
	if err := ctl.ensureUnique(db, req.ClassName, req.Section, req.AcademicYear, 0); err != nil {
		return err
	}

	row := req.ToModel()
	if err := db.Create(&row).Error; err != nil {
		return helper.MapDBError(err, msgClassNotFound, msgClassDuplicate)
	}
	log.Printf("[INFO] class created id=%d %s", row.ID, row.DisplayName())

	out, err := ctl.reload(db, row.ID)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "class", out, "Class created successfully")
}

/* =========================
   Update
   PUT /api/classes/:id
   ========================= */

func (ctl *ClassController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return err
	}
	var req d.UpdateClassRequest
	if err := helper.BindStrict(c, &req); err != nil {
		return err
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return err
	}
	db := ctl.DB.WithContext(c.UserContext())

	var row m.ClassModel
	if err := db.Where("class_id = ?", id).Take(&row).Error; err != nil {
		return helper.MapDBError(err, msgClassNotFound, "")
	}
	before := row

	cols := req.Apply(&row)
	if len(cols) == 0 {
		return helper.Validation("No valid fields to update")
	}

	if v, ok := req.ClassTeacherID.Get(); ok && v != nil {
		if err := helper.MustExist(db, &academics.TeacherModel{}, "Class teacher not found", "teacher_id = ?", *v); err != nil {
			return err
		}
	}
	if row.ClassName != before.ClassName || row.Section != before.Section || row.AcademicYear != before.AcademicYear {
		if err := ctl.ensureUnique(db, row.ClassName, row.Section, row.AcademicYear, id); err != nil {
			return err
		}
	}

	if err := db.Model(&m.ClassModel{}).Where("class_id = ?", id).Updates(cols).Error; err != nil {
		return helper.MapDBError(err, msgClassNotFound, msgClassDuplicate)
	}

	out, err := ctl.reload(db, id)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "class", out, "Class updated successfully")
}

/* =========================
   Delete
   DELETE /api/classes/:id
   ========================= */

func (ctl *ClassController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return err
	}
	db := ctl.DB.WithContext(c.UserContext())

	if err := helper.MustExist(db, &m.ClassModel{}, msgClassNotFound, "class_id = ?", id); err != nil {
		return err
	}
	enrolled, err := helper.Exists(db, &academics.StudentModel{}, "class_id = ?", id)
	if err != nil {
		return helper.Internal(err, "count class students")
	}
	if enrolled {
		return helper.Invariant("Cannot delete class with enrolled students. Please transfer students first.")
	}

	if err := db.Where("class_id = ?", id).Delete(&m.ClassModel{}).Error; err != nil {
		return helper.Internal(err, "delete class")
	}
	log.Printf("[INFO] class deleted id=%d", id)
	return helper.JsonMessage(c, "Class deleted successfully")
}

/* =========================
   Stats
   GET /api/classes/stats/overview
   ========================= */

func (ctl *ClassController) Stats(c *fiber.Ctx) error {
	db := ctl.DB.WithContext(c.UserContext())
	out := d.ClassStats{YearDistribution: []d.YearCount{}, EnrollmentStats: []d.Enrollment{}}

	if err := db.Model(&m.ClassModel{}).Count(&out.Total).Error; err != nil {
		return helper.Internal(err, "count classes")
	}

	if err := db.Model(&m.ClassModel{}).
		Select("academic_year, COUNT(*) AS count").
		Group("academic_year").
		Order("academic_year DESC").
		Scan(&out.YearDistribution).Error; err != nil {
		return helper.Internal(err, "class year distribution")
	}

	classes, err := query.FindAll[m.ClassModel](db, query.ListQuery{
		Select: []string{
			"classes.class_id", "classes.class_name", "classes.section", "classes.max_students",
			m.CountColumns[1],
		},
		Order: classOrder,
	})
	if err != nil {
		return helper.Internal(err, "class enrollment")
	}
	for _, row := range classes {
		out.EnrollmentStats = append(out.EnrollmentStats, d.NewEnrollment(row))
	}
	return helper.JsonOK(c, out)
}

/* =========================
   helpers
   ========================= */

func (ctl *ClassController) ensureUnique(db *gorm.DB, name, section, year string, exceptID int64) error {
	tx := db.Model(&m.ClassModel{}).
		Where("class_name = ? AND section = ? AND academic_year = ?", name, section, year)
	if exceptID > 0 {
		tx = tx.Where("class_id <> ?", exceptID)
	}
	var n int64
	if err := tx.Count(&n).Error; err != nil {
		return helper.Internal(err, "check class uniqueness")
	}
	if n > 0 {
		return helper.Conflict(msgClassDuplicate)
	}
	return nil
}

func (ctl *ClassController) reload(db *gorm.DB, id int64) (m.ClassModel, error) {
	var row m.ClassModel
	err := query.Expand(db.Model(&m.ClassModel{}).Select(m.CountColumns), listRelations...).
		Where("classes.class_id = ?", id).
		Take(&row).Error
	if err != nil {
		return row, helper.Internal(errors.WithMessagef(err, "reload class %d", id), "load class")
	}
	return row, nil
}
