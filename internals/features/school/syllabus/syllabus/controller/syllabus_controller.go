// file: internals/features/school/syllabus/syllabus/controller/syllabus_controller.go
package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	academics "schoolku_backend/internals/features/school/academics/model"
	d "schoolku_backend/internals/features/school/syllabus/syllabus/dto"
	m "schoolku_backend/internals/features/school/syllabus/syllabus/model"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/query"
)

type SyllabusController struct {
	DB *gorm.DB
}

func NewSyllabusController(db *gorm.DB) *SyllabusController {
	return &SyllabusController{DB: db}
}

const (
	msgSyllabusNotFound  = "Syllabus record not found"
	msgSyllabusDuplicate = "Syllabus record already exists for this class, subject, and unit"
)

/* =========================
   List
   GET /api/syllabus
   ========================= */

func (ctl *SyllabusController) List(c *fiber.Ctx) error {
	p := helper.ParsePage(c, DefaultLimit)

	rows, total, err := query.FindPage[m.SyllabusModel](ctl.DB.WithContext(c.UserContext()), query.ListQuery{
		Where:     syllabusFilters.Build(c.Queries()),
		Order:     syllabusOrder,
		Relations: listRelations,
		Offset:    p.Offset(),
		Limit:     p.Limit,
	})
	if err != nil {
		return helper.Internal(err, "list syllabus")
	}
	return helper.JsonList(c, rows, helper.BuildPagination(total, p))
}

/* =========================
   Detail
   GET /api/syllabus/:id
   ========================= */

func (ctl *SyllabusController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return err
	}
	row, err := ctl.load(ctl.DB.WithContext(c.UserContext()), id, detailRelations)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, row)
}

/* =========================
   Create
   POST /api/syllabus
   ========================= */

func (ctl *SyllabusController) Create(c *fiber.Ctx) error {
	var req d.CreateSyllabusRequest
	if err := helper.Bind(c, &req); err != nil {
		return err
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return err
	}
	db := ctl.DB.WithContext(c.UserContext())

	if err := helper.MustExist(db, &academics.ClassBrief{}, "Class not found", "class_id = ?", req.ClassID); err != nil {
		return err
	}
	if err := helper.MustExist(db, &academics.SubjectModel{}, "Subject not found", "subject_id = ?", req.SubjectID); err != nil {
		return err
	}
	if err := helper.MustExist(db, &academics.TeacherModel{}, "Teacher not found", "teacher_id = ?", req.TeacherID); err != nil {
		return err
	}
	if err := ctl.ensureUnique(db, req.ClassID, req.SubjectID, req.UnitName, 0); err != nil {
		return err
	}

	row := req.ToModel(time.Now().UTC())
	if err := db.Create(&row).Error; err != nil {
		return helper.MapDBError(err, msgSyllabusNotFound, msgSyllabusDuplicate)
	}
	log.Printf("[INFO] syllabus created id=%d class=%d subject=%d unit=%q", row.ID, row.ClassID, row.SubjectID, row.UnitName)

	out, err := ctl.load(db, row.ID, writeRelations)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "syllabus", out, "Syllabus record created successfully")
}

/* =========================
   Update
   PUT /api/syllabus/:id
   ========================= */

func (ctl *SyllabusController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return err
	}
	var req d.UpdateSyllabusRequest
	if err := helper.BindStrict(c, &req); err != nil {
		return err
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return err
	}
	db := ctl.DB.WithContext(c.UserContext())

	var row m.SyllabusModel
	if err := db.Where("syllabus_id = ?", id).Take(&row).Error; err != nil {
		return helper.MapDBError(err, msgSyllabusNotFound, "")
	}
	before := row

	cols := req.Apply(&row, time.Now().UTC())
	if len(cols) == 0 {
		return helper.Validation("No valid fields to update")
	}

	if req.TeacherID != nil {
		if err := helper.MustExist(db, &academics.TeacherModel{}, "Teacher not found", "teacher_id = ?", *req.TeacherID); err != nil {
			return err
		}
	}
	if row.UnitName != before.UnitName {
		if err := ctl.ensureUnique(db, row.ClassID, row.SubjectID, row.UnitName, id); err != nil {
			return err
		}
	}

	if err := db.Model(&m.SyllabusModel{}).Where("syllabus_id = ?", id).Updates(cols).Error; err != nil {
		return helper.MapDBError(err, msgSyllabusNotFound, msgSyllabusDuplicate)
	}

	out, err := ctl.load(db, id, writeRelations)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "syllabus", out, "Syllabus record updated successfully")
}

/* =========================
   Delete
   DELETE /api/syllabus/:id
   ========================= */

func (ctl *SyllabusController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return err
	}
	db := ctl.DB.WithContext(c.UserContext())

	res := db.Where("syllabus_id = ?", id).Delete(&m.SyllabusModel{})
	if res.Error != nil {
		return helper.Internal(res.Error, "delete syllabus")
	}
	if res.RowsAffected == 0 {
		return helper.NotFound(msgSyllabusNotFound)
	}
	log.Printf("[INFO] syllabus deleted id=%d", id)
	return helper.JsonMessage(c, "Syllabus record deleted successfully")
}

/* =========================
   helpers
   ========================= */

func (ctl *SyllabusController) load(db *gorm.DB, id int64, rels []query.Relation) (m.SyllabusModel, error) {
	var row m.SyllabusModel
	if err := query.Expand(db, rels...).Where("syllabus.syllabus_id = ?", id).Take(&row).Error; err != nil {
		return row, helper.MapDBError(err, msgSyllabusNotFound, "")
	}
	return row, nil
}

func (ctl *SyllabusController) ensureUnique(db *gorm.DB, classID, subjectID int64, unit string, exceptID int64) error {
	tx := db.Model(&m.SyllabusModel{}).
		Where("class_id = ? AND subject_id = ? AND unit_name = ?", classID, subjectID, unit)
	if exceptID > 0 {
		tx = tx.Where("syllabus_id <> ?", exceptID)
	}
	var n int64
	if err := tx.Count(&n).Error; err != nil {
		return helper.Internal(err, "check syllabus uniqueness")
	}
	if n > 0 {
		return helper.Conflict(msgSyllabusDuplicate)
	}
	return nil
}
