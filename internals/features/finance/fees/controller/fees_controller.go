// file: internals/features/finance/fees/controller/fees_controller.go
package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	d "schoolku_backend/internals/features/finance/fees/dto"
	m "schoolku_backend/internals/features/finance/fees/model"
	academics "schoolku_backend/internals/features/school/academics/model"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/query"
)

type FeeController struct {
	DB *gorm.DB
}

func NewFeeController(db *gorm.DB) *FeeController {
	return &FeeController{DB: db}
}

const (
	msgFeeNotFound  = "Fee record not found"
	msgFeeDuplicate = "Fee record already exists for this student, class, fee type, and academic year"
)

/* =========================
   List
   GET /api/fees
   ========================= */

func (ctl *FeeController) List(c *fiber.Ctx) error {
	p := helper.ParsePage(c, DefaultLimit)

	rows, total, err := query.FindPage[m.FeeModel](ctl.DB.WithContext(c.UserContext()), query.ListQuery{
		Where:     feeFilters.Build(c.Queries()),
		Order:     feeOrder,
		Relations: listRelations,
		Offset:    p.Offset(),
		Limit:     p.Limit,
	})
	if err != nil {
		return helper.Internal(err, "list fees")
	}
	return helper.JsonList(c, rows, helper.BuildPagination(total, p))
}

/* =========================
   List by student
   GET /api/fees/student/:studentId
   ========================= */

func (ctl *FeeController) ListByStudent(c *fiber.Ctx) error {
	studentID, err := helper.ParseID(c, "studentId")
	if err != nil {
		return err
	}
	p := helper.ParsePage(c, DefaultLimit)

	where := studentFeeFilters.Build(c.Queries()).With(query.Where("fees.student_id = ?", studentID))
	rows, total, err := query.FindPage[m.FeeModel](ctl.DB.WithContext(c.UserContext()), query.ListQuery{
		Where:     where,
		Order:     feeOrder,
		Relations: studentRouteRelations,
		Offset:    p.Offset(),
		Limit:     p.Limit,
	})
	if err != nil {
		return helper.Internal(err, "list student fees")
	}
	return helper.JsonList(c, rows, helper.BuildPagination(total, p))
}

/* =========================
   Detail
   GET /api/fees/:id
   ========================= */

func (ctl *FeeController) GetByID(c *fiber.Ctx) error {
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
   POST /api/fees
   ========================= */

func (ctl *FeeController) Create(c *fiber.Ctx) error {
	var req d.CreateFeeRequest
	if err := helper.Bind(c, &req); err != nil {
		return err
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return err
	}
	db := ctl.DB.WithContext(c.UserContext())

	if err := helper.MustExist(db, &academics.StudentModel{}, "Student not found", "student_id = ?", req.StudentID); err != nil {
		return err
	}
	if err := helper.MustExist(db, &academics.ClassBrief{}, "Class not found", "class_id = ?", req.ClassID); err != nil {
		return err
	}
	if err := ctl.ensureUnique(db, req.StudentID, req.ClassID, req.FeeType, req.AcademicYear, 0); err != nil {
		return err
	}

	row, err := m.NewFee(req.StudentID, req.ClassID, req.FeeType, req.AcademicYear, *req.AmountDue)
	if err != nil {
		return helper.Validation("Amount due must be greater than 0")
	}
	if err := db.Create(&row).Error; err != nil {
		return helper.MapDBError(err, msgFeeNotFound, msgFeeDuplicate)
	}
	log.Printf("[INFO] fee created id=%d student=%d class=%d due=%s", row.ID, row.StudentID, row.ClassID, row.AmountDue)

	out, err := ctl.load(db, row.ID, writeRelations)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "fee", out, "Fee record created successfully")
}

/* =========================
   Update
   PUT /api/fees/:id
   ========================= */

func (ctl *FeeController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return err
	}
	var req d.UpdateFeeRequest
	if err := helper.BindStrict(c, &req); err != nil {
		return err
	}
	req.Normalize()
	if req.Empty() {
		return helper.Validation("No valid fields to update")
	}
	db := ctl.DB.WithContext(c.UserContext())

	var row m.FeeModel
	if err := db.Where("fee_id = ?", id).Take(&row).Error; err != nil {
		return helper.MapDBError(err, msgFeeNotFound, "")
	}

	cols := map[string]any{}
	tupleChanged := false
	if req.FeeType != nil && *req.FeeType != row.FeeType {
		row.FeeType = *req.FeeType
		cols["fee_type"] = row.FeeType
		tupleChanged = true
	}
	if req.AcademicYear != nil && *req.AcademicYear != row.AcademicYear {
		row.AcademicYear = *req.AcademicYear
		cols["academic_year"] = row.AcademicYear
		tupleChanged = true
	}
	if req.AmountDue != nil {
		switch err := row.SetAmountDue(*req.AmountDue); {
		case errors.Is(err, m.ErrNonPositiveAmount):
			return helper.Validation("Amount due must be greater than 0")
		case errors.Is(err, m.ErrDueBelowPaid):
			return helper.Validation("Amount due cannot be less than amount already paid").
				WithDetails(fiber.Map{"currentPaid": row.AmountPaid})
		}
		cols["amount_due"] = row.AmountDue
		cols["balance"] = row.Balance
	}

	if tupleChanged {
		if err := ctl.ensureUnique(db, row.StudentID, row.ClassID, row.FeeType, row.AcademicYear, id); err != nil {
			return err
		}
	}
	if len(cols) > 0 {
		if err := db.Model(&m.FeeModel{}).Where("fee_id = ?", id).Updates(cols).Error; err != nil {
			return helper.MapDBError(err, msgFeeNotFound, msgFeeDuplicate)
		}
	}

	out, err := ctl.load(db, id, writeRelations)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "fee", out, "Fee record updated successfully")
}

/* =========================
   Delete
   DELETE /api/fees/:id
   ========================= */

func (ctl *FeeController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return err
	}
	db := ctl.DB.WithContext(c.UserContext())

	var row m.FeeModel
	if err := db.Where("fee_id = ?", id).Take(&row).Error; err != nil {
		return helper.MapDBError(err, msgFeeNotFound, "")
	}
	if row.AmountPaid.IsPositive() {
		return helper.Invariant("Cannot delete fee record with payments. Please contact administrator.")
	}

	if err := db.Where("fee_id = ?", id).Delete(&m.FeeModel{}).Error; err != nil {
		return helper.Internal(err, "delete fee")
	}
	log.Printf("[INFO] fee deleted id=%d", id)
	return helper.JsonMessage(c, "Fee record deleted successfully")
}

/* =========================
   helpers
   ========================= */

func (ctl *FeeController) load(db *gorm.DB, id int64, rels []query.Relation) (m.FeeModel, error) {
	var row m.FeeModel
	if err := query.Expand(db, rels...).Where("fees.fee_id = ?", id).Take(&row).Error; err != nil {
		return row, helper.MapDBError(err, msgFeeNotFound, "")
	}
	return row, nil
}

func (ctl *FeeController) ensureUnique(db *gorm.DB, studentID, classID int64, feeType, year string, exceptID int64) error {
	tx := db.Model(&m.FeeModel{}).
		Where("student_id = ? AND class_id = ? AND fee_type = ? AND academic_year = ?", studentID, classID, feeType, year)
	if exceptID > 0 {
		tx = tx.Where("fee_id <> ?", exceptID)
	}
	var n int64
	if err := tx.Count(&n).Error; err != nil {
		return helper.Internal(err, "check fee uniqueness")
	}
	if n > 0 {
		return helper.Conflict(msgFeeDuplicate)
	}
	return nil
}
