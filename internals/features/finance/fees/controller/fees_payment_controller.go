package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	d "schoolku_backend/internals/features/finance/fees/dto"
	m "schoolku_backend/internals/features/finance/fees/model"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/numeric"
)

/* =========================
   Record payment
   POST /api/fees/:id/payment
   ========================= */

// RecordPayment adds a payment to the fee. Reading the balance and writing the
// new amounts happen in one transaction; on PostgreSQL the row is locked.
func (ctl *FeeController) RecordPayment(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return err
	}
	var req d.PaymentRequest
	if err := helper.Bind(c, &req); err != nil {
		return err
	}
	amount, err := req.Validate()
	if err != nil {
		return err
	}
	at := time.Now().UTC()
	if req.PaymentDate != nil {
		at = req.PaymentDate.UTC()
	}

	db := ctl.DB.WithContext(c.UserContext())
	var row m.FeeModel
	err = db.Transaction(func(tx *gorm.DB) error {
		q := tx
		if tx.Dialector.Name() == "postgres" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := q.Where("fee_id = ?", id).Take(&row).Error; err != nil {
			return helper.MapDBError(err, msgFeeNotFound, "")
		}

		switch err := row.ApplyPayment(amount, req.PaymentMethod, at); {
		case errors.Is(err, m.ErrOverpayment):
			return helper.Validation("Payment amount cannot exceed balance amount").
				WithDetails(fiber.Map{
					"currentDue":       row.AmountDue,
					"currentPaid":      row.AmountPaid,
					"remainingBalance": row.Balance,
				})
		case err != nil:
			return helper.Validation("Valid payment amount is required")
		}

		return tx.Model(&m.FeeModel{}).Where("fee_id = ?", id).Updates(map[string]any{
			"amount_paid":    row.AmountPaid,
			"balance":        row.Balance,
			"payment_date":   row.PaymentDate,
			"payment_method": row.PaymentMethod,
		}).Error
	})
	if err != nil {
		var appErr *helper.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return helper.Internal(err, "record payment")
	}
	log.Printf("[INFO] payment recorded fee=%d amount=%s balance=%s", id, amount, row.Balance)

	out, err := ctl.load(db, id, writeRelations)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(paymentResponse(out, d.PaymentEcho{
		Amount: amount,
		Method: *row.PaymentMethod,
		Date:   *row.PaymentDate,
	}))
}

func paymentResponse(fee m.FeeModel, p d.PaymentEcho) numeric.Object {
	return numeric.Object{
		{Key: "fee", Value: numeric.Normalize(fee)},
		{Key: "payment", Value: numeric.Normalize(p)},
		{Key: "message", Value: "Payment recorded successfully"},
	}
}
