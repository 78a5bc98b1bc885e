package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	d "schoolku_backend/internals/features/finance/fees/dto"
	m "schoolku_backend/internals/features/finance/fees/model"
	academics "schoolku_backend/internals/features/school/academics/model"
	helper "schoolku_backend/internals/helpers"
)

const sumColumns = "COUNT(*) AS records, " +
	"COALESCE(SUM(fees.amount_due), 0) AS total_due, " +
	"COALESCE(SUM(fees.amount_paid), 0) AS total_paid, " +
	"COALESCE(SUM(fees.balance), 0) AS total_balance"

type feeSums struct {
	Records      int64
	TotalDue     decimal.Decimal
	TotalPaid    decimal.Decimal
	TotalBalance decimal.Decimal
}

type feeTypeSums struct {
	FeeType      string
	Records      int64
	TotalDue     decimal.Decimal
	TotalPaid    decimal.Decimal
	TotalBalance decimal.Decimal
}

type classSums struct {
	ClassID      int64
	Students     int64
	Records      int64
	TotalDue     decimal.Decimal
	TotalPaid    decimal.Decimal
	TotalBalance decimal.Decimal
}

/* =========================
   Stats
   GET /api/fees/stats/overview
   ========================= */

func (ctl *FeeController) Stats(c *fiber.Ctx) error {
	db := ctl.DB.WithContext(c.UserContext())
	where := statsFilters.Build(c.Queries())
	base := func() *gorm.DB { return where.Apply(db.Model(&m.FeeModel{})) }

	out := d.FeeStats{
		FeeTypeCollection: []d.FeeTypeCollection{},
		ClassWiseStats:    []d.ClassFeeStats{},
	}

	// overall
	var all feeSums
	if err := base().Select(sumColumns).Scan(&all).Error; err != nil {
		return helper.Internal(err, "fee totals")
	}
	out.Overall = d.OverallFees{
		TotalRecords:         all.Records,
		TotalDue:             all.TotalDue,
		TotalPaid:            all.TotalPaid,
		TotalBalance:         all.TotalBalance,
		CollectionPercentage: helper.Percentage(all.TotalPaid, all.TotalDue),
	}

	// paid / partial / unpaid
	for key, dst := range map[string]*int64{
		"paid":    &out.PaymentStatus.Paid,
		"partial": &out.PaymentStatus.Partial,
		"unpaid":  &out.PaymentStatus.Unpaid,
	} {
		if err := paymentStatusScopes[key](base()).Count(dst).Error; err != nil {
			return helper.Internal(err, "fee status count")
		}
	}

	// per fee type
	var byType []feeTypeSums
	if err := base().Select("fees.fee_type AS fee_type, " + sumColumns).
		Group("fees.fee_type").
		Order("fees.fee_type ASC").
		Scan(&byType).Error; err != nil {
		return helper.Internal(err, "fee type totals")
	}
	for _, r := range byType {
		out.FeeTypeCollection = append(out.FeeTypeCollection, d.FeeTypeCollection{
			FeeType:              r.FeeType,
			TotalDue:             r.TotalDue,
			TotalPaid:            r.TotalPaid,
			TotalBalance:         r.TotalBalance,
			CollectionPercentage: helper.Percentage(r.TotalPaid, r.TotalDue),
			RecordCount:          r.Records,
		})
	}

	// per class
	var byClass []classSums
	if err := base().Select("fees.class_id AS class_id, COUNT(DISTINCT fees.student_id) AS students, " + sumColumns).
		Group("fees.class_id").
		Order("fees.class_id ASC").
		Scan(&byClass).Error; err != nil {
		return helper.Internal(err, "class fee totals")
	}
	names, err := classNames(db, byClass)
	if err != nil {
		return helper.Internal(err, "class names")
	}
	for _, r := range byClass {
		name, ok := names[r.ClassID]
		if !ok {
			name = "Unknown"
		}
		out.ClassWiseStats = append(out.ClassWiseStats, d.ClassFeeStats{
			ClassID:              r.ClassID,
			ClassName:            name,
			TotalDue:             r.TotalDue,
			TotalPaid:            r.TotalPaid,
			TotalBalance:         r.TotalBalance,
			CollectionPercentage: helper.Percentage(r.TotalPaid, r.TotalDue),
			StudentCount:         r.Students,
		})
	}

	// last 30 days
	var recent feeSums
	if err := base().Where("fees.payment_date >= ?", helper.RecentWindow(time.Now().UTC())).
		Select(sumColumns).
		Scan(&recent).Error; err != nil {
		return helper.Internal(err, "recent payments")
	}
	out.RecentPayments = d.RecentPayments{Amount: recent.TotalPaid, Count: recent.Records}

	return helper.JsonOK(c, out)
}

func classNames(db *gorm.DB, rows []classSums) (map[int64]string, error) {
	out := make(map[int64]string, len(rows))
	if len(rows) == 0 {
		return out, nil
	}
	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ClassID)
	}
	var classes []academics.ClassBrief
	if err := db.Select("class_id", "class_name", "section").
		Where("class_id IN ?", ids).
		Find(&classes).Error; err != nil {
		return nil, err
	}
	for _, cl := range classes {
		out[cl.ID] = cl.ClassName + " - " + cl.Section
	}
	return out, nil
}
