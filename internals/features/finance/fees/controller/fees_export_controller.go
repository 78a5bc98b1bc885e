package controller

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"

	m "schoolku_backend/internals/features/finance/fees/model"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/query"
)

const (
	exportSheet      = "Fees"
	xlsxContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportDateLayout = "2006-01-02"
)

var exportHeaders = []string{
	"Fee ID", "Student", "Class", "Fee Type", "Academic Year",
	"Amount Due", "Amount Paid", "Balance", "Status", "Payment Date", "Payment Method",
}

/* =========================
   Export
   GET /api/fees/export
   ========================= */

// Export writes the filtered fee list (unpaginated, capped at ExportCap rows) as XLSX.
func (ctl *FeeController) Export(c *fiber.Ctx) error {
	rows, err := query.FindAll[m.FeeModel](ctl.DB.WithContext(c.UserContext()), query.ListQuery{
		Where:     feeFilters.Build(c.Queries()),
		Order:     feeOrder,
		Relations: writeRelations,
		Limit:     ExportCap,
	})
	if err != nil {
		return helper.Internal(err, "export fees")
	}

	buf, err := buildFeeWorkbook(rows)
	if err != nil {
		return helper.Internal(err, "build fee workbook")
	}

	fileName := fmt.Sprintf("fees_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+fileName)
	return c.Send(buf.Bytes())
}

func buildFeeWorkbook(rows []m.FeeModel) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}
	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(exportSheet, cell, h); err != nil {
			return nil, err
		}
	}

	for i, r := range rows {
		values := []any{
			r.ID,
			studentName(r),
			className(r),
			r.FeeType,
			r.AcademicYear,
			r.AmountDue.InexactFloat64(),
			r.AmountPaid.InexactFloat64(),
			r.Balance.InexactFloat64(),
			r.PaymentStatus(),
			"",
			"",
		}
		if r.PaymentDate != nil {
			values[9] = r.PaymentDate.Format(exportDateLayout)
		}
		if r.PaymentMethod != nil {
			values[10] = *r.PaymentMethod
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return nil, err
		}
	}

	return f.WriteToBuffer()
}

func studentName(r m.FeeModel) string {
	if r.Student == nil {
		return ""
	}
	return r.Student.Name
}

func className(r m.FeeModel) string {
	if r.Class == nil {
		return ""
	}
	return r.Class.ClassName + " - " + r.Class.Section
}
