// file: internals/features/finance/fees/dto/fees_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	helper "schoolku_backend/internals/helpers"
)

/*
=========================================================
REQUEST: CREATE
=========================================================
*/
type CreateFeeRequest struct {
	StudentID    int64            `json:"studentId"    validate:"required,gt=0"`
	ClassID      int64            `json:"classId"      validate:"required,gt=0"`
	FeeType      string           `json:"feeType"      validate:"required,max=60"`
	AmountDue    *decimal.Decimal `json:"amountDue"`
	AcademicYear string           `json:"academicYear" validate:"required,max=20"`
}

func (r *CreateFeeRequest) Normalize() {
	r.FeeType = strings.TrimSpace(r.FeeType)
	r.AcademicYear = strings.TrimSpace(r.AcademicYear)
}

func (r *CreateFeeRequest) Validate() error {
	if r.StudentID == 0 || r.ClassID == 0 || r.FeeType == "" || r.AmountDue == nil || r.AcademicYear == "" {
		return helper.Validation("All required fields must be provided")
	}
	if !r.AmountDue.IsPositive() {
		return helper.Validation("Amount due must be greater than 0")
	}
	return helper.Validate.Struct(r)
}

/*
=========================================================
REQUEST: UPDATE (allow-list)
=========================================================
*/
type UpdateFeeRequest struct {
	FeeType      *string          `json:"feeType"`
	AcademicYear *string          `json:"academicYear"`
	AmountDue    *decimal.Decimal `json:"amountDue"`
}

func (r *UpdateFeeRequest) Normalize() {
	r.FeeType = helper.TrimPtr(r.FeeType)
	r.AcademicYear = helper.TrimPtr(r.AcademicYear)
}

func (r *UpdateFeeRequest) Empty() bool {
	return r.FeeType == nil && r.AcademicYear == nil && r.AmountDue == nil
}

/*
=========================================================
REQUEST: PAYMENT
=========================================================
*/
type PaymentRequest struct {
	PaymentAmount *decimal.Decimal `json:"paymentAmount"`
	AmountPaid    *decimal.Decimal `json:"amountPaid"` // alias lama
	PaymentMethod string           `json:"paymentMethod"`
	PaymentDate   *time.Time       `json:"paymentDate"`
}

// Amount returns paymentAmount, falling back to the amountPaid alias.
func (r PaymentRequest) Amount() (decimal.Decimal, bool) {
	switch {
	case r.PaymentAmount != nil:
		return *r.PaymentAmount, true
	case r.AmountPaid != nil:
		return *r.AmountPaid, true
	}
	return decimal.Zero, false
}

func (r PaymentRequest) Validate() (decimal.Decimal, error) {
	amt, ok := r.Amount()
	if !ok || !amt.IsPositive() {
		return decimal.Zero, helper.Validation("Valid payment amount is required")
	}
	return amt, nil
}

/*
=========================================================
RESPONSE
=========================================================
*/
type PaymentEcho struct {
	Amount decimal.Decimal `json:"amount"`
	Method string          `json:"method"`
	Date   time.Time       `json:"date"`
}

type OverallFees struct {
	TotalRecords         int64           `json:"totalRecords"`
	TotalDue             decimal.Decimal `json:"totalDue"`
	TotalPaid            decimal.Decimal `json:"totalPaid"`
	TotalBalance         decimal.Decimal `json:"totalBalance"`
	CollectionPercentage int             `json:"collectionPercentage"`
}

type PaymentStatusCounts struct {
	Paid    int64 `json:"paid"`
	Partial int64 `json:"partial"`
	Unpaid  int64 `json:"unpaid"`
}

type FeeTypeCollection struct {
	FeeType              string          `json:"feeType"`
	TotalDue             decimal.Decimal `json:"totalDue"`
	TotalPaid            decimal.Decimal `json:"totalPaid"`
	TotalBalance         decimal.Decimal `json:"totalBalance"`
	CollectionPercentage int             `json:"collectionPercentage"`
	RecordCount          int64           `json:"recordCount"`
}

type ClassFeeStats struct {
	ClassID              int64           `json:"classId"`
	ClassName            string          `json:"className"`
	TotalDue             decimal.Decimal `json:"totalDue"`
	TotalPaid            decimal.Decimal `json:"totalPaid"`
	TotalBalance         decimal.Decimal `json:"totalBalance"`
	CollectionPercentage int             `json:"collectionPercentage"`
	StudentCount         int64           `json:"studentCount"`
}

type RecentPayments struct {
	Amount decimal.Decimal `json:"amount"`
	Count  int64           `json:"count"`
}

type FeeStats struct {
	Overall           OverallFees         `json:"overall"`
	PaymentStatus     PaymentStatusCounts `json:"paymentStatus"`
	FeeTypeCollection []FeeTypeCollection `json:"feeTypeCollection"`
	ClassWiseStats    []ClassFeeStats     `json:"classWiseStats"`
	RecentPayments    RecentPayments      `json:"recentPayments"`
}
