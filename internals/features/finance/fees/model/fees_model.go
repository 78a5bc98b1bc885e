// file: internals/features/finance/fees/model/fees_model.go
package model

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	academics "schoolku_backend/internals/features/school/academics/model"
)

const (
	StatusPaid    = "paid"
	StatusPartial = "partial"
	StatusUnpaid  = "unpaid"

	DefaultPaymentMethod = "cash"
)

var (
	ErrNonPositiveAmount = errors.New("amount must be greater than 0")
	ErrOverpayment       = errors.New("payment amount cannot exceed balance amount")
	ErrDueBelowPaid      = errors.New("amount due cannot be less than amount already paid")
)

// FeeModel merepresentasikan tabel `fees`.
// Balance selalu = AmountDue - AmountPaid setelah setiap mutasi.
type FeeModel struct {
	ID int64 `json:"feeId" gorm:"column:fee_id;primaryKey;autoIncrement"`

	// (student, class, fee_type, academic_year) unik
	StudentID    int64  `json:"studentId"    gorm:"column:student_id;not null;uniqueIndex:uq_fees_student_class_type_year;index"`
	ClassID      int64  `json:"classId"      gorm:"column:class_id;not null;uniqueIndex:uq_fees_student_class_type_year;index"`
	FeeType      string `json:"feeType"      gorm:"column:fee_type;type:varchar(60);not null;uniqueIndex:uq_fees_student_class_type_year"`
	AcademicYear string `json:"academicYear" gorm:"column:academic_year;type:varchar(20);not null;uniqueIndex:uq_fees_student_class_type_year"`

	// Nominal
	AmountDue  decimal.Decimal `json:"amountDue"  gorm:"column:amount_due;type:numeric(12,2);not null"`
	AmountPaid decimal.Decimal `json:"amountPaid" gorm:"column:amount_paid;type:numeric(12,2);not null"`
	Balance    decimal.Decimal `json:"balance"    gorm:"column:balance;type:numeric(12,2);not null"`

	// Pembayaran terakhir
	PaymentDate   *time.Time `json:"paymentDate"   gorm:"column:payment_date"`
	PaymentMethod *string    `json:"paymentMethod" gorm:"column:payment_method;type:varchar(30)"`

	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at;autoCreateTime;index"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"column:updated_at;autoUpdateTime"`

	Student *academics.StudentBrief `json:"student,omitempty" gorm:"foreignKey:StudentID;references:ID"`
	Class   *academics.ClassBrief   `json:"class,omitempty"   gorm:"foreignKey:ClassID;references:ID"`
}

func (FeeModel) TableName() string { return "fees" }

// NewFee builds an unpaid fee whose balance equals the amount due.
func NewFee(studentID, classID int64, feeType, academicYear string, amountDue decimal.Decimal) (FeeModel, error) {
	if !amountDue.IsPositive() {
		return FeeModel{}, ErrNonPositiveAmount
	}
	return FeeModel{
		StudentID:    studentID,
		ClassID:      classID,
		FeeType:      feeType,
		AcademicYear: academicYear,
		AmountDue:    amountDue,
		AmountPaid:   decimal.Zero,
		Balance:      amountDue,
	}, nil
}

// ApplyPayment records a payment of amount. On error f is left untouched.
func (f *FeeModel) ApplyPayment(amount decimal.Decimal, method string, at time.Time) error {
	if !amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	if amount.GreaterThan(f.Balance) {
		return ErrOverpayment
	}
	method = strings.TrimSpace(method)
	if method == "" {
		method = DefaultPaymentMethod
	}
	f.AmountPaid = f.AmountPaid.Add(amount)
	f.Balance = f.AmountDue.Sub(f.AmountPaid)
	f.PaymentDate = &at
	f.PaymentMethod = &method
	return nil
}

// SetAmountDue changes the amount due and recomputes the balance.
func (f *FeeModel) SetAmountDue(due decimal.Decimal) error {
	if !due.IsPositive() {
		return ErrNonPositiveAmount
	}
	if due.LessThan(f.AmountPaid) {
		return ErrDueBelowPaid
	}
	f.AmountDue = due
	f.Balance = due.Sub(f.AmountPaid)
	return nil
}

// PaymentStatus derives paid/partial/unpaid from the stored amounts.
func (f FeeModel) PaymentStatus() string {
	switch {
	case f.Balance.IsZero():
		return StatusPaid
	case f.AmountPaid.IsPositive():
		return StatusPartial
	default:
		return StatusUnpaid
	}
}

// Consistent reports whether AmountPaid + Balance == AmountDue.
func (f FeeModel) Consistent() bool {
	return f.AmountPaid.Add(f.Balance).Equal(f.AmountDue)
}
