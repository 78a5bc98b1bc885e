package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestNewFeeStartsUnpaid(t *testing.T) {
	f, err := NewFee(5, 901, "Tuition Fee", "2024-2025", dec("10000"))
	require.NoError(t, err)
	assert.True(t, f.Balance.Equal(dec("10000")))
	assert.True(t, f.AmountPaid.IsZero())
	assert.Equal(t, StatusUnpaid, f.PaymentStatus())
	assert.True(t, f.Consistent())

	_, err = NewFee(5, 901, "Tuition Fee", "2024-2025", decimal.Zero)
	assert.ErrorIs(t, err, ErrNonPositiveAmount)
}

func TestApplyPaymentKeepsBalanceInvariant(t *testing.T) {
	f, _ := NewFee(5, 901, "Tuition Fee", "2024-2025", dec("10000"))
	at := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	steps := []string{"4000", "0.10", "2999.90", "3000"}
	for _, s := range steps {
		require.NoError(t, f.ApplyPayment(dec(s), "", at))
		assert.True(t, f.Consistent(), "after paying %s", s)
	}
	assert.True(t, f.Balance.IsZero())
	assert.Equal(t, StatusPaid, f.PaymentStatus())
	require.NotNil(t, f.PaymentMethod)
	assert.Equal(t, DefaultPaymentMethod, *f.PaymentMethod)
	assert.Equal(t, at, *f.PaymentDate)
}

func TestApplyPaymentRejectsWithoutMutation(t *testing.T) {
	f, _ := NewFee(5, 901, "Tuition Fee", "2024-2025", dec("10000"))
	require.NoError(t, f.ApplyPayment(dec("4000"), "bank", time.Now()))
	snapshot := f

	tests := []struct {
		name   string
		amount decimal.Decimal
		want   error
	}{
		{"over balance", dec("6000.01"), ErrOverpayment},
		{"zero", decimal.Zero, ErrNonPositiveAmount},
		{"negative", dec("-1"), ErrNonPositiveAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.ApplyPayment(tt.amount, "cash", time.Now())
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, f.AmountPaid.Equal(snapshot.AmountPaid))
			assert.True(t, f.Balance.Equal(snapshot.Balance))
			assert.Equal(t, "bank", *f.PaymentMethod)
		})
	}
	assert.Equal(t, StatusPartial, f.PaymentStatus())
}

func TestSetAmountDue(t *testing.T) {
	f, _ := NewFee(1, 1, "Lab", "2024-2025", dec("500"))
	require.NoError(t, f.ApplyPayment(dec("200"), "cash", time.Now()))

	require.NoError(t, f.SetAmountDue(dec("800")))
	assert.True(t, f.Balance.Equal(dec("600")))
	assert.True(t, f.Consistent())

	assert.ErrorIs(t, f.SetAmountDue(dec("150")), ErrDueBelowPaid)
	assert.ErrorIs(t, f.SetAmountDue(dec("0")), ErrNonPositiveAmount)
	assert.True(t, f.AmountDue.Equal(dec("800")))
}
