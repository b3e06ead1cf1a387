package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wastetrade-service/pkg/xerrors"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestApplyPlanPayment(t *testing.T) {
	got, err := ApplyPlan(dec("0"), dec("100"), PlanPayment)
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("100")))

	got, err = ApplyPlan(dec("250.50"), dec("0.50"), PlanPayment)
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("251")))
}

func TestApplyPlanWithdrawal(t *testing.T) {
	got, err := ApplyPlan(dec("500"), dec("100"), PlanWithdrawal)
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("400")))

	// Withdrawing the full balance leaves exactly zero.
	got, err = ApplyPlan(dec("75.25"), dec("75.25"), PlanWithdrawal)
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestApplyPlanInsufficientBalance(t *testing.T) {
	_, err := ApplyPlan(dec("100"), dec("100.01"), PlanWithdrawal)
	assert.ErrorIs(t, err, xerrors.ErrInsufficientBalance)

	_, err = ApplyPlan(dec("0"), dec("1"), PlanWithdrawal)
	assert.ErrorIs(t, err, xerrors.ErrInsufficientBalance)
}

func TestApplyPlanInvalidAmount(t *testing.T) {
	for _, amount := range []string{"0", "-1", "-0.01"} {
		_, err := ApplyPlan(dec("100"), dec(amount), PlanPayment)
		assert.ErrorIs(t, err, xerrors.ErrInvalidAmount, "amount %s", amount)

		_, err = ApplyPlan(dec("100"), dec(amount), PlanWithdrawal)
		assert.ErrorIs(t, err, xerrors.ErrInvalidAmount, "amount %s", amount)
	}
}

func TestApplyPlanUnknownType(t *testing.T) {
	_, err := ApplyPlan(dec("100"), dec("10"), PlanType("TRANSFER"))
	assert.Error(t, err)
}

func TestPlanRequestValidate(t *testing.T) {
	valid := &PlanRequest{
		Reference: "TXN-1",
		UserID:    7,
		Amount:    dec("10"),
		PlanType:  PlanPayment,
	}
	assert.NoError(t, valid.Validate())

	missingUser := *valid
	missingUser.UserID = 0
	assert.ErrorIs(t, missingUser.Validate(), xerrors.ErrInvalidRequest)

	missingRef := *valid
	missingRef.Reference = ""
	assert.ErrorIs(t, missingRef.Validate(), xerrors.ErrInvalidRequest)

	badAmount := *valid
	badAmount.Amount = dec("-5")
	assert.ErrorIs(t, badAmount.Validate(), xerrors.ErrInvalidAmount)

	badPlan := *valid
	badPlan.PlanType = "REFUND"
	assert.ErrorIs(t, badPlan.Validate(), xerrors.ErrInvalidRequest)
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("PLASTIC")
	require.NoError(t, err)
	assert.Equal(t, CategoryPlastic, c)

	_, err = ParseCategory("plastic")
	assert.Error(t, err)

	_, err = ParseCategory("WOOD")
	assert.Error(t, err)
}
