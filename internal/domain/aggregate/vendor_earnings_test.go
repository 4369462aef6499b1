package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLedger(t *testing.T) *VendorEarnings {
	t.Helper()
	v, err := NewVendorEarnings("vendor-a")
	require.NoError(t, err)
	return v
}

func TestAddEarning(t *testing.T) {
	v := newLedger(t)

	require.NoError(t, v.AddEarning("e1", "p1", 5000, "Payment for event"))

	assert.Equal(t, int64(5000), v.PendingAmount())
	assert.Equal(t, int64(5000), v.TotalEarnings())
	assert.Equal(t, int64(0), v.AvailableBalance())
	require.Len(t, v.Transactions(), 1)
	txn := v.Transactions()[0]
	assert.Equal(t, TransactionEarning, txn.Type)
	assert.Equal(t, TransactionCompleted, txn.Status)
	assert.NotEmpty(t, txn.ID)
	assert.True(t, v.Reconciles())

	assert.Error(t, v.AddEarning("e1", "p1", 0, ""))
}

func TestRefundRestoresBalances(t *testing.T) {
	v := newLedger(t)
	require.NoError(t, v.AddEarning("e0", "p0", 2000, ""))
	require.NoError(t, v.MovePendingToAvailable(2000))

	pending, available := v.PendingAmount(), v.AvailableBalance()

	require.NoError(t, v.AddEarning("e1", "p1", 5000, ""))
	require.NoError(t, v.ProcessRefund("e1", "p1", 5000, "Refund for cancelled event"))

	assert.Equal(t, pending, v.PendingAmount())
	assert.Equal(t, available, v.AvailableBalance())
	assert.Equal(t, int64(5000), v.RefundedAmount())

	last := v.Transactions()[len(v.Transactions())-1]
	assert.Equal(t, TransactionRefund, last.Type)
	assert.Equal(t, int64(-5000), last.Amount)
	assert.True(t, v.Reconciles())
}

func TestRefundDrawsFromPendingFirst(t *testing.T) {
	v := newLedger(t)
	require.NoError(t, v.AddEarning("e1", "p1", 3000, ""))
	require.NoError(t, v.MovePendingToAvailable(2000))

	require.NoError(t, v.ProcessRefund("e1", "p1", 3000, ""))

	assert.Equal(t, int64(0), v.PendingAmount())
	assert.Equal(t, int64(0), v.AvailableBalance())
	assert.True(t, v.Reconciles())
}

func TestRefundShortfallGoesNegative(t *testing.T) {
	v := newLedger(t)
	require.NoError(t, v.AddEarning("e1", "p1", 1000, ""))
	require.NoError(t, v.MovePendingToAvailable(1000))
	require.NoError(t, v.ProcessWithdrawal(1000, ""))

	require.NoError(t, v.ProcessRefund("e1", "p1", 1000, ""))

	assert.Equal(t, int64(-1000), v.AvailableBalance())
	assert.True(t, v.Reconciles())
}

func TestMovePendingToAvailable(t *testing.T) {
	v := newLedger(t)
	require.NoError(t, v.AddEarning("e1", "p1", 1000, ""))

	assert.ErrorIs(t, v.MovePendingToAvailable(1500), ErrInsufficientPending)
	assert.Equal(t, int64(1000), v.PendingAmount())

	require.NoError(t, v.MovePendingToAvailable(400))
	assert.Equal(t, int64(600), v.PendingAmount())
	assert.Equal(t, int64(400), v.AvailableBalance())
}

func TestProcessWithdrawal(t *testing.T) {
	v := newLedger(t)
	require.NoError(t, v.AddEarning("e1", "p1", 1000, ""))
	require.NoError(t, v.MovePendingToAvailable(1000))
	before := v.State()

	assert.ErrorIs(t, v.ProcessWithdrawal(1001, ""), ErrInsufficientBalance)
	assert.Error(t, v.ProcessWithdrawal(0, ""))
	assert.Equal(t, before, v.State())

	require.NoError(t, v.ProcessWithdrawal(700, "Withdrawal to bank"))
	assert.Equal(t, int64(300), v.AvailableBalance())
	assert.Equal(t, int64(700), v.WithdrawnAmount())

	last := v.Transactions()[len(v.Transactions())-1]
	assert.Equal(t, TransactionWithdrawal, last.Type)
	assert.Equal(t, TransactionPending, last.Status)
	assert.Equal(t, int64(-700), last.Amount)
	assert.True(t, v.Reconciles())
}

func TestUpdateBankDetails(t *testing.T) {
	v := newLedger(t)

	assert.Error(t, v.UpdateBankDetails(BankDetails{AccountNumber: "1"}))

	require.NoError(t, v.UpdateBankDetails(BankDetails{
		AccountHolderName: "A Vendor",
		AccountNumber:     "0001",
		IFSCCode:          "hdfc0001",
		BankName:          "HDFC",
		IsVerified:        true,
	}))
	assert.Equal(t, "HDFC0001", v.BankDetails().IFSCCode)
	assert.False(t, v.BankDetails().IsVerified)
}
