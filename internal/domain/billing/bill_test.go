package billing

import (
	"strings"
	"testing"
	"time"

	"github.com/bizpulse/backend/internal/domain/shared"
	"github.com/bizpulse/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(s string) valueobject.Money {
	m, err := valueobject.NewMoneyINRFromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

func TestNewBill(t *testing.T) {
	t.Run("valid bill", func(t *testing.T) {
		bill, err := NewBill("Walk-in", money("18"), money("0"))
		require.NoError(t, err)
		assert.Equal(t, BillStatusCompleted, bill.Status)
		assert.True(t, bill.Subtotal.IsZero())
		assert.NotEmpty(t, bill.Number)
	})

	t.Run("negative tax rejected", func(t *testing.T) {
		_, err := NewBill("", money("-1"), money("0"))
		assert.Error(t, err)
	})

	t.Run("negative discount rejected", func(t *testing.T) {
		_, err := NewBill("", money("0"), money("-1"))
		assert.Error(t, err)
	})
}

func TestFormatBillNumber(t *testing.T) {
	id := uuid.MustParse("a1b2c3d4-0000-0000-0000-000000000000")
	at := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	number := FormatBillNumber(id, at)
	assert.Equal(t, "BILL-20260830-a1b2c3d4", number)
	assert.True(t, strings.HasPrefix(number, "BILL-"))
}

func TestBillAddItem(t *testing.T) {
	t.Run("totals recalculated", func(t *testing.T) {
		bill, err := NewBill("", money("0"), money("0"))
		require.NoError(t, err)

		_, err = bill.AddItem(uuid.New(), "Rice", 2, money("80"))
		require.NoError(t, err)

		assert.True(t, bill.Subtotal.Equal(decimal.NewFromInt(160)))
		assert.True(t, bill.TotalAmount.Equal(decimal.NewFromInt(160)))
		assert.Equal(t, 1, bill.ItemCount())
		assert.EqualValues(t, 2, bill.TotalQuantity())
	})

	t.Run("tax and discount in total", func(t *testing.T) {
		bill, err := NewBill("", money("18"), money("8"))
		require.NoError(t, err)

		_, err = bill.AddItem(uuid.New(), "Rice", 1, money("100"))
		require.NoError(t, err)

		assert.True(t, bill.TotalAmount.Equal(decimal.NewFromInt(110)), "100 + 18 - 8")
	})

	t.Run("zero quantity rejected", func(t *testing.T) {
		bill, _ := NewBill("", money("0"), money("0"))
		_, err := bill.AddItem(uuid.New(), "Rice", 0, money("80"))
		assert.Error(t, err)
	})

	t.Run("zero price rejected", func(t *testing.T) {
		bill, _ := NewBill("", money("0"), money("0"))
		_, err := bill.AddItem(uuid.New(), "Rice", 1, money("0"))
		assert.Error(t, err)
	})

	t.Run("nil product rejected", func(t *testing.T) {
		bill, _ := NewBill("", money("0"), money("0"))
		_, err := bill.AddItem(uuid.Nil, "Rice", 1, money("80"))
		assert.Error(t, err)
	})
}

func TestVerifyTotal(t *testing.T) {
	t.Run("discount within subtotal plus tax", func(t *testing.T) {
		bill, err := NewBill("", money("18"), money("50"))
		require.NoError(t, err)
		_, err = bill.AddItem(uuid.New(), "Rice", 1, money("100"))
		require.NoError(t, err)

		assert.NoError(t, bill.VerifyTotal())
	})

	t.Run("discount exceeding subtotal plus tax", func(t *testing.T) {
		bill, err := NewBill("", money("0"), money("100"))
		require.NoError(t, err)
		_, err = bill.AddItem(uuid.New(), "Rice", 1, money("80"))
		require.NoError(t, err)

		err = bill.VerifyTotal()
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_DISCOUNT", domainErr.Code)
	})
}

func TestVerifyExplicitTotal(t *testing.T) {
	bill, err := NewBill("", money("18"), money("0"))
	require.NoError(t, err)
	_, err = bill.AddItem(uuid.New(), "Rice", 1, money("100"))
	require.NoError(t, err)

	assert.NoError(t, bill.VerifyExplicitTotal(money("118")))
	assert.Error(t, bill.VerifyExplicitTotal(money("120")))
	assert.Error(t, bill.VerifyExplicitTotal(money("0")))
}

func TestAttachPayment(t *testing.T) {
	bill, err := NewBill("", money("0"), money("0"))
	require.NoError(t, err)
	_, err = bill.AddItem(uuid.New(), "Rice", 2, money("80"))
	require.NoError(t, err)

	now := time.Now()
	payment := bill.AttachPayment("cash", now)

	assert.Equal(t, bill.ID, payment.BillID)
	assert.True(t, payment.Amount.Equal(decimal.NewFromInt(160)))
	assert.Len(t, bill.Payments, 1)
}

func TestTaxAllocation(t *testing.T) {
	t.Run("60-40 split", func(t *testing.T) {
		bill, err := NewBill("", money("18"), money("0"))
		require.NoError(t, err)
		_, err = bill.AddItem(uuid.New(), "A", 1, money("60"))
		require.NoError(t, err)
		_, err = bill.AddItem(uuid.New(), "B", 1, money("40"))
		require.NoError(t, err)

		parts := bill.AllocateTax()
		require.Len(t, parts, 2)
		assert.True(t, parts[0].Amount().Equal(decimal.RequireFromString("10.8")), "got %s", parts[0].Amount())
		assert.True(t, parts[1].Amount().Equal(decimal.RequireFromString("7.2")), "got %s", parts[1].Amount())
	})

	t.Run("allocation sums to bill tax", func(t *testing.T) {
		bill, err := NewBill("", money("10"), money("0"))
		require.NoError(t, err)
		for i := 0; i < 3; i++ {
			_, err = bill.AddItem(uuid.New(), "X", 1, money("33.33"))
			require.NoError(t, err)
		}

		sum := decimal.Zero
		for _, p := range bill.AllocateTax() {
			sum = sum.Add(p.Amount())
		}
		assert.True(t, sum.Equal(decimal.NewFromInt(10)), "got %s", sum)
	})
}
