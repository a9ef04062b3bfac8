package persistence

import (
	"context"
	"testing"
	"time"

	appbilling "github.com/bizpulse/backend/internal/application/billing"
	"github.com/bizpulse/backend/internal/application/invoice"
	"github.com/bizpulse/backend/internal/domain/catalog"
	"github.com/bizpulse/backend/internal/domain/shared"
	"github.com/bizpulse/backend/internal/domain/shared/valueobject"
	"github.com/bizpulse/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupBillingTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.ProductModel{},
		&models.BillModel{},
		&models.BillItemModel{},
		&models.BillPaymentModel{},
		&models.SalesEntryModel{},
	)
	require.NoError(t, err)

	return db
}

func seedTestProduct(t *testing.T, db *gorm.DB, code, name string, price, cost int64, stock int64) *catalog.Product {
	t.Helper()

	product, err := catalog.NewProduct(code, name, "General",
		valueobject.NewMoneyINR(decimal.NewFromInt(price)),
		valueobject.NewMoneyINR(decimal.NewFromInt(cost)),
		stock, 0)
	require.NoError(t, err)

	repo := NewGormProductRepository(db)
	require.NoError(t, repo.Save(context.Background(), product))
	return product
}

func currentStock(t *testing.T, db *gorm.DB, id uuid.UUID) int64 {
	t.Helper()

	product, err := NewGormProductRepository(db).FindByID(context.Background(), id)
	require.NoError(t, err)
	return product.Stock
}

func TestBillingFlow_CreateAndDelete(t *testing.T) {
	db := setupBillingTestDB(t)
	svc := appbilling.NewService(NewGormTransactionScope(db), nil)
	ctx := context.Background()

	chai := seedTestProduct(t, db, "CHAI-001", "Masala Chai", 20, 8, 50)
	rusk := seedTestProduct(t, db, "RUSK-001", "Milk Rusk", 40, 25, 30)

	tax := decimal.NewFromInt(10)
	summary, err := svc.CreateBill(ctx, appbilling.CreateBillInput{
		CustomerName: "Walk-in",
		Items: []appbilling.CartItemInput{
			{ProductID: chai.ID, Quantity: 3, UnitPrice: decimal.NewFromInt(20)},
			{ProductID: rusk.ID, Quantity: 1, UnitPrice: decimal.NewFromInt(40)},
		},
		TaxAmount:     &tax,
		PaymentMethod: "cash",
	})
	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Equal(t, 2, summary.ItemCount)
	assert.True(t, decimal.NewFromInt(110).Equal(summary.TotalAmount))

	// Stock effect of the sale
	assert.Equal(t, int64(47), currentStock(t, db, chai.ID))
	assert.Equal(t, int64(29), currentStock(t, db, rusk.ID))

	// The bill reads back with its children preloaded
	bill, err := NewGormBillRepository(db).FindByID(ctx, summary.BillID)
	require.NoError(t, err)
	assert.Len(t, bill.Items, 2)
	require.Len(t, bill.Payments, 1)
	assert.Equal(t, "cash", bill.Payments[0].Method)
	assert.True(t, summary.TotalAmount.Equal(bill.Payments[0].Amount))

	// One ledger entry mirrors each line
	count, err := NewGormLedgerRepository(db).CountByBill(ctx, summary.BillID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	entries, err := NewGormLedgerRepository(db).FindByBill(ctx, summary.BillID)
	require.NoError(t, err)
	taxSum := decimal.Zero
	for _, e := range entries {
		taxSum = taxSum.Add(e.TaxAmount)
	}
	assert.True(t, tax.Equal(taxSum), "allocated tax must sum back to the bill tax, got %s", taxSum)

	// Deleting the bill reverts everything
	revert, err := svc.DeleteBill(ctx, summary.BillID)
	require.NoError(t, err)
	assert.Equal(t, 2, revert.ItemsReverted)
	assert.Equal(t, int64(4), revert.StockRestored)

	assert.Equal(t, int64(50), currentStock(t, db, chai.ID))
	assert.Equal(t, int64(30), currentStock(t, db, rusk.ID))

	_, err = NewGormBillRepository(db).FindByID(ctx, summary.BillID)
	assert.True(t, shared.IsNotFound(err))

	count, err = NewGormLedgerRepository(db).CountByBill(ctx, summary.BillID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// No orphan child rows survive the revert
	var orphanItems, orphanPayments int64
	require.NoError(t, db.Model(&models.BillItemModel{}).Count(&orphanItems).Error)
	require.NoError(t, db.Model(&models.BillPaymentModel{}).Count(&orphanPayments).Error)
	assert.Equal(t, int64(0), orphanItems)
	assert.Equal(t, int64(0), orphanPayments)

	// A second delete finds nothing
	_, err = svc.DeleteBill(ctx, summary.BillID)
	assert.True(t, shared.IsNotFound(err))
}

func TestBillingFlow_FailedLineRollsBackWholeBill(t *testing.T) {
	db := setupBillingTestDB(t)
	svc := appbilling.NewService(NewGormTransactionScope(db), nil)
	ctx := context.Background()

	soap := seedTestProduct(t, db, "SOAP-001", "Neem Soap", 35, 20, 10)

	_, err := svc.CreateBill(ctx, appbilling.CreateBillInput{
		Items: []appbilling.CartItemInput{
			{ProductID: soap.ID, Quantity: 2, UnitPrice: decimal.NewFromInt(35)},
			{ProductID: uuid.New(), Quantity: 1, UnitPrice: decimal.NewFromInt(10)},
		},
	})
	require.Error(t, err)

	assert.Equal(t, int64(10), currentStock(t, db, soap.ID))

	var bills, items, entries int64
	require.NoError(t, db.Model(&models.BillModel{}).Count(&bills).Error)
	require.NoError(t, db.Model(&models.BillItemModel{}).Count(&items).Error)
	require.NoError(t, db.Model(&models.SalesEntryModel{}).Count(&entries).Error)
	assert.Equal(t, int64(0), bills)
	assert.Equal(t, int64(0), items)
	assert.Equal(t, int64(0), entries)
}

func TestBillingFlow_InsufficientStock(t *testing.T) {
	db := setupBillingTestDB(t)
	svc := appbilling.NewService(NewGormTransactionScope(db), nil)
	ctx := context.Background()

	atta := seedTestProduct(t, db, "ATTA-001", "Wheat Flour 5kg", 250, 190, 3)

	_, err := svc.CreateBill(ctx, appbilling.CreateBillInput{
		Items: []appbilling.CartItemInput{
			{ProductID: atta.ID, Quantity: 5, UnitPrice: decimal.NewFromInt(250)},
		},
	})
	require.Error(t, err)
	assert.True(t, shared.IsInsufficientStock(err))
	assert.Contains(t, err.Error(), "short by 2")

	assert.Equal(t, int64(3), currentStock(t, db, atta.ID))
}

func TestGormProductRepository_DeductStock(t *testing.T) {
	db := setupBillingTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	product := seedTestProduct(t, db, "SKU-900", "Guarded", 100, 60, 4)

	t.Run("deducts when enough stock remains", func(t *testing.T) {
		require.NoError(t, repo.DeductStock(ctx, product.ID, 3))
		assert.Equal(t, int64(1), currentStock(t, db, product.ID))
	})

	t.Run("guard rejects an oversell without touching stock", func(t *testing.T) {
		err := repo.DeductStock(ctx, product.ID, 2)
		assert.True(t, shared.IsInsufficientStock(err))
		assert.Equal(t, int64(1), currentStock(t, db, product.ID))
	})

	t.Run("deducting to exactly zero is allowed", func(t *testing.T) {
		require.NoError(t, repo.DeductStock(ctx, product.ID, 1))
		assert.Equal(t, int64(0), currentStock(t, db, product.ID))
	})

	t.Run("unknown product is not found, not insufficient", func(t *testing.T) {
		err := repo.DeductStock(ctx, uuid.New(), 1)
		assert.True(t, shared.IsNotFound(err))
	})

	t.Run("restore adds back unconditionally", func(t *testing.T) {
		require.NoError(t, repo.RestoreStock(ctx, product.ID, 4))
		assert.Equal(t, int64(4), currentStock(t, db, product.ID))

		err := repo.RestoreStock(ctx, uuid.New(), 4)
		assert.True(t, shared.IsNotFound(err))
	})
}

func TestGormInvoiceQueryRepository_StatusAggregation(t *testing.T) {
	db := setupBillingTestDB(t)
	svc := appbilling.NewService(NewGormTransactionScope(db), nil)
	queryRepo := NewGormInvoiceQueryRepository(db)
	ctx := context.Background()

	tea := seedTestProduct(t, db, "TEA-500", "Leaf Tea", 100, 70, 100)

	// Paid bill: payment for the full total at creation
	paid, err := svc.CreateBill(ctx, appbilling.CreateBillInput{
		CustomerName: "Paid Customer",
		Items: []appbilling.CartItemInput{
			{ProductID: tea.ID, Quantity: 2, UnitPrice: decimal.NewFromInt(100)},
		},
		PaymentMethod: "upi",
	})
	require.NoError(t, err)

	// Unpaid bill: no payment method
	unpaid, err := svc.CreateBill(ctx, appbilling.CreateBillInput{
		CustomerName: "Credit Customer",
		Items: []appbilling.CartItemInput{
			{ProductID: tea.ID, Quantity: 1, UnitPrice: decimal.NewFromInt(100)},
		},
	})
	require.NoError(t, err)

	// Partial bill: committed unpaid, then half the amount recorded
	partial, err := svc.CreateBill(ctx, appbilling.CreateBillInput{
		CustomerName: "Partial Customer",
		Items: []appbilling.CartItemInput{
			{ProductID: tea.ID, Quantity: 4, UnitPrice: decimal.NewFromInt(100)},
		},
	})
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.BillPaymentModel{
		ID:          uuid.New(),
		BillID:      partial.BillID,
		Method:      "cash",
		Amount:      decimal.NewFromInt(150),
		ProcessedAt: time.Now(),
	}).Error)

	t.Run("no filter returns all bills with payment sums", func(t *testing.T) {
		rows, total, err := queryRepo.Query(ctx, invoice.Query{})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, rows, 3)

		byID := make(map[uuid.UUID]invoice.InvoiceRow, len(rows))
		for _, row := range rows {
			byID[row.BillID] = row
		}
		assert.True(t, decimal.NewFromInt(200).Equal(byID[paid.BillID].PaidAmount))
		assert.True(t, byID[unpaid.BillID].PaidAmount.IsZero())
		assert.True(t, decimal.NewFromInt(150).Equal(byID[partial.BillID].PaidAmount))
		assert.Equal(t, int64(1), byID[paid.BillID].ItemCount)
	})

	t.Run("status filters select the matching bills", func(t *testing.T) {
		cases := []struct {
			status invoice.PaymentStatus
			want   uuid.UUID
		}{
			{invoice.PaymentStatusPaid, paid.BillID},
			{invoice.PaymentStatusUnpaid, unpaid.BillID},
			{invoice.PaymentStatusPartial, partial.BillID},
		}
		for _, tc := range cases {
			status := tc.status
			rows, total, err := queryRepo.Query(ctx, invoice.Query{Status: &status})
			require.NoError(t, err)
			assert.Equal(t, int64(1), total, "status %s", status)
			require.Len(t, rows, 1, "status %s", status)
			assert.Equal(t, tc.want, rows[0].BillID, "status %s", status)
		}
	})

	t.Run("date range excludes bills outside the window", func(t *testing.T) {
		from := time.Now().Add(time.Hour)
		to := from.Add(time.Hour)
		rows, total, err := queryRepo.Query(ctx, invoice.Query{From: &from, To: &to})
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
		assert.Empty(t, rows)
	})

	t.Run("paging limits the rows but not the total", func(t *testing.T) {
		rows, total, err := queryRepo.Query(ctx, invoice.Query{Limit: 2, Offset: 0})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, rows, 2)
	})
}

func TestGormSalesReportRepository_Aggregation(t *testing.T) {
	db := setupBillingTestDB(t)
	svc := appbilling.NewService(NewGormTransactionScope(db), nil)
	reportRepo := NewGormSalesReportRepository(db)
	ctx := context.Background()

	chai := seedTestProduct(t, db, "CHAI-002", "Ginger Chai", 25, 10, 100)
	rusk := seedTestProduct(t, db, "RUSK-002", "Butter Rusk", 50, 30, 100)

	_, err := svc.CreateBill(ctx, appbilling.CreateBillInput{
		Items: []appbilling.CartItemInput{
			{ProductID: chai.ID, Quantity: 4, UnitPrice: decimal.NewFromInt(25)},
			{ProductID: rusk.ID, Quantity: 2, UnitPrice: decimal.NewFromInt(50)},
		},
	})
	require.NoError(t, err)

	_, err = svc.CreateBill(ctx, appbilling.CreateBillInput{
		Items: []appbilling.CartItemInput{
			{ProductID: rusk.ID, Quantity: 1, UnitPrice: decimal.NewFromInt(50)},
		},
	})
	require.NoError(t, err)

	from := time.Now().Add(-time.Hour)
	to := time.Now().Add(time.Hour)

	t.Run("aggregate sums the ledger with snapshot profit", func(t *testing.T) {
		agg, err := reportRepo.Aggregate(ctx, from, to)
		require.NoError(t, err)
		assert.Equal(t, int64(2), agg.BillCount)
		assert.Equal(t, int64(7), agg.TotalQuantity)
		assert.True(t, decimal.NewFromInt(250).Equal(agg.Revenue), "revenue %s", agg.Revenue)
		// chai 4*(25-10) + rusk 3*(50-30)
		assert.True(t, decimal.NewFromInt(120).Equal(agg.Profit), "profit %s", agg.Profit)
	})

	t.Run("empty range aggregates to zero", func(t *testing.T) {
		agg, err := reportRepo.Aggregate(ctx, from.Add(-2*time.Hour), from.Add(-time.Hour))
		require.NoError(t, err)
		assert.Equal(t, int64(0), agg.BillCount)
		assert.True(t, agg.Revenue.IsZero())
		assert.True(t, agg.Profit.IsZero())
	})

	t.Run("group by product orders by revenue descending", func(t *testing.T) {
		rows, err := reportRepo.GroupByProduct(ctx, from, to)
		require.NoError(t, err)
		require.Len(t, rows, 2)

		assert.Equal(t, rusk.ID, rows[0].ProductID)
		assert.Equal(t, int64(3), rows[0].Quantity)
		assert.True(t, decimal.NewFromInt(150).Equal(rows[0].Revenue))
		assert.True(t, decimal.NewFromInt(60).Equal(rows[0].Profit))

		assert.Equal(t, chai.ID, rows[1].ProductID)
		assert.True(t, decimal.NewFromInt(100).Equal(rows[1].Revenue))
	})

	t.Run("group by category folds both products together", func(t *testing.T) {
		rows, err := reportRepo.GroupByCategory(ctx, from, to)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "General", rows[0].Category)
		assert.Equal(t, int64(7), rows[0].Quantity)
		assert.True(t, decimal.NewFromInt(250).Equal(rows[0].Revenue))
	})
}
