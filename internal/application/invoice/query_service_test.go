package invoice

import (
	"context"
	"testing"
	"time"

	"github.com/bizpulse/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockReadRepository is a mock implementation of ReadRepository
type MockReadRepository struct {
	mock.Mock
}

func (m *MockReadRepository) Query(ctx context.Context, q Query) ([]InvoiceRow, int64, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]InvoiceRow), args.Get(1).(int64), args.Error(2)
}

func TestDerivePaymentStatus(t *testing.T) {
	total := decimal.NewFromInt(100)

	cases := []struct {
		name string
		paid string
		want PaymentStatus
	}{
		{"nothing paid", "0", PaymentStatusUnpaid},
		{"negative adjustment", "-10", PaymentStatusUnpaid},
		{"part paid", "40", PaymentStatusPartial},
		{"almost paid", "99.99", PaymentStatusPartial},
		{"exactly paid", "100", PaymentStatusPaid},
		{"overpaid", "120", PaymentStatusPaid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			paid, err := decimal.NewFromString(tc.paid)
			require.NoError(t, err)
			assert.Equal(t, tc.want, DerivePaymentStatus(paid, total))
		})
	}
}

func TestListResolvesBuckets(t *testing.T) {
	ctx := context.Background()
	// Wednesday, 10:30 local time.
	now := time.Date(2026, 8, 26, 10, 30, 0, 0, time.Local)
	midnight := time.Date(2026, 8, 26, 0, 0, 0, 0, time.Local)

	cases := []struct {
		bucket   DateBucket
		wantFrom time.Time
		wantTo   time.Time
	}{
		{BucketToday, midnight, midnight.AddDate(0, 0, 1)},
		{BucketYesterday, midnight.AddDate(0, 0, -1), midnight},
		{BucketLast7Days, midnight.AddDate(0, 0, -6), midnight.AddDate(0, 0, 1)},
		{BucketLast30Days, midnight.AddDate(0, 0, -29), midnight.AddDate(0, 0, 1)},
	}
	for _, tc := range cases {
		t.Run(string(tc.bucket), func(t *testing.T) {
			repo := new(MockReadRepository)
			repo.On("Query", ctx, mock.MatchedBy(func(q Query) bool {
				return q.From != nil && q.From.Equal(tc.wantFrom) &&
					q.To != nil && q.To.Equal(tc.wantTo)
			})).Return([]InvoiceRow{}, int64(0), nil)

			svc := NewQueryService(repo, nil)
			svc.now = func() time.Time { return now }

			_, err := svc.List(ctx, ListFilter{Bucket: tc.bucket})
			require.NoError(t, err)
			repo.AssertExpectations(t)
		})
	}
}

func TestListCustomRange(t *testing.T) {
	ctx := context.Background()
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.Local)
	to := time.Date(2026, 8, 15, 0, 0, 0, 0, time.Local)

	t.Run("extends the end date to end of day", func(t *testing.T) {
		repo := new(MockReadRepository)
		repo.On("Query", ctx, mock.MatchedBy(func(q Query) bool {
			return q.From.Equal(from) && q.To.Equal(to.AddDate(0, 0, 1))
		})).Return([]InvoiceRow{}, int64(0), nil)

		svc := NewQueryService(repo, nil)
		_, err := svc.List(ctx, ListFilter{Bucket: BucketCustom, From: &from, To: &to})
		require.NoError(t, err)
	})

	t.Run("missing bounds", func(t *testing.T) {
		svc := NewQueryService(new(MockReadRepository), nil)
		_, err := svc.List(ctx, ListFilter{Bucket: BucketCustom, From: &from})
		assert.ErrorIs(t, err, shared.ErrValidation)
	})

	t.Run("inverted bounds", func(t *testing.T) {
		svc := NewQueryService(new(MockReadRepository), nil)
		_, err := svc.List(ctx, ListFilter{Bucket: BucketCustom, From: &to, To: &from})
		assert.ErrorIs(t, err, shared.ErrValidation)
	})

	t.Run("unknown bucket", func(t *testing.T) {
		svc := NewQueryService(new(MockReadRepository), nil)
		_, err := svc.List(ctx, ListFilter{Bucket: "fortnight"})
		assert.ErrorIs(t, err, shared.ErrValidation)
	})
}

func TestListDerivesStatusAndPaginates(t *testing.T) {
	ctx := context.Background()
	rows := []InvoiceRow{
		{BillID: uuid.New(), BillNumber: "BILL-20260826-aaaaaaaa",
			TotalAmount: decimal.NewFromInt(100), PaidAmount: decimal.NewFromInt(100)},
		{BillID: uuid.New(), BillNumber: "BILL-20260826-bbbbbbbb",
			TotalAmount: decimal.NewFromInt(200), PaidAmount: decimal.NewFromInt(50)},
		{BillID: uuid.New(), BillNumber: "BILL-20260826-cccccccc",
			TotalAmount: decimal.NewFromInt(300), PaidAmount: decimal.Zero},
	}

	repo := new(MockReadRepository)
	repo.On("Query", ctx, mock.MatchedBy(func(q Query) bool {
		return q.Limit == 3 && q.Offset == 3 && q.From == nil && q.To == nil
	})).Return(rows, int64(11), nil)

	svc := NewQueryService(repo, nil)
	page, err := svc.List(ctx, ListFilter{Page: 2, PageSize: 3})
	require.NoError(t, err)

	require.Len(t, page.Items, 3)
	assert.Equal(t, PaymentStatusPaid, page.Items[0].PaymentStatus)
	assert.Equal(t, PaymentStatusPartial, page.Items[1].PaymentStatus)
	assert.Equal(t, PaymentStatusUnpaid, page.Items[2].PaymentStatus)

	assert.EqualValues(t, 11, page.Total)
	assert.Equal(t, 4, page.TotalPages)
	assert.True(t, page.HasNext)
	assert.True(t, page.HasPrev)
}

func TestListStatusFilterIsPassedThrough(t *testing.T) {
	ctx := context.Background()
	status := PaymentStatusPartial

	repo := new(MockReadRepository)
	repo.On("Query", ctx, mock.MatchedBy(func(q Query) bool {
		return q.Status != nil && *q.Status == PaymentStatusPartial
	})).Return([]InvoiceRow{}, int64(0), nil)

	svc := NewQueryService(repo, nil)
	_, err := svc.List(ctx, ListFilter{PaymentStatus: &status})
	require.NoError(t, err)
	repo.AssertExpectations(t)

	bad := PaymentStatus("settled")
	_, err = svc.List(ctx, ListFilter{PaymentStatus: &bad})
	assert.ErrorIs(t, err, shared.ErrValidation)
}
