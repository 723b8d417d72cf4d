package redemption

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/promo-coupon-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockCouponStore struct{ mock.Mock }

func (m *mockCouponStore) Get(ctx context.Context, couponUUID string) (*domain.Coupon, error) {
	args := m.Called(ctx, couponUUID)
	if c, _ := args.Get(0).(*domain.Coupon); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockCouponStore) MarkUsed(ctx context.Context, couponUUID string, usedAt time.Time) error {
	return m.Called(ctx, couponUUID, usedAt).Error(0)
}

// fakeLedger mimics the conditional update the real store performs: the
// NOT_USED -> USED transition succeeds at most once per coupon.
type fakeLedger struct {
	mu      sync.Mutex
	coupons map[string]*domain.Coupon
}

func newFakeLedger(coupons ...*domain.Coupon) *fakeLedger {
	l := &fakeLedger{coupons: make(map[string]*domain.Coupon)}
	for _, c := range coupons {
		l.coupons[c.CouponUUID] = c
	}
	return l
}

func (l *fakeLedger) Get(_ context.Context, couponUUID string) (*domain.Coupon, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	c, ok := l.coupons[couponUUID]
	if !ok {
		return nil, fmt.Errorf("coupon not found: %w", domain.ErrNotFound)
	}
	cp := *c
	return &cp, nil
}

func (l *fakeLedger) MarkUsed(_ context.Context, couponUUID string, usedAt time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	c, ok := l.coupons[couponUUID]
	if !ok || c.Status != domain.CouponNotUsed {
		return fmt.Errorf("coupon no longer redeemable: %w", domain.ErrConflict)
	}
	c.Status = domain.CouponUsed
	c.UsedAt = &usedAt
	return nil
}

// --- tests ---

func TestRedeem_EmptyID(t *testing.T) {
	svc := NewService(nil)
	_, err := svc.Redeem(context.Background(), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestRedeem_NotFound(t *testing.T) {
	cs := &mockCouponStore{}
	cs.On("Get", mock.Anything, "nope").Return(nil, fmt.Errorf("coupon not found: %w", domain.ErrNotFound))

	svc := NewService(cs)
	_, err := svc.Redeem(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestRedeem_AlreadyUsed_NamesHolder(t *testing.T) {
	cs := &mockCouponStore{}
	cs.On("Get", mock.Anything, "c1").Return(&domain.Coupon{
		CouponUUID: "c1", HolderName: "Alice Smith", Status: domain.CouponUsed,
	}, nil)

	svc := NewService(cs)
	_, err := svc.Redeem(context.Background(), "c1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.Contains(t, err.Error(), "Alice Smith")
	cs.AssertNotCalled(t, "MarkUsed", mock.Anything, mock.Anything, mock.Anything)
}

func TestRedeem_ExpiredCoupon(t *testing.T) {
	cs := &mockCouponStore{}
	cs.On("Get", mock.Anything, "c1").Return(&domain.Coupon{
		CouponUUID: "c1", Status: domain.CouponExpired,
	}, nil)

	svc := NewService(cs)
	_, err := svc.Redeem(context.Background(), "c1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestRedeem_HappyPath(t *testing.T) {
	cs := &mockCouponStore{}
	cs.On("Get", mock.Anything, "c1").Return(&domain.Coupon{
		CouponUUID: "c1", HolderName: "Alice Smith", Status: domain.CouponNotUsed,
	}, nil)
	cs.On("MarkUsed", mock.Anything, "c1", mock.AnythingOfType("time.Time")).Return(nil)

	svc := NewService(cs)
	res, err := svc.Redeem(context.Background(), "c1")

	require.NoError(t, err)
	assert.Equal(t, "Alice Smith", res.HolderName)
	cs.AssertExpectations(t)
}

func TestRedeem_ConditionalConflict(t *testing.T) {
	cs := &mockCouponStore{}
	cs.On("Get", mock.Anything, "c1").Return(&domain.Coupon{
		CouponUUID: "c1", Status: domain.CouponNotUsed,
	}, nil)
	cs.On("MarkUsed", mock.Anything, "c1", mock.Anything).
		Return(fmt.Errorf("coupon no longer redeemable: %w", domain.ErrConflict))

	svc := NewService(cs)
	_, err := svc.Redeem(context.Background(), "c1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestRedeem_SecondAttemptKeepsUsedAt(t *testing.T) {
	ledger := newFakeLedger(&domain.Coupon{
		CouponUUID: "c1", HolderName: "Alice Smith", Status: domain.CouponNotUsed,
	})
	svc := NewService(ledger)

	_, err := svc.Redeem(context.Background(), "c1")
	require.NoError(t, err)

	first, err := ledger.Get(context.Background(), "c1")
	require.NoError(t, err)
	require.NotNil(t, first.UsedAt)

	_, err = svc.Redeem(context.Background(), "c1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))

	second, err := ledger.Get(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, first.UsedAt, second.UsedAt, "failed redemption must not touch used_at")
}

// Of many simultaneous redemptions for one coupon, exactly one may win.
func TestRedeem_ConcurrentAttempts_OneWinner(t *testing.T) {
	ledger := newFakeLedger(&domain.Coupon{
		CouponUUID: "c1", HolderName: "Alice Smith", Status: domain.CouponNotUsed,
	})
	svc := NewService(ledger)

	const attempts = 25
	var wg sync.WaitGroup
	wg.Add(attempts)
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Redeem(context.Background(), "c1")
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			assert.True(t, errors.Is(err, domain.ErrConflict), "loser must observe a conflict, got: %v", err)
		}
	}
	assert.Equal(t, 1, wins, "exactly one concurrent redemption may succeed")
}
