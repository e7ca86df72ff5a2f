package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mahfuzul873/m873/internal/model"
	appErr "github.com/mahfuzul873/m873/internal/pkg/errors"
	"github.com/mahfuzul873/m873/internal/pkg/timeutil"
	"github.com/mahfuzul873/m873/internal/service"
)

var errStoreDown = errors.New("store down")

// fakeOTPStore mimics the single-row-per-email upsert semantics of the real
// table, with a switch to simulate an unreachable database.
type fakeOTPStore struct {
	rows map[string]*model.OwnerOTP
	down bool
}

func newFakeOTPStore() *fakeOTPStore {
	return &fakeOTPStore{rows: make(map[string]*model.OwnerOTP)}
}

func (f *fakeOTPStore) Issue(ctx context.Context, email, code string, ctime, expiresAt int64) error {
	if f.down {
		return errStoreDown
	}
	f.rows[email] = &model.OwnerOTP{Email: email, Code: code, Ctime: ctime, ExpiresAt: expiresAt}
	return nil
}

func (f *fakeOTPStore) Latest(ctx context.Context, email string) (*model.OwnerOTP, error) {
	if f.down {
		return nil, errStoreDown
	}
	row, ok := f.rows[email]
	if !ok {
		return nil, appErr.ErrNotFound
	}
	return row, nil
}

func (f *fakeOTPStore) Consume(ctx context.Context, email, code string, now int64) (bool, error) {
	if f.down {
		return false, errStoreDown
	}
	row, ok := f.rows[email]
	if !ok || row.Used || row.Code != code || row.ExpiresAt <= now {
		return false, nil
	}
	row.Used = true
	return true, nil
}

func newTestOTPService(store service.OTPStore) *service.OTPService {
	return service.NewOTPService(store, nil, service.OTPServiceOptions{
		TTL: 10 * time.Minute,
	})
}

func TestOTPRequestAndVerify(t *testing.T) {
	store := newFakeOTPStore()
	svc := newTestOTPService(store)

	issue, err := svc.Request(context.Background(), "owner@m873.example")
	require.NoError(t, err)
	require.Regexp(t, `^\d{6}$`, issue.Code)
	require.Greater(t, issue.ExpiresAt, timeutil.NowUnix())

	ok, err := svc.Verify(context.Background(), "owner@m873.example", issue.Code)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestOTPSingleUse(t *testing.T) {
	store := newFakeOTPStore()
	svc := newTestOTPService(store)

	issue, err := svc.Request(context.Background(), "owner@m873.example")
	require.NoError(t, err)

	ok, err := svc.Verify(context.Background(), "owner@m873.example", issue.Code)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = svc.Verify(context.Background(), "owner@m873.example", issue.Code)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestOTPFreshCodeInvalidatesOld(t *testing.T) {
	store := newFakeOTPStore()
	svc := newTestOTPService(store)

	first, err := svc.Request(context.Background(), "owner@m873.example")
	require.NoError(t, err)
	second, err := svc.Request(context.Background(), "owner@m873.example")
	require.NoError(t, err)

	if first.Code != second.Code {
		ok, err := svc.Verify(context.Background(), "owner@m873.example", first.Code)
		require.NoError(t, err)
		require.False(t, ok)
	}
	ok, err := svc.Verify(context.Background(), "owner@m873.example", second.Code)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestOTPExpiredCode(t *testing.T) {
	store := newFakeOTPStore()
	svc := newTestOTPService(store)

	issue, err := svc.Request(context.Background(), "owner@m873.example")
	require.NoError(t, err)
	store.rows["owner@m873.example"].ExpiresAt = timeutil.NowUnix() - 1

	ok, err := svc.Verify(context.Background(), "owner@m873.example", issue.Code)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestOTPMalformedCode(t *testing.T) {
	svc := newTestOTPService(newFakeOTPStore())
	for _, code := range []string{"", "12345", "1234567", "abcdef", "12 456"} {
		ok, err := svc.Verify(context.Background(), "owner@m873.example", code)
		require.NoError(t, err)
		require.False(t, ok, "code %q must not verify", code)
	}
}

func TestOTPEmailNormalized(t *testing.T) {
	store := newFakeOTPStore()
	svc := newTestOTPService(store)

	issue, err := svc.Request(context.Background(), "  Owner@M873.Example ")
	require.NoError(t, err)

	ok, err := svc.Verify(context.Background(), "owner@m873.example", issue.Code)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestOTPFallbackWhenStoreDown(t *testing.T) {
	store := newFakeOTPStore()
	store.down = true
	svc := newTestOTPService(store)

	issue, err := svc.Request(context.Background(), "owner@m873.example")
	require.NoError(t, err)
	require.Regexp(t, `^\d{6}$`, issue.Code)

	ok, err := svc.Verify(context.Background(), "owner@m873.example", issue.Code)
	require.NoError(t, err)
	require.True(t, ok)

	// fallback codes are single use too
	ok, err = svc.Verify(context.Background(), "owner@m873.example", issue.Code)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestOTPFallbackRejectsWrongCode(t *testing.T) {
	store := newFakeOTPStore()
	store.down = true
	svc := newTestOTPService(store)

	issue, err := svc.Request(context.Background(), "owner@m873.example")
	require.NoError(t, err)

	wrong := "000000"
	if issue.Code == wrong {
		wrong = "000001"
	}
	ok, err := svc.Verify(context.Background(), "owner@m873.example", wrong)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestOTPDevAcceptAny(t *testing.T) {
	store := newFakeOTPStore()
	store.down = true
	svc := service.NewOTPService(store, nil, service.OTPServiceOptions{
		TTL:          10 * time.Minute,
		DevAcceptAny: true,
	})

	// nothing was ever issued for this email, the store is down and the
	// fallback cache is empty: the dev gate alone accepts the code
	ok, err := svc.Verify(context.Background(), "other@m873.example", "123456")
	require.NoError(t, err)
	require.True(t, ok)

	// still bound by the shape check
	ok, err = svc.Verify(context.Background(), "other@m873.example", "not-a-code")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestOTPDevAcceptAnyDisabledByDefault(t *testing.T) {
	store := newFakeOTPStore()
	store.down = true
	svc := newTestOTPService(store)

	ok, err := svc.Verify(context.Background(), "other@m873.example", "123456")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestOTPResendCooldown(t *testing.T) {
	store := newFakeOTPStore()
	svc := service.NewOTPService(store, nil, service.OTPServiceOptions{
		TTL:            10 * time.Minute,
		ResendCooldown: time.Minute,
	})

	_, err := svc.Request(context.Background(), "owner@m873.example")
	require.NoError(t, err)

	_, err = svc.Request(context.Background(), "owner@m873.example")
	require.ErrorIs(t, err, appErr.ErrTooMany)
}

func TestOTPRequestEmptyEmail(t *testing.T) {
	svc := newTestOTPService(newFakeOTPStore())
	_, err := svc.Request(context.Background(), "   ")
	require.ErrorIs(t, err, appErr.ErrInvalid)
}
