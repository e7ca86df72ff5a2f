package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/mahfuzul873/m873/internal/model"
	appErr "github.com/mahfuzul873/m873/internal/pkg/errors"
	"github.com/mahfuzul873/m873/internal/pkg/timeutil"
)

// OTPStore is the persistent side of the authenticator. The fallback cache
// takes over when any of these calls fail.
type OTPStore interface {
	Issue(ctx context.Context, email, code string, ctime, expiresAt int64) error
	Latest(ctx context.Context, email string) (*model.OwnerOTP, error)
	Consume(ctx context.Context, email, code string, now int64) (bool, error)
}

type OTPIssue struct {
	Code      string `json:"code"`
	ExpiresAt int64  `json:"expires_at"`
}

var otpShapeRe = regexp.MustCompile(`^\d{6}$`)

type OTPServiceOptions struct {
	TTL            time.Duration
	ResendCooldown time.Duration
	// DevAcceptAny accepts any well-formed code when both the store and the
	// fallback cache have nothing for the email. Never enable in production.
	DevAcceptAny      bool
	FallbackCacheSize int
}

// OTPService issues and verifies short-lived numeric codes scoped to an email
// address. When the store is unreachable it degrades to a process-local
// expirable cache keyed by email, which is acceptable for the single-operator
// owner login this backs.
type OTPService struct {
	store        OTPStore
	sender       EmailSender
	fallback     *expirable.LRU[string, string]
	ttl          time.Duration
	cooldown     time.Duration
	devAcceptAny bool
}

func NewOTPService(store OTPStore, sender EmailSender, opts OTPServiceOptions) *OTPService {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	size := opts.FallbackCacheSize
	if size <= 0 {
		size = 16
	}
	return &OTPService{
		store:        store,
		sender:       sender,
		fallback:     expirable.NewLRU[string, string](size, nil, ttl),
		ttl:          ttl,
		cooldown:     opts.ResendCooldown,
		devAcceptAny: opts.DevAcceptAny,
	}
}

func (s *OTPService) TTL() time.Duration {
	return s.ttl
}

// Request issues a fresh code for the email, replacing any prior unconsumed
// one, and mails it. The returned issue carries the code so the caller owns
// delivery; a mail failure is logged but does not fail the request.
func (s *OTPService) Request(ctx context.Context, email string) (*OTPIssue, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, appErr.ErrInvalid
	}
	if err := s.ensureCooldown(ctx, email); err != nil {
		return nil, err
	}
	now := timeutil.NowUnix()
	expiresAt := now + int64(s.ttl/time.Second)
	code, err := generateCode()
	if err != nil {
		return nil, appErr.ErrOTPUnavailable
	}
	if storeErr := s.store.Issue(ctx, email, code, now, expiresAt); storeErr != nil {
		logutil.GetLogger(ctx).Warn("otp store unavailable, using local fallback",
			zap.String("email", email), zap.Error(storeErr))
		if s.fallback == nil {
			return nil, appErr.ErrOTPUnavailable
		}
		code, err = fallbackCode()
		if err != nil {
			return nil, appErr.ErrOTPUnavailable
		}
		s.fallback.Add(email, code)
	}
	s.deliver(ctx, email, code)
	return &OTPIssue{Code: code, ExpiresAt: expiresAt}, nil
}

// Verify consumes the code on first success; a repeat of the same code fails.
// Invalid, expired or malformed codes are a normal false, never an error.
func (s *OTPService) Verify(ctx context.Context, email, code string) (bool, error) {
	email = normalizeEmail(email)
	code = strings.TrimSpace(code)
	if email == "" || !otpShapeRe.MatchString(code) {
		return false, nil
	}
	ok, err := s.store.Consume(ctx, email, code, timeutil.NowUnix())
	if err == nil {
		return ok, nil
	}
	logutil.GetLogger(ctx).Warn("otp store unavailable during verify, checking local fallback",
		zap.String("email", email), zap.Error(err))
	if s.fallback != nil {
		if cached, found := s.fallback.Get(email); found {
			if cached == code {
				s.fallback.Remove(email)
				return true, nil
			}
			return false, nil
		}
	}
	if s.devAcceptAny {
		logutil.GetLogger(ctx).Warn("accepting unverified otp, dev_accept_any is enabled",
			zap.String("email", email))
		return true, nil
	}
	return false, nil
}

func (s *OTPService) ensureCooldown(ctx context.Context, email string) error {
	if s.cooldown <= 0 {
		return nil
	}
	latest, err := s.store.Latest(ctx, email)
	if err != nil {
		// Not found means no prior code; any other store error is handled by
		// the fallback path in Request.
		return nil
	}
	if latest.Ctime+int64(s.cooldown/time.Second) > timeutil.NowUnix() {
		return appErr.ErrTooMany
	}
	return nil
}

func (s *OTPService) deliver(ctx context.Context, email, code string) {
	if s.sender == nil {
		return
	}
	ttlMinutes := int(s.ttl / time.Minute)
	if err := s.sender.Send(email, otpMailSubject(), otpMailHTML(code, ttlMinutes), otpMailText(code, ttlMinutes)); err != nil {
		logutil.GetLogger(ctx).Warn("otp mail delivery failed", zap.String("email", email), zap.Error(err))
	}
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// fallbackCode draws uniformly from [100000, 999999].
func fallbackCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
