package job

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/mahfuzul873/m873/internal/pkg/timeutil"
	"github.com/mahfuzul873/m873/internal/repo"
)

// OTPCleanupJob deletes expired login codes. Consumed-but-unexpired rows stay
// until expiry so a replayed code still hits the used flag instead of a miss.
type OTPCleanupJob struct {
	otpRepo *repo.OTPRepo
}

func NewOTPCleanupJob(otpRepo *repo.OTPRepo) *OTPCleanupJob {
	return &OTPCleanupJob{otpRepo: otpRepo}
}

func (j *OTPCleanupJob) Name() string {
	return "otp_cleanup"
}

func (j *OTPCleanupJob) Run(ctx context.Context) error {
	if j.otpRepo == nil {
		return nil
	}
	purged, err := j.otpRepo.PurgeExpired(ctx, timeutil.NowUnix())
	if err != nil {
		return err
	}
	if purged > 0 {
		logutil.GetLogger(ctx).Info("expired otp rows purged", zap.Int64("count", purged))
	}
	return nil
}
