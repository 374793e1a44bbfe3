package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"hotelcore/services/logger"
)

// DefaultExpireSpec chạy mỗi 5 phút
const DefaultExpireSpec = "*/5 * * * *"

// PendingExpirer hủy các booking pending quá hạn giữ chỗ.
type PendingExpirer interface {
	ExpirePending(ctx context.Context) (int, error)
}

// ExpirePendingJob trả về hàm job để đăng ký vào cron.
func ExpirePendingJob(expirer PendingExpirer, log logger.Logger, timeout time.Duration) func() {
	log = logger.OrNop(log)
	return func() {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		n, err := expirer.ExpirePending(ctx)
		if err != nil {
			log.Error("expire pending bookings: %v", err)
			return
		}
		if n > 0 {
			log.Info("expired %d pending bookings", n)
		}
	}
}

// InitCronJobs khởi tạo các cron jobs
func InitCronJobs(c *cron.Cron, spec string, expirer PendingExpirer, log logger.Logger) error {
	if spec == "" {
		spec = DefaultExpireSpec
	}
	if _, err := c.AddFunc(spec, ExpirePendingJob(expirer, log, 30*time.Second)); err != nil {
		return err
	}

	c.Start()
	logger.OrNop(log).Info("Cron jobs initialized successfully (%s)", spec)
	return nil
}
