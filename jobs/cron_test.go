package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingExpirer struct {
	calls int32
	err   error
}

func (e *countingExpirer) ExpirePending(ctx context.Context) (int, error) {
	atomic.AddInt32(&e.calls, 1)
	if _, ok := ctx.Deadline(); !ok {
		return 0, errors.New("job context has no deadline")
	}
	return 2, e.err
}

func TestExpirePendingJob(t *testing.T) {
	e := &countingExpirer{}
	ExpirePendingJob(e, nil, time.Second)()
	assert.Equal(t, int32(1), atomic.LoadInt32(&e.calls))

	failing := &countingExpirer{err: errors.New("db down")}
	assert.NotPanics(t, ExpirePendingJob(failing, nil, time.Second))
}

func TestInitCronJobs(t *testing.T) {
	c := cron.New(cron.WithSeconds())
	e := &countingExpirer{}
	require.NoError(t, InitCronJobs(c, "@every 1s", e, nil))
	defer c.Stop()

	assert.Eventually(t, func() bool { return atomic.LoadInt32(&e.calls) > 0 }, 3*time.Second, 50*time.Millisecond)
	assert.Error(t, InitCronJobs(cron.New(), "not a spec", e, nil))
}
