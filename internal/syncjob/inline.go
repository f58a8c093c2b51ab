package syncjob

import (
	"context"
	"sync"
	"time"

	"github.com/wojbuk3335/Bukowski-app-API-sub002/internal/model"
)

// InlineDispatcher executes jobs on a goroutine of this process.
type InlineDispatcher struct {
	exec    *Executor
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewInlineDispatcher(exec *Executor, timeout time.Duration) *InlineDispatcher {
	return &InlineDispatcher{exec: exec, timeout: timeout}
}

func (d *InlineDispatcher) Dispatch(ctx context.Context, req Request) (*model.SyncJob, error) {
	job, err := d.exec.Enqueue(ctx, req)
	if err != nil {
		return nil, err
	}

	running := *job
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
		defer cancel()
		// Execute records and logs failures itself.
		_ = d.exec.Execute(runCtx, &running)
	}()
	return job, nil
}

// Wait blocks until every dispatched job has finished.
func (d *InlineDispatcher) Wait() {
	d.wg.Wait()
}
