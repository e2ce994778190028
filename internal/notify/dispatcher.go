package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Dispatcher hands a committed booking to phase two. Dispatch must not block
// on delivery.
type Dispatcher interface {
	Dispatch(ctx context.Context, bookingID int64) error
}

type Sender interface {
	Notify(ctx context.Context, bookingID int64) error
}

// InlineDispatcher runs phase two on a goroutine detached from the request.
type InlineDispatcher struct {
	sender  Sender
	timeout time.Duration
	logger  *zap.Logger
	wg      sync.WaitGroup
}

func NewInlineDispatcher(sender Sender, timeout time.Duration, logger *zap.Logger) *InlineDispatcher {
	return &InlineDispatcher{
		sender:  sender,
		timeout: timeout,
		logger:  logger,
	}
}

func (d *InlineDispatcher) Dispatch(_ context.Context, bookingID int64) error {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := d.sender.Notify(ctx, bookingID); err != nil {
			d.logger.Warn("booking notification incomplete",
				zap.Int64("bookingId", bookingID),
				zap.Error(err),
			)
		}
	}()
	return nil
}

// Wait blocks until in-flight notifications finish.
func (d *InlineDispatcher) Wait() {
	d.wg.Wait()
}

type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueueDispatcher puts phase two on an asynq queue, which retries failures.
type QueueDispatcher struct {
	client   Enqueuer
	maxRetry int
	timeout  time.Duration
	logger   *zap.Logger
}

func NewQueueDispatcher(client Enqueuer, maxRetry int, timeout time.Duration, logger *zap.Logger) *QueueDispatcher {
	return &QueueDispatcher{
		client:   client,
		maxRetry: maxRetry,
		timeout:  timeout,
		logger:   logger,
	}
}

func (d *QueueDispatcher) Dispatch(ctx context.Context, bookingID int64) error {
	task, err := NewNotifyTask(bookingID)
	if err != nil {
		return err
	}

	info, err := d.client.EnqueueContext(ctx, task,
		asynq.Queue(QueueNotifications),
		asynq.MaxRetry(d.maxRetry),
		asynq.Timeout(d.timeout),
	)
	if err != nil {
		return fmt.Errorf("enqueue notification for booking %d: %w", bookingID, err)
	}

	d.logger.Debug("notification enqueued",
		zap.Int64("bookingId", bookingID),
		zap.String("taskId", info.ID),
	)
	return nil
}
