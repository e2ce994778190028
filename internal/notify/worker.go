package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const (
	TypeBookingNotify  = "booking:notify"
	QueueNotifications = "notifications"
)

type NotifyPayload struct {
	BookingID int64 `json:"bookingId"`
}

func NewNotifyTask(bookingID int64) (*asynq.Task, error) {
	b, err := json.Marshal(NotifyPayload{BookingID: bookingID})
	if err != nil {
		return nil, fmt.Errorf("marshal notify payload: %w", err)
	}
	return asynq.NewTask(TypeBookingNotify, b), nil
}

// HandleNotifyTask adapts a Sender to an asynq handler. Malformed payloads
// are skipped rather than retried.
func HandleNotifyTask(sender Sender, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p NotifyPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid notify payload", zap.Error(err))
			return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
		}

		if err := sender.Notify(ctx, p.BookingID); err != nil {
			logger.Warn("notify task failed", zap.Int64("bookingId", p.BookingID), zap.Error(err))
			return err
		}
		return nil
	}
}

type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	logger *zap.Logger
}

func NewWorker(redisOpt asynq.RedisClientOpt, concurrency int, sender Sender, logger *zap.Logger) *Worker {
	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			QueueNotifications: 1,
		},
		Logger: logger.Sugar(),
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeBookingNotify, HandleNotifyTask(sender, logger))

	return &Worker{
		server: server,
		mux:    mux,
		logger: logger,
	}
}

func (w *Worker) Start() error {
	w.logger.Info("starting notification worker")
	if err := w.server.Start(w.mux); err != nil {
		return fmt.Errorf("start notification worker: %w", err)
	}
	return nil
}

func (w *Worker) Shutdown() {
	w.server.Shutdown()
}
