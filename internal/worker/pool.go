package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueEmail = "jobs:email"

	// NotifChannel es el canal pub/sub donde se publican los eventos de
	// vencimiento de licencias. El endpoint websocket los reenvía a los
	// clientes conectados.
	NotifChannel = "notificaciones:vencimientos"

	maxEmailAttempts = 3
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Dispatcher enqueues async jobs into Redis lists and publishes notification
// events. The worker pool dequeues jobs via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueEmail pushes an alert-email job to Redis.
func (d *Dispatcher) EnqueueEmail(ctx context.Context, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: "email", Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, QueueEmail, encoded).Err()
}

// PublishVencimiento publishes a license-expiry event on the notification
// channel. Best effort: subscribers not connected at the time miss it.
func (d *Dispatcher) PublishVencimiento(ctx context.Context, evento interface{}) error {
	data, err := json.Marshal(evento)
	if err != nil {
		return err
	}
	return d.rdb.Publish(ctx, NotifChannel, data).Err()
}

// WorkerHandlers groups the per-queue processors wired at the composition root.
type WorkerHandlers struct {
	Email *EmailWorker
}

// StartWorkerPool launches numWorkers goroutines consuming the email queue.
// Each goroutine blocks on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, handlers, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, QueueEmail).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, rdb, handlers, result[0], result[1])
		}
	}
}

func processJob(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		SendToDLQ(ctx, rdb, queue, "unknown", json.RawMessage(raw), "payload ilegible", 0)
		return
	}

	switch job.Type {
	case "email":
		var lastErr error
		for attempt := 1; attempt <= maxEmailAttempts; attempt++ {
			if lastErr = handlers.Email.Process(ctx, job.Payload); lastErr == nil {
				return
			}
			log.Warn().Err(lastErr).Int("attempt", attempt).Msg("email job failed")
		}
		SendToDLQ(ctx, rdb, queue, job.Type, job.Payload, lastErr.Error(), maxEmailAttempts)
	default:
		log.Error().Str("type", job.Type).Msg("unknown job type")
		SendToDLQ(ctx, rdb, queue, job.Type, job.Payload, "tipo de job desconocido", 0)
	}
}
