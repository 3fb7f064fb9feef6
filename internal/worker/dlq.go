package worker

// Jobs that exhaust their retries land in a per-queue dead letter list
// (dlq:jobs:reportes, dlq:jobs:email) instead of cycling forever: a corte
// whose PDF cannot render must not wedge the report queue behind it.
// Entries keep the original payload so a job can be replayed by hand once
// the cause (missing corte row, SMTP outage) is resolved.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const dlqPrefix = "dlq:"

// DLQEntry preserves everything needed to diagnose and replay a failed job:
// the queue it came from, its payload, and the error that exhausted the
// retries.
type DLQEntry struct {
	Queue    string          `json:"queue"`
	Tipo     string          `json:"tipo"`
	Payload  json.RawMessage `json:"payload"`
	Error    string          `json:"error"`
	Attempts int             `json:"attempts"`
	FailedAt time.Time       `json:"failed_at"`
}

// sendToDLQ parks an exhausted job. Best effort: a Redis failure here is
// logged and the job is lost, which is preferable to blocking the worker.
func sendToDLQ(ctx context.Context, rdb *redis.Client, queue string, job Job, causa error) {
	entry := DLQEntry{
		Queue:    queue,
		Tipo:     job.Type,
		Payload:  job.Payload,
		Error:    causa.Error(),
		Attempts: job.Attempts,
		FailedAt: time.Now().UTC(),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: no se pudo serializar la entrada")
		return
	}
	if err := rdb.LPush(ctx, dlqPrefix+queue, data).Err(); err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: no se pudo encolar la entrada")
		return
	}

	log.Warn().
		Str("queue", queue).
		Str("tipo", job.Type).
		Str("error", causa.Error()).
		Int("attempts", job.Attempts).
		Msg("dlq: job agotó sus reintentos")
}

// DLQDepths reports the dead-letter depth per queue. A growing depth means
// cortes are being processed but their reports are not going out.
func DLQDepths(ctx context.Context, rdb *redis.Client) map[string]int64 {
	depths := make(map[string]int64, 2)
	for _, queue := range []string{QueueReportes, QueueEmail} {
		n, err := rdb.LLen(ctx, dlqPrefix+queue).Result()
		if err != nil {
			continue
		}
		depths[queue] = n
	}
	return depths
}
