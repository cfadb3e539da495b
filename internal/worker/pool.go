// Package worker runs the small async job pool behind the sync endpoint.
// After a batch commits, the ingestor enqueues a cache-invalidation job so
// the Redis-cached dashboard aggregates don't serve stale numbers; doing it
// out of band keeps the sync response time independent of Redis.
package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueCacheInvalidation = "jobs:cache_invalidation"

	// CachePrefix namespaces every dashboard cache key; invalidation
	// deletes the whole namespace.
	CachePrefix = "dashboard:"
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// InvalidationPayload identifies the batch that made the caches stale.
type InvalidationPayload struct {
	LocationID uint `json:"location_id"`
	Tickets    int  `json:"tickets"`
}

// Dispatcher enqueues async jobs into Redis lists. The worker pool
// dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueCacheInvalidation pushes an invalidation job. Best effort: the
// caller treats a failed enqueue as non-fatal.
func (d *Dispatcher) EnqueueCacheInvalidation(ctx context.Context, payload InvalidationPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: "cache_invalidation", Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, QueueCacheInvalidation, encoded).Err()
}

// StartPool launches numWorkers goroutines consuming the queue. Each
// goroutine blocks on BRPOP — zero CPU when idle.
func StartPool(ctx context.Context, rdb *redis.Client, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, QueueCacheInvalidation).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, rdb, result[1])
		}
	}
}

func processJob(ctx context.Context, rdb *redis.Client, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal job")
		return
	}

	var payload InvalidationPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal invalidation payload")
		return
	}

	deleted := 0
	iter := rdb.Scan(ctx, 0, CachePrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := rdb.Del(ctx, iter.Val()).Err(); err == nil {
			deleted++
		}
	}
	if err := iter.Err(); err != nil {
		log.Error().Err(err).Msg("dashboard cache scan failed")
		return
	}
	log.Debug().
		Uint("location_id", payload.LocationID).
		Int("tickets", payload.Tickets).
		Int("keys_deleted", deleted).
		Msg("dashboard cache invalidated")
}
