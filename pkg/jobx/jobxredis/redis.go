// Package jobxredis stores jobx jobs in Redis: one list per ready queue,
// one sorted set per queue for delayed jobs and one string per job record.
package jobxredis

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/riderota/core/pkg/jobx"
)

// recordTTL bounds how long finished job records stay inspectable.
const recordTTL = 7 * 24 * time.Hour

type RedisQueue struct {
	rdb    redis.UniversalClient
	prefix string
	now    func() time.Time
}

type Option func(*RedisQueue)

// WithPrefix namespaces every key. The default is "jobx".
func WithPrefix(prefix string) Option {
	return func(q *RedisQueue) { q.prefix = prefix }
}

func WithClock(now func() time.Time) Option {
	return func(q *RedisQueue) { q.now = now }
}

func NewRedisQueue(rdb redis.UniversalClient, opts ...Option) *RedisQueue {
	q := &RedisQueue{rdb: rdb, prefix: "jobx", now: time.Now}
	for _, o := range opts {
		o(q)
	}
	return q
}

func (q *RedisQueue) readyKey(queue string) string     { return q.prefix + ":queue:" + queue }
func (q *RedisQueue) scheduledKey(queue string) string { return q.prefix + ":scheduled:" + queue }
func (q *RedisQueue) jobKey(id string) string          { return q.prefix + ":job:" + id }

func (q *RedisQueue) Enqueue(ctx context.Context, job jobx.Job) (string, error) {
	info, data, err := q.newRecord(job)
	if err != nil {
		return "", err
	}

	pipe := q.rdb.TxPipeline()
	pipe.Set(ctx, q.jobKey(info.ID), data, recordTTL)
	pipe.LPush(ctx, q.readyKey(job.Queue), info.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", ErrRegistry.NewWithCause(CodeWrite, err).WithDetail("queue", job.Queue)
	}
	return info.ID, nil
}

func (q *RedisQueue) EnqueueDelayed(ctx context.Context, job jobx.Job, delay time.Duration) (string, error) {
	info, data, err := q.newRecord(job)
	if err != nil {
		return "", err
	}

	pipe := q.rdb.TxPipeline()
	pipe.Set(ctx, q.jobKey(info.ID), data, recordTTL)
	pipe.ZAdd(ctx, q.scheduledKey(job.Queue), redis.Z{Score: q.dueScore(delay), Member: info.ID})
	if _, err := pipe.Exec(ctx); err != nil {
		return "", ErrRegistry.NewWithCause(CodeWrite, err).
			WithDetail("queue", job.Queue).
			WithDetail("delay", delay.String())
	}
	return info.ID, nil
}

func (q *RedisQueue) GetJob(ctx context.Context, jobID string) (*jobx.JobInfo, error) {
	data, err := q.rdb.Get(ctx, q.jobKey(jobID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrRegistry.New(CodeNotFound).WithDetail("job_id", jobID)
		}
		return nil, ErrRegistry.NewWithCause(CodeRead, err).WithDetail("job_id", jobID)
	}

	var info jobx.JobInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, ErrRegistry.NewWithCause(CodeCodec, err).WithDetail("job_id", jobID)
	}
	return &info, nil
}

// Dequeue blocks up to timeout. It returns nil, nil when nothing arrived or
// ctx was cancelled.
func (q *RedisQueue) Dequeue(ctx context.Context, queues []string, timeout time.Duration) (*jobx.JobInfo, error) {
	keys := make([]string, len(queues))
	for i, name := range queues {
		keys[i] = q.readyKey(name)
	}

	res, err := q.rdb.BRPop(ctx, timeout, keys...).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) || ctx.Err() != nil {
			return nil, nil
		}
		return nil, ErrRegistry.NewWithCause(CodeRead, err)
	}

	info, err := q.GetJob(ctx, res[1])
	if err != nil {
		return nil, err
	}
	info.Status = jobx.JobStatusActive
	info.Attempts++
	if err := q.save(ctx, info); err != nil {
		return nil, err
	}
	return info, nil
}

func (q *RedisQueue) Complete(ctx context.Context, jobID string) error {
	info, err := q.GetJob(ctx, jobID)
	if err != nil {
		return err
	}
	info.Status = jobx.JobStatusCompleted
	info.Error = ""
	return q.save(ctx, info)
}

// Fail records errMsg and reports whether another attempt is allowed.
func (q *RedisQueue) Fail(ctx context.Context, jobID string, errMsg string) (bool, error) {
	info, err := q.GetJob(ctx, jobID)
	if err != nil {
		return false, err
	}

	retry := !info.Exhausted()
	info.Status = jobx.JobStatusFailed
	if retry {
		info.Status = jobx.JobStatusRetrying
	}
	info.Error = errMsg

	if err := q.save(ctx, info); err != nil {
		return false, err
	}
	return retry, nil
}

func (q *RedisQueue) Retry(ctx context.Context, jobID string, delay time.Duration) error {
	info, err := q.GetJob(ctx, jobID)
	if err != nil {
		return err
	}

	err = q.rdb.ZAdd(ctx, q.scheduledKey(info.Queue), redis.Z{Score: q.dueScore(delay), Member: jobID}).Err()
	if err != nil {
		return ErrRegistry.NewWithCause(CodeWrite, err).WithDetail("job_id", jobID)
	}
	return nil
}

// promoteScript atomically moves due ids from the scheduled set to the
// ready list.
var promoteScript = redis.NewScript(`
local due = redis.call('ZRANGEBYSCORE', KEYS[1], '-inf', ARGV[1])
for _, id in ipairs(due) do
	redis.call('LPUSH', KEYS[2], id)
end
if #due > 0 then
	redis.call('ZREMRANGEBYSCORE', KEYS[1], '-inf', ARGV[1])
end
return #due
`)

func (q *RedisQueue) PromoteScheduled(ctx context.Context, queues []string) error {
	now := strconv.FormatInt(q.now().Unix(), 10)

	for _, name := range queues {
		err := promoteScript.Run(ctx, q.rdb, []string{q.scheduledKey(name), q.readyKey(name)}, now).Err()
		if err != nil && !errors.Is(err, redis.Nil) {
			return ErrRegistry.NewWithCause(CodeWrite, err).WithDetail("queue", name)
		}
	}
	return nil
}

func (q *RedisQueue) newRecord(job jobx.Job) (*jobx.JobInfo, []byte, error) {
	now := q.now().UTC()
	info := &jobx.JobInfo{
		ID:         uuid.NewString(),
		Type:       job.Type,
		Queue:      job.Queue,
		Payload:    job.Payload,
		Status:     jobx.JobStatusPending,
		MaxRetries: job.MaxRetries,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	data, err := json.Marshal(info)
	if err != nil {
		return nil, nil, ErrRegistry.NewWithCause(CodeCodec, err)
	}
	return info, data, nil
}

func (q *RedisQueue) save(ctx context.Context, info *jobx.JobInfo) error {
	info.UpdatedAt = q.now().UTC()
	data, err := json.Marshal(info)
	if err != nil {
		return ErrRegistry.NewWithCause(CodeCodec, err).WithDetail("job_id", info.ID)
	}
	if err := q.rdb.Set(ctx, q.jobKey(info.ID), data, recordTTL).Err(); err != nil {
		return ErrRegistry.NewWithCause(CodeWrite, err).WithDetail("job_id", info.ID)
	}
	return nil
}

func (q *RedisQueue) dueScore(delay time.Duration) float64 {
	return float64(q.now().Add(delay).Unix())
}
