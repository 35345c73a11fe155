package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// JobStatus represents the status of a queued delivery job
type JobStatus string

const (
	JobStatusPending JobStatus = "PENDING"
	JobStatusStarted JobStatus = "STARTED"
	JobStatusSuccess JobStatus = "SUCCESS"
	JobStatusFailure JobStatus = "FAILURE"
)

// Job is a unit of work pushed onto the delivery queue.
type Job struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Payload   json.RawMessage `json:"payload"`
	Retries   int             `json:"retries"`
	CreatedAt time.Time       `json:"created_at"`
}

// JobResult records the terminal state of a job.
type JobResult struct {
	ID      string    `json:"id"`
	Status  JobStatus `json:"status"`
	Error   string    `json:"error,omitempty"`
	EndedAt time.Time `json:"ended_at"`
}

// Queue is a Redis-backed work queue used for notification delivery.
type Queue struct {
	redis      *redis.Client
	queueName  string
	resultsTTL time.Duration
}

// NewQueue creates a queue on an existing Redis client.
func NewQueue(client *redis.Client, queueName string, resultsTTL time.Duration) *Queue {
	return &Queue{
		redis:      client,
		queueName:  queueName,
		resultsTTL: resultsTTL,
	}
}

// Enqueue serializes a job payload and pushes it onto the queue.
func (q *Queue) Enqueue(ctx context.Context, name string, payload interface{}) (string, error) {
	jobID := uuid.New().String()

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to serialize job payload: %w", err)
	}

	job := Job{
		ID:        jobID,
		Name:      name,
		Payload:   body,
		CreatedAt: time.Now().UTC(),
	}

	message, err := json.Marshal(job)
	if err != nil {
		return "", fmt.Errorf("failed to serialize job: %w", err)
	}

	if err := q.redis.LPush(ctx, q.queueName, message).Err(); err != nil {
		return "", fmt.Errorf("failed to enqueue job: %w", err)
	}

	result := JobResult{ID: jobID, Status: JobStatusPending}
	if data, err := json.Marshal(result); err == nil {
		q.redis.Set(ctx, q.resultKey(jobID), data, q.resultsTTL)
	}

	return jobID, nil
}

// Dequeue blocks until a job is available or the timeout elapses.
// A nil job with nil error means the wait timed out.
func (q *Queue) Dequeue(ctx context.Context, timeout time.Duration) (*Job, error) {
	res, err := q.redis.BRPop(ctx, timeout, q.queueName).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to dequeue job: %w", err)
	}
	// BRPop returns [key, value]
	if len(res) != 2 {
		return nil, fmt.Errorf("unexpected BRPOP reply length %d", len(res))
	}

	var job Job
	if err := json.Unmarshal([]byte(res[1]), &job); err != nil {
		return nil, fmt.Errorf("failed to decode job: %w", err)
	}
	return &job, nil
}

// SetResult stores the terminal status of a job.
func (q *Queue) SetResult(ctx context.Context, jobID string, status JobStatus, jobErr error) error {
	result := JobResult{
		ID:      jobID,
		Status:  status,
		EndedAt: time.Now().UTC(),
	}
	if jobErr != nil {
		result.Error = jobErr.Error()
	}

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to serialize job result: %w", err)
	}
	return q.redis.Set(ctx, q.resultKey(jobID), data, q.resultsTTL).Err()
}

// GetResult fetches the stored status of a job, if still retained.
func (q *Queue) GetResult(ctx context.Context, jobID string) (*JobResult, error) {
	data, err := q.redis.Get(ctx, q.resultKey(jobID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var result JobResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode job result: %w", err)
	}
	return &result, nil
}

func (q *Queue) resultKey(jobID string) string {
	return fmt.Sprintf("%s:result:%s", q.queueName, jobID)
}
