package notification

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Aqueel-Ansari-dev/fieldops-backend/pkg/broker"
	"github.com/sirupsen/logrus"
)

// Consumer drains the delivery queue. The actual transport (push,
// email) is out of scope here; jobs are acknowledged once logged so a
// transport worker can be swapped in without touching producers.
type Consumer struct {
	queue  *broker.Queue
	logger *logrus.Logger
}

func NewConsumer(queue *broker.Queue, logger *logrus.Logger) *Consumer {
	return &Consumer{queue: queue, logger: logger}
}

// Start consumes jobs until ctx is cancelled.
func (c *Consumer) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			job, err := c.queue.Dequeue(ctx, 5*time.Second)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				c.logger.WithError(err).Warn("Notification dequeue failed")
				time.Sleep(time.Second)
				continue
			}
			if job == nil {
				continue
			}

			var payload DeliveryJob
			if err := json.Unmarshal(job.Payload, &payload); err != nil {
				c.logger.WithError(err).WithField("job_id", job.ID).Error("Malformed delivery job")
				_ = c.queue.SetResult(ctx, job.ID, broker.JobStatusFailure, err)
				continue
			}

			c.logger.WithFields(logrus.Fields{
				"job_id":          job.ID,
				"notification_id": payload.NotificationID,
				"user_id":         payload.UserID,
			}).Info("Notification dispatched")
			_ = c.queue.SetResult(ctx, job.ID, broker.JobStatusSuccess, nil)
		}
	}()
}
