package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/smtp"
	"time"

	"gymdesk/internal/logger"
	"gymdesk/internal/metrics"

	"github.com/redis/go-redis/v9"
)

const (
	queueKey       = "alerts"
	failedQueueKey = "alerts:failed"
	maxTries       = 3
)

type Options struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	From     string
	To       string
}

// Queue is a Redis list of alerts drained by a single worker that delivers
// them by email.
type Queue struct {
	redis      *redis.Client
	opts       Options
	send       func(Alert) error
	retryDelay time.Duration
}

func NewQueue(opts Options) *Queue {
	q := &Queue{
		redis: redis.NewClient(&redis.Options{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
		}),
		opts:       opts,
		retryDelay: 5 * time.Second,
	}
	q.send = q.sendNow
	return q
}

func (q *Queue) Publish(ctx context.Context, alert Alert) error {
	alert.Tries = 0
	if alert.Created.IsZero() {
		alert.Created = time.Now()
	}

	data, err := json.Marshal(alert)
	if err != nil {
		return err
	}

	if err := q.redis.LPush(ctx, queueKey, string(data)).Err(); err != nil {
		logger.Error("failed to queue alert", "kind", alert.Kind, "error", err)
		metrics.RecordAlert(alert.Kind, "queue_failed")
		return err
	}

	metrics.RecordAlert(alert.Kind, "queued")
	logger.Info("alert queued", "kind", alert.Kind, "gym_id", alert.GymID, "subject", alert.Subject)
	return nil
}

func (q *Queue) Start(ctx context.Context) {
	logger.Info("alert worker started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("alert worker stopped")
			return
		default:
			q.processNext(ctx)
		}
	}
}

func (q *Queue) processNext(ctx context.Context) {
	result, err := q.redis.BRPop(ctx, 2*time.Second, queueKey).Result()
	if err != nil {
		// redis.Nil is the idle timeout; anything else means Redis is unreachable.
		if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
			logger.Error("alert queue read failed", "error", err)
			q.wait(ctx)
		}
		return
	}

	var alert Alert
	if err := json.Unmarshal([]byte(result[1]), &alert); err != nil {
		logger.Error("bad alert payload", "error", err)
		return
	}

	alert.Tries++
	if err := q.send(alert); err != nil {
		logger.Error("failed to deliver alert", "kind", alert.Kind, "attempt", alert.Tries, "error", err)

		if alert.Tries < maxTries {
			q.wait(ctx)
			q.requeue(alert)
		} else {
			q.saveFailed(alert, err)
		}
		return
	}

	metrics.RecordAlert(alert.Kind, "sent")
	logger.Info("alert delivered", "kind", alert.Kind, "to", q.opts.To)
}

// wait blocks for the retry delay or until ctx is cancelled, whichever is
// first. It reports whether the full delay elapsed.
func (q *Queue) wait(ctx context.Context) bool {
	if q.retryDelay <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(q.retryDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// requeue pushes a failed alert back for another attempt. It outlives the
// worker's context so an alert popped during shutdown stays queued.
func (q *Queue) requeue(alert Alert) {
	data, err := json.Marshal(alert)
	if err != nil {
		logger.Error("failed to encode alert for retry", "kind", alert.Kind, "error", err)
		metrics.RecordAlert(alert.Kind, "queue_failed")
		return
	}

	if err := q.redis.LPush(context.Background(), queueKey, string(data)).Err(); err != nil {
		logger.Error("failed to requeue alert", "kind", alert.Kind, "attempt", alert.Tries, "error", err)
		metrics.RecordAlert(alert.Kind, "queue_failed")
	}
}

func (q *Queue) sendNow(alert Alert) error {
	if q.opts.SMTPHost == "" || q.opts.To == "" {
		return fmt.Errorf("smtp delivery not configured")
	}

	message := fmt.Sprintf("From: %s\r\n", q.opts.From)
	message += fmt.Sprintf("To: %s\r\n", q.opts.To)
	message += fmt.Sprintf("Subject: %s\r\n", alert.Subject)
	message += "\r\n" + alert.Body

	var auth smtp.Auth
	if q.opts.SMTPUser != "" && q.opts.SMTPPass != "" {
		auth = smtp.PlainAuth("", q.opts.SMTPUser, q.opts.SMTPPass, q.opts.SMTPHost)
	}

	addr := q.opts.SMTPHost + ":" + q.opts.SMTPPort
	return smtp.SendMail(addr, auth, q.opts.From, []string{q.opts.To}, []byte(message))
}

func (q *Queue) saveFailed(alert Alert, err error) {
	failed := map[string]interface{}{
		"alert": alert,
		"error": err.Error(),
		"time":  time.Now(),
	}
	data, err := json.Marshal(failed)
	if err == nil {
		err = q.redis.LPush(context.Background(), failedQueueKey, string(data)).Err()
	}
	if err != nil {
		logger.Error("failed to store failed alert", "kind", alert.Kind, "error", err)
	}
	metrics.RecordAlert(alert.Kind, "failed")
	logger.Error("alert moved to failed queue", "kind", alert.Kind, "subject", alert.Subject)
}

func (q *Queue) QueueLength(ctx context.Context) int64 {
	length, _ := q.redis.LLen(ctx, queueKey).Result()
	metrics.AlertQueueLength.Set(float64(length))
	return length
}

func (q *Queue) Ping(ctx context.Context) error {
	return q.redis.Ping(ctx).Err()
}

func (q *Queue) Close() error {
	return q.redis.Close()
}
