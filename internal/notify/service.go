package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Mateo-Piedra22/IronHub-sub005/internal/logger"
	"github.com/Mateo-Piedra22/IronHub-sub005/internal/metrics"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	queueKey  = "notifications"
	failedKey = "notifications:failed"

	defaultMaxTries   = 3
	defaultRetryDelay = 5 * time.Second
	popTimeout        = 2 * time.Second
	defaultErrorDelay = time.Second
)

var (
	ErrNoContact       = errors.New("recipient has no phone or email")
	ErrChannelDisabled = errors.New("notification channel disabled")
)

type Channel string

const (
	ChannelWhatsApp Channel = "whatsapp"
	ChannelEmail    Channel = "email"
)

type Job struct {
	ID      string    `json:"id"`
	Kind    string    `json:"kind"`
	Channel Channel   `json:"channel"`
	To      string    `json:"to"`
	Name    string    `json:"name"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	Tries   int       `json:"tries"`
	Created time.Time `json:"created"`
}

// Sender delivers one job over one channel.
type Sender interface {
	Send(ctx context.Context, job Job) error
}

type Recipient struct {
	Name  string
	Phone string
	Email string
}

// Service queues notifications in Redis and delivers them from a worker
// loop, retrying failed jobs before moving them to the failed list.
type Service struct {
	redis      *redis.Client
	senders    map[Channel]Sender
	maxTries   int
	retryDelay time.Duration
	errorDelay time.Duration
}

func New(rdb *redis.Client, senders map[Channel]Sender) *Service {
	if senders == nil {
		senders = map[Channel]Sender{}
	}
	return &Service{
		redis:      rdb,
		senders:    senders,
		maxTries:   defaultMaxTries,
		retryDelay: defaultRetryDelay,
		errorDelay: defaultErrorDelay,
	}
}

func (s *Service) Enqueue(ctx context.Context, job Job) error {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.Created.IsZero() {
		job.Created = time.Now()
	}

	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	if err := s.redis.LPush(ctx, queueKey, string(data)).Err(); err != nil {
		logger.Error("Failed to queue notification", "to", job.To, "kind", job.Kind, "error", err)
		return err
	}

	logger.Info("Notification queued", "id", job.ID, "kind", job.Kind, "channel", job.Channel)
	return nil
}

// WaitlistSpot tells a waitlisted member a place opened up. WhatsApp is
// preferred; email is the fallback.
func (s *Service) WaitlistSpot(ctx context.Context, to Recipient, className, when string) error {
	body := fmt.Sprintf(`Hola %s! Se liberó un lugar en %s (%s). Avisá en recepción para confirmar tu inscripción.`,
		to.Name, className, when)
	return s.enqueueFor(ctx, to, "waitlist_spot", "Se liberó un lugar en "+className, body)
}

func (s *Service) SessionReminder(ctx context.Context, to Recipient, className, when string) error {
	body := fmt.Sprintf(`Hola %s! Te recordamos tu clase de %s: %s. ¡Te esperamos!`, to.Name, className, when)
	return s.enqueueFor(ctx, to, "session_reminder", "Recordatorio: "+className, body)
}

func (s *Service) enqueueFor(ctx context.Context, to Recipient, kind, subject, body string) error {
	job := Job{Kind: kind, Name: to.Name, Subject: subject, Body: body}

	switch {
	case to.Phone != "" && s.senders[ChannelWhatsApp] != nil:
		job.Channel, job.To = ChannelWhatsApp, to.Phone
	case to.Email != "" && s.senders[ChannelEmail] != nil:
		job.Channel, job.To = ChannelEmail, to.Email
	case to.Phone == "" && to.Email == "":
		return ErrNoContact
	default:
		return ErrChannelDisabled
	}

	return s.Enqueue(ctx, job)
}

func (s *Service) Start(ctx context.Context) {
	logger.Info("Notification worker started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Notification worker stopped")
			return
		default:
		}

		err := s.processNext(ctx)
		if err == nil || errors.Is(err, redis.Nil) || ctx.Err() != nil {
			continue
		}
		logger.Error("Notification queue unavailable", "error", err)
		select {
		case <-ctx.Done():
		case <-time.After(s.errorDelay):
		}
	}
}

// processNext handles one job. It returns only queue read errors; redis.Nil
// means the pop timed out on an empty queue.
func (s *Service) processNext(ctx context.Context) error {
	result, err := s.redis.BRPop(ctx, popTimeout, queueKey).Result()
	if err != nil {
		return err
	}
	metrics.NotificationQueueLength.Set(float64(s.QueueLength(ctx)))

	var job Job
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.Errorf("Bad notification data: %v", err)
		return nil
	}

	job.Tries++
	sender, ok := s.senders[job.Channel]
	if !ok {
		s.saveFailed(ctx, job, ErrChannelDisabled)
		return nil
	}

	if err := sender.Send(ctx, job); err != nil {
		logger.Error("Failed to deliver notification", "id", job.ID, "to", job.To, "attempt", job.Tries, "error", err)

		if job.Tries < s.maxTries {
			select {
			case <-ctx.Done():
			case <-time.After(s.retryDelay):
			}
			if rqErr := s.requeue(context.WithoutCancel(ctx), job); rqErr != nil {
				logger.Error("Failed to requeue notification", "id", job.ID, "error", rqErr)
				s.saveFailed(ctx, job, fmt.Errorf("%w (requeue: %v)", err, rqErr))
				return nil
			}
			metrics.RecordNotification(string(job.Channel), "retry")
		} else {
			s.saveFailed(ctx, job, err)
		}
		return nil
	}

	metrics.RecordNotification(string(job.Channel), "sent")
	logger.Info("Notification delivered", "id", job.ID, "kind", job.Kind, "channel", job.Channel)
	return nil
}

func (s *Service) requeue(ctx context.Context, job Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return s.redis.LPush(ctx, queueKey, string(data)).Err()
}

func (s *Service) saveFailed(ctx context.Context, job Job, cause error) {
	failed := map[string]interface{}{
		"job":   job,
		"error": cause.Error(),
		"time":  time.Now(),
	}
	data, _ := json.Marshal(failed)
	if err := s.redis.LPush(context.WithoutCancel(ctx), failedKey, string(data)).Err(); err != nil {
		logger.Error("Failed to store failed notification", "id", job.ID, "error", err)
	}
	metrics.RecordNotification(string(job.Channel), "failed")
	logger.Error("Notification moved to failed queue", "id", job.ID, "to", job.To, "error", cause)
}

func (s *Service) QueueLength(ctx context.Context) int64 {
	length, _ := s.redis.LLen(ctx, queueKey).Result()
	return length
}

func (s *Service) Close() error {
	return s.redis.Close()
}
