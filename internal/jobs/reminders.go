// Package jobs runs the periodic background work of the API.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Mateo-Piedra22/IronHub-sub005/internal/clase"
	"github.com/Mateo-Piedra22/IronHub-sub005/internal/ledger"
	"github.com/Mateo-Piedra22/IronHub-sub005/internal/logger"
	"github.com/Mateo-Piedra22/IronHub-sub005/internal/metrics"
	"github.com/Mateo-Piedra22/IronHub-sub005/internal/notify"
	"github.com/Mateo-Piedra22/IronHub-sub005/internal/schedule"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
)

const (
	DefaultReminderSpec = "@every 15m"

	reminderWindow = time.Hour
	reminderKeyTTL = 2 * time.Hour
	runTimeout     = 4 * time.Minute
)

type SlotSource interface {
	ListAllSlots(ctx context.Context) ([]clase.Slot, error)
}

type Roster interface {
	ListEnrollments(ctx context.Context, slotID int) ([]ledger.Enrollment, error)
}

type Reminder interface {
	SessionReminder(ctx context.Context, to notify.Recipient, className, when string) error
}

// Reminders queues a reminder for every member enrolled in a session that
// starts within the next hour. Each session is reminded once; the Redis key
// reminder:<slot>:<date> marks it.
type Reminders struct {
	cron     *cron.Cron
	slots    SlotSource
	roster   Roster
	reminder Reminder
	redis    *redis.Client
	loc      *time.Location
	now      func() time.Time
}

func NewReminders(slots SlotSource, roster Roster, reminder Reminder, rdb *redis.Client, loc *time.Location) *Reminders {
	if loc == nil {
		loc = time.Local
	}
	return &Reminders{
		cron:     cron.New(cron.WithLocation(loc), cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
		slots:    slots,
		roster:   roster,
		reminder: reminder,
		redis:    rdb,
		loc:      loc,
		now:      time.Now,
	}
}

func (r *Reminders) Start(spec string) error {
	if spec == "" {
		spec = DefaultReminderSpec
	}

	_, err := r.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()

		if _, err := r.Run(ctx); err != nil {
			logger.Error("Reminder run failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule reminders %q: %w", spec, err)
	}

	r.cron.Start()
	logger.Info("Reminder scheduler started", "spec", spec)
	return nil
}

// Stop waits for a running job to finish.
func (r *Reminders) Stop() {
	<-r.cron.Stop().Done()
}

// Run performs one pass and returns how many reminders were queued.
func (r *Reminders) Run(ctx context.Context) (int, error) {
	slots, err := r.slots.ListAllSlots(ctx)
	if err != nil {
		return 0, err
	}

	now := r.now().In(r.loc)
	queued := 0

	for _, slot := range slots {
		occ, ok := schedule.FindNext([]schedule.Slot{slot.Schedule()}, now)
		if !ok || occ.At.Sub(now) > reminderWindow {
			continue
		}

		// The roster is loaded before the key is claimed so a failed load is retried next pass.
		enrollments, err := r.roster.ListEnrollments(ctx, slot.ID)
		if err != nil {
			logger.Error("Failed to load enrollments for reminder", "slot_id", slot.ID, "error", err)
			continue
		}

		key := fmt.Sprintf("reminder:%d:%s", slot.ID, occ.At.Format("2006-01-02"))
		first, err := r.redis.SetNX(ctx, key, now.Unix(), reminderKeyTTL).Result()
		if err != nil {
			return queued, err
		}
		if !first {
			continue
		}

		when := whenLabel(occ)
		for _, e := range enrollments {
			to := notify.Recipient{Name: e.MemberName, Phone: e.MemberPhone, Email: e.MemberEmail}
			if err := r.reminder.SessionReminder(ctx, to, slot.ClassName, when); err != nil {
				if !errors.Is(err, notify.ErrNoContact) && !errors.Is(err, notify.ErrChannelDisabled) {
					logger.Error("Failed to queue reminder", "slot_id", slot.ID, "member_id", e.MemberID, "error", err)
				}
				continue
			}
			metrics.RecordReminder()
			queued++
		}
	}

	if queued > 0 {
		logger.Info("Session reminders queued", "count", queued)
	}
	return queued, nil
}

func whenLabel(occ schedule.Occurrence) string {
	if occ.DayDelta == 0 {
		return "hoy " + occ.At.Format("15:04")
	}
	return "mañana " + occ.At.Format("15:04")
}
