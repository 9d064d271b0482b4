package client

import (
	"context"
	"errors"
	"time"

	"github.com/Mateo-Piedra22/IronHub-sub005/internal/checkin"
)

const (
	DefaultPollInitial = time.Second
	DefaultPollMax     = 5 * time.Second
)

// PollCheckin polls an issued check-in token until it is verified or expired.
// The wait starts at the initial interval and doubles up to the cap; it
// never sleeps past the token expiry, and the expiry holds even when no
// status call succeeds. Connection errors are retried on the same schedule,
// API errors end the poll. onUpdate may be nil.
func (c *Client) PollCheckin(ctx context.Context, issued *checkin.Token, onUpdate func(*checkin.Token)) (*checkin.Token, error) {
	if issued == nil {
		return nil, errors.New("no check-in token to poll")
	}
	last := *issued
	delay := c.pollInitial

	for {
		t, err := c.CheckinStatus(ctx, issued.Token)
		switch {
		case err == nil:
			last = *t
			if last.ExpiresAt.IsZero() {
				last.ExpiresAt = issued.ExpiresAt
			}
			if onUpdate != nil {
				onUpdate(t)
			}
			if t.Status != checkin.StatusPending {
				return t, nil
			}
		case errors.Is(err, ErrConnection):
		default:
			return nil, err
		}

		wait := delay
		if !last.ExpiresAt.IsZero() {
			untilExpiry := time.Until(last.ExpiresAt)
			if untilExpiry <= 0 {
				last.Status = checkin.StatusExpired
				return &last, nil
			}
			if untilExpiry < wait {
				wait = untilExpiry
			}
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return &last, ctx.Err()
		case <-timer.C:
		}

		delay *= 2
		if delay > c.pollMax {
			delay = c.pollMax
		}
	}
}
