package checkin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Mateo-Piedra22/IronHub-sub005/internal/logger"
	"github.com/Mateo-Piedra22/IronHub-sub005/internal/member"
	"github.com/Mateo-Piedra22/IronHub-sub005/internal/metrics"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const DefaultTTL = 120 * time.Second

var (
	ErrTokenNotFound = errors.New("check-in token not found")
	ErrTokenExpired  = errors.New("check-in token expired")
	ErrTokenUsed     = errors.New("check-in token already used")
)

// Members resolves the member a token is issued for.
type Members interface {
	Get(ctx context.Context, gymID, id int) (*member.Member, error)
}

// Service stores tokens in Redis under checkin:<token> with the token TTL.
// A scan writes checkin:<token>:scan with SETNX so a code is accepted once.
type Service struct {
	redis   *redis.Client
	members Members
	ttl     time.Duration
	now     func() time.Time
}

func NewService(rdb *redis.Client, members Members) *Service {
	return &Service{
		redis:   rdb,
		members: members,
		ttl:     DefaultTTL,
		now:     time.Now,
	}
}

func (s *Service) Issue(ctx context.Context, gymID, memberID int) (*Token, error) {
	if _, err := s.members.Get(ctx, gymID, memberID); err != nil {
		return nil, err
	}

	t := Token{
		Token:     uuid.NewString(),
		GymID:     gymID,
		MemberID:  memberID,
		Status:    StatusPending,
		ExpiresAt: s.now().Add(s.ttl).UTC(),
	}

	data, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("marshal token: %w", err)
	}
	if err := s.redis.Set(ctx, tokenKey(t.Token), string(data), s.ttl).Err(); err != nil {
		return nil, err
	}

	metrics.RecordCheckin("issued")
	return &t, nil
}

// Scan verifies a token from the front desk kiosk.
func (s *Service) Scan(ctx context.Context, gymID int, token string) (*Token, error) {
	t, err := s.load(ctx, gymID, token)
	if err != nil {
		return nil, err
	}

	remaining := t.ExpiresAt.Sub(s.now())
	if remaining <= 0 {
		metrics.RecordCheckin("expired")
		return nil, ErrTokenExpired
	}

	verifiedAt := s.now().UTC()
	ok, err := s.redis.SetNX(ctx, scanKey(token), verifiedAt.Format(time.RFC3339Nano), remaining).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		metrics.RecordCheckin("reused")
		return nil, ErrTokenUsed
	}

	t.Status = StatusVerified
	t.VerifiedAt = &verifiedAt

	metrics.RecordCheckin("verified")
	logger.Info("Check-in verified", "gym_id", gymID, "member_id", t.MemberID)
	return t, nil
}

// Status reports pending, verified or expired. An unknown token reads as
// expired since Redis drops both the same way.
func (s *Service) Status(ctx context.Context, gymID int, token string) (*Token, error) {
	vals, err := s.redis.MGet(ctx, tokenKey(token), scanKey(token)).Result()
	if err != nil {
		return nil, err
	}

	raw, ok := vals[0].(string)
	if !ok {
		return &Token{Token: token, GymID: gymID, Status: StatusExpired}, nil
	}

	var t Token
	if err := json.Unmarshal([]byte(raw), &t); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}
	if t.GymID != gymID {
		return nil, ErrTokenNotFound
	}

	if scanned, ok := vals[1].(string); ok {
		t.Status = StatusVerified
		if at, err := time.Parse(time.RFC3339Nano, scanned); err == nil {
			t.VerifiedAt = &at
		}
	} else if !s.now().Before(t.ExpiresAt) {
		t.Status = StatusExpired
	}

	return &t, nil
}

func (s *Service) load(ctx context.Context, gymID int, token string) (*Token, error) {
	raw, err := s.redis.Get(ctx, tokenKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrTokenExpired
	}
	if err != nil {
		return nil, err
	}

	var t Token
	if err := json.Unmarshal([]byte(raw), &t); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}
	if t.GymID != gymID {
		return nil, ErrTokenNotFound
	}
	return &t, nil
}

func tokenKey(token string) string {
	return "checkin:" + token
}

func scanKey(token string) string {
	return "checkin:" + token + ":scan"
}
