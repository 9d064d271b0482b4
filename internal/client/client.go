// Package client is a typed Go client of the IronHub REST API. It keeps the
// session cookie in a jar, so Login must be called before other requests.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strconv"
	"strings"
	"time"

	"github.com/Mateo-Piedra22/IronHub-sub005/internal/auth"
	"github.com/Mateo-Piedra22/IronHub-sub005/internal/checkin"
	"github.com/Mateo-Piedra22/IronHub-sub005/internal/clase"
	"github.com/Mateo-Piedra22/IronHub-sub005/internal/ledger"
	"github.com/Mateo-Piedra22/IronHub-sub005/internal/user"
)

const defaultTimeout = 15 * time.Second

// ErrConnection wraps every transport failure.
var ErrConnection = errors.New("connection error")

// APIError is a response with ok=false.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// IsStatus reports whether err is an APIError with the given HTTP status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

type envelope struct {
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

type Client struct {
	baseURL string
	http    *http.Client
	gymID   int

	pollInitial time.Duration
	pollMax     time.Duration

	// One guard per view: a refresh that is overtaken by a newer one for
	// the same view returns ErrStale.
	gridView   Latest
	nextView   Latest
	rosterView Latest
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithGymID selects the tenant for platform admin sessions.
func WithGymID(id int) Option {
	return func(c *Client) { c.gymID = id }
}

func WithPollBackoff(initial, max time.Duration) Option {
	return func(c *Client) {
		c.pollInitial = initial
		c.pollMax = max
	}
}

func New(baseURL string, opts ...Option) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		http:        &http.Client{Timeout: defaultTimeout},
		pollInitial: DefaultPollInitial,
		pollMax:     DefaultPollMax,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http.Jar == nil {
		c.http.Jar = jar
	}
	return c, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*user.LoginResponse, error) {
	var out user.LoginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", user.LoginRequest{Email: email, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

func (c *Client) ListClasses(ctx context.Context) ([]clase.Class, error) {
	var out []clase.Class
	return out, c.do(ctx, http.MethodGet, "/clases", nil, &out)
}

func (c *Client) ListSlots(ctx context.Context, classID int) ([]clase.Slot, error) {
	var out []clase.Slot
	return out, c.do(ctx, http.MethodGet, fmt.Sprintf("/clases/%d/horarios", classID), nil, &out)
}

func (c *Client) CreateSlot(ctx context.Context, classID int, req clase.CreateSlotRequest) (*clase.Slot, error) {
	var out clase.Slot
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/clases/%d/horarios", classID), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteSlot(ctx context.Context, classID, slotID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/clases/%d/horarios/%d", classID, slotID), nil, nil)
}

// NextOccurrence returns nil without error when the class has nothing
// scheduled.
// NextOccurrence returns nil when the class has no schedulable slot.
func (c *Client) NextOccurrence(ctx context.Context, classID int) (*clase.NextOccurrence, error) {
	return Do(&c.nextView, func() (*clase.NextOccurrence, error) {
		var out *clase.NextOccurrence
		if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/clases/%d/proxima", classID), nil, &out); err != nil {
			return nil, err
		}
		return out, nil
	})
}

func (c *Client) Grid(ctx context.Context) (*clase.GridResponse, error) {
	return Do(&c.gridView, func() (*clase.GridResponse, error) {
		var out clase.GridResponse
		if err := c.do(ctx, http.MethodGet, "/horarios/grid", nil, &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
}

func (c *Client) ListEnrollments(ctx context.Context, slotID int) (*ledger.Roster, error) {
	return Do(&c.rosterView, func() (*ledger.Roster, error) {
		var out ledger.Roster
		if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/horarios/%d/inscripciones", slotID), nil, &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
}

func (c *Client) Enroll(ctx context.Context, slotID, memberID int) (*ledger.Snapshot, error) {
	return c.snapshot(ctx, http.MethodPost, fmt.Sprintf("/horarios/%d/inscribir", slotID), memberID)
}

func (c *Client) Unenroll(ctx context.Context, slotID, memberID int) (*ledger.Snapshot, error) {
	return c.snapshot(ctx, http.MethodPost, fmt.Sprintf("/horarios/%d/desinscribir", slotID), memberID)
}

func (c *Client) ListWaitlist(ctx context.Context, slotID int) ([]ledger.WaitlistEntry, error) {
	var out []ledger.WaitlistEntry
	return out, c.do(ctx, http.MethodGet, fmt.Sprintf("/horarios/%d/lista_espera", slotID), nil, &out)
}

func (c *Client) AddToWaitlist(ctx context.Context, slotID, memberID int) (*ledger.Snapshot, error) {
	return c.snapshot(ctx, http.MethodPost, fmt.Sprintf("/horarios/%d/lista_espera", slotID), memberID)
}

func (c *Client) RemoveFromWaitlist(ctx context.Context, slotID, memberID int) (*ledger.Snapshot, error) {
	var out ledger.Snapshot
	path := fmt.Sprintf("/horarios/%d/lista_espera/%d", slotID, memberID)
	if err := c.do(ctx, http.MethodDelete, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// NotifyNext returns nil when the waitlist was empty.
func (c *Client) NotifyNext(ctx context.Context, slotID int) (*ledger.WaitlistEntry, error) {
	var out *ledger.WaitlistEntry
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/horarios/%d/lista_espera/notificar", slotID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) IssueCheckin(ctx context.Context, memberID int) (*checkin.Token, error) {
	var out checkin.Token
	if err := c.do(ctx, http.MethodPost, "/checkin/qr", checkin.IssueRequest{MemberID: memberID}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CheckinStatus(ctx context.Context, token string) (*checkin.Token, error) {
	var out checkin.Token
	if err := c.do(ctx, http.MethodGet, "/checkin/qr/"+token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) snapshot(ctx context.Context, method, path string, memberID int) (*ledger.Snapshot, error) {
	var out ledger.Snapshot
	if err := c.do(ctx, method, path, ledger.MemberRequest{MemberID: memberID}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.gymID > 0 {
		req.Header.Set(auth.GymHeader, strconv.Itoa(c.gymID))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= 400 {
			return &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return fmt.Errorf("%w: decode response: %v", ErrConnection, err)
	}

	if !env.OK || resp.StatusCode >= 400 {
		msg := env.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}
