// Package controller holds the client-side form logic as an explicit state
// object plus the operations that move it between modes. It knows nothing
// about terminals; the cli package renders State and feeds user intent in.
package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/userbook/internal/client/client"
	"github.com/dmitrijs2005/userbook/internal/client/models"
	"github.com/dmitrijs2005/userbook/internal/common"
	"github.com/dmitrijs2005/userbook/internal/validation"
)

// ErrSubmitInProgress is returned by Submit while an earlier submit has not
// finished.
var ErrSubmitInProgress = errors.New("submit already in progress")

// ConfirmPrompt is shown before a delete is carried out.
const ConfirmPrompt = "Delete this user?"

// API is the part of client.Client the controller drives.
type API interface {
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	Create(ctx context.Context, f models.UserFields) (int64, string, error)
	Update(ctx context.Context, id int64, f models.UserFields) (string, error)
	Delete(ctx context.Context, id int64) (string, error)
}

type Mode int

const (
	// ModeCreate: submit creates a new record.
	ModeCreate Mode = iota
	// ModeEditing: the form holds an existing record, submit updates it.
	ModeEditing
)

func (m Mode) String() string {
	if m == ModeEditing {
		return "editing"
	}
	return "create"
}

type NoticeKind string

const (
	NoticeInfo  NoticeKind = "info"
	NoticeError NoticeKind = "error"
)

// Notice is a transient message that stops showing at ExpiresAt.
type Notice struct {
	Text      string
	Kind      NoticeKind
	ExpiresAt time.Time
}

// Form is what the user is typing. ID is non-zero only in ModeEditing.
type Form struct {
	ID    int64
	Name  string
	Email string
	Phone string
}

// State is everything the view needs. It has a single owner and is not
// safe for concurrent use.
type State struct {
	Mode          Mode
	Form          Form
	FieldErrors   map[string]string
	PendingDelete int64
	Users         []models.User
	Notice        *Notice
	Submitting    bool
}

func NewState() *State {
	return &State{Mode: ModeCreate}
}

// ActiveNotice returns the notice if it has not expired by now.
func (s *State) ActiveNotice(now time.Time) *Notice {
	if s.Notice == nil || !now.Before(s.Notice.ExpiresAt) {
		return nil
	}
	return s.Notice
}

type Controller struct {
	api       API
	noticeTTL time.Duration
	now       func() time.Time
}

// New returns a Controller whose notices last noticeTTL.
func New(api API, noticeTTL time.Duration) *Controller {
	if noticeTTL <= 0 {
		noticeTTL = 3 * time.Second
	}
	return &Controller{api: api, noticeTTL: noticeTTL, now: time.Now}
}

// WithClock replaces the time source used for notice expiry.
func (c *Controller) WithClock(now func() time.Time) *Controller {
	c.now = now
	return c
}

// Now reads the controller's clock.
func (c *Controller) Now() time.Time { return c.now() }

func (c *Controller) notify(s *State, text string, kind NoticeKind) {
	s.Notice = &Notice{Text: text, Kind: kind, ExpiresAt: c.now().Add(c.noticeTTL)}
}

// failure picks the server's message when there is one, otherwise prefixes
// the transport error.
func (c *Controller) failure(s *State, prefix string, err error) {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		c.notify(s, apiErr.Error(), NoticeError)
		return
	}
	c.notify(s, prefix+": "+err.Error(), NoticeError)
}

// LoadList refreshes s.Users. On failure the previous list stays and an
// error notice is shown.
func (c *Controller) LoadList(ctx context.Context, s *State) error {
	users, err := c.api.List(ctx)
	if err != nil {
		c.failure(s, "Failed to load users list", err)
		return err
	}
	s.Users = users
	return nil
}

func (f Form) fields() models.UserFields {
	return models.UserFields{
		Name:  strings.TrimSpace(f.Name),
		Email: strings.TrimSpace(f.Email),
		Phone: strings.TrimSpace(f.Phone),
	}
}

// Validate runs the local form rules and records per-field messages in
// s.FieldErrors. It reports whether the form may be submitted.
func (c *Controller) Validate(s *State) bool {
	s.FieldErrors = nil

	f := s.Form.fields()
	err := validation.ValidateForm(f.Name, f.Email, f.Phone)
	if err == nil {
		return true
	}

	var ve *validation.Error
	if !errors.As(err, &ve) {
		s.FieldErrors = map[string]string{"form": err.Error()}
		return false
	}
	s.FieldErrors = make(map[string]string, len(ve.Fields))
	for _, fe := range ve.Fields {
		s.FieldErrors[fe.Field] = fe.Message
	}
	return false
}

// Edit loads record id into the form and switches to ModeEditing.
func (c *Controller) Edit(ctx context.Context, s *State, id int64) error {
	u, err := c.api.Get(ctx, id)
	if err == nil && (u == nil || u.ID != id) {
		err = fmt.Errorf("%w: no record for user %d", common.ErrStore, id)
	}
	if err != nil {
		c.failure(s, "Failed to get user information", err)
		return err
	}

	s.Form = Form{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.PhoneOrEmpty()}
	s.FieldErrors = nil
	s.Mode = ModeEditing
	return nil
}

// Submit validates the form and then creates or updates depending on
// whether the form carries an id. On success the form is cleared and the
// list reloaded; on failure the form is left as typed.
func (c *Controller) Submit(ctx context.Context, s *State) error {
	if s.Submitting {
		return ErrSubmitInProgress
	}
	if !c.Validate(s) {
		return &validation.Error{Fields: fieldList(s.FieldErrors), Summary: firstMessage(s.FieldErrors)}
	}

	s.Submitting = true
	defer func() { s.Submitting = false }()

	var (
		msg string
		err error
	)
	if s.Form.ID != 0 {
		msg, err = c.api.Update(ctx, s.Form.ID, s.Form.fields())
		if err != nil {
			c.failure(s, "Failed to update user", err)
			return err
		}
	} else {
		_, msg, err = c.api.Create(ctx, s.Form.fields())
		if err != nil {
			c.failure(s, "Failed to create user", err)
			return err
		}
	}

	c.Clear(s)
	c.notify(s, msg, NoticeInfo)
	// a failed reload replaces the notice but the write already happened
	_ = c.LoadList(ctx, s)
	return nil
}

// Clear empties the form, drops field messages and leaves edit mode.
func (c *Controller) Clear(s *State) {
	s.Form = Form{}
	s.FieldErrors = nil
	s.Mode = ModeCreate
}

// RequestDelete opens the confirmation for id and returns the prompt.
func (c *Controller) RequestDelete(s *State, id int64) string {
	s.PendingDelete = id
	return ConfirmPrompt
}

// CancelDelete discards the pending id without side effects.
func (c *Controller) CancelDelete(s *State) {
	s.PendingDelete = 0
}

// ConfirmDelete deletes the pending record, if any. The mode and form are
// left as they were.
func (c *Controller) ConfirmDelete(ctx context.Context, s *State) error {
	id := s.PendingDelete
	if id == 0 {
		return nil
	}
	s.PendingDelete = 0

	msg, err := c.api.Delete(ctx, id)
	if err != nil {
		c.failure(s, "Failed to delete user", err)
		return err
	}

	c.notify(s, msg, NoticeInfo)
	_ = c.LoadList(ctx, s)
	return nil
}

var fieldOrder = []string{"name", "email", "phone"}

func fieldList(m map[string]string) []validation.FieldError {
	out := make([]validation.FieldError, 0, len(m))
	for _, f := range fieldOrder {
		if msg, ok := m[f]; ok {
			out = append(out, validation.FieldError{Field: f, Message: msg})
		}
	}
	return out
}

func firstMessage(m map[string]string) string {
	for _, f := range fieldOrder {
		if msg, ok := m[f]; ok {
			return msg
		}
	}
	return "invalid form"
}
