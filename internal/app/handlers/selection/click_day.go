package selection

import (
	"context"
	"errors"
	"time"

	"chalet/internal/app/commands"
	"chalet/internal/app/dto"
	"chalet/internal/app/outbox"
	domainpricing "chalet/internal/domain/pricing"
	domainselection "chalet/internal/domain/selection"
	"chalet/internal/domain/shared/daterange"
)

const clickDayKey = "selection.click_day"

// ClickDayCommand applies one calendar click to the session's selection.
type ClickDayCommand struct {
	CommandID       string
	SessionID       string    `validate:"required,max=64"`
	Day             time.Time `validate:"required"`
	IdempotencyKeyV string    `validate:"max=128"`
}

func (c ClickDayCommand) Key() string { return clickDayKey }

func (c ClickDayCommand) IdempotencyKey() string {
	if c.IdempotencyKeyV == "" {
		return ""
	}
	return clickDayKey + ":" + c.SessionID + ":" + c.IdempotencyKeyV
}

func (c ClickDayCommand) ResultPrototype() any { return &dto.ClickResult{} }

func (c ClickDayCommand) SerialKey() string { return c.SessionID }

type ClickDayHandler struct {
	Sessions domainselection.Repository
	Rules    domainselection.Checker
	Resolver domainpricing.Resolver
	Outbox   outbox.Outbox
	Encoder  outbox.EventEncoder
	Now      func() time.Time
}

// maxClickAttempts bounds how often a click is re-applied after losing a
// race against another writer of the same session.
const maxClickAttempts = 3

// Handle returns a rejected result rather than an error when the click is
// refused; only infrastructure failures are errors.
func (h *ClickDayHandler) Handle(ctx context.Context, cmd ClickDayCommand) (*dto.ClickResult, error) {
	for attempt := 1; ; attempt++ {
		result, err := h.apply(ctx, cmd)
		if errors.Is(err, domainselection.ErrConcurrentUpdate) && attempt < maxClickAttempts {
			continue
		}
		return result, err
	}
}

func (h *ClickDayHandler) apply(ctx context.Context, cmd ClickDayCommand) (*dto.ClickResult, error) {
	now := clock(h.Now)
	session, err := loadSession(ctx, h.Sessions, domainselection.SessionID(cmd.SessionID), now)
	if err != nil {
		return nil, err
	}

	result := &dto.ClickResult{Accepted: true}
	if err := session.Click(h.Rules, cmd.Day, now); err != nil {
		var rejection *domainselection.RejectionError
		if !errors.As(err, &rejection) {
			return nil, err
		}
		result.Accepted = false
		result.Reason = string(rejection.Reason)
		result.Date = rejection.Date.Format(daterange.Layout)
		result.Message = rejection.Message()
	} else if err := h.Sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, session.PullEvents()); err != nil {
		return nil, err
	}
	result.State = dto.MapSelection(session, h.Resolver)
	return result, nil
}

func loadSession(ctx context.Context, repo domainselection.Repository, id domainselection.SessionID, now time.Time) (*domainselection.Session, error) {
	session, err := repo.Get(ctx, id)
	if errors.Is(err, domainselection.ErrSessionNotFound) {
		return domainselection.NewSession(id, now), nil
	}
	return session, err
}

func clock(now func() time.Time) time.Time {
	if now == nil {
		return time.Now()
	}
	return now()
}

var _ commands.Handler[ClickDayCommand, *dto.ClickResult] = (*ClickDayHandler)(nil)
