package selection

import (
	"context"
	"time"

	"chalet/internal/app/commands"
	"chalet/internal/app/dto"
	"chalet/internal/app/outbox"
	domainpricing "chalet/internal/domain/pricing"
	domainselection "chalet/internal/domain/selection"
)

const resetKey = "selection.reset"

type ResetCommand struct {
	CommandID string
	SessionID string `validate:"required,max=64"`
}

func (c ResetCommand) Key() string { return resetKey }

func (c ResetCommand) SerialKey() string { return c.SessionID }

// ResetHandler discards the session's selection.
type ResetHandler struct {
	Sessions domainselection.Repository
	Resolver domainpricing.Resolver
	Outbox   outbox.Outbox
	Encoder  outbox.EventEncoder
	Now      func() time.Time
}

func (h *ResetHandler) Handle(ctx context.Context, cmd ResetCommand) (*dto.SelectionState, error) {
	now := clock(h.Now)
	session, err := loadSession(ctx, h.Sessions, domainselection.SessionID(cmd.SessionID), now)
	if err != nil {
		return nil, err
	}
	session.Reset(now)
	if err := h.Sessions.Delete(ctx, session.ID); err != nil {
		return nil, err
	}
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, session.PullEvents()); err != nil {
		return nil, err
	}
	state := dto.MapSelection(session, h.Resolver)
	return &state, nil
}

var _ commands.Handler[ResetCommand, *dto.SelectionState] = (*ResetHandler)(nil)
