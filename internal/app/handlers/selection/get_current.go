package selection

import (
	"context"
	"errors"

	"chalet/internal/app/dto"
	"chalet/internal/app/queries"
	domainpricing "chalet/internal/domain/pricing"
	domainselection "chalet/internal/domain/selection"
)

const getCurrentKey = "selection.current"

type GetCurrentQuery struct {
	SessionID string `validate:"required,max=64"`
}

func (q GetCurrentQuery) Key() string { return getCurrentKey }

type GetCurrentHandler struct {
	Sessions domainselection.Repository
	Resolver domainpricing.Resolver
}

func (h *GetCurrentHandler) Handle(ctx context.Context, q GetCurrentQuery) (dto.SelectionState, error) {
	session, err := h.Sessions.Get(ctx, domainselection.SessionID(q.SessionID))
	if errors.Is(err, domainselection.ErrSessionNotFound) {
		state := dto.MapSelection(nil, h.Resolver)
		state.SessionID = q.SessionID
		return state, nil
	}
	if err != nil {
		return dto.SelectionState{}, err
	}
	return dto.MapSelection(session, h.Resolver), nil
}

var _ queries.Handler[GetCurrentQuery, dto.SelectionState] = (*GetCurrentHandler)(nil)
