package pricing

import (
	"context"
	"time"

	"chalet/internal/app/dto"
	"chalet/internal/app/queries"
	domainpricing "chalet/internal/domain/pricing"
)

const getNightPriceKey = "pricing.night"

type GetNightPriceQuery struct {
	Date time.Time `validate:"required"`
}

func (q GetNightPriceQuery) Key() string { return getNightPriceKey }

type GetNightPriceHandler struct {
	Resolver domainpricing.Resolver
}

func (h *GetNightPriceHandler) Handle(ctx context.Context, q GetNightPriceQuery) (dto.NightPrice, error) {
	return dto.MapNightPrice(h.Resolver.Explain(q.Date)), nil
}

var _ queries.Handler[GetNightPriceQuery, dto.NightPrice] = (*GetNightPriceHandler)(nil)
