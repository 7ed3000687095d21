package pricing

import (
	"context"
	"errors"
	"time"

	"chalet/internal/app/dto"
	"chalet/internal/app/queries"
	"chalet/internal/domain/availability"
	domainpricing "chalet/internal/domain/pricing"
	"chalet/internal/domain/shared/daterange"
)

const (
	getQuoteKey    = "pricing.quote"
	MaxQuoteNights = 366
)

var (
	ErrQuoteRange    = errors.New("pricing: quote end is before its start")
	ErrQuoteTooLarge = errors.New("pricing: quote covers too many nights")
)

// GetQuoteQuery prices every night from From to To inclusive. A zero To
// prices From alone.
type GetQuoteQuery struct {
	From time.Time `validate:"required"`
	To   time.Time
}

func (q GetQuoteQuery) Key() string { return getQuoteKey }

type GetQuoteHandler struct {
	Resolver domainpricing.Resolver
	Rules    availability.Rules
}

func (h *GetQuoteHandler) Handle(ctx context.Context, q GetQuoteQuery) (dto.Quote, error) {
	if !q.To.IsZero() {
		nights := daterange.NightsBetween(q.From, q.To)
		if nights < 0 {
			return dto.Quote{}, ErrQuoteRange
		}
		if nights+1 > MaxQuoteNights {
			return dto.Quote{}, ErrQuoteTooLarge
		}
	}
	return dto.MapQuote(h.Resolver.Quote(q.From, q.To), h.Rules), nil
}

var _ queries.Handler[GetQuoteQuery, dto.Quote] = (*GetQuoteHandler)(nil)
