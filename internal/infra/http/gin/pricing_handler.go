package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"chalet/internal/app/dto"
	pricingapp "chalet/internal/app/handlers/pricing"
	"chalet/internal/app/queries"
	"chalet/internal/domain/shared/daterange"
)

type PricingHandler struct {
	Queries queries.Bus
}

func (h PricingHandler) Night(c *gin.Context) {
	date, err := daterange.Parse(c.Param("date"))
	if err != nil {
		writeError(c, err)
		return
	}
	result, err := queries.Ask[pricingapp.GetNightPriceQuery, dto.NightPrice](c.Request.Context(), h.Queries, pricingapp.GetNightPriceQuery{Date: date})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Quote serves GET /quote?from=...&to=..., both days included.
func (h PricingHandler) Quote(c *gin.Context) {
	from, err := dateQuery(c, "from")
	if err != nil {
		writeError(c, err)
		return
	}
	to, err := dateQuery(c, "to")
	if err != nil {
		writeError(c, err)
		return
	}
	query := pricingapp.GetQuoteQuery{From: from, To: to}
	result, err := queries.Ask[pricingapp.GetQuoteQuery, dto.Quote](c.Request.Context(), h.Queries, query)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ PricingHTTP = PricingHandler{}
