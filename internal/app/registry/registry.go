// Package registry binds the application handlers to their buses.
package registry

import (
	"time"

	"chalet/internal/app/commands"
	"chalet/internal/app/dto"
	availabilityapp "chalet/internal/app/handlers/availability"
	calendarapp "chalet/internal/app/handlers/calendar"
	pricingapp "chalet/internal/app/handlers/pricing"
	selectionapp "chalet/internal/app/handlers/selection"
	"chalet/internal/app/outbox"
	"chalet/internal/app/queries"
	"chalet/internal/domain/availability"
	"chalet/internal/domain/property"
	domainselection "chalet/internal/domain/selection"
)

// Deps is everything the handlers need. Property and Rules are fixed for the
// process lifetime.
type Deps struct {
	Property property.Property
	Rules    availability.Rules
	Sessions domainselection.Repository
	Outbox   outbox.Outbox
	Encoder  outbox.EventEncoder
	Now      func() time.Time
}

func RegisterQueries(bus *queries.InMemoryBus, d Deps) {
	resolver := d.Property.Resolver()
	queries.RegisterHandler[calendarapp.GetCalendarQuery, dto.Calendar](bus, calendarapp.GetCalendarQuery{}.Key(),
		&calendarapp.GetCalendarHandler{Property: d.Property, Rules: d.Rules})
	queries.RegisterHandler[pricingapp.GetNightPriceQuery, dto.NightPrice](bus, pricingapp.GetNightPriceQuery{}.Key(),
		&pricingapp.GetNightPriceHandler{Resolver: resolver})
	queries.RegisterHandler[pricingapp.GetQuoteQuery, dto.Quote](bus, pricingapp.GetQuoteQuery{}.Key(),
		&pricingapp.GetQuoteHandler{Resolver: resolver, Rules: d.Rules})
	queries.RegisterHandler[availabilityapp.ListUnavailableQuery, dto.UnavailableDates](bus, availabilityapp.ListUnavailableQuery{}.Key(),
		&availabilityapp.ListUnavailableHandler{Property: d.Property})
	queries.RegisterHandler[selectionapp.GetCurrentQuery, dto.SelectionState](bus, selectionapp.GetCurrentQuery{}.Key(),
		&selectionapp.GetCurrentHandler{Sessions: d.Sessions, Resolver: resolver})
}

func RegisterCommands(bus *commands.InMemoryBus, d Deps) {
	resolver := d.Property.Resolver()
	commands.RegisterHandler[selectionapp.ClickDayCommand, *dto.ClickResult](bus, selectionapp.ClickDayCommand{}.Key(),
		&selectionapp.ClickDayHandler{
			Sessions: d.Sessions,
			Rules:    d.Rules,
			Resolver: resolver,
			Outbox:   d.Outbox,
			Encoder:  d.Encoder,
			Now:      d.Now,
		})
	commands.RegisterHandler[selectionapp.ResetCommand, *dto.SelectionState](bus, selectionapp.ResetCommand{}.Key(),
		&selectionapp.ResetHandler{
			Sessions: d.Sessions,
			Resolver: resolver,
			Outbox:   d.Outbox,
			Encoder:  d.Encoder,
			Now:      d.Now,
		})
}
