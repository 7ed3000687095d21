package property

import (
	"errors"
	"time"

	"chalet/internal/domain/availability"
	"chalet/internal/domain/pricing"
)

var ErrNameRequired = errors.New("property: name is required")

// Property is the immutable reference data of the rental: its rates and the
// days removed from sale. It is loaded once and passed to whoever needs it.
type Property struct {
	Name    string
	Pricing pricing.Config
	Blocked availability.DaySet
	Booked  availability.DaySet
}

func (p Property) Validate() error {
	if p.Name == "" {
		return ErrNameRequired
	}
	return p.Pricing.Validate()
}

// WithBooked returns a copy whose booked days come from another source.
func (p Property) WithBooked(booked availability.DaySet) Property {
	p.Booked = booked
	return p
}

// BlockedDates lists the administratively blocked days in ascending order.
func (p Property) BlockedDates() []time.Time {
	return p.Blocked.Dates()
}

// BookedDates lists the reserved days in ascending order.
func (p Property) BookedDates() []time.Time {
	return p.Booked.Dates()
}

func (p Property) Resolver() pricing.Resolver {
	return pricing.NewResolver(p.Pricing)
}

// Rules builds the selection rules for this property.
func (p Property) Rules(horizonDays int, loc *time.Location, now func() time.Time) availability.Rules {
	return availability.Rules{
		Blocked:     p.Blocked,
		Booked:      p.Booked,
		HorizonDays: horizonDays,
		Location:    loc,
		Now:         now,
	}
}
