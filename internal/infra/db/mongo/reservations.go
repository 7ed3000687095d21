package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"chalet/internal/domain/availability"
	"chalet/internal/domain/shared/daterange"
)

const reservationsCollection = "reservations"

// ReservationSource reads booked nights from an external reservation
// collection. Cancelled reservations are ignored.
type ReservationSource struct {
	col *mongo.Collection
}

func NewReservationSource(db *mongo.Database) *ReservationSource {
	return &ReservationSource{col: db.Collection(reservationsCollection)}
}

type reservationDocument struct {
	ID       string    `bson:"_id"`
	CheckIn  time.Time `bson:"check_in"`
	CheckOut time.Time `bson:"check_out"`
	Status   string    `bson:"status,omitempty"`
}

// BookedDays expands every reservation's [check_in, check_out) range into
// the nights it occupies.
func (s *ReservationSource) BookedDays(ctx context.Context) (availability.DaySet, error) {
	filter := bson.M{"status": bson.M{"$ne": "cancelled"}}
	opts := options.Find().SetSort(bson.D{{Key: "check_in", Value: 1}})
	cur, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return availability.DaySet{}, err
	}
	defer cur.Close(ctx)

	var docs []reservationDocument
	if err := cur.All(ctx, &docs); err != nil {
		return availability.DaySet{}, err
	}
	return nightsOf(docs)
}

func nightsOf(docs []reservationDocument) (availability.DaySet, error) {
	var nights []daterange.Date
	for _, doc := range docs {
		stay, err := daterange.New(doc.CheckIn, doc.CheckOut)
		if err != nil {
			return availability.DaySet{}, fmt.Errorf("reservation %s: %w", doc.ID, err)
		}
		stay.EachNight(func(night time.Time) {
			nights = append(nights, daterange.DateOf(night))
		})
	}
	return availability.NewDaySet(nights...), nil
}

var _ availability.BookedSource = (*ReservationSource)(nil)
