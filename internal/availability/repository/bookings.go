package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"tably/pkg/config"
	"tably/pkg/logger"
	"tably/pkg/model"
)

const (
	eventBookingsCollection = "event_bookings"
	tableBookingsCollection = "table_bookings"
)

// BookingReader loads the bookings that occupy capacity on a date.
// Cancelled and expired bookings never count against capacity.
type BookingReader interface {
	FindActiveTableBookingsByDate(ctx context.Context, date string) ([]*model.TableBooking, error)
	FindActiveEventBookingsByDate(ctx context.Context, date string) ([]*model.EventBooking, error)
}

type bookingReader struct {
	events *mongo.Collection
	tables *mongo.Collection
	cfg    *config.Config
	log    *logger.Logger
}

func NewBookingReader(client *mongo.Client, cfg *config.Config, log *logger.Logger) BookingReader {
	db := client.Database(cfg.MongoDatabaseName)
	return &bookingReader{
		events: db.Collection(eventBookingsCollection),
		tables: db.Collection(tableBookingsCollection),
		cfg:    cfg,
		log:    log,
	}
}

func activeOnDateFilter(date string) bson.M {
	return bson.M{
		"date":   date,
		"status": bson.M{"$nin": bson.A{model.StatusCancelled, model.StatusExpired}},
	}
}

func (r *bookingReader) FindActiveTableBookingsByDate(ctx context.Context, date string) ([]*model.TableBooking, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.tables.Find(ctx, activeOnDateFilter(date))
	if err != nil {
		r.log.Error("failed to find table bookings", "date", date, "error", err)
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []*model.TableBooking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingReader) FindActiveEventBookingsByDate(ctx context.Context, date string) ([]*model.EventBooking, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.events.Find(ctx, activeOnDateFilter(date))
	if err != nil {
		r.log.Error("failed to find event bookings", "date", date, "error", err)
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []*model.EventBooking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}
