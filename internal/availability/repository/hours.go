package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	availerrors "tably/internal/availability/errors"
	"tably/pkg/config"
	"tably/pkg/logger"
	"tably/pkg/model"
)

const (
	businessHoursCollection = "business_hours"
	specialHoursCollection  = "special_hours"
)

// HoursRepository resolves the service hours that apply to a date.
type HoursRepository interface {
	// FindSpecialHours returns the date-specific override for date
	// (YYYY-MM-DD), or ErrHoursNotFound when none exists.
	FindSpecialHours(ctx context.Context, date string) (*model.SpecialHours, error)

	// FindBusinessHours returns the weekly template row for a weekday
	// name (Sunday..Saturday), or ErrHoursNotFound when none exists.
	FindBusinessHours(ctx context.Context, weekday string) (*model.BusinessHours, error)

	// ListBusinessHours returns the full weekly template.
	ListBusinessHours(ctx context.Context) ([]*model.BusinessHours, error)
}

type hoursRepository struct {
	business *mongo.Collection
	special  *mongo.Collection
	cfg      *config.Config
	log      *logger.Logger
}

func NewHoursRepository(client *mongo.Client, cfg *config.Config, log *logger.Logger) HoursRepository {
	db := client.Database(cfg.MongoDatabaseName)
	return &hoursRepository{
		business: db.Collection(businessHoursCollection),
		special:  db.Collection(specialHoursCollection),
		cfg:      cfg,
		log:      log,
	}
}

func (r *hoursRepository) FindSpecialHours(ctx context.Context, date string) (*model.SpecialHours, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var hours model.SpecialHours
	err := r.special.FindOne(ctx, bson.M{"date": date}).Decode(&hours)
	if err == mongo.ErrNoDocuments {
		return nil, availerrors.ErrHoursNotFound
	}
	if err != nil {
		r.log.Error("failed to find special hours", "date", date, "error", err)
		return nil, err
	}
	return &hours, nil
}

func (r *hoursRepository) FindBusinessHours(ctx context.Context, weekday string) (*model.BusinessHours, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var hours model.BusinessHours
	err := r.business.FindOne(ctx, bson.M{"weekday": weekday}).Decode(&hours)
	if err == mongo.ErrNoDocuments {
		return nil, availerrors.ErrHoursNotFound
	}
	if err != nil {
		r.log.Error("failed to find business hours", "weekday", weekday, "error", err)
		return nil, err
	}
	return &hours, nil
}

func (r *hoursRepository) ListBusinessHours(ctx context.Context) ([]*model.BusinessHours, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.business.Find(ctx, bson.M{})
	if err != nil {
		r.log.Error("failed to list business hours", "error", err)
		return nil, err
	}
	defer cursor.Close(ctx)

	var hours []*model.BusinessHours
	if err := cursor.All(ctx, &hours); err != nil {
		return nil, err
	}
	return hours, nil
}
