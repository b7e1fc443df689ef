package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	availerrors "tably/internal/availability/errors"
	"tably/internal/availability/repository"
	"tably/pkg/config"
	apperrors "tably/pkg/errors"
	"tably/pkg/logger"
	"tably/pkg/model"
)

const dateLayout = "2006-01-02"

// TimeSlot is one bookable slot on a date.
type TimeSlot struct {
	Time               string `json:"time"`
	AvailableCapacity  int    `json:"available_capacity"`
	RequiresPrepayment bool   `json:"requires_prepayment"`
}

// DayAvailability is the full answer for one date.
type DayAvailability struct {
	Date         string              `json:"date"`
	Available    bool                `json:"available"`
	TimeSlots    []TimeSlot          `json:"time_slots"`
	KitchenHours *model.KitchenHours `json:"kitchen_hours,omitempty"`
	SpecialNotes string              `json:"special_notes,omitempty"`
}

// NextSlot is the nearest bookable slot across the advance window.
type NextSlot struct {
	Date string   `json:"date"`
	Slot TimeSlot `json:"slot"`
}

// EffectiveHours is the resolved service window for a date, after
// date-specific overrides are applied over the weekly template.
type EffectiveHours struct {
	Date         string              `json:"date"`
	Closed       bool                `json:"closed"`
	KitchenHours *model.KitchenHours `json:"kitchen_hours,omitempty"`
	Note         string              `json:"note,omitempty"`
}

type AvailabilityService interface {
	CheckAvailability(ctx context.Context, date string, partySize int, bookingType string) (*DayAvailability, error)
	GetAvailabilityRange(ctx context.Context, startDate, endDate string, partySize int, bookingType string) (map[string]bool, error)
	NextAvailableSlot(ctx context.Context, partySize int, bookingType, preferredTime string) (*NextSlot, error)
	ResolveHours(ctx context.Context, date string) (*EffectiveHours, error)
	WeeklyHours(ctx context.Context) ([]*model.BusinessHours, error)
}

type availabilityService struct {
	hours    repository.HoursRepository
	bookings repository.BookingReader
	calc     *CapacityCalculator
	cfg      *config.Config
	log      *logger.Logger
	now      func() time.Time
}

func NewAvailabilityService(hours repository.HoursRepository, bookings repository.BookingReader, cfg *config.Config, log *logger.Logger) AvailabilityService {
	return &availabilityService{
		hours:    hours,
		bookings: bookings,
		calc:     NewCapacityCalculator(cfg.Venue),
		cfg:      cfg,
		log:      log,
		now:      time.Now,
	}
}

// resolvedHours is the internal merge of special and weekly hours.
type resolvedHours struct {
	opens, closes string
	closed        bool
	note          string
}

func (s *availabilityService) resolveHours(ctx context.Context, date string, day time.Time) (resolvedHours, error) {
	special, err := s.hours.FindSpecialHours(ctx, date)
	if err == nil {
		return resolvedHours{
			opens:  special.KitchenOpens,
			closes: special.KitchenCloses,
			closed: special.IsClosed || special.IsKitchenClosed,
			note:   special.Note,
		}, nil
	}
	if !errors.Is(err, availerrors.ErrHoursNotFound) {
		return resolvedHours{}, err
	}

	weekly, err := s.hours.FindBusinessHours(ctx, day.Weekday().String())
	if errors.Is(err, availerrors.ErrHoursNotFound) {
		// No configuration means closed, never open.
		return resolvedHours{closed: true}, nil
	}
	if err != nil {
		return resolvedHours{}, err
	}
	return resolvedHours{
		opens:  weekly.KitchenOpens,
		closes: weekly.KitchenCloses,
		closed: weekly.IsClosed || weekly.IsKitchenClosed,
		note:   weekly.Note,
	}, nil
}

func (s *availabilityService) loadIntervals(ctx context.Context, date string) ([]BookingInterval, error) {
	tables, err := s.bookings.FindActiveTableBookingsByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	events, err := s.bookings.FindActiveEventBookingsByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	intervals := make([]BookingInterval, 0, len(tables)+len(events))
	for _, b := range tables {
		intervals = append(intervals, BookingInterval{Start: b.Time, Type: b.BookingType, DurationMin: b.DurationMin, PartySize: b.PartySize})
	}
	for _, b := range events {
		intervals = append(intervals, BookingInterval{Start: b.Time, Type: BookingTypeEvent, DurationMin: b.DurationMin, PartySize: b.PartySize})
	}
	return intervals, nil
}

// sundayLunchClosed reports whether the cutover for a Sunday date has
// passed. The cutover is 13:00 on the Saturday immediately before it.
func (s *availabilityService) sundayLunchClosed(day time.Time, now time.Time) bool {
	if day.Weekday() != time.Sunday {
		return false
	}
	saturday := day.AddDate(0, 0, -1)
	cutover := time.Date(saturday.Year(), saturday.Month(), saturday.Day(), 13, 0, 0, 0, s.cfg.VenueLocation())
	return !now.Before(cutover)
}

func (s *availabilityService) parseDate(date string) (time.Time, error) {
	day, err := time.ParseInLocation(dateLayout, date, s.cfg.VenueLocation())
	if err != nil {
		return time.Time{}, apperrors.InvalidInput(availerrors.ErrInvalidDate.Error())
	}
	return day, nil
}

func (s *availabilityService) CheckAvailability(ctx context.Context, date string, partySize int, bookingType string) (*DayAvailability, error) {
	day, err := s.parseDate(date)
	if err != nil {
		return nil, err
	}

	policy := PolicyFor(bookingType)
	now := s.now().In(s.cfg.VenueLocation())

	result := &DayAvailability{Date: date, TimeSlots: []TimeSlot{}}

	hours, err := s.resolveHours(ctx, date, day)
	if err != nil {
		return nil, apperrors.Internal("failed to resolve service hours", err)
	}
	result.SpecialNotes = hours.note
	if hours.closed {
		return result, nil
	}
	result.KitchenHours = &model.KitchenHours{Opens: hours.opens, Closes: hours.closes}

	if day.AddDate(0, 0, 1).Before(now) {
		return result, nil
	}
	maxDate := now.AddDate(0, 0, policy.MaxAdvanceDays)
	if day.After(maxDate) {
		result.SpecialNotes = fmt.Sprintf("Bookings open up to %d days in advance", policy.MaxAdvanceDays)
		return result, nil
	}
	if policy.SundayLunchCutover && s.sundayLunchClosed(day, now) {
		result.SpecialNotes = "Sunday lunch bookings close at 13:00 on Saturday"
		return result, nil
	}

	intervals, err := s.loadIntervals(ctx, date)
	if err != nil {
		return nil, apperrors.Internal("failed to load bookings", err)
	}

	earliest := now.Add(time.Duration(policy.MinNoticeHours) * time.Hour)
	for _, slot := range GenerateSlots(hours.opens, hours.closes, s.cfg.Venue.SlotIntervalMin) {
		slotMin, err := minuteOfDay(slot)
		if err != nil {
			continue
		}
		slotTime := day.Add(time.Duration(slotMin) * time.Minute)
		if slotTime.Before(earliest) {
			continue
		}
		remaining := s.calc.RemainingCapacity(slot, intervals)
		if remaining < partySize {
			continue
		}
		result.TimeSlots = append(result.TimeSlots, TimeSlot{
			Time:               slot,
			AvailableCapacity:  remaining,
			RequiresPrepayment: policy.RequiresPrepayment,
		})
	}
	result.Available = len(result.TimeSlots) > 0
	return result, nil
}

const maxRangeDays = 62

func (s *availabilityService) GetAvailabilityRange(ctx context.Context, startDate, endDate string, partySize int, bookingType string) (map[string]bool, error) {
	start, err := s.parseDate(startDate)
	if err != nil {
		return nil, err
	}
	end, err := s.parseDate(endDate)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, apperrors.InvalidInput("end_date must not be before start_date")
	}
	if end.Sub(start) > maxRangeDays*24*time.Hour {
		return nil, apperrors.InvalidInput(fmt.Sprintf("range must not exceed %d days", maxRangeDays))
	}

	availability := make(map[string]bool)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		date := day.Format(dateLayout)
		result, err := s.CheckAvailability(ctx, date, partySize, bookingType)
		if err != nil {
			return nil, err
		}
		availability[date] = result.Available
	}
	return availability, nil
}

func (s *availabilityService) NextAvailableSlot(ctx context.Context, partySize int, bookingType, preferredTime string) (*NextSlot, error) {
	preferredMin := -1
	if preferredTime != "" {
		min, err := minuteOfDay(preferredTime)
		if err != nil {
			return nil, apperrors.InvalidInput("preferred_time must be HH:MM")
		}
		preferredMin = min
	}

	now := s.now().In(s.cfg.VenueLocation())
	horizonDays := s.cfg.AvailabilityHorizonWeeks * 7

	for offset := 0; offset < horizonDays; offset++ {
		date := now.AddDate(0, 0, offset).Format(dateLayout)
		result, err := s.CheckAvailability(ctx, date, partySize, bookingType)
		if err != nil {
			return nil, err
		}
		if !result.Available {
			continue
		}
		return &NextSlot{Date: date, Slot: pickNearestSlot(result.TimeSlots, preferredMin)}, nil
	}
	return nil, apperrors.NotFound(fmt.Sprintf("availability within %d weeks", s.cfg.AvailabilityHorizonWeeks))
}

// pickNearestSlot chooses the slot closest to the preferred minute, or
// the first slot when no preference was given. Ties keep the earlier slot.
func pickNearestSlot(slots []TimeSlot, preferredMin int) TimeSlot {
	if preferredMin < 0 {
		return slots[0]
	}
	best := slots[0]
	bestDistance := minutesPerDay
	for _, slot := range slots {
		min, err := minuteOfDay(slot.Time)
		if err != nil {
			continue
		}
		distance := min - preferredMin
		if distance < 0 {
			distance = -distance
		}
		if distance < bestDistance {
			best = slot
			bestDistance = distance
		}
	}
	return best
}

func (s *availabilityService) ResolveHours(ctx context.Context, date string) (*EffectiveHours, error) {
	day, err := s.parseDate(date)
	if err != nil {
		return nil, err
	}
	hours, err := s.resolveHours(ctx, date, day)
	if err != nil {
		return nil, apperrors.Internal("failed to resolve service hours", err)
	}
	resolved := &EffectiveHours{Date: date, Closed: hours.closed, Note: hours.note}
	if !hours.closed {
		resolved.KitchenHours = &model.KitchenHours{Opens: hours.opens, Closes: hours.closes}
	}
	return resolved, nil
}

// WeeklyHours returns the weekly template without date-specific
// overrides applied.
func (s *availabilityService) WeeklyHours(ctx context.Context) ([]*model.BusinessHours, error) {
	hours, err := s.hours.ListBusinessHours(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to list business hours", err)
	}
	return hours, nil
}
