package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"tably/internal/reconciler/repository"
	"tably/pkg/analytics"
	"tably/pkg/config"
	apperrors "tably/pkg/errors"
	"tably/pkg/logger"
	"tably/pkg/model"
)

// Result reports how many documents each cluster transitioned during
// one sweep. Counts reflect documents this sweep actually claimed, not
// candidates observed, so two concurrent sweeps never double-report.
type Result struct {
	ExpiredEventBookings        int       `json:"expiredEventBookings"`
	CancelledEventTableBookings int       `json:"cancelledEventTableBookings"`
	ExpiredTableBookings        int       `json:"expiredTableBookings"`
	ExpiredPaymentHolds         int       `json:"expiredPaymentHolds"`
	FailedDepositPayments       int       `json:"failedDepositPayments"`
	ExpiredWaitlistOffers       int       `json:"expiredWaitlistOffers"`
	ExpiredWaitlistEntries      int       `json:"expiredWaitlistEntries"`
	ExpiredWaitlistHolds        int       `json:"expiredWaitlistHolds"`
	CancelledCaptureBookings    int       `json:"cancelledCaptureBookings"`
	ExpiredCardCaptures         int       `json:"expiredCardCaptures"`
	ExpiredCardCaptureHolds     int       `json:"expiredCardCaptureHolds"`
	ProcessedAt                 time.Time `json:"processedAt"`
}

type ReconcilerService interface {
	Reconcile(ctx context.Context) (*Result, error)
}

type reconcilerService struct {
	repo     repository.ExpiryRepository
	recorder analytics.Recorder
	cfg      *config.Config
	log      *logger.Logger
	now      func() time.Time
}

func NewReconcilerService(repo repository.ExpiryRepository, recorder analytics.Recorder, cfg *config.Config, log *logger.Logger) ReconcilerService {
	return &reconcilerService{
		repo:     repo,
		recorder: recorder,
		cfg:      cfg,
		log:      log,
		now:      time.Now,
	}
}

func chunk(ids []string, size int) [][]string {
	if size <= 0 {
		size = 1
	}
	chunks := make([][]string, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}

// abort logs how far the sweep got before a hard database error. The
// next scheduled run resumes safely, so nothing is retried here.
func (s *reconcilerService) abort(result *Result, cluster string, err error) error {
	s.log.Error("expiry sweep aborted",
		"cluster", cluster,
		"expired_event_bookings", result.ExpiredEventBookings,
		"expired_table_bookings", result.ExpiredTableBookings,
		"expired_waitlist_offers", result.ExpiredWaitlistOffers,
		"cancelled_capture_bookings", result.CancelledCaptureBookings,
		"error", err,
	)
	return apperrors.Internal(cluster+" sweep failed", err)
}

// record publishes one analytics event. Recording failures are logged
// and never fail the sweep.
func (s *reconcilerService) record(ctx context.Context, event analytics.Event) {
	if err := s.recorder.Record(ctx, event); err != nil {
		s.log.Warn("failed to record analytics event",
			"event_type", event.EventType, "entity_id", event.EntityID, "error", err)
	}
}

func (s *reconcilerService) Reconcile(ctx context.Context) (*Result, error) {
	now := s.now().UTC()
	result := &Result{ProcessedAt: now}

	if err := s.expireEventBookingHolds(ctx, now, result); err != nil {
		return nil, s.abort(result, "event_bookings", err)
	}
	if err := s.expireTableBookingHolds(ctx, now, result); err != nil {
		return nil, s.abort(result, "table_bookings", err)
	}
	if err := s.expireWaitlistOffers(ctx, now, result); err != nil {
		return nil, s.abort(result, "waitlist", err)
	}
	if err := s.expireCardCaptures(ctx, now, result); err != nil {
		return nil, s.abort(result, "card_captures", err)
	}

	s.log.Info("expiry sweep complete",
		"expired_event_bookings", result.ExpiredEventBookings,
		"cancelled_event_table_bookings", result.CancelledEventTableBookings,
		"expired_table_bookings", result.ExpiredTableBookings,
		"expired_payment_holds", result.ExpiredPaymentHolds,
		"failed_deposit_payments", result.FailedDepositPayments,
		"expired_waitlist_offers", result.ExpiredWaitlistOffers,
		"expired_waitlist_entries", result.ExpiredWaitlistEntries,
		"cancelled_capture_bookings", result.CancelledCaptureBookings,
		"expired_card_captures", result.ExpiredCardCaptures,
		"expired_card_capture_holds", result.ExpiredCardCaptureHolds,
	)
	return result, nil
}

// expireEventBookingHolds expires pending event bookings whose payment
// hold lapsed and cancels every live table booking attached to them.
func (s *reconcilerService) expireEventBookingHolds(ctx context.Context, now time.Time, result *Result) error {
	candidates, err := s.repo.FindExpiredPendingEventBookingIDs(ctx, now)
	if err != nil {
		return err
	}

	for _, ids := range chunk(candidates, s.cfg.ReconcilerChunkSize) {
		var expired []*model.EventBooking
		var cancelled []*model.TableBooking
		var holds int64

		// The closure may run more than once on a transient
		// transaction error, so it only assigns; result is folded
		// after the commit.
		err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
			var txErr error
			expired, txErr = s.repo.ExpireEventBookings(sessCtx, ids, now)
			if txErr != nil {
				return txErr
			}
			if len(expired) == 0 {
				return nil
			}

			eventIDs := make([]string, 0, len(expired))
			for _, booking := range expired {
				eventIDs = append(eventIDs, booking.ID)
			}

			holds, txErr = s.repo.ExpireActiveEventPaymentHolds(sessCtx, eventIDs)
			if txErr != nil {
				return txErr
			}

			cancelled, txErr = s.repo.CancelTableBookingsForEvents(sessCtx, eventIDs)
			return txErr
		})
		if err != nil {
			return err
		}

		result.ExpiredEventBookings += len(expired)
		result.ExpiredPaymentHolds += int(holds)
		result.CancelledEventTableBookings += len(cancelled)

		for _, booking := range cancelled {
			s.record(ctx, analytics.Event{
				CustomerID: booking.CustomerID,
				EntityID:   booking.ID,
				EventType:  analytics.EventBookingCancelled,
				Metadata: map[string]any{
					"reason": string(model.ReasonEventPaymentHoldExpired),
				},
			})
		}
	}
	return nil
}

// expireTableBookingHolds expires standalone pending table bookings
// whose payment hold lapsed, expires their holds and fails any pending
// deposit payment.
func (s *reconcilerService) expireTableBookingHolds(ctx context.Context, now time.Time, result *Result) error {
	candidates, err := s.repo.FindExpiredPendingTableBookingIDs(ctx, now)
	if err != nil {
		return err
	}

	for _, ids := range chunk(candidates, s.cfg.ReconcilerChunkSize) {
		var expired []*model.TableBooking
		var holds, payments int64

		err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
			var txErr error
			expired, txErr = s.repo.ExpirePaymentHoldTableBookings(sessCtx, ids, now)
			if txErr != nil {
				return txErr
			}
			if len(expired) == 0 {
				return nil
			}

			bookingIDs := make([]string, 0, len(expired))
			for _, booking := range expired {
				bookingIDs = append(bookingIDs, booking.ID)
			}

			holds, txErr = s.repo.ExpireActiveHolds(sessCtx, model.HoldTypePayment, bookingIDs)
			if txErr != nil {
				return txErr
			}

			payments, txErr = s.repo.FailPendingDepositPayments(sessCtx, bookingIDs)
			return txErr
		})
		if err != nil {
			return err
		}

		result.ExpiredTableBookings += len(expired)
		result.ExpiredPaymentHolds += int(holds)
		result.FailedDepositPayments += int(payments)

		for _, booking := range expired {
			s.record(ctx, analytics.Event{
				CustomerID: booking.CustomerID,
				EntityID:   booking.ID,
				EventType:  analytics.EventPaymentFailed,
				Metadata: map[string]any{
					"payment_kind": string(model.ChargeTableDeposit),
					"reason":       "hold_expired",
				},
			})
		}
	}
	return nil
}

// expireWaitlistOffers expires sent offers past their deadline, expires
// the backing waitlist hold and moves still-offered entries back to
// expired.
func (s *reconcilerService) expireWaitlistOffers(ctx context.Context, now time.Time, result *Result) error {
	candidates, err := s.repo.FindExpiredSentWaitlistOfferIDs(ctx, now)
	if err != nil {
		return err
	}

	for _, ids := range chunk(candidates, s.cfg.ReconcilerChunkSize) {
		var expired []*model.WaitlistOffer
		var holds, entries int64

		err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
			var txErr error
			expired, txErr = s.repo.ExpireWaitlistOffers(sessCtx, ids, now)
			if txErr != nil {
				return txErr
			}
			if len(expired) == 0 {
				return nil
			}

			offerIDs := make([]string, 0, len(expired))
			entryIDs := make([]string, 0, len(expired))
			for _, offer := range expired {
				offerIDs = append(offerIDs, offer.ID)
				entryIDs = append(entryIDs, offer.WaitlistEntryID)
			}

			holds, txErr = s.repo.ExpireActiveHolds(sessCtx, model.HoldTypeWaitlist, offerIDs)
			if txErr != nil {
				return txErr
			}

			entries, txErr = s.repo.ExpireOfferedWaitlistEntries(sessCtx, entryIDs)
			return txErr
		})
		if err != nil {
			return err
		}

		result.ExpiredWaitlistOffers += len(expired)
		result.ExpiredWaitlistHolds += int(holds)
		result.ExpiredWaitlistEntries += int(entries)

		entryCustomer := s.entryCustomers(ctx, expired)
		for _, offer := range expired {
			s.record(ctx, analytics.Event{
				CustomerID: entryCustomer[offer.WaitlistEntryID],
				EntityID:   offer.ID,
				EventType:  analytics.EventWaitlistOfferExpired,
				Metadata: map[string]any{
					"waitlist_entry_id": offer.WaitlistEntryID,
				},
			})
		}
	}
	return nil
}

// entryCustomers maps waitlist entry ids to customer ids for the
// analytics events. A lookup failure degrades to empty customer ids.
func (s *reconcilerService) entryCustomers(ctx context.Context, offers []*model.WaitlistOffer) map[string]string {
	entryIDs := make([]string, 0, len(offers))
	for _, offer := range offers {
		entryIDs = append(entryIDs, offer.WaitlistEntryID)
	}

	customers := make(map[string]string, len(entryIDs))
	entries, err := s.repo.FindWaitlistEntriesByIDs(ctx, entryIDs)
	if err != nil {
		s.log.Warn("failed to load waitlist entries for analytics", "error", err)
		return customers
	}
	for _, entry := range entries {
		customers[entry.ID] = entry.CustomerID
	}
	return customers
}

// expireCardCaptures cancels bookings whose card-capture window lapsed,
// expires the capture hold and marks pending capture records expired.
func (s *reconcilerService) expireCardCaptures(ctx context.Context, now time.Time, result *Result) error {
	candidates, err := s.repo.FindExpiredPendingCardCaptureBookingIDs(ctx, now)
	if err != nil {
		return err
	}

	for _, ids := range chunk(candidates, s.cfg.ReconcilerChunkSize) {
		var cancelled []*model.TableBooking
		var holds, captures int64

		err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
			var txErr error
			cancelled, txErr = s.repo.CancelCardCaptureBookings(sessCtx, ids, now)
			if txErr != nil {
				return txErr
			}
			if len(cancelled) == 0 {
				return nil
			}

			bookingIDs := make([]string, 0, len(cancelled))
			for _, booking := range cancelled {
				bookingIDs = append(bookingIDs, booking.ID)
			}

			holds, txErr = s.repo.ExpireActiveHolds(sessCtx, model.HoldTypeCardCapture, bookingIDs)
			if txErr != nil {
				return txErr
			}

			captures, txErr = s.repo.ExpirePendingCardCaptures(sessCtx, bookingIDs)
			return txErr
		})
		if err != nil {
			return err
		}

		result.CancelledCaptureBookings += len(cancelled)
		result.ExpiredCardCaptureHolds += int(holds)
		result.ExpiredCardCaptures += int(captures)

		for _, booking := range cancelled {
			s.record(ctx, analytics.Event{
				CustomerID: booking.CustomerID,
				EntityID:   booking.ID,
				EventType:  analytics.EventCardCaptureExpired,
				Metadata: map[string]any{
					"reason": string(model.ReasonCardCaptureExpired),
				},
			})
		}
	}
	return nil
}
