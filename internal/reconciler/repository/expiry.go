package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tably/pkg/config"
	mongotx "tably/pkg/db/mongo"
	"tably/pkg/logger"
	"tably/pkg/model"
)

const (
	eventBookingsCollection   = "event_bookings"
	tableBookingsCollection   = "table_bookings"
	holdsCollection           = "holds"
	paymentsCollection        = "payments"
	waitlistOffersCollection  = "waitlist_offers"
	waitlistEntriesCollection = "waitlist_entries"
	cardCapturesCollection    = "card_captures"
)

// ExpiryRepository performs the sweep's reads and conditional writes.
// Every transition method re-checks status and deadline inside the
// update filter, so a document claimed by a concurrent actor is simply
// skipped and never appears in the returned set.
type ExpiryRepository interface {
	FindExpiredPendingEventBookingIDs(ctx context.Context, now time.Time) ([]string, error)
	ExpireEventBookings(ctx context.Context, ids []string, now time.Time) ([]*model.EventBooking, error)
	CancelTableBookingsForEvents(ctx context.Context, eventBookingIDs []string) ([]*model.TableBooking, error)

	FindExpiredPendingTableBookingIDs(ctx context.Context, now time.Time) ([]string, error)
	ExpirePaymentHoldTableBookings(ctx context.Context, ids []string, now time.Time) ([]*model.TableBooking, error)

	FindExpiredPendingCardCaptureBookingIDs(ctx context.Context, now time.Time) ([]string, error)
	CancelCardCaptureBookings(ctx context.Context, ids []string, now time.Time) ([]*model.TableBooking, error)
	ExpirePendingCardCaptures(ctx context.Context, tableBookingIDs []string) (int64, error)

	FindExpiredSentWaitlistOfferIDs(ctx context.Context, now time.Time) ([]string, error)
	ExpireWaitlistOffers(ctx context.Context, ids []string, now time.Time) ([]*model.WaitlistOffer, error)
	ExpireOfferedWaitlistEntries(ctx context.Context, entryIDs []string) (int64, error)
	FindWaitlistEntriesByIDs(ctx context.Context, ids []string) ([]*model.WaitlistEntry, error)

	ExpireActiveHolds(ctx context.Context, holdType model.HoldType, ownerIDs []string) (int64, error)
	ExpireActiveEventPaymentHolds(ctx context.Context, eventBookingIDs []string) (int64, error)
	FailPendingDepositPayments(ctx context.Context, tableBookingIDs []string) (int64, error)

	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type expiryRepository struct {
	db  *mongo.Database
	tx  mongotx.TransactionManager
	cfg *config.Config
	log *logger.Logger
}

func NewExpiryRepository(client *mongo.Client, cfg *config.Config, log *logger.Logger) ExpiryRepository {
	return &expiryRepository{
		db:  client.Database(cfg.MongoDatabaseName),
		tx:  mongotx.NewTransactionManager(client),
		cfg: cfg,
		log: log,
	}
}

func (r *expiryRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.tx.ExecuteTransaction(ctx, fn)
}

func objectIDs(ids []string) []primitive.ObjectID {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}
	return oids
}

// findIDs runs a candidate query and returns hex ids only.
func (r *expiryRepository) findIDs(ctx context.Context, collection string, filter bson.M) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cursor, err := r.db.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		r.log.Error("candidate query failed", "collection", collection, "error", err)
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.ID.Hex())
	}
	return ids, nil
}

func (r *expiryRepository) FindExpiredPendingEventBookingIDs(ctx context.Context, now time.Time) ([]string, error) {
	return r.findIDs(ctx, eventBookingsCollection, bson.M{
		"status":          model.StatusPendingPayment,
		"hold_expires_at": bson.M{"$lte": now},
	})
}

func (r *expiryRepository) ExpireEventBookings(ctx context.Context, ids []string, now time.Time) ([]*model.EventBooking, error) {
	expired := make([]*model.EventBooking, 0, len(ids))
	collection := r.db.Collection(eventBookingsCollection)

	for _, oid := range objectIDs(ids) {
		filter := bson.M{
			"_id":             oid,
			"status":          model.StatusPendingPayment,
			"hold_expires_at": bson.M{"$lte": now},
		}
		update := bson.M{"$set": bson.M{"status": model.StatusExpired}}

		var booking model.EventBooking
		err := collection.FindOneAndUpdate(ctx, filter, update,
			options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&booking)
		if err == mongo.ErrNoDocuments {
			continue
		}
		if err != nil {
			return nil, err
		}
		expired = append(expired, &booking)
	}
	return expired, nil
}

func (r *expiryRepository) CancelTableBookingsForEvents(ctx context.Context, eventBookingIDs []string) ([]*model.TableBooking, error) {
	collection := r.db.Collection(tableBookingsCollection)
	cancelled := make([]*model.TableBooking, 0)

	for _, eventID := range eventBookingIDs {
		for {
			filter := bson.M{
				"event_booking_id": eventID,
				"status":           bson.M{"$nin": bson.A{model.StatusCancelled, model.StatusExpired, model.StatusCompleted}},
			}
			update := bson.M{"$set": bson.M{
				"status":              model.StatusCancelled,
				"cancellation_reason": model.ReasonEventPaymentHoldExpired,
			}}

			var booking model.TableBooking
			err := collection.FindOneAndUpdate(ctx, filter, update,
				options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&booking)
			if err == mongo.ErrNoDocuments {
				break
			}
			if err != nil {
				return nil, err
			}
			cancelled = append(cancelled, &booking)
		}
	}
	return cancelled, nil
}

func (r *expiryRepository) FindExpiredPendingTableBookingIDs(ctx context.Context, now time.Time) ([]string, error) {
	return r.findIDs(ctx, tableBookingsCollection, bson.M{
		"status":           model.StatusPendingPayment,
		"event_booking_id": bson.M{"$exists": false},
		"hold_expires_at":  bson.M{"$lte": now},
	})
}

// transitionTableBookings moves each id from an expected status to a
// terminal one, stamping the reason. Only documents that still matched
// are returned.
func (r *expiryRepository) transitionTableBookings(ctx context.Context, ids []string, from, to model.BookingStatus, reason model.CancellationReason, now time.Time) ([]*model.TableBooking, error) {
	collection := r.db.Collection(tableBookingsCollection)
	transitioned := make([]*model.TableBooking, 0, len(ids))

	for _, oid := range objectIDs(ids) {
		filter := bson.M{
			"_id":             oid,
			"status":          from,
			"hold_expires_at": bson.M{"$lte": now},
		}
		update := bson.M{"$set": bson.M{
			"status":              to,
			"cancellation_reason": reason,
		}}

		var booking model.TableBooking
		err := collection.FindOneAndUpdate(ctx, filter, update,
			options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&booking)
		if err == mongo.ErrNoDocuments {
			continue
		}
		if err != nil {
			return nil, err
		}
		transitioned = append(transitioned, &booking)
	}
	return transitioned, nil
}

// ExpirePaymentHoldTableBookings mirrors the event-booking edge: a
// pending_payment table booking past its deadline becomes expired.
func (r *expiryRepository) ExpirePaymentHoldTableBookings(ctx context.Context, ids []string, now time.Time) ([]*model.TableBooking, error) {
	return r.transitionTableBookings(ctx, ids, model.StatusPendingPayment, model.StatusExpired, model.ReasonPaymentHoldExpired, now)
}

func (r *expiryRepository) FindExpiredPendingCardCaptureBookingIDs(ctx context.Context, now time.Time) ([]string, error) {
	return r.findIDs(ctx, tableBookingsCollection, bson.M{
		"status":          model.StatusPendingCardCapture,
		"hold_expires_at": bson.M{"$lte": now},
	})
}

func (r *expiryRepository) CancelCardCaptureBookings(ctx context.Context, ids []string, now time.Time) ([]*model.TableBooking, error) {
	return r.transitionTableBookings(ctx, ids, model.StatusPendingCardCapture, model.StatusCancelled, model.ReasonCardCaptureExpired, now)
}

func (r *expiryRepository) ExpirePendingCardCaptures(ctx context.Context, tableBookingIDs []string) (int64, error) {
	if len(tableBookingIDs) == 0 {
		return 0, nil
	}
	filter := bson.M{
		"table_booking_id": bson.M{"$in": tableBookingIDs},
		"status":           model.CardCapturePending,
	}
	update := bson.M{"$set": bson.M{"status": model.CardCaptureExpired}}

	result, err := r.db.Collection(cardCapturesCollection).UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

func (r *expiryRepository) FindExpiredSentWaitlistOfferIDs(ctx context.Context, now time.Time) ([]string, error) {
	return r.findIDs(ctx, waitlistOffersCollection, bson.M{
		"status":     model.WaitlistOfferSent,
		"expires_at": bson.M{"$lte": now},
	})
}

func (r *expiryRepository) ExpireWaitlistOffers(ctx context.Context, ids []string, now time.Time) ([]*model.WaitlistOffer, error) {
	collection := r.db.Collection(waitlistOffersCollection)
	expired := make([]*model.WaitlistOffer, 0, len(ids))

	for _, oid := range objectIDs(ids) {
		filter := bson.M{
			"_id":        oid,
			"status":     model.WaitlistOfferSent,
			"expires_at": bson.M{"$lte": now},
		}
		update := bson.M{"$set": bson.M{"status": model.WaitlistOfferExpired}}

		var offer model.WaitlistOffer
		err := collection.FindOneAndUpdate(ctx, filter, update,
			options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&offer)
		if err == mongo.ErrNoDocuments {
			continue
		}
		if err != nil {
			return nil, err
		}
		expired = append(expired, &offer)
	}
	return expired, nil
}

func (r *expiryRepository) ExpireOfferedWaitlistEntries(ctx context.Context, entryIDs []string) (int64, error) {
	oids := objectIDs(entryIDs)
	if len(oids) == 0 {
		return 0, nil
	}
	filter := bson.M{
		"_id":    bson.M{"$in": oids},
		"status": model.WaitlistEntryOffered,
	}
	update := bson.M{"$set": bson.M{"status": model.WaitlistEntryExpired}}

	result, err := r.db.Collection(waitlistEntriesCollection).UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

func (r *expiryRepository) FindWaitlistEntriesByIDs(ctx context.Context, ids []string) ([]*model.WaitlistEntry, error) {
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.db.Collection(waitlistEntriesCollection).Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []*model.WaitlistEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func ownerField(holdType model.HoldType) string {
	switch holdType {
	case model.HoldTypePayment, model.HoldTypeCardCapture:
		return "table_booking_id"
	case model.HoldTypeWaitlist:
		return "waitlist_offer_id"
	}
	return ""
}

func (r *expiryRepository) expireHolds(ctx context.Context, holdType model.HoldType, field string, ownerIDs []string) (int64, error) {
	if len(ownerIDs) == 0 {
		return 0, nil
	}
	filter := bson.M{
		"hold_type": holdType,
		"status":    model.HoldStatusActive,
		field:       bson.M{"$in": ownerIDs},
	}
	update := bson.M{"$set": bson.M{"status": model.HoldStatusExpired}}

	result, err := r.db.Collection(holdsCollection).UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

// ExpireActiveHolds expires active holds of one type by their direct
// owner reference.
func (r *expiryRepository) ExpireActiveHolds(ctx context.Context, holdType model.HoldType, ownerIDs []string) (int64, error) {
	field := ownerField(holdType)
	if field == "" {
		return 0, nil
	}
	return r.expireHolds(ctx, holdType, field, ownerIDs)
}

// ExpireActiveEventPaymentHolds expires payment holds owned by event
// bookings.
func (r *expiryRepository) ExpireActiveEventPaymentHolds(ctx context.Context, eventBookingIDs []string) (int64, error) {
	return r.expireHolds(ctx, model.HoldTypePayment, "event_booking_id", eventBookingIDs)
}

func (r *expiryRepository) FailPendingDepositPayments(ctx context.Context, tableBookingIDs []string) (int64, error) {
	if len(tableBookingIDs) == 0 {
		return 0, nil
	}
	filter := bson.M{
		"table_booking_id": bson.M{"$in": tableBookingIDs},
		"charge_type":      model.ChargeTableDeposit,
		"status":           model.PaymentPending,
	}
	update := bson.M{"$set": bson.M{"status": model.PaymentFailed}}

	result, err := r.db.Collection(paymentsCollection).UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}
