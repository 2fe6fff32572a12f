package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Bajrangipanjiyar/studio/internal/metrics"
	"github.com/Bajrangipanjiyar/studio/internal/models"
)

// prefixUpper is appended to a search prefix to form the exclusive upper
// bound of the prefix range: userPhone in [q, q+"").
const prefixUpper = ""

// phonePrefixFilter builds the half-open range filter that emulates
// "starts with" on the string-ordered userPhone field.
func phonePrefixFilter(prefix string) bson.M {
	return bson.M{"userPhone": bson.M{
		"$gte": prefix,
		"$lt":  prefix + prefixUpper,
	}}
}

// ListOrders fetches bookings, newest first. A non-empty phonePrefix
// restricts the result to phones starting with the prefix, sorted by phone
// then creation time descending.
func (s *Store) ListOrders(ctx context.Context, phonePrefix string) ([]models.Order, error) {
	filter := bson.M{}
	sort := bson.D{{Key: "createdAt", Value: -1}}
	if phonePrefix != "" {
		filter = phonePrefixFilter(phonePrefix)
		sort = bson.D{{Key: "userPhone", Value: 1}, {Key: "createdAt", Value: -1}}
	}

	cur, err := s.bookings.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		metrics.OrderFetchErrorsTotal.Inc()
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer cur.Close(ctx)

	var orders []models.Order
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			metrics.OrderFetchErrorsTotal.Inc()
			return nil, fmt.Errorf("failed to decode booking: %w", err)
		}
		orders = append(orders, NormalizeOrder(docID(doc), doc))
	}
	if err := cur.Err(); err != nil {
		metrics.OrderFetchErrorsTotal.Inc()
		return nil, fmt.Errorf("failed to iterate bookings: %w", err)
	}

	metrics.OrderFetchesTotal.Inc()
	return orders, nil
}

// GetOrderByID fetches a single booking. Returns ErrOrderNotFound when the
// id is unknown or not a valid object id.
func (s *Store) GetOrderByID(ctx context.Context, id string) (models.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Order{}, ErrOrderNotFound
	}

	var doc bson.M
	err = s.bookings.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Order{}, ErrOrderNotFound
		}
		metrics.OrderFetchErrorsTotal.Inc()
		return models.Order{}, fmt.Errorf("failed to find booking: %w", err)
	}

	return NormalizeOrder(id, doc), nil
}

// OrderUpdate carries the editable logical fields of an order.
type OrderUpdate struct {
	CustomerName string
	Phone        string
	Address      string
	Status       string
}

// remoteFields maps the update to the field names the bookings collection
// actually uses.
func (u OrderUpdate) remoteFields() bson.M {
	return bson.M{
		"userName":  u.CustomerName,
		"userPhone": u.Phone,
		"address":   u.Address,
		"status":    u.Status,
	}
}

// UpdateOrder writes only the edited fields back to the booking document.
func (s *Store) UpdateOrder(ctx context.Context, id string, upd OrderUpdate) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrOrderNotFound
	}

	res, err := s.bookings.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": upd.remoteFields()})
	if err != nil {
		metrics.OrderUpdateErrorsTotal.Inc()
		return fmt.Errorf("failed to update booking: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrOrderNotFound
	}

	metrics.OrderUpdatesTotal.Inc()
	return nil
}

// docID extracts the document id as a string. Object ids render as hex;
// anything else keeps its printed form so the order is still addressable.
func docID(doc bson.M) string {
	switch id := doc["_id"].(type) {
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return id
	case nil:
		return ""
	default:
		return fmt.Sprint(id)
	}
}
