package store

import (
	"math"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Bajrangipanjiyar/studio/internal/models"
)

// The bookings collection is written by several app revisions and its
// documents drift: fields go missing, field names differ between lineages
// (userName vs customerName), and values show up with the wrong type.
// NormalizeOrder is the single place that absorbs all of it. It is pure and
// total: any document, including an empty one, yields a fully populated
// Order. Normalizing an already-normalized order yields the same order.

const fallback = "N/A"

// NormalizeOrder maps a raw bookings document to the canonical Order.
func NormalizeOrder(id string, doc bson.M) models.Order {
	return models.Order{
		ID:            id,
		CustomerName:  strField(doc, fallback, "userName", "customerName"),
		Phone:         strField(doc, fallback, "userPhone", "phone"),
		Address:       strField(doc, fallback, "address"),
		Status:        strField(doc, models.StatusPending, "status"),
		Total:         numField(doc, "price", "total"),
		OrderDate:     dateField(doc, "date", "orderDate"),
		CarType:       strField(doc, fallback, "carType"),
		TimeSlot:      strField(doc, fallback, "timeSlot"),
		PaymentMethod: strField(doc, fallback, "paymentMethod"),
		Items:         itemsField(doc, "items"),
	}
}

// strField returns the first present, non-empty string among keys, else def.
func strField(doc bson.M, def string, keys ...string) string {
	for _, k := range keys {
		if s, ok := doc[k].(string); ok && s != "" {
			return s
		}
	}
	return def
}

// numField coerces the first present value among keys to a float64.
// Absent, non-numeric and non-finite values all become 0.
func numField(doc bson.M, keys ...string) float64 {
	for _, k := range keys {
		v, ok := doc[k]
		if !ok {
			continue
		}
		var f float64
		switch n := v.(type) {
		case float64:
			f = n
		case float32:
			f = float64(n)
		case int:
			f = float64(n)
		case int32:
			f = float64(n)
		case int64:
			f = float64(n)
		case string:
			parsed, err := strconv.ParseFloat(n, 64)
			if err != nil {
				continue
			}
			f = parsed
		default:
			continue
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return f
	}
	return 0
}

// dateField converts the first recognized timestamp-like value among keys to
// an RFC3339 UTC string, defaulting to the current time.
func dateField(doc bson.M, keys ...string) string {
	for _, k := range keys {
		v, ok := doc[k]
		if !ok {
			continue
		}
		switch d := v.(type) {
		case primitive.DateTime:
			return d.Time().UTC().Format(time.RFC3339)
		case time.Time:
			return d.UTC().Format(time.RFC3339)
		case string:
			if t, err := time.Parse(time.RFC3339, d); err == nil {
				return t.UTC().Format(time.RFC3339)
			}
			if t, err := time.Parse("2006-01-02", d); err == nil {
				return t.UTC().Format(time.RFC3339)
			}
		}
	}
	return time.Now().UTC().Format(time.RFC3339)
}

func itemsField(doc bson.M, key string) []models.OrderItem {
	raw, ok := doc[key].(bson.A)
	if !ok {
		// Already-normalized orders round-trip through []models.OrderItem.
		if its, ok := doc[key].([]models.OrderItem); ok {
			return its
		}
		return nil
	}
	items := make([]models.OrderItem, 0, len(raw))
	for _, el := range raw {
		m, ok := el.(bson.M)
		if !ok {
			continue
		}
		items = append(items, models.OrderItem{
			ID:       strField(m, "", "id"),
			Name:     strField(m, fallback, "name"),
			Quantity: int(numField(m, "quantity")),
			Price:    numField(m, "price"),
		})
	}
	if len(items) == 0 {
		return nil
	}
	return items
}
