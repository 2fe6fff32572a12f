package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Bajrangipanjiyar/studio/internal/models"
	"github.com/Bajrangipanjiyar/studio/internal/store"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) ListOrders(ctx context.Context, phonePrefix string) ([]models.Order, error) {
	args := m.Called(ctx, phonePrefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *mockStore) GetOrderByID(ctx context.Context, id string) (models.Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Order), args.Error(1)
}

func (m *mockStore) UpdateOrder(ctx context.Context, id string, upd store.OrderUpdate) error {
	args := m.Called(ctx, id, upd)
	return args.Error(0)
}

func (m *mockStore) GetDashboardStats(ctx context.Context) (store.DashboardStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(store.DashboardStats), args.Error(1)
}

func (m *mockStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func testTemplates(t *testing.T) *TemplateCache {
	t.Helper()
	tc := NewTemplateCache()
	require.NoError(t, tc.Load("../../templates"))
	return tc
}

func testSessions() *sessions.CookieStore {
	return sessions.NewCookieStore([]byte("0123456789abcdef0123456789abcdef"))
}

func newOrderHandler(t *testing.T, s OrderStore) *OrderHandler {
	return &OrderHandler{
		Store:        s,
		SessionStore: testSessions(),
		Templates:    testTemplates(t),
	}
}

func sampleOrder() models.Order {
	return models.Order{
		ID:            "64b000000000000000000001",
		CustomerName:  "Alice Johnson",
		Phone:         "123-456-7890",
		Address:       "123 Maple Street",
		Status:        models.StatusPending,
		Total:         65.98,
		OrderDate:     "2023-10-26T00:00:00Z",
		CarType:       "SUV",
		TimeSlot:      "09:00 - 10:00",
		PaymentMethod: "UPI",
	}
}

func postForm(path string, form url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func TestListOrdersRendersRows(t *testing.T) {
	ms := new(mockStore)
	ms.On("ListOrders", mock.Anything, "123").Return([]models.Order{sampleOrder()}, nil)

	h := newOrderHandler(t, ms)
	w := httptest.NewRecorder()
	h.ListOrders(w, httptest.NewRequest(http.MethodGet, "/admin/orders?q=123", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Alice Johnson")
	assert.Contains(t, body, "123-456-7890")
	assert.Contains(t, body, "badge-outline") // pending status badge
	ms.AssertExpectations(t)
}

func TestListOrdersFetchFailure(t *testing.T) {
	ms := new(mockStore)
	ms.On("ListOrders", mock.Anything, "").Return(nil, errors.New("mongo down"))

	h := newOrderHandler(t, ms)
	w := httptest.NewRecorder()
	h.ListOrders(w, httptest.NewRequest(http.MethodGet, "/admin/orders", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Failed to fetch orders")
	assert.Contains(t, body, "No orders found.")
}

func TestOrderDetailNotFoundRedirectsToList(t *testing.T) {
	ms := new(mockStore)
	ms.On("GetOrderByID", mock.Anything, "missing").Return(models.Order{}, store.ErrOrderNotFound)

	h := newOrderHandler(t, ms)
	w := httptest.NewRecorder()
	h.OrderDetail(w, httptest.NewRequest(http.MethodGet, "/admin/orders/detail?id=missing", nil))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/orders", w.Header().Get("Location"))
}

func TestEditOrderFormPrefillsFields(t *testing.T) {
	ms := new(mockStore)
	order := sampleOrder()
	ms.On("GetOrderByID", mock.Anything, order.ID).Return(order, nil)

	h := newOrderHandler(t, ms)
	w := httptest.NewRecorder()
	h.EditOrderForm(w, httptest.NewRequest(http.MethodGet, "/admin/orders/edit?id="+order.ID, nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `value="Alice Johnson"`)
	assert.Contains(t, body, `value="123-456-7890"`)
	assert.Contains(t, body, `value="123 Maple Street"`)
}

// A name below the minimum length is rejected before any store write.
func TestUpdateOrderValidationBlocksStoreWrite(t *testing.T) {
	ms := new(mockStore)
	order := sampleOrder()
	ms.On("GetOrderByID", mock.Anything, order.ID).Return(order, nil)

	form := url.Values{
		"id":            {order.ID},
		"customer_name": {"A"},
		"phone":         {"123-456-7890"},
		"address":       {"123 Maple Street"},
		"status":        {"confirmed"},
	}

	h := newOrderHandler(t, ms)
	w := httptest.NewRecorder()
	h.UpdateOrder(w, postForm("/admin/orders/update", form))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Name must be at least 2 characters.")
	assert.Contains(t, body, `value="A"`) // input preserved
	ms.AssertNotCalled(t, "UpdateOrder", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateOrderValidationRules(t *testing.T) {
	tests := []struct {
		name    string
		values  map[string]string
		wantKey string
	}{
		{"short name", map[string]string{"customerName": "A", "phone": "1234567890", "address": "12345", "status": "pending"}, "customerName"},
		{"short phone", map[string]string{"customerName": "Al", "phone": "123456789", "address": "12345", "status": "pending"}, "phone"},
		{"short address", map[string]string{"customerName": "Al", "phone": "1234567890", "address": "1234", "status": "pending"}, "address"},
		{"bad status", map[string]string{"customerName": "Al", "phone": "1234567890", "address": "12345", "status": "Shipped"}, "status"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := validateOrderForm(tt.values)
			assert.Contains(t, errs, tt.wantKey)
			assert.Len(t, errs, 1)
		})
	}

	ok := validateOrderForm(map[string]string{
		"customerName": "Alice",
		"phone":        "123-456-7890",
		"address":      "123 Maple Street",
		"status":       "confirmed",
	})
	assert.Empty(t, ok)
}

// A successful update renders the detail view from the merged local copy
// without re-fetching the order.
func TestUpdateOrderOptimisticMerge(t *testing.T) {
	ms := new(mockStore)
	order := sampleOrder()
	ms.On("GetOrderByID", mock.Anything, order.ID).Return(order, nil).Once()
	ms.On("UpdateOrder", mock.Anything, order.ID, store.OrderUpdate{
		CustomerName: "Alice Johnson",
		Phone:        "123-456-7890",
		Address:      "123 Maple Street",
		Status:       models.StatusConfirmed,
	}).Return(nil).Once()

	form := url.Values{
		"id":            {order.ID},
		"customer_name": {"Alice Johnson"},
		"phone":         {"123-456-7890"},
		"address":       {"123 Maple Street"},
		"status":        {models.StatusConfirmed},
	}

	h := newOrderHandler(t, ms)
	w := httptest.NewRecorder()
	h.UpdateOrder(w, postForm("/admin/orders/update", form))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Order updated!")
	assert.Contains(t, body, "confirmed") // merged status, not the stored "pending"
	assert.NotContains(t, body, "badge-outline")
	ms.AssertExpectations(t) // GetOrderByID exactly once: no re-fetch
}

// A failed write keeps the user in the edit form with their input intact.
func TestUpdateOrderStoreFailureStaysEditing(t *testing.T) {
	ms := new(mockStore)
	order := sampleOrder()
	ms.On("GetOrderByID", mock.Anything, order.ID).Return(order, nil)
	ms.On("UpdateOrder", mock.Anything, order.ID, mock.Anything).Return(errors.New("write failed"))

	form := url.Values{
		"id":            {order.ID},
		"customer_name": {"Bob Smith"},
		"phone":         {"234-567-8901"},
		"address":       {"456 Oak Avenue"},
		"status":        {models.StatusRunning},
	}

	h := newOrderHandler(t, ms)
	w := httptest.NewRecorder()
	h.UpdateOrder(w, postForm("/admin/orders/update", form))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Update failed")
	assert.Contains(t, body, `value="Bob Smith"`)
	assert.Contains(t, body, `value="456 Oak Avenue"`)
}
