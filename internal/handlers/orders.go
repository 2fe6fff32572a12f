package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"unicode/utf8"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"

	"github.com/Bajrangipanjiyar/studio/internal/models"
	"github.com/Bajrangipanjiyar/studio/internal/store"
)

type OrderHandler struct {
	Store        OrderStore
	SessionStore *sessions.CookieStore
	Templates    *TemplateCache
}

// ListOrders renders the orders page. A non-empty ?q= restricts the list to
// bookings whose phone number starts with the query.
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	session, _ := h.SessionStore.Get(r, "admin-session")

	orders, err := h.Store.ListOrders(r.Context(), query)
	if err != nil {
		slog.Error("Failed to fetch orders", "query", query, "error", err)
		session.AddFlash(FlashMessage{Type: "error", Message: "Failed to fetch orders"})
	}

	tmpl := h.Templates.Get("orders.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	data := map[string]interface{}{
		"Orders":    orders,
		"Query":     query,
		"CsrfField": csrf.TemplateField(r),
		"CsrfToken": csrf.Token(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// OrderDetail renders the Viewing state for one order. An unknown id flashes
// an error and falls back to the list.
func (h *OrderHandler) OrderDetail(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")

	order, ok := h.fetchOrder(w, r, session)
	if !ok {
		return
	}
	h.renderDetail(w, r, session, order)
}

// EditOrderForm renders the Editing state, pre-populated with the order's
// editable fields.
func (h *OrderHandler) EditOrderForm(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")

	order, ok := h.fetchOrder(w, r, session)
	if !ok {
		return
	}

	h.renderEdit(w, r, session, order, map[string]string{
		"customerName": order.CustomerName,
		"phone":        order.Phone,
		"address":      order.Address,
		"status":       order.Status,
	}, nil)
}

// UpdateOrder validates the submitted edit and writes only the changed
// logical fields back to the store. Validation failures re-render the form
// with field errors and never contact the store. On success the submitted
// values are merged into the loaded order and the detail view is rendered
// from that merged copy, without a re-fetch.
func (h *OrderHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")

	order, ok := h.fetchOrder(w, r, session)
	if !ok {
		return
	}

	values := map[string]string{
		"customerName": r.FormValue("customer_name"),
		"phone":        r.FormValue("phone"),
		"address":      r.FormValue("address"),
		"status":       r.FormValue("status"),
	}

	fieldErrors := validateOrderForm(values)
	if len(fieldErrors) > 0 {
		h.renderEdit(w, r, session, order, values, fieldErrors)
		return
	}

	upd := store.OrderUpdate{
		CustomerName: values["customerName"],
		Phone:        values["phone"],
		Address:      values["address"],
		Status:       values["status"],
	}
	if err := h.Store.UpdateOrder(r.Context(), order.ID, upd); err != nil {
		slog.Error("Failed to update order", "id", order.ID, "error", err)
		session.AddFlash(FlashMessage{Type: "error", Message: "Update failed. Could not update the order in the database."})
		h.renderEdit(w, r, session, order, values, nil)
		return
	}

	// Optimistic merge: reflect the accepted edit locally instead of
	// re-fetching the document.
	order.CustomerName = upd.CustomerName
	order.Phone = upd.Phone
	order.Address = upd.Address
	order.Status = upd.Status

	session.AddFlash(FlashMessage{Type: "success", Message: "Order updated!"})
	h.renderDetail(w, r, session, order)
}

// validateOrderForm applies the field rules. Returned keys match the form
// field names; an empty map means the submission is acceptable.
func validateOrderForm(values map[string]string) map[string]string {
	errs := make(map[string]string)
	if utf8.RuneCountInString(values["customerName"]) < 2 {
		errs["customerName"] = "Name must be at least 2 characters."
	}
	if utf8.RuneCountInString(values["phone"]) < 10 {
		errs["phone"] = "Phone number must be at least 10 digits."
	}
	if utf8.RuneCountInString(values["address"]) < 5 {
		errs["address"] = "Address must be at least 5 characters."
	}
	if !models.ValidStatus(values["status"]) {
		errs["status"] = "Invalid status selected."
	}
	return errs
}

// fetchOrder loads the order named by ?id= (or the form field on POST),
// handling the not-found and store-failure paths. The bool result reports
// whether the caller should continue.
func (h *OrderHandler) fetchOrder(w http.ResponseWriter, r *http.Request, session *sessions.Session) (models.Order, bool) {
	id := r.URL.Query().Get("id")
	if id == "" {
		id = r.FormValue("id")
	}

	order, err := h.Store.GetOrderByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrOrderNotFound) {
			session.AddFlash(FlashMessage{Type: "error", Message: "Order not found"})
		} else {
			slog.Error("Failed to fetch order", "id", id, "error", err)
			session.AddFlash(FlashMessage{Type: "error", Message: "Failed to fetch order details"})
		}
		session.Save(r, w)
		http.Redirect(w, r, "/admin/orders", http.StatusSeeOther)
		return models.Order{}, false
	}
	return order, true
}

func (h *OrderHandler) renderDetail(w http.ResponseWriter, r *http.Request, session *sessions.Session, order models.Order) {
	tmpl := h.Templates.Get("order_detail.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	data := map[string]interface{}{
		"Order":    order,
		"Subtotal": order.Subtotal(),
		"Flashes":  GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *OrderHandler) renderEdit(w http.ResponseWriter, r *http.Request, session *sessions.Session, order models.Order, values map[string]string, fieldErrors map[string]string) {
	tmpl := h.Templates.Get("order_edit.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	data := map[string]interface{}{
		"Order":     order,
		"Values":    values,
		"Errors":    fieldErrors,
		"Statuses":  models.OrderStatuses,
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}
