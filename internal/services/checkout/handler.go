package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"cafe-system/internal/cart"
	"cafe-system/internal/catalog"
	"cafe-system/internal/database"
	"cafe-system/internal/logger"
	"cafe-system/internal/models"
)

// maxLineQuantity mirrors the quantity ceiling of the order form. The cart and
// the commit engine only reject non-positive quantities; the ceiling is an
// edge concern.
const maxLineQuantity = 10

// OrderHistory lists a customer's past orders
type OrderHistory interface {
	UserOrders(ctx context.Context, userID int64) ([]models.OrderSummary, error)
}

// Handler handles the customer-facing HTTP surface: menu, cart, checkout and
// order history
type Handler struct {
	service *Service
	carts   *cart.Registry
	menu    *catalog.Reader
	history OrderHistory
	db      *database.DB
	logger  *logger.Logger
}

// NewHandler creates a new customer handler
func NewHandler(service *Service, carts *cart.Registry, menu *catalog.Reader, history OrderHistory, db *database.DB, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		carts:   carts,
		menu:    menu,
		history: history,
		db:      db,
		logger:  log,
	}
}

// SetupRoutes sets up the HTTP routes
func (h *Handler) SetupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/menu", h.withLogging(h.Menu))
	mux.HandleFunc("/cart", h.withLogging(h.Cart))
	mux.HandleFunc("/cart/items", h.withLogging(h.CartItems))
	mux.HandleFunc("/cart/clear", h.withLogging(h.ClearCart))
	mux.HandleFunc("/orders", h.withLogging(h.Orders))
	mux.HandleFunc("/health", h.withLogging(h.HealthCheck))

	return mux
}

// Menu handles GET /menu
func (h *Handler) Menu(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	if r.Method != http.MethodGet {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", requestID)
		return
	}

	items, err := h.menu.ListMenu(r.Context())
	if err != nil {
		h.logger.Error("menu_list_failed", "Failed to list menu", requestID, err, nil)
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

// Cart handles GET /cart, returning the priced cart view
func (h *Handler) Cart(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	if r.Method != http.MethodGet {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", requestID)
		return
	}

	userID, err := userIDParam(r)
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	snapshot := h.carts.Get(userID).Snapshot()

	view := models.CartView{Lines: []models.CartViewLine{}}
	if len(snapshot) > 0 {
		ids := make([]int64, 0, len(snapshot))
		for id := range snapshot {
			ids = append(ids, id)
		}

		items, err := h.menu.FetchByIDs(r.Context(), ids)
		if err != nil {
			h.logger.Error("cart_pricing_failed", "Failed to price cart", requestID, err, nil)
			h.writeErrorResponse(w, http.StatusServiceUnavailable, "Catalog unavailable", requestID)
			return
		}

		for id, qty := range snapshot {
			item, ok := items[id]
			if !ok {
				continue
			}
			subtotal := item.Price.Times(qty)
			view.TotalCents += subtotal
			view.Lines = append(view.Lines, models.CartViewLine{
				ItemID:        id,
				Name:          item.Name,
				PriceCents:    item.Price,
				Price:         item.Price.String(),
				Quantity:      qty,
				SubtotalCents: subtotal,
				Subtotal:      subtotal.String(),
			})
		}
	}
	view.Total = view.TotalCents.String()

	h.writeJSON(w, http.StatusOK, view)
}

// CartItems handles POST /cart/items (add, merging quantities) and
// PUT /cart/items (replace quantity, zero removes)
func (h *Handler) CartItems(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	switch r.Method {
	case http.MethodPost:
		h.addCartItem(w, r, requestID)
	case http.MethodPut:
		h.updateCartItem(w, r, requestID)
	default:
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", requestID)
	}
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request, requestID string) {
	var req models.AddCartItemRequest
	if !h.decodeBody(w, r, requestID, &req) {
		return
	}

	if req.UserID <= 0 || req.ItemID <= 0 {
		h.writeErrorResponse(w, http.StatusBadRequest, "user_id and item_id are required", requestID)
		return
	}
	if req.Quantity > maxLineQuantity {
		h.writeErrorResponse(w, http.StatusBadRequest,
			fmt.Sprintf("quantity must be at most %d", maxLineQuantity), requestID)
		return
	}

	if err := h.carts.Get(req.UserID).AddItem(req.ItemID, req.Quantity); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	h.logger.Debug("cart_item_added", "Item added to cart", requestID, map[string]interface{}{
		"user_id":  req.UserID,
		"item_id":  req.ItemID,
		"quantity": req.Quantity,
	})

	h.writeJSON(w, http.StatusOK, map[string]interface{}{"status": "ok"})
}

func (h *Handler) updateCartItem(w http.ResponseWriter, r *http.Request, requestID string) {
	var req models.UpdateCartItemRequest
	if !h.decodeBody(w, r, requestID, &req) {
		return
	}

	if req.UserID <= 0 || req.ItemID <= 0 {
		h.writeErrorResponse(w, http.StatusBadRequest, "user_id and item_id are required", requestID)
		return
	}
	if req.Quantity > maxLineQuantity {
		h.writeErrorResponse(w, http.StatusBadRequest,
			fmt.Sprintf("quantity must be at most %d", maxLineQuantity), requestID)
		return
	}

	if err := h.carts.Get(req.UserID).SetQuantity(req.ItemID, req.Quantity); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{"status": "ok"})
}

// ClearCart handles POST /cart/clear
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	if r.Method != http.MethodPost {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", requestID)
		return
	}

	var req struct {
		UserID int64 `json:"user_id"`
	}
	if !h.decodeBody(w, r, requestID, &req) {
		return
	}
	if req.UserID <= 0 {
		h.writeErrorResponse(w, http.StatusBadRequest, "user_id is required", requestID)
		return
	}

	h.carts.Get(req.UserID).Clear()
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"status": "ok"})
}

// Orders handles POST /orders (checkout) and GET /orders (history)
func (h *Handler) Orders(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	switch r.Method {
	case http.MethodPost:
		h.placeOrder(w, r, requestID)
	case http.MethodGet:
		h.listOrders(w, r, requestID)
	default:
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", requestID)
	}
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request, requestID string) {
	var req models.PlaceOrderRequest
	if !h.decodeBody(w, r, requestID, &req) {
		return
	}

	if req.UserID <= 0 {
		h.writeErrorResponse(w, http.StatusBadRequest, "user_id is required", requestID)
		return
	}
	if req.CustomerName == "" {
		h.writeErrorResponse(w, http.StatusBadRequest, "customer_name is required", requestID)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	result, err := h.service.PlaceOrder(ctx, h.carts.Get(req.UserID), req.UserID, req.CustomerName, requestID)
	if err != nil {
		h.writeCheckoutError(w, err, requestID)
		return
	}

	h.logger.Info("order_placed", "Order committed", requestID, map[string]interface{}{
		"order_id":    result.OrderID,
		"user_id":     req.UserID,
		"total_cents": int64(result.TotalCents),
		"dropped":     len(result.DroppedItemIDs),
	})

	h.writeJSON(w, http.StatusCreated, result)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request, requestID string) {
	userID, err := userIDParam(r)
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	orders, err := h.history.UserOrders(r.Context(), userID)
	if err != nil {
		h.logger.Error("order_history_failed", "Failed to list orders", requestID, err, map[string]interface{}{
			"user_id": userID,
		})
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	healthy := h.db.Ping(ctx) == nil

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}

	h.writeJSON(w, status, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "order-service",
		"healthy":   healthy,
	})
}

func (h *Handler) writeCheckoutError(w http.ResponseWriter, err error, requestID string) {
	switch {
	case errors.Is(err, ErrEmptyCart):
		h.writeErrorResponse(w, http.StatusBadRequest, "Your cart is empty", requestID)
	case errors.Is(err, ErrNoResolvableItems):
		h.writeErrorResponse(w, http.StatusConflict, "None of the cart items exist anymore", requestID)
	case errors.Is(err, catalog.ErrStoreUnavailable):
		h.writeErrorResponse(w, http.StatusServiceUnavailable, "Catalog unavailable, try again", requestID)
	case errors.Is(err, ErrCommitFailed):
		h.logger.Error("order_creation_failed", "Failed to commit order", requestID, err, nil)
		h.writeErrorResponse(w, http.StatusInternalServerError, "Could not place order, cart unchanged", requestID)
	default:
		h.logger.Error("order_creation_failed", "Failed to place order", requestID, err, nil)
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
	}
}

func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, requestID string, dst interface{}) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		h.logger.Error("validation_failed", "Failed to parse request body", requestID, err, nil)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return false
	}
	return true
}

func userIDParam(r *http.Request) (int64, error) {
	raw := r.URL.Query().Get("user_id")
	if raw == "" {
		return 0, errors.New("user_id query parameter is required")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("user_id must be a positive integer")
	}
	return id, nil
}

func (h *Handler) writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("response_encoding_failed", "Failed to encode response", "", err, nil)
	}
}

// writeErrorResponse writes an error response in JSON format
func (h *Handler) writeErrorResponse(w http.ResponseWriter, statusCode int, message, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error":      message,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"request_id": requestID,
	})
}

// withLogging adds request logging middleware
func (h *Handler) withLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next(w, r)
		h.logger.Debug("http_request", "Handled HTTP request", "", map[string]interface{}{
			"method":      r.Method,
			"path":        r.URL.Path,
			"duration_ms": time.Since(start).Milliseconds(),
			"remote_addr": r.RemoteAddr,
		})
	}
}
