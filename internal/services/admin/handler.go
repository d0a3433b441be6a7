package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"cafe-system/internal/database"
	"cafe-system/internal/logger"
	"cafe-system/internal/models"
)

// OrderLister lists all orders for the admin view
type OrderLister interface {
	AllOrders(ctx context.Context) ([]models.OrderSummary, error)
}

// Handler handles the admin HTTP surface
type Handler struct {
	service *Service
	history OrderLister
	db      *database.DB
	logger  *logger.Logger
}

// NewHandler creates a new admin handler
func NewHandler(service *Service, history OrderLister, db *database.DB, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		history: history,
		db:      db,
		logger:  log,
	}
}

// SetupRoutes sets up the HTTP routes
func (h *Handler) SetupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/orders", h.Orders)
	mux.HandleFunc("/orders/status", h.UpdateStatus)
	mux.HandleFunc("/query", h.RunQuery)
	mux.HandleFunc("/health", h.HealthCheck)

	return mux
}

// Orders handles GET /orders, listing every order in the system
func (h *Handler) Orders(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	if r.Method != http.MethodGet {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", requestID)
		return
	}

	orders, err := h.history.AllOrders(r.Context())
	if err != nil {
		h.logger.Error("order_list_failed", "Failed to list orders", requestID, err, nil)
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
}

// UpdateStatus handles POST /orders/status
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	if r.Method != http.MethodPost {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", requestID)
		return
	}

	var req struct {
		OrderID int64  `json:"order_id"`
		Status  string `json:"status"`
	}
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}
	if req.OrderID <= 0 {
		h.writeErrorResponse(w, http.StatusBadRequest, "order_id is required", requestID)
		return
	}

	err := h.service.UpdateStatus(r.Context(), req.OrderID, req.Status, requestID)
	switch {
	case errors.Is(err, ErrUnknownStatus):
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error(), requestID)
		return
	case errors.Is(err, ErrOrderNotFound):
		h.writeErrorResponse(w, http.StatusNotFound, err.Error(), requestID)
		return
	case err != nil:
		h.logger.Error("status_update_failed", "Failed to update order status", requestID, err, map[string]interface{}{
			"order_id": req.OrderID,
		})
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{"status": "ok"})
}

// RunQuery handles POST /query, the guarded ad-hoc diagnostic query endpoint
func (h *Handler) RunQuery(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	if r.Method != http.MethodPost {
		h.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", requestID)
		return
	}

	var req struct {
		Query string `json:"query"`
	}
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	result, err := h.service.RunQuery(r.Context(), req.Query, requestID)
	switch {
	case errors.Is(err, ErrQueryRejected):
		h.writeErrorResponse(w, http.StatusForbidden, err.Error(), requestID)
		return
	case err != nil:
		h.logger.Error("adhoc_query_failed", "Ad-hoc query failed", requestID, err, nil)
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	h.writeJSON(w, http.StatusOK, result)
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
		"service":   "admin-service",
		"healthy":   healthy,
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("response_encoding_failed", "Failed to encode response", "", err, nil)
	}
}

func (h *Handler) writeErrorResponse(w http.ResponseWriter, statusCode int, message, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error":      message,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"request_id": requestID,
	})
}
