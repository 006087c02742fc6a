package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/pixelbloom/inventory-service/internal/inventory/domain"
	"github.com/pixelbloom/inventory-service/internal/inventory/usecase/command"
	"github.com/pixelbloom/inventory-service/internal/inventory/usecase/query"
	"github.com/pixelbloom/inventory-service/pkg/logger"
)

var (
	operationCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_operations_total",
			Help: "Total inventory operations",
		},
		[]string{"operation", "status"},
	)

	requestLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "inventory_request_duration_seconds",
			Help:    "Duration of inventory requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
)

// ItemHandler handles HTTP requests for inventory items
type ItemHandler struct {
	// Command handlers
	createHandler *command.CreateItemHandler
	updateHandler *command.UpdateItemHandler
	deleteHandler *command.DeleteItemHandler

	// Query handlers
	getHandler      *query.GetItemHandler
	listHandler     *query.ListItemsHandler
	listShopHandler *query.ListShopItemsHandler
}

// NewItemHandler creates a new item handler
func NewItemHandler(repo domain.ItemRepository, publisher domain.EventPublisher) *ItemHandler {
	return &ItemHandler{
		createHandler:   command.NewCreateItemHandler(repo, publisher),
		updateHandler:   command.NewUpdateItemHandler(repo, publisher),
		deleteHandler:   command.NewDeleteItemHandler(repo, publisher),
		getHandler:      query.NewGetItemHandler(repo),
		listHandler:     query.NewListItemsHandler(repo),
		listShopHandler: query.NewListShopItemsHandler(repo),
	}
}

// CreateItem handles POST /inventory/items/
// @Summary Create inventory item
// @Description Create a new inventory item for a shop; image files are stored by the blob service
// @Tags Inventory
// @Accept mpfd
// @Produce json
// @Param shop_id formData string true "Shop ID"
// @Param name formData string true "Name"
// @Param description formData string true "Description"
// @Param category formData string true "Category"
// @Param price formData number true "Price (> 0)"
// @Param quantity formData integer true "Quantity (>= 0)"
// @Success 201 {object} domain.InventoryItem
// @Failure 400 {object} object{detail=string}
// @Failure 500 {object} object{detail=string}
// @Router /inventory/items/ [post]
func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	defer observe("POST", "/inventory/items/")()

	if err := r.ParseMultipartForm(32 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		operationCounter.WithLabelValues("create", "error").Inc()
		respondDetail(w, http.StatusBadRequest, "invalid form payload")
		return
	}

	shopID, err := uuid.Parse(r.FormValue("shop_id"))
	if err != nil {
		operationCounter.WithLabelValues("create", "error").Inc()
		respondDetail(w, http.StatusBadRequest, "invalid shop_id")
		return
	}
	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil {
		operationCounter.WithLabelValues("create", "error").Inc()
		respondDetail(w, http.StatusBadRequest, "invalid price")
		return
	}
	quantity, err := strconv.Atoi(r.FormValue("quantity"))
	if err != nil {
		operationCounter.WithLabelValues("create", "error").Inc()
		respondDetail(w, http.StatusBadRequest, "invalid quantity")
		return
	}

	// Image files ride along in the same multipart form; uploading them is
	// the blob service's job, so only the metadata fields are read here.

	cmd := command.CreateItemCommand{
		ShopID:      shopID,
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
		Price:       price,
		Quantity:    quantity,
	}

	item, err := h.createHandler.Handle(r.Context(), cmd)
	if err != nil {
		operationCounter.WithLabelValues("create", "error").Inc()
		if errors.Is(err, domain.ErrValidation) {
			respondDetail(w, http.StatusBadRequest, err.Error())
			return
		}
		logger.Error(r.Context()).Err(err).Msg("Failed to create inventory item")
		respondDetail(w, http.StatusInternalServerError, "failed to create inventory item")
		return
	}

	operationCounter.WithLabelValues("create", "success").Inc()
	respondJSON(w, http.StatusCreated, item)
}

// GetItem handles GET /inventory/items/{id}
// @Summary Get inventory item
// @Description Get a single inventory item by id, active or not
// @Tags Inventory
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} domain.InventoryItem
// @Failure 404 {object} object{detail=string}
// @Router /inventory/items/{id} [get]
func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	defer observe("GET", "/inventory/items/{id}")()

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondDetail(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := h.getHandler.Handle(r.Context(), query.GetItemQuery{ID: id})
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			respondDetail(w, http.StatusNotFound, "Inventory item not found")
			return
		}
		logger.Error(r.Context()).Err(err).Str("item_id", id.String()).Msg("Failed to get inventory item")
		respondDetail(w, http.StatusInternalServerError, "failed to get inventory item")
		return
	}

	respondJSON(w, http.StatusOK, item)
}

// ListItems handles GET /inventory/items/
// @Summary List inventory items
// @Description List active inventory items across all shops
// @Tags Inventory
// @Produce json
// @Param skip query int false "Offset"
// @Param limit query int false "Limit (default 100, max 1000)"
// @Success 200 {array} domain.InventoryItem
// @Failure 500 {object} object{detail=string}
// @Router /inventory/items/ [get]
func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	defer observe("GET", "/inventory/items/")()

	skip, limit := pagination(r)
	items, err := h.listHandler.Handle(r.Context(), query.ListItemsQuery{Skip: skip, Limit: limit})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list inventory items")
		respondDetail(w, http.StatusInternalServerError, "failed to list inventory items")
		return
	}
	if items == nil {
		items = []domain.InventoryItem{}
	}
	respondJSON(w, http.StatusOK, items)
}

// ListShopItems handles GET /inventory/shops/{shop_id}/items
// @Summary List a shop's inventory
// @Description List active inventory items belonging to one shop
// @Tags Inventory
// @Produce json
// @Param shop_id path string true "Shop ID"
// @Param skip query int false "Offset"
// @Param limit query int false "Limit (default 100, max 1000)"
// @Success 200 {array} domain.InventoryItem
// @Failure 400 {object} object{detail=string}
// @Router /inventory/shops/{shop_id}/items [get]
func (h *ItemHandler) ListShopItems(w http.ResponseWriter, r *http.Request) {
	defer observe("GET", "/inventory/shops/{shop_id}/items")()

	shopID, err := uuid.Parse(mux.Vars(r)["shop_id"])
	if err != nil {
		respondDetail(w, http.StatusBadRequest, "invalid shop id")
		return
	}

	skip, limit := pagination(r)
	items, err := h.listShopHandler.Handle(r.Context(), query.ListShopItemsQuery{
		ShopID: shopID,
		Skip:   skip,
		Limit:  limit,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Str("shop_id", shopID.String()).Msg("Failed to list shop inventory")
		respondDetail(w, http.StatusInternalServerError, "failed to list shop inventory")
		return
	}
	if items == nil {
		items = []domain.InventoryItem{}
	}
	respondJSON(w, http.StatusOK, items)
}

// UpdateItem handles PATCH /inventory/items/{id}
// @Summary Update inventory item
// @Description Partially update an inventory item; absent fields keep their value
// @Tags Inventory
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Param patch body domain.ItemPatch true "Fields to change"
// @Success 200 {object} domain.InventoryItem
// @Failure 400 {object} object{detail=string}
// @Failure 404 {object} object{detail=string}
// @Router /inventory/items/{id} [patch]
func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	defer observe("PATCH", "/inventory/items/{id}")()

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondDetail(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var patch domain.ItemPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		operationCounter.WithLabelValues("update", "error").Inc()
		respondDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.updateHandler.Handle(r.Context(), command.UpdateItemCommand{ID: id, Patch: patch})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrItemNotFound):
			operationCounter.WithLabelValues("update", "error").Inc()
			respondDetail(w, http.StatusNotFound, "Inventory item not found")
		case errors.Is(err, domain.ErrValidation):
			operationCounter.WithLabelValues("update", "error").Inc()
			respondDetail(w, http.StatusBadRequest, err.Error())
		default:
			operationCounter.WithLabelValues("update", "error").Inc()
			logger.Error(r.Context()).Err(err).Str("item_id", id.String()).Msg("Failed to update inventory item")
			respondDetail(w, http.StatusInternalServerError, "failed to update inventory item")
		}
		return
	}

	operationCounter.WithLabelValues("update", "success").Inc()
	respondJSON(w, http.StatusOK, item)
}

// DeleteItem handles DELETE /inventory/items/{id}
// @Summary Delete inventory item
// @Description Soft-delete an inventory item; the row is kept for history
// @Tags Inventory
// @Param id path string true "Item ID"
// @Success 204
// @Failure 404 {object} object{detail=string}
// @Router /inventory/items/{id} [delete]
func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	defer observe("DELETE", "/inventory/items/{id}")()

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondDetail(w, http.StatusBadRequest, "invalid item id")
		return
	}

	if err := h.deleteHandler.Handle(r.Context(), command.DeleteItemCommand{ID: id}); err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			operationCounter.WithLabelValues("delete", "error").Inc()
			respondDetail(w, http.StatusNotFound, "Inventory item not found")
			return
		}
		operationCounter.WithLabelValues("delete", "error").Inc()
		logger.Error(r.Context()).Err(err).Str("item_id", id.String()).Msg("Failed to delete inventory item")
		respondDetail(w, http.StatusInternalServerError, "failed to delete inventory item")
		return
	}

	operationCounter.WithLabelValues("delete", "success").Inc()
	w.WriteHeader(http.StatusNoContent)
}

// RegisterRoutes registers all inventory routes
func (h *ItemHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/inventory/items/", h.CreateItem).Methods("POST")
	router.HandleFunc("/inventory/items/", h.ListItems).Methods("GET")
	router.HandleFunc("/inventory/items/{id}", h.GetItem).Methods("GET")
	router.HandleFunc("/inventory/items/{id}", h.UpdateItem).Methods("PATCH")
	router.HandleFunc("/inventory/items/{id}", h.DeleteItem).Methods("DELETE")
	router.HandleFunc("/inventory/shops/{shop_id}/items", h.ListShopItems).Methods("GET")
}

// Pinger reports backing-store connectivity; *sql.DB satisfies it.
type Pinger interface {
	Ping() error
}

// RegisterHealthCheck registers the liveness endpoint.
// @Summary Health check
// @Description Check service health and database connectivity
// @Tags Health
// @Produce json
// @Success 200 {object} object{status=string}
// @Failure 503 {object} object{detail=string}
// @Router /health [get]
func (h *ItemHandler) RegisterHealthCheck(router *mux.Router, db Pinger) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			respondDetail(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	}).Methods("GET")
}

func pagination(r *http.Request) (skip, limit int) {
	skip, _ = strconv.Atoi(r.URL.Query().Get("skip"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if skip < 0 {
		skip = 0
	}
	return skip, limit
}

func observe(method, endpoint string) func() {
	start := time.Now()
	return func() {
		requestLatency.WithLabelValues(method, endpoint).Observe(time.Since(start).Seconds())
	}
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// respondDetail sends an error response in the {"detail": ...} shape.
func respondDetail(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, map[string]string{"detail": detail})
}
