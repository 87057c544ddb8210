package station

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/appetiteclub/floorsync/internal/floor"
	"github.com/appetiteclub/floorsync/internal/restaurant"
	"github.com/appetiteclub/floorsync/internal/supply"
	"github.com/appetiteclub/floorsync/internal/view"
	"github.com/appetiteclub/floorsync/pkg/enums/itemstatus"
	"github.com/appetiteclub/floorsync/pkg/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Kitchen is the subset of floor.Kitchen the handler drives.
type Kitchen interface {
	Acknowledge(orderNumber, itemNumber int) error
	Ready(orderNumber, itemNumber int) error
	ConfirmDelivery(itemNumber int) error
}

// Requests reads the current restock lines.
type Requests interface {
	Requests() []supply.Request
}

type Handler struct {
	id       string
	cache    *view.StateCache
	kitchen  Kitchen
	requests Requests
	logger   logging.Logger
}

func NewHandler(id string, cache *view.StateCache, kitchen Kitchen, requests Requests, logger logging.Logger) *Handler {
	return &Handler{
		id:       id,
		cache:    cache,
		kitchen:  kitchen,
		requests: requests,
		logger:   logging.OrNoop(logger),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.Health)
	r.Route("/orders", func(r chi.Router) {
		r.Get("/", h.ListOrders)
		r.Get("/{number}", h.GetOrder)
	})
	r.Get("/tables/{table}/orders", h.ListTableOrders)
	r.Route("/kitchen", func(r chi.Router) {
		r.Get("/", h.KitchenBoard)
		r.Patch("/orders/{order}/items/{item}/ack", h.AcknowledgeItem)
		r.Patch("/orders/{order}/items/{item}/ready", h.ReadyItem)
		r.Patch("/items/{item}/deliver", h.DeliverItem)
	})
	r.Get("/menu", h.ListMenu)
	r.Get("/supplies", h.ListSupplies)
	r.Get("/requests", h.ListRequests)
}

func (h *Handler) log(r *http.Request) logging.Logger {
	return h.logger.With("request_id", middleware.GetReqID(r.Context()))
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"instance": h.id,
		"version":  h.cache.Version(),
	})
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"orders": h.cache.Orders()})
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	n, ok := intParam(w, r, "number")
	if !ok {
		return
	}
	o, found := h.cache.Order(n)
	if !found {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *Handler) ListTableOrders(w http.ResponseWriter, r *http.Request) {
	table, ok := intParam(w, r, "table")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"orders": h.cache.OrdersByTable(table)})
}

// KitchenBoard groups cached items by status.
func (h *Handler) KitchenBoard(w http.ResponseWriter, r *http.Request) {
	board := make(map[string][]*restaurant.Item)
	for _, s := range itemstatus.All {
		board[s.Code()] = h.cache.ItemsByStatus(s.Code())
	}
	writeJSON(w, http.StatusOK, board)
}

func (h *Handler) AcknowledgeItem(w http.ResponseWriter, r *http.Request) {
	h.kitchenAction(w, r, "acknowledge", h.kitchen.Acknowledge)
}

func (h *Handler) ReadyItem(w http.ResponseWriter, r *http.Request) {
	h.kitchenAction(w, r, "ready", h.kitchen.Ready)
}

func (h *Handler) kitchenAction(w http.ResponseWriter, r *http.Request, name string, action func(order, item int) error) {
	order, ok := intParam(w, r, "order")
	if !ok {
		return
	}
	item, ok := intParam(w, r, "item")
	if !ok {
		return
	}
	if err := action(order, item); err != nil {
		h.log(r).Info("kitchen action rejected", "action", name, "order", order, "item", item, "error", err)
		writeError(w, statusFor(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) DeliverItem(w http.ResponseWriter, r *http.Request) {
	item, ok := intParam(w, r, "item")
	if !ok {
		return
	}
	if err := h.kitchen.ConfirmDelivery(item); err != nil {
		h.log(r).Info("delivery rejected", "item", item, "error", err)
		writeError(w, statusFor(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListMenu(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"menu": h.cache.Menu()})
}

func (h *Handler) ListSupplies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"supplies": h.cache.Supplies()})
}

func (h *Handler) ListRequests(w http.ResponseWriter, r *http.Request) {
	requests := h.requests.Requests()
	if requests == nil {
		requests = []supply.Request{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"requests": requests})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, floor.ErrOrderNotFound), errors.Is(err, floor.ErrItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, floor.ErrItemAlreadySeen), errors.Is(err, floor.ErrItemAlreadyReady),
		errors.Is(err, floor.ErrItemNotReady), errors.Is(err, floor.ErrOrderLocked):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func intParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	n, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return n, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
