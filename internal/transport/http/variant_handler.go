package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/light-bringer/catalog-service/internal/app/catalog/usecases/add_variant_attribute"
	"github.com/light-bringer/catalog-service/internal/app/catalog/usecases/set_variant_status"
	"github.com/light-bringer/catalog-service/internal/app/catalog/usecases/set_variant_stock"
	"github.com/light-bringer/catalog-service/internal/app/catalog/usecases/update_variant_price"
	"github.com/light-bringer/catalog-service/internal/pkg/logger"
)

// VariantHandler serves the variant admin endpoints. Variant creation lives
// under the product routes; everything addressed by variant id lives here.
type VariantHandler struct {
	addAttr *add_variant_attribute.Interactor
	stock   *set_variant_stock.Interactor
	price   *update_variant_price.Interactor
	status  *set_variant_status.Interactor
	log     *logger.Logger
}

// NewVariantHandler creates a VariantHandler.
func NewVariantHandler(
	addAttr *add_variant_attribute.Interactor,
	stock *set_variant_stock.Interactor,
	price *update_variant_price.Interactor,
	status *set_variant_status.Interactor,
	log *logger.Logger,
) *VariantHandler {
	return &VariantHandler{
		addAttr: addAttr,
		stock:   stock,
		price:   price,
		status:  status,
		log:     log,
	}
}

// Routes mounts the variant endpoints.
func (h *VariantHandler) Routes(r chi.Router) {
	r.Put("/{variantID}/attributes/{attributeID}", h.handleAddAttribute)
	r.Put("/{variantID}/stock", h.handleStock)
	r.Put("/{variantID}/price", h.handlePrice)
	r.Put("/{variantID}/status", h.handleStatus)
}

func (h *VariantHandler) handleAddAttribute(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Value interface{} `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	err := h.addAttr.Execute(r.Context(), &add_variant_attribute.Request{
		VariantID:   chi.URLParam(r, "variantID"),
		AttributeID: chi.URLParam(r, "attributeID"),
		Value:       body.Value,
		Actor:       actor(r),
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *VariantHandler) handleStock(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Quantity int64 `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	err := h.stock.Execute(r.Context(), &set_variant_stock.Request{
		VariantID: chi.URLParam(r, "variantID"),
		Quantity:  body.Quantity,
		Actor:     actor(r),
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *VariantHandler) handlePrice(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Price    decimal.Decimal `json:"price"`
		Currency string          `json:"currency"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	err := h.price.Execute(r.Context(), &update_variant_price.Request{
		VariantID: chi.URLParam(r, "variantID"),
		Price:     body.Price,
		Currency:  body.Currency,
		Actor:     actor(r),
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *VariantHandler) handleStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Active bool `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	err := h.status.Execute(r.Context(), &set_variant_status.Request{
		VariantID: chi.URLParam(r, "variantID"),
		Active:    body.Active,
		Actor:     actor(r),
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
