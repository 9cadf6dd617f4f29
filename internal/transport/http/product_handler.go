package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/light-bringer/catalog-service/internal/app/catalog/queries/get_product"
	"github.com/light-bringer/catalog-service/internal/app/catalog/queries/list_products"
	"github.com/light-bringer/catalog-service/internal/app/catalog/usecases/assign_product_attribute"
	"github.com/light-bringer/catalog-service/internal/app/catalog/usecases/assign_product_category"
	"github.com/light-bringer/catalog-service/internal/app/catalog/usecases/create_product"
	"github.com/light-bringer/catalog-service/internal/app/catalog/usecases/create_variant"
	"github.com/light-bringer/catalog-service/internal/app/catalog/usecases/set_product_status"
	"github.com/light-bringer/catalog-service/internal/app/catalog/usecases/update_product"
	"github.com/light-bringer/catalog-service/internal/pkg/datatable"
	"github.com/light-bringer/catalog-service/internal/pkg/logger"
)

// ProductHandler serves the product admin endpoints.
type ProductHandler struct {
	create        *create_product.Interactor
	update        *update_product.Interactor
	assignAttr    *assign_product_attribute.Interactor
	assignCat     *assign_product_category.Interactor
	status        *set_product_status.Interactor
	createVariant *create_variant.Interactor
	list          *list_products.Query
	get           *get_product.Query
	log           *logger.Logger
}

// NewProductHandler creates a ProductHandler.
func NewProductHandler(
	create *create_product.Interactor,
	update *update_product.Interactor,
	assignAttr *assign_product_attribute.Interactor,
	assignCat *assign_product_category.Interactor,
	status *set_product_status.Interactor,
	createVariant *create_variant.Interactor,
	list *list_products.Query,
	get *get_product.Query,
	log *logger.Logger,
) *ProductHandler {
	return &ProductHandler{
		create:        create,
		update:        update,
		assignAttr:    assignAttr,
		assignCat:     assignCat,
		status:        status,
		createVariant: createVariant,
		list:          list,
		get:           get,
		log:           log,
	}
}

// Routes mounts the product endpoints.
func (h *ProductHandler) Routes(r chi.Router) {
	r.Post("/", h.handleCreate)
	r.Post("/list", h.handleList)
	r.Get("/{productID}", h.handleGet)
	r.Put("/{productID}", h.handleUpdate)
	r.Put("/{productID}/status", h.handleStatus)
	r.Put("/{productID}/categories", h.handleAssignCategories)
	r.Put("/{productID}/attributes/{attributeID}", h.handleAssignAttribute)
	r.Post("/{productID}/variants", h.handleCreateVariant)
}

func (h *ProductHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name        string          `json:"name"`
		Slug        string          `json:"slug"`
		Description string          `json:"description"`
		SKU         *string         `json:"sku"`
		BasePrice   decimal.Decimal `json:"basePrice"`
		Currency    string          `json:"currency"`
		Inactive    bool            `json:"inactive"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	id, err := h.create.Execute(r.Context(), &create_product.Request{
		Name:        body.Name,
		Slug:        body.Slug,
		Description: body.Description,
		SKU:         body.SKU,
		BasePrice:   body.BasePrice,
		Currency:    body.Currency,
		Inactive:    body.Inactive,
		Actor:       actor(r),
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"productId": id})
}

func (h *ProductHandler) handleList(w http.ResponseWriter, r *http.Request) {
	var req datatable.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	resp, err := h.list.Execute(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ProductHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	detail, err := h.get.Execute(r.Context(), &get_product.Request{
		ProductID: chi.URLParam(r, "productID"),
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *ProductHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name        string          `json:"name"`
		Slug        string          `json:"slug"`
		Description string          `json:"description"`
		SKU         *string         `json:"sku"`
		BasePrice   decimal.Decimal `json:"basePrice"`
		Currency    string          `json:"currency"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	err := h.update.Execute(r.Context(), &update_product.Request{
		ProductID:   chi.URLParam(r, "productID"),
		Name:        body.Name,
		Slug:        body.Slug,
		Description: body.Description,
		SKU:         body.SKU,
		BasePrice:   body.BasePrice,
		Currency:    body.Currency,
		Actor:       actor(r),
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProductHandler) handleStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Active bool `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	err := h.status.Execute(r.Context(), &set_product_status.Request{
		ProductID: chi.URLParam(r, "productID"),
		Active:    body.Active,
		Actor:     actor(r),
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProductHandler) handleAssignCategories(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CategoryIDs []string `json:"categoryIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	err := h.assignCat.Execute(r.Context(), &assign_product_category.Request{
		ProductID:   chi.URLParam(r, "productID"),
		CategoryIDs: body.CategoryIDs,
		Actor:       actor(r),
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProductHandler) handleAssignAttribute(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Value interface{} `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	err := h.assignAttr.Execute(r.Context(), &assign_product_attribute.Request{
		ProductID:   chi.URLParam(r, "productID"),
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

func (h *ProductHandler) handleCreateVariant(w http.ResponseWriter, r *http.Request) {
	var body struct {
		SKU           string           `json:"sku"`
		Price         *decimal.Decimal `json:"price"`
		Currency      string           `json:"currency"`
		StockQuantity int64            `json:"stockQuantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	id, err := h.createVariant.Execute(r.Context(), &create_variant.Request{
		ProductID:     chi.URLParam(r, "productID"),
		SKU:           body.SKU,
		Price:         body.Price,
		Currency:      body.Currency,
		StockQuantity: body.StockQuantity,
		Actor:         actor(r),
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"variantId": id})
}
