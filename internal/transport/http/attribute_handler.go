package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/light-bringer/catalog-service/internal/app/catalog/queries/list_attributes"
	"github.com/light-bringer/catalog-service/internal/app/catalog/usecases/create_attribute"
	"github.com/light-bringer/catalog-service/internal/app/catalog/usecases/delete_attribute"
	"github.com/light-bringer/catalog-service/internal/app/catalog/usecases/update_attribute"
	"github.com/light-bringer/catalog-service/internal/pkg/datatable"
	"github.com/light-bringer/catalog-service/internal/pkg/logger"
)

// AttributeHandler serves the attribute admin endpoints.
type AttributeHandler struct {
	create *create_attribute.Interactor
	update *update_attribute.Interactor
	delete *delete_attribute.Interactor
	list   *list_attributes.Query
	log    *logger.Logger
}

// NewAttributeHandler creates an AttributeHandler.
func NewAttributeHandler(
	create *create_attribute.Interactor,
	update *update_attribute.Interactor,
	del *delete_attribute.Interactor,
	list *list_attributes.Query,
	log *logger.Logger,
) *AttributeHandler {
	return &AttributeHandler{
		create: create,
		update: update,
		delete: del,
		list:   list,
		log:    log,
	}
}

// Routes mounts the attribute endpoints.
func (h *AttributeHandler) Routes(r chi.Router) {
	r.Post("/", h.handleCreate)
	r.Post("/list", h.handleList)
	r.Patch("/{attributeID}", h.handleUpdate)
	r.Delete("/{attributeID}", h.handleDelete)
}

func (h *AttributeHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name          string                 `json:"name"`
		DisplayName   string                 `json:"displayName"`
		Type          string                 `json:"type"`
		Configuration map[string]interface{} `json:"configuration"`
		Filterable    bool                   `json:"filterable"`
		Searchable    bool                   `json:"searchable"`
		IsVariant     bool                   `json:"isVariant"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	id, err := h.create.Execute(r.Context(), &create_attribute.Request{
		Name:          body.Name,
		DisplayName:   body.DisplayName,
		Type:          body.Type,
		Configuration: body.Configuration,
		Filterable:    body.Filterable,
		Searchable:    body.Searchable,
		IsVariant:     body.IsVariant,
		Actor:         actor(r),
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"attributeId": id})
}

func (h *AttributeHandler) handleList(w http.ResponseWriter, r *http.Request) {
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

func (h *AttributeHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		DisplayName   *string                `json:"displayName"`
		Filterable    *bool                  `json:"filterable"`
		Searchable    *bool                  `json:"searchable"`
		IsVariant     *bool                  `json:"isVariant"`
		Configuration map[string]interface{} `json:"configuration"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	err := h.update.Execute(r.Context(), &update_attribute.Request{
		AttributeID:   chi.URLParam(r, "attributeID"),
		DisplayName:   body.DisplayName,
		Filterable:    body.Filterable,
		Searchable:    body.Searchable,
		IsVariant:     body.IsVariant,
		Configuration: body.Configuration,
		Actor:         actor(r),
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AttributeHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	err := h.delete.Execute(r.Context(), &delete_attribute.Request{
		AttributeID: chi.URLParam(r, "attributeID"),
		Actor:       actor(r),
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
