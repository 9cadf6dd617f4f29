package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/light-bringer/catalog-service/internal/app/catalog/queries/category_tree"
	"github.com/light-bringer/catalog-service/internal/app/catalog/queries/list_categories"
	"github.com/light-bringer/catalog-service/internal/app/catalog/usecases/create_category"
	"github.com/light-bringer/catalog-service/internal/app/catalog/usecases/delete_category"
	"github.com/light-bringer/catalog-service/internal/app/catalog/usecases/rename_category"
	"github.com/light-bringer/catalog-service/internal/app/catalog/usecases/reparent_category"
	"github.com/light-bringer/catalog-service/internal/app/catalog/usecases/set_category_status"
	"github.com/light-bringer/catalog-service/internal/pkg/datatable"
	"github.com/light-bringer/catalog-service/internal/pkg/logger"
)

// CategoryHandler serves the category admin endpoints.
type CategoryHandler struct {
	create   *create_category.Interactor
	rename   *rename_category.Interactor
	reparent *reparent_category.Interactor
	status   *set_category_status.Interactor
	delete   *delete_category.Interactor
	list     *list_categories.Query
	tree     *category_tree.Query
	log      *logger.Logger
}

// NewCategoryHandler creates a CategoryHandler.
func NewCategoryHandler(
	create *create_category.Interactor,
	rename *rename_category.Interactor,
	reparent *reparent_category.Interactor,
	status *set_category_status.Interactor,
	del *delete_category.Interactor,
	list *list_categories.Query,
	tree *category_tree.Query,
	log *logger.Logger,
) *CategoryHandler {
	return &CategoryHandler{
		create:   create,
		rename:   rename,
		reparent: reparent,
		status:   status,
		delete:   del,
		list:     list,
		tree:     tree,
		log:      log,
	}
}

// Routes mounts the category endpoints.
func (h *CategoryHandler) Routes(r chi.Router) {
	r.Post("/", h.handleCreate)
	r.Post("/list", h.handleList)
	r.Get("/tree", h.handleTree)
	r.Put("/{categoryID}", h.handleRename)
	r.Put("/{categoryID}/parent", h.handleReparent)
	r.Put("/{categoryID}/status", h.handleStatus)
	r.Delete("/{categoryID}", h.handleDelete)
}

func (h *CategoryHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name        string  `json:"name"`
		Slug        string  `json:"slug"`
		Description string  `json:"description"`
		ParentID    *string `json:"parentId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	id, err := h.create.Execute(r.Context(), &create_category.Request{
		Name:        body.Name,
		Slug:        body.Slug,
		Description: body.Description,
		ParentID:    body.ParentID,
		Actor:       actor(r),
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"categoryId": id})
}

func (h *CategoryHandler) handleList(w http.ResponseWriter, r *http.Request) {
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

func (h *CategoryHandler) handleTree(w http.ResponseWriter, r *http.Request) {
	tree, err := h.tree.Execute(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, tree)
}

func (h *CategoryHandler) handleRename(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name        string  `json:"name"`
		Slug        string  `json:"slug"`
		Description *string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	err := h.rename.Execute(r.Context(), &rename_category.Request{
		CategoryID:  chi.URLParam(r, "categoryID"),
		Name:        body.Name,
		Slug:        body.Slug,
		Description: body.Description,
		Actor:       actor(r),
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CategoryHandler) handleReparent(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ParentID *string `json:"parentId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	err := h.reparent.Execute(r.Context(), &reparent_category.Request{
		CategoryID:  chi.URLParam(r, "categoryID"),
		NewParentID: body.ParentID,
		Actor:       actor(r),
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CategoryHandler) handleStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Active bool `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	err := h.status.Execute(r.Context(), &set_category_status.Request{
		CategoryID: chi.URLParam(r, "categoryID"),
		Active:     body.Active,
		Actor:      actor(r),
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CategoryHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	err := h.delete.Execute(r.Context(), &delete_category.Request{
		CategoryID: chi.URLParam(r, "categoryID"),
		Actor:      actor(r),
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
