package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-service/internal/pkg/logger"
)

// errorBody is the JSON error envelope: {"error":{"code","message"}}. Codes
// are stable strings the admin UI switches on; messages are for humans.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var errorCodes = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrCategoryNotFound, http.StatusNotFound, "CATEGORY_NOT_FOUND"},
	{domain.ErrProductNotFound, http.StatusNotFound, "PRODUCT_NOT_FOUND"},
	{domain.ErrAttributeNotFound, http.StatusNotFound, "ATTRIBUTE_NOT_FOUND"},
	{domain.ErrVariantNotFound, http.StatusNotFound, "VARIANT_NOT_FOUND"},
	{domain.ErrDuplicateSlug, http.StatusConflict, "DUPLICATE_SLUG"},
	{domain.ErrDuplicateSKU, http.StatusConflict, "DUPLICATE_SKU"},
	{domain.ErrDuplicateName, http.StatusConflict, "DUPLICATE_NAME"},
	{domain.ErrDuplicateCombination, http.StatusConflict, "DUPLICATE_COMBINATION"},
	{domain.ErrCannotDeleteWithChildren, http.StatusConflict, "CATEGORY_HAS_CHILDREN"},
	{domain.ErrCannotDeleteWithProducts, http.StatusConflict, "CATEGORY_HAS_PRODUCTS"},
	{domain.ErrAttributeInUse, http.StatusConflict, "ATTRIBUTE_IN_USE"},
	{domain.ErrConcurrencyConflict, http.StatusConflict, "CONCURRENCY_CONFLICT"},
	{domain.ErrCircularReference, http.StatusUnprocessableEntity, "CIRCULAR_REFERENCE"},
	{domain.ErrNotVariantAttribute, http.StatusUnprocessableEntity, "NOT_VARIANT_ATTRIBUTE"},
	{domain.ErrInvalidConfiguration, http.StatusBadRequest, "INVALID_CONFIGURATION"},
	{domain.ErrInvalidAttributeValue, http.StatusBadRequest, "INVALID_ATTRIBUTE_VALUE"},
	{domain.ErrEmptyName, http.StatusBadRequest, "EMPTY_NAME"},
	{domain.ErrEmptySlug, http.StatusBadRequest, "EMPTY_SLUG"},
	{domain.ErrInvalidSlug, http.StatusBadRequest, "INVALID_SLUG"},
	{domain.ErrNegativeAmount, http.StatusBadRequest, "INVALID_PRICE"},
	{domain.ErrInvalidCurrency, http.StatusBadRequest, "INVALID_CURRENCY"},
	{domain.ErrCurrencyMismatch, http.StatusBadRequest, "CURRENCY_MISMATCH"},
	{domain.ErrNegativeStock, http.StatusBadRequest, "NEGATIVE_STOCK"},
}

// writeError maps domain sentinels to HTTP statuses and stable error codes.
// Anything unmapped is an infrastructure failure: logged in full, reported
// as OPERATION_FAILED without leaking internals.
func writeError(w http.ResponseWriter, log *logger.Logger, err error) {
	for _, m := range errorCodes {
		if errors.Is(err, m.err) {
			writeJSON(w, m.status, errorBody{Error: errorDetail{Code: m.code, Message: err.Error()}})
			return
		}
	}

	log.Error().Err(err).Msg("request failed")
	writeJSON(w, http.StatusInternalServerError, errorBody{Error: errorDetail{
		Code:    "OPERATION_FAILED",
		Message: "operation failed",
	}})
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorBody{Error: errorDetail{Code: "BAD_REQUEST", Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
