package transport

import (
	"net/http"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	accountmodel "storefront/pkg/account/domain/model"
	analysismodel "storefront/pkg/analysis/domain/model"
	cartmodel "storefront/pkg/cart/domain/model"
	catalogmodel "storefront/pkg/catalog/domain/model"
	trackingmodel "storefront/pkg/tracking/domain/model"
	"storefront/pkg/validation"
)

const (
	variantDefault     = "default"
	variantDestructive = "destructive"

	unexpectedErrorMessage = "An unexpected error occurred"
)

type errorResponse struct {
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Variant     string                 `json:"variant"`
	FieldErrors validation.FieldErrors `json:"fieldErrors,omitempty"`
}

// requestError marks input the handler could not decode.
type requestError struct {
	err error
}

func (e requestError) Error() string { return e.err.Error() }

func (e requestError) Unwrap() error { return e.err }

func badRequest(err error) error {
	return requestError{err: err}
}

var (
	notFoundErrors = []error{
		catalogmodel.ErrProductNotFound,
		catalogmodel.ErrCategoryNotFound,
		cartmodel.ErrCartNotFound,
		cartmodel.ErrCartItemNotFound,
		accountmodel.ErrAddressNotFound,
		accountmodel.ErrOrderNotFound,
		accountmodel.ErrProfileNotFound,
		accountmodel.ErrUserNotFound,
	}
	userErrors = []error{
		cartmodel.ErrInvalidQuantity,
		cartmodel.ErrPromoCodeMissing,
		cartmodel.ErrPromoCodeInvalid,
		cartmodel.ErrPromoAlreadyApplied,
		trackingmodel.ErrInvalidOrderNumber,
		accountmodel.ErrUnsupportedFileType,
		accountmodel.ErrFileTooLarge,
		analysismodel.ErrEmptyImage,
		analysismodel.ErrUnsupportedImage,
	}
	conflictErrors = []error{
		accountmodel.ErrEmailTaken,
		cartmodel.ErrOptimisticLock,
	}
)

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := errorToResponse(err)
	if status >= http.StatusInternalServerError {
		log.WithError(err).WithFields(log.Fields{
			"method": r.Method,
			"url":    r.URL,
		}).Error("request failed")
	}
	writeJSON(w, status, body)
}

func errorToResponse(err error) (int, errorResponse) {
	var validationErr *validation.Error
	if errors.As(err, &validationErr) {
		return http.StatusUnprocessableEntity, errorResponse{
			Title:       "Please check the form",
			Description: "Some fields are missing or invalid",
			Variant:     variantDestructive,
			FieldErrors: validationErr.Fields,
		}
	}

	var reqErr requestError
	if errors.As(err, &reqErr) {
		return http.StatusBadRequest, errorResponse{
			Title:       "Invalid request",
			Description: errors.Cause(reqErr.err).Error(),
			Variant:     variantDestructive,
		}
	}

	switch {
	case errors.Is(err, accountmodel.ErrUnauthenticated):
		return http.StatusUnauthorized, errorResponse{
			Title:       "Authentication required",
			Description: "Please sign in to continue",
			Variant:     variantDestructive,
		}
	case errors.Is(err, accountmodel.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{
			Title:       "Sign in failed",
			Description: accountmodel.ErrInvalidCredentials.Error(),
			Variant:     variantDestructive,
		}
	case errors.Is(err, accountmodel.ErrNoStorageBuckets):
		return http.StatusServiceUnavailable, errorResponse{
			Title:       "Upload failed",
			Description: accountmodel.ErrNoStorageBuckets.Error(),
			Variant:     variantDestructive,
		}
	}
	if sentinel, ok := matchAny(err, notFoundErrors); ok {
		return http.StatusNotFound, errorResponse{Title: "Not found", Description: sentinel.Error(), Variant: variantDestructive}
	}
	if sentinel, ok := matchAny(err, conflictErrors); ok {
		return http.StatusConflict, errorResponse{Title: "Conflict", Description: sentinel.Error(), Variant: variantDestructive}
	}
	if sentinel, ok := matchAny(err, userErrors); ok {
		return http.StatusBadRequest, errorResponse{Title: "Request failed", Description: sentinel.Error(), Variant: variantDestructive}
	}

	return http.StatusInternalServerError, errorResponse{
		Title:       "Error",
		Description: unexpectedErrorMessage,
		Variant:     variantDestructive,
	}
}

func matchAny(err error, sentinels []error) (error, bool) {
	for _, sentinel := range sentinels {
		if errors.Is(err, sentinel) {
			return sentinel, true
		}
	}
	return nil, false
}
