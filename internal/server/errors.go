package server

import (
	"errors"
	"net/http"

	"github.com/fivedigital/contentflow/internal/analysis"
	"github.com/fivedigital/contentflow/internal/engine"
	"github.com/fivedigital/contentflow/internal/fetch"
	"github.com/fivedigital/contentflow/internal/generation"
	"github.com/fivedigital/contentflow/internal/notification"
	"github.com/fivedigital/contentflow/internal/publication"
	"github.com/fivedigital/contentflow/internal/schemas"
)

// HTTPStatus returns the appropriate HTTP status code for an error.
// Rejected commands map to 4xx; failures of external capabilities map to
// 502 so clients can tell a retryable backend problem from a bad request.
func HTTPStatus(err error) int {
	var (
		validationErr *engine.ValidationError
		notFoundErr   *engine.NotFoundError
		transitionErr *engine.TransitionError
		staleErr      *engine.StaleResponseError
		schemaErr     *schemas.ValidationError
		fetchErr      *fetch.Error
		apiErr        *analysis.APICallError
		malformedErr  *analysis.MalformedAnalysisError
		genErr        *generation.GenerationError
		pubErr        *publication.PublicationError
		notifyErr     *notification.NotificationError
	)

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &transitionErr):
		return http.StatusConflict
	case errors.As(err, &staleErr):
		return http.StatusConflict
	case errors.As(err, &schemaErr), errors.As(err, &malformedErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &fetchErr),
		errors.As(err, &apiErr),
		errors.As(err, &genErr),
		errors.As(err, &pubErr),
		errors.As(err, &notifyErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
