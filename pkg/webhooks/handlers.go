// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	httptypes "github.com/canonical/membership-gateway/internal/http/types"
	"github.com/canonical/membership-gateway/internal/logging"
	"github.com/canonical/membership-gateway/pkg/access"
)

type API struct {
	service   ServiceInterface
	validator *validator.Validate
	logger    logging.LoggerInterface
}

func NewAPI(service ServiceInterface, logger logging.LoggerInterface) *API {
	return &API{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
		logger:    logger,
	}
}

func (a *API) RegisterEndpoints(r chi.Router) {
	r.Post("/webhooks/payments", a.payment)
}

func (a *API) payment(w http.ResponseWriter, r *http.Request) {
	var event PaymentEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		a.logger.Errorf("invalid payment event: %v", err)
		a.writeError(w, http.StatusBadRequest, string(access.KindInvalidArgument), "invalid request body")
		return
	}

	if err := a.validator.Struct(&event); err != nil {
		a.writeError(w, http.StatusBadRequest, string(access.KindInvalidArgument), err.Error())
		return
	}

	result, err := a.service.HandlePayment(r.Context(), &event)

	switch {
	case err == nil:
		if werr := httptypes.WriteJSON(w, http.StatusOK, result); werr != nil {
			a.logger.Errorf("failed to encode payment result: %v", werr)
		}
	case errors.Is(err, ErrPaymentInProgress):
		a.writeError(w, http.StatusConflict, "payment_in_progress", err.Error())
	case errors.Is(err, ErrPaymentMismatch):
		a.writeError(w, http.StatusConflict, "payment_mismatch", err.Error())
	default:
		status, kind, retryAfter := access.StatusOf(err)

		message := err.Error()
		if status == http.StatusInternalServerError {
			a.logger.Errorf("failed to handle payment %s: %v", event.PaymentID, err)
			message = http.StatusText(status)
		}

		if werr := httptypes.WriteError(w, status, string(kind), message, retryAfter); werr != nil {
			a.logger.Errorf("failed to encode error response: %v", werr)
		}
	}
}

func (a *API) writeError(w http.ResponseWriter, status int, kind, message string) {
	if err := httptypes.WriteError(w, status, kind, message, 0); err != nil {
		a.logger.Errorf("failed to encode error response: %v", err)
	}
}
