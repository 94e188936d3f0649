// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package access

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	httptypes "github.com/canonical/membership-gateway/internal/http/types"
	"github.com/canonical/membership-gateway/internal/logging"
	"github.com/canonical/membership-gateway/internal/tracing"
	"github.com/canonical/membership-gateway/internal/types"
)

type TrialRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

type ClaimAdminRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

type BindChannelRequest struct {
	AdminUserID string         `json:"admin_user_id" validate:"required"`
	ChatID      string         `json:"chat_id" validate:"required"`
	ChatType    types.ChatType `json:"chat_type" validate:"required"`
}

type RevokeRequest struct {
	AdminUserID string `json:"admin_user_id" validate:"required"`
}

type API struct {
	service   ServiceInterface
	validator *validator.Validate

	tracer tracing.TracingInterface
	logger logging.LoggerInterface
}

func NewAPI(service ServiceInterface, tracer tracing.TracingInterface, logger logging.LoggerInterface) *API {
	return &API{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
		tracer:    tracer,
		logger:    logger,
	}
}

func (a *API) RegisterEndpoints(r chi.Router) {
	r.Post("/api/v0/trials", a.requestTrial)
	r.Post("/api/v0/admin/claim", a.claimAdmin)
	r.Post("/api/v0/channel", a.bindChannel)
	r.Get("/api/v0/channel", a.getChannel)
	r.Get("/api/v0/members/{user_id}", a.getMembership)
	r.Get("/api/v0/members/{user_id}/history", a.listMemberships)
	r.Post("/api/v0/members/{user_id}/revoke", a.revoke)
}

func (a *API) requestTrial(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "access.API.requestTrial")
	defer span.End()

	var req TrialRequest
	if !a.decode(w, r, &req) {
		return
	}

	link, err := a.service.RequestTrial(ctx, req.UserID)
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, http.StatusCreated, link)
}

func (a *API) claimAdmin(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "access.API.claimAdmin")
	defer span.End()

	var req ClaimAdminRequest
	if !a.decode(w, r, &req) {
		return
	}

	if err := a.service.ClaimAdmin(ctx, req.UserID); err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, httptypes.Response{Status: http.StatusOK, Message: "admin claimed"})
}

func (a *API) bindChannel(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "access.API.bindChannel")
	defer span.End()

	var req BindChannelRequest
	if !a.decode(w, r, &req) {
		return
	}

	channelID, err := a.service.BindChannel(ctx, req.AdminUserID, types.ChatContext{ChatID: req.ChatID, Type: req.ChatType})
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, map[string]string{"channel_id": channelID})
}

func (a *API) getChannel(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "access.API.getChannel")
	defer span.End()

	binding, err := a.service.GetChannelBinding(ctx)
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, binding)
}

func (a *API) getMembership(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "access.API.getMembership")
	defer span.End()

	status, err := a.service.GetMembership(ctx, chi.URLParam(r, "user_id"))
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, status)
}

func (a *API) listMemberships(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "access.API.listMemberships")
	defer span.End()

	memberships, err := a.service.ListMemberships(ctx, chi.URLParam(r, "user_id"))
	if err != nil {
		a.writeError(w, err)
		return
	}

	if memberships == nil {
		memberships = []*types.Membership{}
	}

	a.writeJSON(w, http.StatusOK, memberships)
}

func (a *API) revoke(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "access.API.revoke")
	defer span.End()

	var req RevokeRequest
	if !a.decode(w, r, &req) {
		return
	}

	if err := a.service.AdminRevoke(ctx, req.AdminUserID, chi.URLParam(r, "user_id")); err != nil {
		a.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		a.logger.Debugf("invalid request body: %v", err)
		a.writeError(w, newError(KindInvalidArgument, "invalid request body"))
		return false
	}

	if err := a.validator.Struct(v); err != nil {
		a.writeError(w, &Error{Kind: KindInvalidArgument, Err: err})
		return false
	}

	return true
}

func (a *API) writeJSON(w http.ResponseWriter, status int, payload any) {
	if err := httptypes.WriteJSON(w, status, payload); err != nil {
		a.logger.Errorf("failed to encode response: %v", err)
	}
}

func (a *API) writeError(w http.ResponseWriter, err error) {
	status, kind, retryAfter := StatusOf(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		a.logger.Errorf("request failed: %v", err)
		message = http.StatusText(status)
	}

	if werr := httptypes.WriteError(w, status, string(kind), message, retryAfter); werr != nil {
		a.logger.Errorf("failed to encode error response: %v", werr)
	}
}

// StatusOf maps an error to the HTTP status, kind and retry hint sent to
// callers. Untyped errors are internal failures.
func StatusOf(err error) (int, ErrorKind, time.Duration) {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError, "", 0
	}

	switch e.Kind {
	case KindUnconfigured:
		return http.StatusPreconditionFailed, e.Kind, 0
	case KindTrialDisabled, KindNotAuthorized:
		return http.StatusForbidden, e.Kind, 0
	case KindTrialAlreadyUsed, KindAlreadyMember, KindAdminAlreadyClaimed, KindChannelAlreadyBound:
		return http.StatusConflict, e.Kind, 0
	case KindAmountMismatch:
		return http.StatusUnprocessableEntity, e.Kind, 0
	case KindWrongContext, KindInvalidArgument:
		return http.StatusBadRequest, e.Kind, 0
	case KindNotFound:
		return http.StatusNotFound, e.Kind, 0
	case KindUpstreamUnavailable:
		if e.RetryAfter == 0 {
			// the platform refused the request, retrying will not help
			return http.StatusBadGateway, e.Kind, 0
		}
		return http.StatusServiceUnavailable, e.Kind, e.RetryAfter
	default:
		return http.StatusInternalServerError, e.Kind, 0
	}
}
