// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/canonical/membership-gateway/internal/logging"
	"github.com/canonical/membership-gateway/internal/monitoring"
	"github.com/canonical/membership-gateway/internal/tracing"
	"github.com/canonical/membership-gateway/internal/types"
)

const (
	defaultMaxTries        = 3
	defaultInitialInterval = 200 * time.Millisecond
	defaultMaxInterval     = 2 * time.Second
)

var _ ClientInterface = (*Client)(nil)

type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result"`
	ErrorCode   int             `json:"error_code"`
	Description string          `json:"description"`
	Parameters  *struct {
		RetryAfter int `json:"retry_after"`
	} `json:"parameters"`
}

type chatInviteLink struct {
	InviteLink  string `json:"invite_link"`
	Name        string `json:"name"`
	ExpireDate  int64  `json:"expire_date"`
	MemberLimit int    `json:"member_limit"`
}

// Client talks to the Telegram Bot API.
type Client struct {
	baseURL string
	http    *http.Client

	maxTries        uint
	initialInterval time.Duration

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewClient(apiURL, token string, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Client {
	c := new(Client)

	c.baseURL = fmt.Sprintf("%s/bot%s", strings.TrimRight(apiURL, "/"), token)
	c.http = &http.Client{
		Transport: otelhttp.NewTransport(
			http.DefaultTransport,
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				// the path carries the bot token
				return "telegram " + r.Method
			}),
		),
	}
	c.maxTries = defaultMaxTries
	c.initialInterval = defaultInitialInterval

	c.tracer = tracer
	c.monitor = monitor
	c.logger = logger

	return c
}

func (c *Client) IssueInviteLink(ctx context.Context, channelID, name string, maxUses int, expiresAt time.Time) (*types.InviteLink, error) {
	ctx, span := c.tracer.Start(ctx, "telegram.Client.IssueInviteLink")
	defer span.End()

	payload := map[string]any{
		"chat_id":      channelID,
		"member_limit": maxUses,
		"expire_date":  expiresAt.Unix(),
	}
	if name != "" {
		payload["name"] = name
	}

	var link chatInviteLink
	if err := c.call(ctx, "createChatInviteLink", payload, &link); err != nil {
		return nil, err
	}

	return &types.InviteLink{
		URL:       link.InviteLink,
		ExpiresAt: time.Unix(link.ExpireDate, 0).UTC(),
		MaxUses:   link.MemberLimit,
	}, nil
}

func (c *Client) RevokeInviteLink(ctx context.Context, channelID, link string) error {
	ctx, span := c.tracer.Start(ctx, "telegram.Client.RevokeInviteLink")
	defer span.End()

	return c.call(
		ctx,
		"revokeChatInviteLink",
		map[string]any{"chat_id": channelID, "invite_link": link},
		nil,
	)
}

// RemoveMember kicks the user: a ban followed by an unban, so the user can
// come back later with a new invite link.
func (c *Client) RemoveMember(ctx context.Context, channelID, userID string) error {
	ctx, span := c.tracer.Start(ctx, "telegram.Client.RemoveMember")
	defer span.End()

	id, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid telegram user id %q: %w", userID, ErrPermanent)
	}

	if err := c.call(ctx, "banChatMember", map[string]any{"chat_id": channelID, "user_id": id}, nil); err != nil {
		return err
	}

	return c.call(
		ctx,
		"unbanChatMember",
		map[string]any{"chat_id": channelID, "user_id": id, "only_if_banned": true},
		nil,
	)
}

// call posts a Bot API method, retrying transient failures until the
// context expires or the attempts run out.
func (c *Client) call(ctx context.Context, method string, payload any, result any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", method, err)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.initialInterval
	b.MaxInterval = defaultMaxInterval

	res, err := backoff.Retry(
		ctx,
		func() (json.RawMessage, error) {
			return c.do(ctx, method, body)
		},
		backoff.WithBackOff(b),
		backoff.WithMaxTries(c.maxTries),
		backoff.WithNotify(func(err error, d time.Duration) {
			c.logger.Warnf("telegram %s failed, retrying in %s: %v", method, d, err)
		}),
	)

	labels := map[string]string{"component": "telegram"}
	var apiErr *APIError
	switch {
	case err == nil:
		c.monitor.SetDependencyAvailability(labels, 1)
	case errors.As(err, &apiErr) && apiErr.Permanent():
		// the API answered, only this request is wrong
		c.monitor.SetDependencyAvailability(labels, 1)
		return err
	default:
		c.monitor.SetDependencyAvailability(labels, 0)
		return err
	}

	if result == nil {
		return nil
	}

	if err := json.Unmarshal(res, result); err != nil {
		return fmt.Errorf("failed to decode %s result: %w", method, err)
	}

	return nil
}

func (c *Client) do(ctx context.Context, method string, body []byte) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+method, bytes.NewReader(body))
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to build %s request: %w", method, err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		// the url embeds the token, keep it out of the error
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, fmt.Errorf("telegram %s request failed: %w", method, err)
	}
	defer resp.Body.Close()

	var r apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		apiErr := &APIError{Method: method, Code: resp.StatusCode, Description: "unreadable response"}
		if apiErr.Permanent() {
			return nil, backoff.Permanent(apiErr)
		}
		return nil, apiErr
	}

	if r.OK {
		return r.Result, nil
	}

	code := r.ErrorCode
	if code == 0 {
		code = resp.StatusCode
	}

	apiErr := &APIError{Method: method, Code: code, Description: r.Description}
	if r.Parameters != nil && r.Parameters.RetryAfter > 0 {
		apiErr.retryAfter = time.Duration(r.Parameters.RetryAfter) * time.Second
	}

	switch {
	case apiErr.Permanent():
		return nil, backoff.Permanent(apiErr)
	case apiErr.retryAfter > 0:
		return nil, errors.Join(apiErr, backoff.RetryAfter(r.Parameters.RetryAfter))
	default:
		return nil, apiErr
	}
}
