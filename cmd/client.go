// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/cenkalti/backoff/v5"
	"golang.org/x/oauth2"

	httptypes "github.com/canonical/membership-gateway/internal/http/types"
)

const clientMaxTries = 4

type gatewayClient struct {
	endpoint string
	client   *http.Client
}

func newGatewayClient(ctx context.Context) *gatewayClient {
	endpoint := httpEndpoint
	if !strings.HasPrefix(endpoint, "http") {
		endpoint = "http://" + endpoint
	}

	client := http.DefaultClient
	if accessToken != "" {
		client = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"}))
	}

	return &gatewayClient{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		client:   client,
	}
}

// do sends the request and returns the raw response body, unavailable
// responses are retried honouring Retry-After.
func (c *gatewayClient) do(ctx context.Context, method, path string, in any) ([]byte, error) {
	var payload []byte
	if in != nil {
		var err error
		if payload, err = json.Marshal(in); err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
	}

	return backoff.Retry(
		ctx,
		func() ([]byte, error) {
			req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, bytes.NewReader(payload))
			if err != nil {
				return nil, backoff.Permanent(err)
			}
			if payload != nil {
				req.Header.Set("Content-Type", "application/json")
			}

			resp, err := c.client.Do(req)
			if err != nil {
				return nil, fmt.Errorf("request failed: %w", err)
			}
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			if err != nil {
				return nil, fmt.Errorf("failed to read response body: %w", err)
			}

			if resp.StatusCode < http.StatusBadRequest {
				return body, nil
			}

			apiErr := apiError(resp.StatusCode, body)
			if resp.StatusCode != http.StatusServiceUnavailable {
				return nil, backoff.Permanent(apiErr)
			}

			if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil {
				return nil, errors.Join(apiErr, backoff.RetryAfter(secs))
			}
			return nil, apiErr
		},
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(clientMaxTries),
	)
}

func apiError(status int, body []byte) error {
	var e httptypes.ErrorResponse
	if err := json.Unmarshal(body, &e); err != nil || e.Message == "" {
		return fmt.Errorf("api error (status %d): %s", status, string(body))
	}

	if e.Kind != "" {
		return fmt.Errorf("api error (status %d, %s): %s", status, e.Kind, e.Message)
	}
	return fmt.Errorf("api error (status %d): %s", status, e.Message)
}

// printJSON indents the response body, empty bodies print nothing.
func printJSON(out io.Writer, body []byte) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		_, err = out.Write(body)
		return err
	}
	buf.WriteByte('\n')

	_, err := buf.WriteTo(out)
	return err
}
