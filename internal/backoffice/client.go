package backoffice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tsaratour/service-booking/internal/config"
	"github.com/tsaratour/service-booking/internal/platform/auth"
	"github.com/tsaratour/service-booking/internal/platform/domain"
	"go.uber.org/zap"
)

// Client talks to the back-office REST backend.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// NewClient creates a backend client from config.
func NewClient(cfg config.BackofficeConfig, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		logger:     logger,
	}
}

// envelope is the uniform response wrapper of the backend.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Detail  string          `json:"detail"`
}

func (e envelope) message() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Detail
}

// doJSON sends body as JSON to path and decodes the envelope data into out.
// The caller's access token is forwarded from ctx.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token := auth.AccessTokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("backend request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return domain.NewUpstreamError("serveur injoignable", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.NewUpstreamError("réponse illisible du serveur", err)
	}

	env := decodeEnvelope(raw)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || (env.Success != nil && !*env.Success) {
		c.logger.Info("backend rejected request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("error", env.message()),
		)
		return statusError(resp.StatusCode, env.message())
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return domain.NewUpstreamError("réponse inattendue du serveur", fmt.Errorf("decode %s %s: %w", method, path, err))
	}
	return nil
}

// decodeEnvelope accepts both the {success,data,error} wrapper and a bare payload.
func decodeEnvelope(raw []byte) envelope {
	var env envelope
	if len(bytes.TrimSpace(raw)) == 0 {
		return env
	}
	if err := json.Unmarshal(raw, &env); err != nil || (env.Success == nil && env.message() == "") {
		return envelope{Data: raw, Success: env.Success}
	}
	return env
}

// statusError maps a backend status to a domain error kind, keeping the backend message verbatim.
func statusError(status int, message string) error {
	if message == "" {
		message = fmt.Sprintf("erreur du serveur (%d)", status)
	}
	kind := domain.KindUpstream
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		kind = domain.KindValidation
	case http.StatusUnauthorized:
		kind = domain.KindUnauthorized
	case http.StatusForbidden:
		kind = domain.KindForbidden
	case http.StatusNotFound:
		kind = domain.KindNotFound
	case http.StatusConflict:
		kind = domain.KindConflict
	case http.StatusOK, http.StatusCreated:
		kind = domain.KindValidation
	}
	return &domain.DomainError{Kind: kind, Message: message}
}

// list decodes a collection that is either a bare array or a {"results": [...]} page.
func list[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	var raw json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}
	out := []T{}
	if len(raw) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err == nil {
		return out, nil
	}
	var page struct {
		Results []T `json:"results"`
	}
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, domain.NewUpstreamError("réponse inattendue du serveur", fmt.Errorf("decode list %s: %w", path, err))
	}
	if page.Results != nil {
		out = page.Results
	}
	return out, nil
}

func get[T any](ctx context.Context, c *Client, path string) (*T, error) {
	var out T
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func resourcePath(collection string, id int64) string {
	return fmt.Sprintf("%s%d/", collection, id)
}
