package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"giftbox/internal/domain/models"
	"giftbox/internal/transport/http/dto"
	"giftbox/internal/transport/http/dto/request"
	"giftbox/internal/transport/http/dto/response"
)

var (
	ErrInvalidGiftNumber = errors.New("invalid gift number")
	ErrGiftNotFound      = errors.New("gift not found")
	ErrServer            = errors.New("server error")
)

// Client talks to the giftbox HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) ListGifts(ctx context.Context) ([]models.Gift, error) {
	const op = "client.ListGifts"

	var resp dto.GiftListResponse
	if err := c.do(ctx, http.MethodGet, "/api/gifts", nil, &resp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	gifts := make([]models.Gift, 0, len(resp.Gifts))
	for _, g := range resp.Gifts {
		gifts = append(gifts, models.Gift{
			Number:      g.GiftNumber,
			StoragePath: g.StoragePath,
			MediaType:   models.MediaType(g.MediaType),
			Caption:     g.Caption,
			OpenedAt:    g.OpenedAt,
			PublicURL:   g.PublicURL,
		})
	}

	return gifts, nil
}

func (c *Client) OpenGift(ctx context.Context, number int) (models.OpenedGift, error) {
	const op = "client.OpenGift"

	var resp dto.OpenGiftResponse
	if err := c.do(ctx, http.MethodPost, "/api/open", request.OpenGiftRequest{GiftNumber: &number}, &resp); err != nil {
		return models.OpenedGift{}, fmt.Errorf("%s: %w", op, err)
	}

	if resp.Gift.OpenedAt.IsZero() {
		return models.OpenedGift{}, fmt.Errorf("%s: %w: response without opened_at", op, ErrServer)
	}

	return models.OpenedGift{
		Number:        resp.Gift.GiftNumber,
		OpenedAt:      resp.Gift.OpenedAt.UTC(),
		AlreadyOpened: resp.Gift.AlreadyOpened,
	}, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 4<<20))
	if err != nil {
		return err
	}

	if res.StatusCode >= http.StatusBadRequest {
		return statusError(res.StatusCode, raw)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrServer, err)
	}

	return nil
}

func statusError(status int, raw []byte) error {
	var e response.ErrorResponse
	_ = json.Unmarshal(raw, &e)

	msg := e.Details
	if msg == "" {
		msg = e.Error
	}
	if msg == "" {
		msg = http.StatusText(status)
	}

	switch {
	case status == http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrInvalidGiftNumber, msg)
	case status == http.StatusNotFound && e.Error == response.CodeGiftNotFound:
		return fmt.Errorf("%w: %s", ErrGiftNotFound, msg)
	default:
		return fmt.Errorf("%w: %d %s", ErrServer, status, msg)
	}
}
