package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_ListGifts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/gifts", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"gifts":[
			{"gift_number":1,"storage_path":"01.jpg","media_type":"image","caption":null,"opened_at":null,"public_url":"http://m/01.jpg"},
			{"gift_number":2,"storage_path":"02.mp4","media_type":"video","caption":"hi","opened_at":"2026-02-14T09:30:00.123456Z","public_url":"http://m/02.mp4"}
		]}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/", time.Second)
	gifts, err := c.ListGifts(context.Background())
	require.NoError(t, err)
	require.Len(t, gifts, 2)

	assert.Nil(t, gifts[0].OpenedAt)
	assert.Equal(t, "http://m/01.jpg", gifts[0].PublicURL)
	require.NotNil(t, gifts[1].OpenedAt)
	assert.Equal(t, 123456000, gifts[1].OpenedAt.Nanosecond())
	assert.Equal(t, "hi", *gifts[1].Caption)
}

func TestClient_OpenGift(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]int
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		w.Header().Set("Content-Type", "application/json")
		switch body["gift_number"] {
		case 7:
			_, _ = w.Write([]byte(`{"gift":{"gift_number":7,"opened_at":"2026-02-14T09:30:00Z","already_opened":true}}`))
		case 54:
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"status":"error","error":"invalid_gift_number","details":"invalid gift_number 54: must be between 1 and 53"}`))
		case 40:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"status":"error","error":"gift_not_found"}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"status":"error","error":"store_unavailable"}`))
		}
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	ctx := context.Background()

	opened, err := c.OpenGift(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, opened.Number)
	assert.True(t, opened.AlreadyOpened)
	assert.Equal(t, time.Date(2026, 2, 14, 9, 30, 0, 0, time.UTC), opened.OpenedAt)

	_, err = c.OpenGift(ctx, 54)
	assert.ErrorIs(t, err, ErrInvalidGiftNumber)
	assert.Contains(t, err.Error(), "between 1 and 53")

	_, err = c.OpenGift(ctx, 40)
	assert.ErrorIs(t, err, ErrGiftNotFound)

	_, err = c.OpenGift(ctx, 3)
	assert.ErrorIs(t, err, ErrServer)
}

func TestClient_NotFoundWithoutEnvelopeIsServerError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := New(srv.URL, time.Second).ListGifts(context.Background())
	assert.ErrorIs(t, err, ErrServer)
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	_, err := New(srv.URL, 20*time.Millisecond).OpenGift(context.Background(), 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrGiftNotFound)
}
