package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"go.uber.org/zap"
)

// roundTripperFunc makes it easy to mock an http.Client.
type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newTestClient(fn roundTripperFunc) *http.Client {
	return &http.Client{Transport: fn}
}

type staticToken string

func (s staticToken) Token() string { return string(s) }

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func TestGetCart_NetworkError(t *testing.T) {
	client := New("http://example.com", newTestClient(func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("network down")
	}), staticToken(""), zap.NewNop())

	_, err := client.GetCart(context.Background())
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.Status != 0 {
		t.Errorf("status = %d; want 0 for network errors", apiErr.Status)
	}
}

func TestGetCart_APIError(t *testing.T) {
	client := New("http://example.com", newTestClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusConflict, `{"message":"cart is locked","details":{"reason":"checkout"}}`), nil
	}), staticToken("tok"), zap.NewNop())

	_, err := client.GetCart(context.Background())
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.Status != http.StatusConflict {
		t.Errorf("status = %d; want %d", apiErr.Status, http.StatusConflict)
	}
	if apiErr.Message != "cart is locked" {
		t.Errorf("message = %q; want server message", apiErr.Message)
	}
	if len(apiErr.Details) == 0 {
		t.Error("expected details to be carried through")
	}
}

func TestGetCart_APIErrorWithoutMessage(t *testing.T) {
	client := New("http://example.com", newTestClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusInternalServerError, `boom`), nil
	}), staticToken(""), zap.NewNop())

	_, err := client.GetCart(context.Background())
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if !strings.Contains(apiErr.Message, "500") {
		t.Errorf("message = %q; want generic status message", apiErr.Message)
	}
}

func TestAuthorizationHeader(t *testing.T) {
	var gotAuth string
	transport := newTestClient(func(req *http.Request) (*http.Response, error) {
		gotAuth = req.Header.Get("Authorization")
		return jsonResponse(http.StatusOK, `{"items":[]}`), nil
	})

	client := New("http://example.com", transport, staticToken("secret"), zap.NewNop())
	if _, err := client.GetCart(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("Authorization = %q; want bearer token", gotAuth)
	}

	client = New("http://example.com", transport, staticToken(""), zap.NewNop())
	if _, err := client.GetCart(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q; want empty when no token", gotAuth)
	}
}

func TestAddCartItem_RequestShape(t *testing.T) {
	client := New("http://example.com", newTestClient(func(req *http.Request) (*http.Response, error) {
		if req.Method != http.MethodPost || req.URL.String() != "http://example.com/api/cart/" {
			t.Errorf("unexpected request: %s %s", req.Method, req.URL)
		}
		var payload struct {
			ArtworkID string `json:"artworkId"`
			Quantity  int    `json:"quantity"`
		}
		if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
			t.Fatalf("decode request failed: %v", err)
		}
		if payload.ArtworkID != "a1" || payload.Quantity != 2 {
			t.Errorf("unexpected payload: %+v", payload)
		}
		return jsonResponse(http.StatusOK, `{"items":[{"artwork_id":"a1","quantity":2,"artwork":{"id":"a1","title":"Dawn","price":20}}]}`), nil
	}), staticToken("tok"), zap.NewNop())

	items, err := client.AddCartItem(context.Background(), "a1", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != 2 || items[0].Artwork.Title != "Dawn" {
		t.Errorf("items = %+v", items)
	}
}

func TestCartEntryNormalization_FlatFields(t *testing.T) {
	body := `{"items":[{"id":"a7","title":"Nocturne","price":15.5,"artist":"R. Doe","quantity":1}]}`
	client := New("http://example.com", newTestClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, body), nil
	}), staticToken("tok"), zap.NewNop())

	items, err := client.GetCart(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("items = %+v; want one entry", items)
	}
	got := items[0]
	if got.ArtworkID != "a7" {
		t.Errorf("ArtworkID = %q; want flat id promoted", got.ArtworkID)
	}
	if got.Artwork.Title != "Nocturne" || got.Artwork.Price != 15.5 || got.Artwork.Artist != "R. Doe" {
		t.Errorf("artwork not built from flat fields: %+v", got.Artwork)
	}
}

func TestCartEntryNormalization_NestedArtwork(t *testing.T) {
	body := `{"items":[{"artwork_id":"a9","quantity":3,"artwork":{"id":"a9","title":"Dusk","price":40}}]}`
	client := New("http://example.com", newTestClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, body), nil
	}), staticToken("tok"), zap.NewNop())

	items, err := client.GetCart(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].Artwork.Price != 40 || items[0].ArtworkID != "a9" {
		t.Errorf("items = %+v", items)
	}
}

func TestUpdateOrderStatus_NoResponseBody(t *testing.T) {
	client := New("http://example.com", newTestClient(func(req *http.Request) (*http.Response, error) {
		if req.Method != http.MethodPut || req.URL.Path != "/api/orders/o1" {
			t.Errorf("unexpected request: %s %s", req.Method, req.URL)
		}
		return &http.Response{StatusCode: http.StatusNoContent, Body: io.NopCloser(strings.NewReader(""))}, nil
	}), staticToken("tok"), zap.NewNop())

	if err := client.UpdateOrderStatus(context.Background(), "o1", "shipped"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
