package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rabuste-coffee/rabuste-backend/api/middleware"
	cartsvc "github.com/rabuste-coffee/rabuste-backend/internal/cart"
	"github.com/rabuste-coffee/rabuste-backend/pkg/db/models"
	"github.com/rabuste-coffee/rabuste-backend/pkg/enums"
	pkgerrors "github.com/rabuste-coffee/rabuste-backend/pkg/errors"
)

type stubCartService struct {
	items        []models.CartItem
	err          error
	lastAddInput cartsvc.AddItemInput
}

func (s *stubCartService) AddItem(ctx context.Context, userID uuid.UUID, input cartsvc.AddItemInput) ([]models.CartItem, error) {
	s.lastAddInput = input
	return s.items, s.err
}

func (s *stubCartService) GetCart(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	return s.items, s.err
}

func (s *stubCartService) UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) ([]models.CartItem, error) {
	return s.items, s.err
}

func (s *stubCartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error {
	return s.err
}

func (s *stubCartService) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.err
}

func authedRequest(method, target string, body string, userID uuid.UUID) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
}

func TestCartFetchSuccess(t *testing.T) {
	userID := uuid.New()
	items := []models.CartItem{{
		ID:       uuid.New(),
		UserID:   userID,
		ItemID:   uuid.New(),
		Kind:     enums.ItemKindMenu,
		Name:     "Flat White",
		Price:    decimal.NewFromInt(110),
		Quantity: 2,
	}}
	handler := CartFetch(&stubCartService{items: items}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodGet, "/api/v1/cart", "", userID))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data []models.CartItem `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 1 || envelope.Data[0].Name != "Flat White" {
		t.Fatalf("unexpected cart payload: %+v", envelope.Data)
	}
}

func TestCartFetchWithoutUserContext(t *testing.T) {
	handler := CartFetch(&stubCartService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestCartAddItemAlreadyInCart(t *testing.T) {
	svc := &stubCartService{err: pkgerrors.New(pkgerrors.CodeAlreadyInCart, "artwork is already in the cart")}
	handler := CartAddItem(svc, nil)

	body := `{"item_id":"` + uuid.NewString() + `"}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/v1/cart", body, uuid.New()))

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", resp.Code)
	}

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Code != string(pkgerrors.CodeAlreadyInCart) {
		t.Fatalf("unexpected error code %q", envelope.Error.Code)
	}
}

func TestCartAddItemDefaultsQuantity(t *testing.T) {
	svc := &stubCartService{}
	handler := CartAddItem(svc, nil)

	body := `{"item_id":"` + uuid.NewString() + `","quantity":3}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/v1/cart", body, uuid.New()))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastAddInput.Quantity != 3 {
		t.Fatalf("expected quantity 3 passed through, got %d", svc.lastAddInput.Quantity)
	}
}

func TestCartAddItemRejectsMalformedBody(t *testing.T) {
	handler := CartAddItem(&stubCartService{}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/v1/cart", `{"item_id":"not-a-uuid"}`, uuid.New()))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
