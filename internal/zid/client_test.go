package zid

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/products/" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("page") != "1" || r.URL.Query().Get("page_size") != "100" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		if r.Header.Get("Authorization") != "Bearer tok" {
			t.Errorf("unexpected auth header %q", r.Header.Get("Authorization"))
		}
		w.Write([]byte(`{"data": [{"id": 1, "title": "Cat Tree"}, {"id": 2, "title": "Scratcher"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok")
	products, err := c.FetchProducts(context.Background(), 1, 100)
	if err != nil {
		t.Fatalf("FetchProducts failed: %v", err)
	}
	if len(products) != 2 || products[0].ID != 1 || products[1].Title != "Scratcher" {
		t.Fatalf("unexpected products: %+v", products)
	}
}

func TestFetchOrders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/managers/store/orders" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{"data": [{"id": 9, "items": [{"product_id": 1}, {"product_id": 2}]}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok")
	orders, err := c.FetchOrders(context.Background(), 1, 100)
	if err != nil {
		t.Fatalf("FetchOrders failed: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("expected 1 order, got %d", len(orders))
	}
	ids := orders[0].ProductIDs()
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Fatalf("unexpected product ids: %v", ids)
	}
}

func TestMissingDataFieldIsEmptyNotError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "ok"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok")
	products, err := c.FetchProducts(context.Background(), 1, 100)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(products) != 0 {
		t.Fatalf("expected empty products, got %+v", products)
	}
}

func TestMalformedDataFieldIsEmptyNotError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": "surprise"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok")
	products, err := c.FetchProducts(context.Background(), 1, 100)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(products) != 0 {
		t.Fatalf("expected empty products, got %+v", products)
	}
}

func TestErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok")
	if _, err := c.FetchProducts(context.Background(), 1, 100); err == nil {
		t.Fatal("expected error for 401 response")
	}
}

func TestMissingToken(t *testing.T) {
	c := NewClient("http://unused.invalid", "")
	if _, err := c.FetchProducts(context.Background(), 1, 100); err == nil {
		t.Fatal("expected error when no token is configured")
	}
}
