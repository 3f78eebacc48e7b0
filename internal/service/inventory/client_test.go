package inventory

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vladislavdragonenkov/fulfillment/internal/domain"
)

func TestClient_ReduceStock(t *testing.T) {
	var gotPath, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		_, _ = w.Write([]byte("Stock reduced"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)

	if err := client.ReduceStock("product-10", 2); err != nil {
		t.Fatalf("reduce stock failed: %v", err)
	}
	if gotMethod != http.MethodPut {
		t.Fatalf("expected PUT, got %s", gotMethod)
	}
	if gotPath != "/products/product-10/reduceStock/2" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
}

func TestClient_IncreaseStock(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte("Stock increased"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)

	if err := client.IncreaseStock("product-5", 3); err != nil {
		t.Fatalf("increase stock failed: %v", err)
	}
	if gotPath != "/products/product-5/increaseStock/3" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
}

func TestClient_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)

	if err := client.ReduceStock("product-10", 2); !domain.IsCollaboratorFailure(err) {
		t.Fatalf("expected collaborator failure, got %v", err)
	}
}

func TestMockService_RecordsCalls(t *testing.T) {
	mock := NewMockService()

	if err := mock.ReduceStock("product-10", 2); err != nil {
		t.Fatalf("reduce failed: %v", err)
	}
	if err := mock.IncreaseStock("product-10", 2); err != nil {
		t.Fatalf("increase failed: %v", err)
	}

	if len(mock.ReduceCalls) != 1 || mock.ReduceCalls[0] != (StockCall{ProductID: "product-10", Qty: 2}) {
		t.Fatalf("unexpected reduce calls: %+v", mock.ReduceCalls)
	}
	if len(mock.IncreaseCalls) != 1 {
		t.Fatalf("unexpected increase calls: %+v", mock.IncreaseCalls)
	}
}

func TestMockService_PerProductFailure(t *testing.T) {
	mock := NewMockService()
	mock.FailProducts["product-11"] = &domain.CollaboratorError{
		Service: "inventory",
		Op:      "reduce stock",
		Err:     http.ErrHandlerTimeout,
	}

	if err := mock.ReduceStock("product-10", 1); err != nil {
		t.Fatalf("expected product-10 to succeed, got %v", err)
	}
	if err := mock.ReduceStock("product-11", 1); err == nil {
		t.Fatal("expected product-11 to fail")
	}
}
