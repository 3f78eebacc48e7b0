package customer

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vladislavdragonenkov/fulfillment/internal/domain"
)

func TestClient_GetCustomer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/customers/customer-1" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"customer-1","name":"Alice","email":"alice@example.com"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)

	got, err := client.GetCustomer("customer-1")
	if err != nil {
		t.Fatalf("get customer failed: %v", err)
	}
	if got.ID != "customer-1" || got.Name != "Alice" || got.Email != "alice@example.com" {
		t.Fatalf("unexpected customer: %+v", got)
	}
}

func TestClient_GetCustomerNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)

	_, err := client.GetCustomer("customer-404")
	if !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}
	if domain.IsCollaboratorFailure(err) {
		t.Fatal("not-found must not look like a collaborator failure")
	}
}

func TestClient_GetCustomerUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)

	_, err := client.GetCustomer("customer-1")
	if !domain.IsCollaboratorFailure(err) {
		t.Fatalf("expected collaborator failure, got %v", err)
	}
}

func TestClient_GetCustomerConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient(srv.URL, nil)

	_, err := client.GetCustomer("customer-1")
	if !domain.IsCollaboratorFailure(err) {
		t.Fatalf("expected collaborator failure, got %v", err)
	}
}

func TestMockService(t *testing.T) {
	mock := NewMockService()
	mock.Customers["customer-1"] = domain.Customer{ID: "customer-1", Name: "Alice"}

	if _, err := mock.GetCustomer("customer-1"); err != nil {
		t.Fatalf("expected configured customer, got %v", err)
	}
	if _, err := mock.GetCustomer("customer-2"); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}
	if len(mock.GetCalls) != 2 {
		t.Fatalf("expected 2 recorded calls, got %d", len(mock.GetCalls))
	}
}
