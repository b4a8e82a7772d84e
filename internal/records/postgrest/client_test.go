package postgrest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"sumstra/internal/core"
	"sumstra/internal/records"
)

func testTxn(id string) core.Transaction {
	return core.Transaction{
		ID:          id,
		Description: "Groceries",
		Amount:      decimal.RequireFromString("78.50"),
		Category:    core.Need,
		Date:        time.Date(2025, 7, 24, 0, 0, 0, 0, time.UTC),
		UserID:      "user-1",
	}
}

func TestClient_GetAll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		if got := r.URL.Query().Get("user_id"); got != "eq.user-1" {
			t.Errorf("user_id param = %q, want eq.user-1", got)
		}
		if got := r.URL.Query().Get("order"); got != "date.desc" {
			t.Errorf("order param = %q, want date.desc", got)
		}
		if got := r.Header.Get("apikey"); got != "test-key" {
			t.Errorf("apikey header = %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization header = %q", got)
		}
		json.NewEncoder(w).Encode([]core.Transaction{testTxn("t1"), testTxn("t2")})
	}))
	defer srv.Close()

	client := New(srv.URL, "test-key", WithAccessToken("test-token"))
	rows, err := client.GetAll(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GetAll() = %v", err)
	}
	if len(rows) != 2 || rows[0].ID != "t1" {
		t.Errorf("GetAll() = %v, want 2 rows starting with t1", rows)
	}
	if !rows[0].Amount.Equal(decimal.RequireFromString("78.50")) {
		t.Errorf("Amount = %s, want 78.50", rows[0].Amount)
	}
}

func TestClient_GetAllEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	rows, err := New(srv.URL, "k").GetAll(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GetAll() = %v", err)
	}
	if rows == nil || len(rows) != 0 {
		t.Errorf("GetAll() = %#v, want empty non-nil slice", rows)
	}
}

func TestClient_Create(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if got := r.Header.Get("Prefer"); got != "return=representation" {
			t.Errorf("Prefer header = %q", got)
		}
		var in core.NewTransaction
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Errorf("decode request: %v", err)
		}
		created := testTxn("assigned-id")
		created.Description = in.Description
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode([]core.Transaction{created})
	}))
	defer srv.Close()

	input := core.NewTransaction{
		Description: "Groceries",
		Amount:      decimal.RequireFromString("78.50"),
		Category:    core.Need,
		Date:        time.Date(2025, 7, 24, 0, 0, 0, 0, time.UTC),
		UserID:      "user-1",
	}
	created, err := New(srv.URL, "k").Create(context.Background(), input)
	if err != nil {
		t.Fatalf("Create() = %v", err)
	}
	if created.ID != "assigned-id" {
		t.Errorf("ID = %q, want assigned-id", created.ID)
	}
}

func TestClient_CreateValidatesLocally(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	input := core.NewTransaction{
		Description: "Groceries",
		Amount:      decimal.RequireFromString("0.00"),
		Category:    core.Need,
		Date:        time.Now(),
		UserID:      "user-1",
	}
	if _, err := New(srv.URL, "k").Create(context.Background(), input); err == nil {
		t.Fatal("Create() with invalid amount must fail")
	}
	if called {
		t.Error("invalid input must fail before any network call")
	}
}

func TestClient_UpdateNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("id"); got != "eq.missing" {
			t.Errorf("id param = %q, want eq.missing", got)
		}
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	desc := "x"
	_, err := New(srv.URL, "k").Update(context.Background(), "missing", core.TransactionUpdate{Description: &desc})
	if !records.IsNotFound(err) {
		t.Errorf("Update(missing) = %v, want ErrNotFound", err)
	}
}

func TestClient_Delete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s, want DELETE", r.Method)
		}
		if got := r.URL.Query().Get("id"); got == "eq.t1" {
			json.NewEncoder(w).Encode([]core.Transaction{testTxn("t1")})
			return
		}
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	client := New(srv.URL, "k")
	if err := client.Delete(context.Background(), "t1"); err != nil {
		t.Errorf("Delete(t1) = %v", err)
	}
	if err := client.Delete(context.Background(), "missing"); !records.IsNotFound(err) {
		t.Errorf("Delete(missing) = %v, want ErrNotFound", err)
	}
}

func TestClient_BackendErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"JWT expired"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, "k").GetAll(context.Background(), "user-1")
	if err == nil {
		t.Fatal("GetAll() against 401 must fail")
	}
	var repoErr *records.Error
	if !errors.As(err, &repoErr) {
		t.Fatalf("error type = %T, want *records.Error", err)
	}
	if repoErr.Op != "get_all" {
		t.Errorf("Op = %q, want get_all", repoErr.Op)
	}
}
