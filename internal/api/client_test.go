package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"finview/internal/core"
)

type staticTokens struct{ token string }

func (s staticTokens) Token() string { return s.token }

type fakeSessions struct {
	saved   bool
	token   string
	user    core.User
	cleared bool
}

func (f *fakeSessions) Save(token string, user core.User) error {
	f.saved = true
	f.token = token
	f.user = user
	return nil
}

func (f *fakeSessions) Clear() error {
	f.cleared = true
	return nil
}

func newTestClient(t *testing.T, token string, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, staticTokens{token: token})
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, "tok-123", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	})
	if _, err := NewCategoryService(c).List(context.Background()); err != nil {
		t.Fatalf("list: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("authorization header: %q", gotAuth)
	}
}

func TestNoTokenNoHeader(t *testing.T) {
	var hadAuth bool
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		_, hadAuth = r.Header["Authorization"]
		w.Write([]byte(`[]`))
	})
	if _, err := NewCategoryService(c).List(context.Background()); err != nil {
		t.Fatalf("list: %v", err)
	}
	if hadAuth {
		t.Fatalf("unauthenticated request must not carry an Authorization header")
	}
}

func TestRequestErrorCarriesBackendMessage(t *testing.T) {
	c := newTestClient(t, "t", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Category name already exists"}`))
	})
	_, err := NewCategoryService(c).Create(context.Background(), core.CategoryDraft{Name: "Food", Type: core.Expense})
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected RequestError, got %v", err)
	}
	if reqErr.StatusCode != http.StatusBadRequest || reqErr.Message != "Category name already exists" {
		t.Fatalf("got %+v", reqErr)
	}
	if UserMessage(err, "fallback") != "Category name already exists" {
		t.Fatalf("UserMessage should surface the backend message")
	}
}

func TestRequestErrorGenericMessage(t *testing.T) {
	c := newTestClient(t, "t", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`oops`))
	})
	_, err := NewCategoryService(c).List(context.Background())
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected RequestError, got %v", err)
	}
	if reqErr.Message != "" {
		t.Fatalf("non-JSON body must not become a message: %q", reqErr.Message)
	}
	if !strings.Contains(reqErr.Error(), "500") {
		t.Fatalf("error text should mention the status: %q", reqErr.Error())
	}
	if UserMessage(err, "Failed to load categories") != "Failed to load categories" {
		t.Fatalf("UserMessage should fall back for generic errors")
	}
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient(url, time.Second, staticTokens{})
	_, err := NewCategoryService(c).List(context.Background())
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
}

func TestIsUnauthorized(t *testing.T) {
	if !IsUnauthorized(&RequestError{StatusCode: http.StatusUnauthorized}) {
		t.Fatalf("401 should be unauthorized")
	}
	if !IsUnauthorized(&RequestError{StatusCode: http.StatusForbidden}) {
		t.Fatalf("403 should be unauthorized")
	}
	if IsUnauthorized(&RequestError{StatusCode: http.StatusNotFound}) {
		t.Fatalf("404 is not unauthorized")
	}
	if IsUnauthorized(errors.New("plain")) {
		t.Fatalf("plain errors are not unauthorized")
	}
}

func TestCancelledContext(t *testing.T) {
	c := newTestClient(t, "t", func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewCategoryService(c).List(ctx); err == nil {
		t.Fatalf("cancelled context must fail the call")
	}
}

func TestCreateTransactionWire(t *testing.T) {
	var gotPath, gotMethod string
	var gotBody map[string]any
	c := newTestClient(t, "t", func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotMethod = r.URL.Path, r.Method
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"id":"9","date":"2025-10-15","categoryId":"1","category":"Food","type":"expense","amount":1500}`))
	})

	draft := core.TransactionDraft{
		Date:       core.NewDate(2025, 10, 15),
		CategoryID: "1",
		Type:       core.Expense,
		Amount:     mustAmount(t, "1500"),
		Note:       "dinner",
	}
	tx, err := NewTransactionService(c).Create(context.Background(), draft)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if gotMethod != http.MethodPost || gotPath != "/transactions" {
		t.Fatalf("wire: %s %s", gotMethod, gotPath)
	}
	if gotBody["date"] != "2025-10-15" || gotBody["categoryId"] != "1" {
		t.Fatalf("body: %v", gotBody)
	}
	// Amount goes out as a JSON number, not a string.
	if _, ok := gotBody["amount"].(float64); !ok {
		t.Fatalf("amount should be a JSON number, got %T", gotBody["amount"])
	}
	if tx.ID != "9" {
		t.Fatalf("decoded transaction: %+v", tx)
	}
}

func TestListTransactionsFilterQuery(t *testing.T) {
	var gotQuery map[string][]string
	c := newTestClient(t, "t", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`[]`))
	})

	f := core.Filter{
		Type:     core.Expense,
		Category: "Food",
		DateFrom: core.NewDate(2025, 10, 1),
		DateTo:   core.NewDate(2025, 10, 31),
		Search:   "dinner",
	}
	if _, err := NewTransactionService(c).List(context.Background(), f); err != nil {
		t.Fatalf("list: %v", err)
	}
	want := map[string]string{
		"type": "expense", "category": "Food",
		"dateFrom": "2025-10-01", "dateTo": "2025-10-31", "search": "dinner",
	}
	for k, v := range want {
		if len(gotQuery[k]) != 1 || gotQuery[k][0] != v {
			t.Fatalf("query %s = %v, want %s", k, gotQuery[k], v)
		}
	}
}

func TestListTransactionsEmptyFilterNoParams(t *testing.T) {
	var gotRaw string
	c := newTestClient(t, "t", func(w http.ResponseWriter, r *http.Request) {
		gotRaw = r.URL.RawQuery
		w.Write([]byte(`[]`))
	})
	if _, err := NewTransactionService(c).List(context.Background(), core.Filter{}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if gotRaw != "" {
		t.Fatalf("empty filter must send no query params, got %q", gotRaw)
	}
}

func TestDeleteWire(t *testing.T) {
	var gotPath, gotMethod string
	c := newTestClient(t, "t", func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotMethod = r.URL.Path, r.Method
		w.WriteHeader(http.StatusNoContent)
	})
	if err := NewTransactionService(c).Delete(context.Background(), "42"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/transactions/42" {
		t.Fatalf("wire: %s %s", gotMethod, gotPath)
	}
}
