package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"finview/internal/core"
)

func mustAmount(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := core.ParseAmount(s)
	if err != nil {
		t.Fatalf("parse amount %q: %v", s, err)
	}
	return d
}

func TestLoginPersistsSession(t *testing.T) {
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" || r.Method != http.MethodPost {
			t.Errorf("wire: %s %s", r.Method, r.URL.Path)
		}
		var creds map[string]string
		json.NewDecoder(r.Body).Decode(&creds)
		if creds["email"] != "a@b.com" || creds["password"] != "secret1" {
			t.Errorf("credentials: %v", creds)
		}
		w.Write([]byte(`{"token":"tok-9","user":{"id":"1","name":"Asha","email":"a@b.com"}}`))
	})
	sessions := &fakeSessions{}
	auth := NewAuthService(c, sessions)

	sess, err := auth.Login(context.Background(), "a@b.com", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if sess.Token != "tok-9" || sess.User.Name != "Asha" {
		t.Fatalf("session: %+v", sess)
	}
	if !sessions.saved || sessions.token != "tok-9" || sessions.user.Email != "a@b.com" {
		t.Fatalf("session not persisted: %+v", sessions)
	}
}

func TestLoginFailureDoesNotPersist(t *testing.T) {
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid credentials"}`))
	})
	sessions := &fakeSessions{}
	auth := NewAuthService(c, sessions)

	_, err := auth.Login(context.Background(), "a@b.com", "wrong")
	if err == nil {
		t.Fatalf("expected error")
	}
	if sessions.saved {
		t.Fatalf("failed login must not touch the session store")
	}
	if UserMessage(err, "Login failed") != "Invalid credentials" {
		t.Fatalf("backend message lost: %v", err)
	}
}

func TestRegisterDoesNotPersist(t *testing.T) {
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/register" {
			t.Errorf("path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"token":"tok-1","user":{"id":"2","name":"Ravi","email":"r@b.com"}}`))
	})
	sessions := &fakeSessions{}
	auth := NewAuthService(c, sessions)

	if _, err := auth.Register(context.Background(), "Ravi", "r@b.com", "secret1"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if sessions.saved {
		t.Fatalf("register must leave the session store untouched")
	}
}

func TestLogoutClearsSession(t *testing.T) {
	sessions := &fakeSessions{}
	auth := NewAuthService(NewClient("http://unused", time.Second, staticTokens{}), sessions)
	if err := auth.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if !sessions.cleared {
		t.Fatalf("logout must clear the session store")
	}
}

func TestUpdateProfileRefreshesStoredUser(t *testing.T) {
	c := newTestClient(t, "tok-9", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/profile" || r.Method != http.MethodPut {
			t.Errorf("wire: %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"id":"1","name":"Asha K","email":"a@b.com"}`))
	})
	sessions := &fakeSessions{}
	auth := NewAuthService(c, sessions)

	user, err := auth.UpdateProfile(context.Background(), "tok-9", "Asha K", "a@b.com")
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if user.Name != "Asha K" {
		t.Fatalf("user: %+v", user)
	}
	if !sessions.saved || sessions.token != "tok-9" || sessions.user.Name != "Asha K" {
		t.Fatalf("updated user not persisted: %+v", sessions)
	}
}

func TestExportReturnsRawBody(t *testing.T) {
	csv := "date,category,amount\n2025-10-15,Food,1500\n"
	var gotQuery map[string][]string
	c := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte(csv))
	})

	data, err := NewReportService(c).Export(context.Background(), 10, 2025)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if string(data) != csv {
		t.Fatalf("blob altered: %q", data)
	}
	if gotQuery["month"][0] != "10" || gotQuery["year"][0] != "2025" {
		t.Fatalf("period query: %v", gotQuery)
	}
}

func TestExportFilename(t *testing.T) {
	if got := ExportFilename(3, 2025); got != "financial-report-2025-3.csv" {
		t.Fatalf("filename: %q", got)
	}
}
