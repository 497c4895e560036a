package http

import (
	"testing"
	"time"
)

func TestNoticeVisibleWithinWindow(t *testing.T) {
	clock := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)
	n := newNoticeStore()
	n.now = func() time.Time { return clock }

	n.Set("categories", "Category added successfully")

	clock = clock.Add(2 * time.Second)
	if got := n.Active("categories"); got != "Category added successfully" {
		t.Fatalf("notice within window: %q", got)
	}
}

func TestNoticeExpiresAfterWindow(t *testing.T) {
	clock := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)
	n := newNoticeStore()
	n.now = func() time.Time { return clock }

	n.Set("transactions", "Transaction added successfully")

	clock = clock.Add(noticeTTL + time.Millisecond)
	if got := n.Active("transactions"); got != "" {
		t.Fatalf("expired notice still visible: %q", got)
	}
	// Once expired it stays gone even if the clock were rolled back.
	clock = clock.Add(-2 * time.Second)
	if got := n.Active("transactions"); got != "" {
		t.Fatalf("dropped notice came back: %q", got)
	}
}

func TestNoticeReplacedBySet(t *testing.T) {
	n := newNoticeStore()
	n.Set("profile", "Profile updated successfully")
	n.Set("profile", "Password changed successfully")
	if got := n.Active("profile"); got != "Password changed successfully" {
		t.Fatalf("latest notice wins: %q", got)
	}
}

func TestNoticesAreScopedPerPage(t *testing.T) {
	n := newNoticeStore()
	n.Set("categories", "Category added successfully")
	if got := n.Active("transactions"); got != "" {
		t.Fatalf("notice leaked across pages: %q", got)
	}
}
