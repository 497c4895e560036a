package http

import (
	"sync"
	"time"
)

// noticeTTL is how long a success notice stays visible after the action
// that produced it.
const noticeTTL = 3 * time.Second

// noticeStore holds one transient success message per page. A notice is
// shown on renders within noticeTTL of being set and dropped afterwards.
type noticeStore struct {
	mu      sync.Mutex
	notices map[string]notice
	now     func() time.Time
}

type notice struct {
	message string
	expires time.Time
}

func newNoticeStore() *noticeStore {
	return &noticeStore{
		notices: make(map[string]notice),
		now:     time.Now,
	}
}

// Set records a success message for the given page, replacing any
// previous one.
func (n *noticeStore) Set(page, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices[page] = notice{message: message, expires: n.now().Add(noticeTTL)}
}

// Active returns the current message for the page, or "" if none is set
// or the previous one has expired. Expired entries are dropped.
func (n *noticeStore) Active(page string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	nt, ok := n.notices[page]
	if !ok {
		return ""
	}
	if n.now().After(nt.expires) {
		delete(n.notices, page)
		return ""
	}
	return nt.message
}
