package inmemory

import (
	"fmt"
	"testing"
	"time"

	"github.com/vestnikmedia/vestnik/internal/chat/session"
)

func TestLifecycle(t *testing.T) {
	s := New(time.Hour, 20, 10)

	id, err := s.Create()
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !s.Exists(id) {
		t.Fatalf("fresh session should exist")
	}
	if err := s.Append(id, session.Turn{Role: session.RoleUser, Content: "hi"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	turns, err := s.History(id)
	if err != nil || len(turns) != 1 || turns[0].Content != "hi" {
		t.Fatalf("History = %+v, %v", turns, err)
	}

	if err := s.End(id); err != nil {
		t.Fatalf("End: %v", err)
	}
	if s.Exists(id) {
		t.Fatalf("ended session should not exist")
	}
	if err := s.End(id); err != nil {
		t.Fatalf("ending twice should be a no-op, got %v", err)
	}
	if err := s.Append(id, session.Turn{}); err != session.ErrNotFound {
		t.Fatalf("append to ended session: got %v, want ErrNotFound", err)
	}
}

func TestHistoryTruncatesToRecentTail(t *testing.T) {
	s := New(time.Hour, 20, 10)
	id, _ := s.Create()

	for i := 1; i <= 25; i++ {
		if err := s.Append(id, session.Turn{Role: session.RoleUser, Content: fmt.Sprintf("m%d", i)}); err != nil {
			t.Fatalf("Append %d: %v", i, err)
		}
	}
	turns, err := s.History(id)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	// Cap tripped at 21 (keep m12..m21), grew to 14 by m25.
	if len(turns) > 20 {
		t.Fatalf("history exceeded cap: %d turns", len(turns))
	}
	if turns[len(turns)-1].Content != "m25" {
		t.Fatalf("last turn should be the newest, got %q", turns[len(turns)-1].Content)
	}
	if turns[0].Content != "m12" {
		t.Fatalf("truncation should keep the recent tail, oldest is %q", turns[0].Content)
	}
}

func TestExpiredSessionsAreSweptAndRejected(t *testing.T) {
	s := New(time.Hour, 20, 10)
	current := time.Now()
	s.now = func() time.Time { return current }

	stale, _ := s.Create()
	current = current.Add(2 * time.Hour)

	if s.Exists(stale) {
		t.Fatalf("expired session should not exist")
	}

	stale2, _ := s.Create()
	current = current.Add(2 * time.Hour)
	// Creating a new session sweeps everything past its TTL.
	if _, err := s.Create(); err != nil {
		t.Fatalf("Create: %v", err)
	}
	s.mu.Lock()
	_, ok := s.sessions[stale2]
	s.mu.Unlock()
	if ok {
		t.Fatalf("sweep on create should have removed the stale session")
	}
}
