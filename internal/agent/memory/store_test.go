package memory

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppend_TrimsOldestFirst(t *testing.T) {
	s := New(Config{MaxHistory: 3})

	for i := 1; i <= 5; i++ {
		s.Append("u1", Message{Role: RoleUser, Content: fmt.Sprintf("m%d", i)})
	}

	want := []Message{
		{Role: RoleUser, Content: "m3"},
		{Role: RoleUser, Content: "m4"},
		{Role: RoleUser, Content: "m5"},
	}
	if diff := cmp.Diff(want, s.Get("u1")); diff != "" {
		t.Errorf("Get() mismatch (-want +got):\n%s", diff)
	}
}

func TestSystemExcludedFromCap(t *testing.T) {
	s := New(Config{MaxHistory: 2})

	s.Append("u1", Message{Role: RoleSystem, Content: "sys v1"})
	s.Append("u1", Message{Role: RoleUser, Content: "a"})
	s.Append("u1", Message{Role: RoleAssistant, Content: "b"})
	s.Append("u1", Message{Role: RoleSystem, Content: "sys v2"})

	assert.Len(t, s.Get("u1"), 2)
	tr := s.Transcript("u1")
	require.Len(t, tr, 3)
	assert.Equal(t, Message{Role: RoleSystem, Content: "sys v2"}, tr[0])
	assert.Equal(t, Stats{UserID: "u1", Messages: 2, HasSystem: true, MaxHistory: 2, Conversations: 1}, s.Stats("u1"))
	assert.Equal(t, Stats{UserID: "u2", MaxHistory: 2, Conversations: 1}, s.Stats("u2"))
}

func TestUsersAreIsolated(t *testing.T) {
	s := New(Config{})

	s.Append("u1", Message{Role: RoleUser, Content: "hello"})
	assert.Empty(t, s.Get("u2"))
	assert.NotNil(t, s.Get("u2"))

	got := s.Get("u1")
	got[0].Content = "mutated"
	assert.Equal(t, "hello", s.Get("u1")[0].Content, "Get must return a copy")
}

func TestEvict(t *testing.T) {
	s := New(Config{})
	s.Append("u1", Message{Role: RoleUser, Content: "x"})
	require.Equal(t, 1, s.Len())

	s.Evict("u1")
	assert.Empty(t, s.Get("u1"))
	assert.Equal(t, 0, s.Len())
}

func TestIdleTTL(t *testing.T) {
	s := New(Config{IdleTTL: 50 * time.Millisecond})
	s.Append("u1", Message{Role: RoleUser, Content: "x"})

	assert.Eventually(t, func() bool {
		return len(s.Get("u1")) == 0
	}, 2*time.Second, 20*time.Millisecond)
}

func TestConcurrentAppendsNeverExceedCap(t *testing.T) {
	s := New(Config{MaxHistory: 10})

	var wg sync.WaitGroup
	for u := 0; u < 4; u++ {
		userID := fmt.Sprintf("u%d", u)
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				s.Append(userID, Message{Role: RoleUser, Content: fmt.Sprint(i)})
				assert.LessOrEqual(t, len(s.Get(userID)), 10)
			}(i)
		}
	}
	wg.Wait()

	for u := 0; u < 4; u++ {
		assert.Len(t, s.Get(fmt.Sprintf("u%d", u)), 10)
	}
}

func TestLockSerializesTurns(t *testing.T) {
	s := New(Config{MaxHistory: 100})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			unlock := s.Lock("u1")
			defer unlock()
			s.Append("u1", Message{Role: RoleUser, Content: fmt.Sprintf("q%d", i)})
			s.Append("u1", Message{Role: RoleAssistant, Content: fmt.Sprintf("a%d", i)})
		}(i)
	}
	wg.Wait()

	log := s.Get("u1")
	require.Len(t, log, 40)
	for i := 0; i < len(log); i += 2 {
		assert.Equal(t, RoleUser, log[i].Role)
		assert.Equal(t, "a"+log[i].Content[1:], log[i+1].Content, "turn interleaved at %d", i)
	}
}

func TestEvictWaitsForRunningTurn(t *testing.T) {
	s := New(Config{})
	unlock := s.Lock("alice")
	s.Append("alice", Message{Role: RoleUser, Content: "first"})

	evicted := make(chan struct{})
	go func() {
		s.Evict("alice")
		close(evicted)
	}()

	secondTurn := make(chan struct{})
	go func() {
		<-evicted
		release := s.Lock("alice")
		defer release()
		s.Append("alice", Message{Role: RoleUser, Content: "second"})
		close(secondTurn)
	}()

	select {
	case <-evicted:
		t.Fatal("evict must wait for the running turn")
	case <-time.After(50 * time.Millisecond):
	}

	s.Append("alice", Message{Role: RoleAssistant, Content: "answer to first"})
	assert.Equal(t, []Message{
		{Role: RoleUser, Content: "first"},
		{Role: RoleAssistant, Content: "answer to first"},
	}, s.Get("alice"))
	unlock()

	<-secondTurn
	assert.Equal(t, []Message{{Role: RoleUser, Content: "second"}}, s.Get("alice"))
}

func TestLockedConversationSurvivesCapacityEviction(t *testing.T) {
	s := New(Config{MaxUsers: 1})
	unlock := s.Lock("alice")
	s.Append("alice", Message{Role: RoleUser, Content: "q"})

	s.Append("bob", Message{Role: RoleUser, Content: "pushes alice out"})
	s.Append("alice", Message{Role: RoleAssistant, Content: "a"})

	assert.Equal(t, []Message{
		{Role: RoleUser, Content: "q"},
		{Role: RoleAssistant, Content: "a"},
	}, s.Get("alice"))

	acquired := make(chan struct{})
	go func() {
		release := s.Lock("alice")
		release()
		close(acquired)
	}()
	select {
	case <-acquired:
		t.Fatal("second turn ran while the first held the lock")
	case <-time.After(50 * time.Millisecond):
	}
	unlock()
	<-acquired
	unlock() // releasing twice is a no-op
}

func TestTranscript_SystemFirst(t *testing.T) {
	s := New(Config{MaxHistory: 1})
	s.Append("u1", Message{Role: RoleUser, Content: "old"})
	s.Append("u1", Message{Role: RoleUser, Content: "new"})
	s.SetSystem("u1", "sys")

	want := []Message{
		{Role: RoleSystem, Content: "sys"},
		{Role: RoleUser, Content: "new"},
	}
	if diff := cmp.Diff(want, s.Transcript("u1")); diff != "" {
		t.Errorf("Transcript() mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, s.Transcript("nobody"))
}
