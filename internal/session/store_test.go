package session

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aftercare-assistant/pkg"
)

func TestAcquireCreatesSession(t *testing.T) {
	store := NewStore()

	h := store.Acquire("s1")
	defer h.Release()

	sess := h.Session()
	assert.Equal(t, "s1", sess.ID)
	assert.False(t, sess.CreatedAt.IsZero())
	assert.Equal(t, 1, store.Len())
}

func TestUpdatePersistsAcrossAcquires(t *testing.T) {
	store := NewStore()

	h := store.Acquire("s1")
	sess := h.Session()
	sess.PatientName = "John Smith"
	sess.History = append(sess.History, pkg.HistoryMessage{Role: "user", Content: "hi"})
	h.Update(sess)
	h.Release()

	h = store.Acquire("s1")
	defer h.Release()
	got := h.Session()
	assert.Equal(t, "John Smith", got.PatientName)
	require.Len(t, got.History, 1)
	assert.Equal(t, "hi", got.History[0].Content)
}

func TestDelete(t *testing.T) {
	store := NewStore()
	store.Acquire("s1").Release()

	assert.True(t, store.Delete("s1"))
	assert.False(t, store.Delete("s1"))
	assert.Equal(t, 0, store.Len())
}

func TestConcurrentTurnsOnOneSessionSerialize(t *testing.T) {
	store := NewStore()

	const turns = 50
	var wg sync.WaitGroup
	for i := 0; i < turns; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			h := store.Acquire("shared")
			sess := h.Session()
			sess.History = append(sess.History, pkg.HistoryMessage{
				Role:    "user",
				Content: fmt.Sprintf("turn %d", i),
			})
			h.Update(sess)
			h.Release()
		}(i)
	}
	wg.Wait()

	h := store.Acquire("shared")
	defer h.Release()
	assert.Len(t, h.Session().History, turns)
}

func TestIndependentSessionsDoNotBlock(t *testing.T) {
	store := NewStore()

	h1 := store.Acquire("a")
	defer h1.Release()

	done := make(chan struct{})
	go func() {
		h2 := store.Acquire("b")
		h2.Release()
		close(done)
	}()
	<-done

	assert.Equal(t, 2, store.Len())
}
