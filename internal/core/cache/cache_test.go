package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lexlabs/gavel/internal/core/model"
)

func TestGetPut(t *testing.T) {
	c := New(10, time.Hour)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	want := model.Result{Verdict: model.VerdictYes, Reasoning: "ok", Confidence: 0.9}
	c.Put("k1", want)

	got, ok := c.Get("k1")
	assert.True(t, ok)
	assert.Equal(t, want, got)
}

func TestTTLExpiry(t *testing.T) {
	c := New(10, time.Hour)

	current := time.Now()
	c.now = func() time.Time { return current }

	c.Put("k1", model.Result{Verdict: model.VerdictNo})

	_, ok := c.Get("k1")
	assert.True(t, ok)

	// Advance past the TTL; the entry is treated as absent even though it
	// is still physically stored.
	current = current.Add(time.Hour + time.Second)
	_, ok = c.Get("k1")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestCapacityEvictsLRU(t *testing.T) {
	c := New(2, time.Hour)

	c.Put("a", model.Result{Reasoning: "a"})
	c.Put("b", model.Result{Reasoning: "b"})

	// Touch "a" so "b" becomes least recently used.
	_, ok := c.Get("a")
	assert.True(t, ok)

	c.Put("c", model.Result{Reasoning: "c"})
	assert.Equal(t, 2, c.Len())

	_, ok = c.Get("b")
	assert.False(t, ok)
	_, ok = c.Get("a")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
}

func TestPutOverwritesExisting(t *testing.T) {
	c := New(2, time.Hour)

	c.Put("k", model.Result{Reasoning: "old"})
	c.Put("k", model.Result{Reasoning: "new"})
	assert.Equal(t, 1, c.Len())

	got, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "new", got.Reasoning)
}
