package cache

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprintStable(t *testing.T) {
	payload := []byte(`[{"role":"system","content":"analyze"}]`)
	assert.Equal(t, Fingerprint(payload), Fingerprint(payload))
	assert.Len(t, Fingerprint(payload), 20)
}

func TestFingerprintDistinguishesContent(t *testing.T) {
	a := Fingerprint([]byte("market prompt"))
	b := Fingerprint([]byte("competitive prompt"))
	assert.NotEqual(t, a, b)
}

func TestGetPut(t *testing.T) {
	c := New(0)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Put("key", "response text")
	got, ok := c.Get("key")
	assert.True(t, ok)
	assert.Equal(t, "response text", got)
}

func TestBoundedEviction(t *testing.T) {
	c := New(2)
	for i := 0; i < 3; i++ {
		c.Put(fmt.Sprintf("key-%d", i), "value")
	}
	assert.Equal(t, 2, c.Len())
}

func TestOverwriteDoesNotEvict(t *testing.T) {
	c := New(2)
	c.Put("a", "1")
	c.Put("b", "2")
	c.Put("a", "updated")

	assert.Equal(t, 2, c.Len())
	got, ok := c.Get("b")
	assert.True(t, ok)
	assert.Equal(t, "2", got)
}
