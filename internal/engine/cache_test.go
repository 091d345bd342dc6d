package engine

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSchemaCache_PutGet(t *testing.T) {
	c := newSchemaCache(time.Minute)
	tableID := uuid.New()
	cols := []Column{{ID: uuid.New(), Name: "notes", Type: TypeString}}

	_, ok := c.Get(tableID)
	assert.False(t, ok, "empty cache should miss")

	c.Put(tableID, cols)
	got, ok := c.Get(tableID)
	assert.True(t, ok)
	assert.Equal(t, cols, got)
	assert.Equal(t, 1, c.Len())
}

func TestSchemaCache_Expiry(t *testing.T) {
	c := newSchemaCache(10 * time.Millisecond)
	tableID := uuid.New()
	c.Put(tableID, []Column{{Name: "notes"}})

	time.Sleep(25 * time.Millisecond)

	_, ok := c.Get(tableID)
	assert.False(t, ok, "expired entry should miss")
}

func TestSchemaCache_Invalidate(t *testing.T) {
	c := newSchemaCache(time.Minute)
	keep := uuid.New()
	drop := uuid.New()
	c.Put(keep, []Column{{Name: "a"}})
	c.Put(drop, []Column{{Name: "b"}})

	c.Invalidate(drop)

	_, ok := c.Get(drop)
	assert.False(t, ok)
	_, ok = c.Get(keep)
	assert.True(t, ok, "unrelated entry should survive invalidation")

	c.Clear()
	assert.Equal(t, 0, c.Len())
}
