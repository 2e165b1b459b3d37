package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlot(t *testing.T) {
	t.Run("new slot with zero value is empty", func(t *testing.T) {
		s := NewSlot("")
		assert.True(t, s.IsEmpty())
		assert.False(t, s.IsFull())
		assert.Equal(t, 0, s.Amount())
		assert.Equal(t, 1, s.MaxAmount())

		_, ok := s.Item()
		assert.False(t, ok)
	})

	t.Run("add fails when full", func(t *testing.T) {
		s := NewSlot("sword")
		assert.True(t, s.IsFull())
		assert.False(t, s.CanAdd("shield"))
		assert.False(t, s.Add("shield"))

		item, ok := s.Item()
		assert.True(t, ok)
		assert.Equal(t, "sword", item)
	})

	t.Run("add rejects absent item", func(t *testing.T) {
		s := NewSlot("")
		assert.False(t, s.Add(""))
		assert.True(t, s.IsEmpty())
	})

	t.Run("get takes and clears", func(t *testing.T) {
		s := NewSlot("sword")
		item, ok := s.Get()
		assert.True(t, ok)
		assert.Equal(t, "sword", item)
		assert.True(t, s.IsEmpty())

		_, ok = s.Get()
		assert.False(t, ok)
	})

	t.Run("replace swaps unconditionally", func(t *testing.T) {
		s := NewSlot("")
		old, ok := s.Replace("sword")
		assert.False(t, ok)
		assert.Empty(t, old)

		old, ok = s.Replace("shield")
		assert.True(t, ok)
		assert.Equal(t, "sword", old)
		assert.True(t, s.Contains("shield"))

		old, ok = s.Replace("")
		assert.True(t, ok)
		assert.Equal(t, "shield", old)
		assert.True(t, s.IsEmpty())
	})

	t.Run("contains", func(t *testing.T) {
		s := NewSlot("sword")
		assert.True(t, s.Contains("sword"))
		assert.False(t, s.Contains("shield"))
		assert.False(t, NewSlot("").Contains(""))
	})

	t.Run("pointer items use nil as absent", func(t *testing.T) {
		type gear struct{ name string }
		sword := &gear{name: "sword"}

		s := NewSlot[*gear](nil)
		assert.True(t, s.IsEmpty())
		assert.False(t, s.Add(nil))
		assert.True(t, s.Add(sword))
		assert.True(t, s.Contains(sword))
		assert.False(t, s.Contains(&gear{name: "sword"}))
	})
}
