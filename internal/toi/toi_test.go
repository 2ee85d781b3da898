package toi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTargetSet(t *testing.T) {
	s := NewTargetSet(5, 3, 5, 1, 3)
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []TargetID{5, 3, 1}, s.IDs())
	assert.True(t, s.Contains(3))
	assert.False(t, s.Contains(4))
}

func TestNewTargetSet_Empty(t *testing.T) {
	s := NewTargetSet()
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, []TargetID{}, s.IDs())
	assert.False(t, s.Contains(0))

	var zero TargetSet
	assert.Equal(t, 0, zero.Len())
	assert.False(t, zero.Contains(0))
}

func TestTargetSet_IDsReturnsCopy(t *testing.T) {
	s := NewTargetSet(1, 2)
	ids := s.IDs()
	ids[0] = 100
	assert.Equal(t, []TargetID{1, 2}, s.IDs())
}

func TestTargetID_String(t *testing.T) {
	assert.Equal(t, "101", TargetID(101).String())
}
