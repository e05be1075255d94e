package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActionQueue(t *testing.T) {
	var q actionQueue
	_, ok := q.Head()
	assert.False(t, ok)

	seats := []int{4, 5, 1, 2, 3}
	q.Reset(seats)
	seats[0] = 99 // queue must not alias the caller's slice
	assert.Equal(t, []int{4, 5, 1, 2, 3}, q.Seats())

	head, ok := q.Pop()
	assert.True(t, ok)
	assert.Equal(t, 4, head)

	assert.True(t, q.Remove(1))
	assert.False(t, q.Remove(1))
	assert.Equal(t, []int{5, 2, 3}, q.Seats())

	head, _ = q.Head()
	assert.Equal(t, 5, head)
	assert.Equal(t, 3, q.Len())

	snapshot := q.Seats()
	q.Remove(2)
	assert.Equal(t, []int{5, 2, 3}, snapshot)
}
