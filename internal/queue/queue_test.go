package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPopOrder(t *testing.T) {
	q := New(4)
	q.Push(Candidate{Dispersion: -1.0, Label: 2, Score: 0.5})
	q.Push(Candidate{Dispersion: -3.0, Label: 0, Score: 0.1})
	q.Push(Candidate{Dispersion: -2.0, Label: 1, Score: 0.9})

	// Most negative dispersion (highest std-dev) pops first.
	c, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, 0, c.Label)

	c, ok = q.Pop()
	require.True(t, ok)
	assert.Equal(t, 1, c.Label)

	c, ok = q.Pop()
	require.True(t, ok)
	assert.Equal(t, 2, c.Label)

	_, ok = q.Pop()
	assert.False(t, ok)
}

func TestEqualDispersionBreaksByLabel(t *testing.T) {
	q := New(4)
	q.Push(Candidate{Dispersion: -1.0, Label: 3, Score: 0.2})
	q.Push(Candidate{Dispersion: -1.0, Label: 1, Score: 0.8})
	q.Push(Candidate{Dispersion: -1.0, Label: 2, Score: 0.4})

	var labels []int
	for q.Len() > 0 {
		c, _ := q.Pop()
		labels = append(labels, c.Label)
	}
	assert.Equal(t, []int{1, 2, 3}, labels)
}

func TestDrain(t *testing.T) {
	q := New(2)
	q.Push(Candidate{Dispersion: -0.5, Label: 1, Score: 0.1})
	q.Push(Candidate{Dispersion: -2.5, Label: 0, Score: 0.3})

	drained := q.Drain()
	require.Len(t, drained, 2)
	assert.Equal(t, 0, drained[0].Label)
	assert.Equal(t, 1, drained[1].Label)
	assert.Zero(t, q.Len())
}

func TestPopEmpty(t *testing.T) {
	q := New(0)
	_, ok := q.Pop()
	assert.False(t, ok)
}
