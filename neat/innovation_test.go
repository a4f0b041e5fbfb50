package neat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInnovationCounterIssuesSequentialNumbers(t *testing.T) {
	c := NewInnovationCounter(8)
	assert.Equal(t, 9, c.Next())
	assert.Equal(t, 10, c.Next())
	assert.Equal(t, 11, c.Next())
}

func TestInnovationCounterObserve(t *testing.T) {
	c := NewInnovationCounter(0)
	c.Observe(5)
	assert.Equal(t, 6, c.Next())

	// Numbers already behind the counter change nothing.
	c.Observe(3)
	assert.Equal(t, 7, c.Next())
}
