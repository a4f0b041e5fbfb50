package neat

// InnovationCounter issues monotonically increasing innovation numbers.
// An innovation number, once issued, denotes one structural mutation event and
// is never reused. Each genome owns a private counter by default, but a
// population driver should create a single counter and share it across every
// genome it constructs so numbers stay unique population-wide.
//
// The counter is not safe for concurrent use; a genome and its counter are
// exclusively owned by one goroutine at a time.
type InnovationCounter struct {
	next int
}

// NewInnovationCounter creates a counter seeded one past the highest
// innovation number already in use.
func NewInnovationCounter(last int) *InnovationCounter {
	return &InnovationCounter{next: last + 1}
}

// Next returns the next unused innovation number and advances the counter.
func (c *InnovationCounter) Next() int {
	n := c.next
	c.next++
	return n
}

// Observe raises the counter past an innovation number issued elsewhere, so
// that a shared counter can absorb genomes built before it existed.
func (c *InnovationCounter) Observe(innovationNumber int) {
	if innovationNumber >= c.next {
		c.next = innovationNumber + 1
	}
}
