package factor

// Counter accumulates the arithmetic performed while answering one query.
// Summing k terms costs k-1 additions; multiplying k terms costs k-1
// multiplications. A nil *Counter discards counts.
type Counter struct {
	Additions       int
	Multiplications int
}

// Add records n additions.
func (c *Counter) Add(n int) {
	if c != nil {
		c.Additions += n
	}
}

// Mul records n multiplications.
func (c *Counter) Mul(n int) {
	if c != nil {
		c.Multiplications += n
	}
}

// Reset zeroes both counts.
func (c *Counter) Reset() {
	if c != nil {
		*c = Counter{}
	}
}
