package app

// Cursor is the highlighted row of a list. It is either unset or an index
// below the length of the list it was last clamped against.
type Cursor struct {
	index int
	set   bool
}

// Selected returns the index and whether one is set.
func (c Cursor) Selected() (int, bool) {
	return c.index, c.set
}

// Select moves the cursor to i, clamped to [0, n). An empty list unsets it.
func (c *Cursor) Select(i, n int) {
	if n <= 0 {
		c.Reset()
		return
	}
	c.index = clamp(i, 0, n-1)
	c.set = true
}

// Next moves one row down. An unset cursor lands on the first row.
func (c *Cursor) Next(n int) {
	if !c.set {
		c.Select(0, n)
		return
	}
	c.Select(c.index+1, n)
}

// Prev moves one row up. An unset cursor lands on the last row.
func (c *Cursor) Prev(n int) {
	if !c.set {
		c.Select(n-1, n)
		return
	}
	c.Select(c.index-1, n)
}

func (c *Cursor) First(n int) {
	c.Select(0, n)
}

func (c *Cursor) Last(n int) {
	c.Select(n-1, n)
}

// Clamp keeps a set cursor inside a list of length n, unsetting it when the
// list is empty. An unset cursor stays unset.
func (c *Cursor) Clamp(n int) {
	if !c.set {
		return
	}
	c.Select(c.index, n)
}

func (c *Cursor) Reset() {
	c.index = 0
	c.set = false
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
