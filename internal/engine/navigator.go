package engine

// Navigator tracks the active section index, bounded to [0, count-1]
type Navigator struct {
	index int
	count int
}

// NewNavigator creates a navigator over count sections, starting at 0
func NewNavigator(count int) *Navigator {
	return &Navigator{count: count}
}

// Index returns the active section index
func (n *Navigator) Index() int {
	return n.index
}

// Count returns the number of sections
func (n *Navigator) Count() int {
	return n.count
}

// IsFirst reports whether the first section is active
func (n *Navigator) IsFirst() bool {
	return n.index == 0
}

// IsLast reports whether the final section is active
func (n *Navigator) IsLast() bool {
	return n.index == n.count-1
}

// Advance moves to the next section when the active one is valid and is not
// the last. It reports whether the index changed.
func (n *Navigator) Advance(valid bool) bool {
	if !valid || n.index >= n.count-1 {
		return false
	}
	n.index++
	return true
}

// Retreat moves to the previous section regardless of validity.
// It reports whether the index changed.
func (n *Navigator) Retreat() bool {
	if n.index <= 0 {
		return false
	}
	n.index--
	return true
}

// Progress returns the completion percentage including the active section
func (n *Navigator) Progress() float64 {
	if n.count == 0 {
		return 0
	}
	return float64(n.index+1) / float64(n.count) * 100
}
