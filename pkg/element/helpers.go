package element

// If returns the element if condition is true, nil otherwise.
// El and C skip nil children, so this composes directly.
func If(condition bool, e *Element) *Element {
	if condition {
		return e
	}
	return nil
}

// Range maps a slice to elements, skipping nil results.
func Range[T any](items []T, fn func(item T, index int) *Element) []*Element {
	result := make([]*Element, 0, len(items))
	for i, item := range items {
		if e := fn(item, i); e != nil {
			result = append(result, e)
		}
	}
	return result
}
