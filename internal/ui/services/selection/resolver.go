package selection

import "selectkit/internal/options"

// Resolve computes the selection that results from choosing an option.
// Single mode always replaces. Multiple mode appends unless an equal option
// is already selected, in which case current is returned as is.
// current is never modified.
func Resolve(chosen *options.Option, mode Mode, current Selection, key string) Selection {
	if chosen == nil {
		return current
	}
	if mode == ModeSingle {
		return Single(chosen)
	}
	return Multiple(Append(chosen, current.Items(), key))
}

// Append adds chosen to the end of current unless an equal option is present
func Append(chosen *options.Option, current []*options.Option, key string) []*options.Option {
	if chosen == nil || options.Contains(current, chosen, key) {
		return current
	}
	next := make([]*options.Option, 0, len(current)+1)
	next = append(next, current...)
	return append(next, chosen)
}

// Remove returns current without the options equal to target
func Remove(target *options.Option, current []*options.Option, key string) []*options.Option {
	next := make([]*options.Option, 0, len(current))
	for _, opt := range current {
		if !options.Equal(opt, target, key) {
			next = append(next, opt)
		}
	}
	return next
}
