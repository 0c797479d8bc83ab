package model

// ExpansionState is view-side bookkeeping of which rows are expanded. It is
// never merged into aggregated data; callers pass it around as an opaque set.
type ExpansionState map[string]struct{}

func NewExpansionState(keys ...string) ExpansionState {
	state := make(ExpansionState, len(keys))
	for _, key := range keys {
		if key == "" {
			continue
		}
		state[key] = struct{}{}
	}
	return state
}

func (s ExpansionState) IsExpanded(key string) bool {
	if s == nil || key == "" {
		return false
	}
	_, ok := s[key]
	return ok
}

// Toggle returns a new state; the receiver is left untouched.
func (s ExpansionState) Toggle(key string) ExpansionState {
	next := make(ExpansionState, len(s)+1)
	for k := range s {
		next[k] = struct{}{}
	}
	if _, ok := next[key]; ok {
		delete(next, key)
	} else if key != "" {
		next[key] = struct{}{}
	}
	return next
}

func (s ExpansionState) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	return keys
}
