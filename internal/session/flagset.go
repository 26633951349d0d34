package session

import "sort"

// FlagSet tracks questions the user marked for later review. Flags are a
// local navigation aid only: they are never sent to the grading service
// and are discarded when the sitting ends.
type FlagSet struct {
	known  map[string]struct{}
	flags  map[string]struct{}
	frozen bool
}

// NewFlagSet creates a flag set over the same id domain as the ledger.
func NewFlagSet(knownIDs []string) *FlagSet {
	known := make(map[string]struct{}, len(knownIDs))
	for _, id := range knownIDs {
		known[id] = struct{}{}
	}
	return &FlagSet{
		known: known,
		flags: make(map[string]struct{}),
	}
}

// Toggle flips the flag on a question and reports the new state.
// Same validation rules as the ledger: unknown ids and post-freeze writes
// are rejected without mutating the set.
func (f *FlagSet) Toggle(questionID string) (bool, error) {
	if f.frozen {
		return false, ErrFrozen
	}
	if _, ok := f.known[questionID]; !ok {
		return false, ErrUnknownQuestion
	}
	if _, flagged := f.flags[questionID]; flagged {
		delete(f.flags, questionID)
		return false, nil
	}
	f.flags[questionID] = struct{}{}
	return true, nil
}

// Has reports whether a question is currently flagged.
func (f *FlagSet) Has(questionID string) bool {
	_, ok := f.flags[questionID]
	return ok
}

// Count returns the number of flagged questions.
func (f *FlagSet) Count() int {
	return len(f.flags)
}

// List returns the flagged ids in stable (sorted) order for rendering.
func (f *FlagSet) List() []string {
	out := make([]string, 0, len(f.flags))
	for id := range f.flags {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Freeze makes the set immutable. Idempotent.
func (f *FlagSet) Freeze() {
	f.frozen = true
}
