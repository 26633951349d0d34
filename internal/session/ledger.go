package session

// AnswerLedger is the sitting's source of truth for selected choices: a
// questionID → choice letter mapping, last write wins, no history.
//
// The ledger is not safe for concurrent use on its own; the Controller
// serializes all writes. Once frozen, the mapping is immutable and
// Snapshot always returns the payload pinned at freeze time.
type AnswerLedger struct {
	known   map[string]struct{}
	answers map[string]string
	frozen  bool
	pinned  map[string]string
}

// NewAnswerLedger creates a ledger accepting writes only for the given
// question ids — the full id domain of the loaded catalog.
func NewAnswerLedger(knownIDs []string) *AnswerLedger {
	known := make(map[string]struct{}, len(knownIDs))
	for _, id := range knownIDs {
		known[id] = struct{}{}
	}
	return &AnswerLedger{
		known:   known,
		answers: make(map[string]string),
	}
}

// Set records a choice for a question, replacing any previous choice.
// Unknown ids are rejected with ErrUnknownQuestion; writes after freeze
// are rejected with ErrFrozen. Neither failure mode touches the mapping.
func (l *AnswerLedger) Set(questionID, choice string) error {
	if l.frozen {
		return ErrFrozen
	}
	if _, ok := l.known[questionID]; !ok {
		return ErrUnknownQuestion
	}
	l.answers[questionID] = choice
	return nil
}

// Get returns the recorded choice for a question, if any.
func (l *AnswerLedger) Get(questionID string) (string, bool) {
	choice, ok := l.answers[questionID]
	return choice, ok
}

// Count returns the number of distinct answered questions.
func (l *AnswerLedger) Count() int {
	return len(l.answers)
}

// Snapshot returns a copy of the full mapping. After Freeze it returns a
// copy of the pinned payload, which by then can no longer drift anyway.
func (l *AnswerLedger) Snapshot() map[string]string {
	src := l.answers
	if l.frozen {
		src = l.pinned
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

// Freeze makes the ledger immutable and pins the submission payload.
// Idempotent: repeated calls return the same pinned map.
func (l *AnswerLedger) Freeze() map[string]string {
	if !l.frozen {
		l.frozen = true
		l.pinned = make(map[string]string, len(l.answers))
		for k, v := range l.answers {
			l.pinned[k] = v
		}
	}
	return l.pinned
}

// Frozen reports whether the ledger has been frozen.
func (l *AnswerLedger) Frozen() bool {
	return l.frozen
}
