package session

import (
	"sync"
	"time"

	"github.com/englishhub/sitting-backend/internal/model"
)

// activeHold is how long the active highlight stays on a navigated-to
// question before clearing on its own.
const activeHold = 2 * time.Second

// Navigator resolves question ids to scroll anchors within the currently
// active part and drives the transient "active" highlight.
//
// The anchor table is rebuilt whenever the active part changes; anchors
// from a previously displayed part are dropped so a stale id can never
// scroll the renderer to the wrong element. Navigation never touches the
// ledger, the flags or the clock.
type Navigator struct {
	mu         sync.Mutex
	anchors    map[string]model.Anchor
	activeID   string
	generation uint64
	holdFor    time.Duration
}

// NewNavigator creates an empty Navigator; no anchors exist until the
// first part is activated.
func NewNavigator() *Navigator {
	return &Navigator{
		anchors: make(map[string]model.Anchor),
		holdFor: activeHold,
	}
}

// Rebuild replaces the anchor table with the layout of the given part and
// clears any active highlight.
func (n *Navigator) Rebuild(part *model.Part) {
	table := make(map[string]model.Anchor)
	for gi := range part.Groups {
		for qi := range part.Groups[gi].Questions {
			id := part.Groups[gi].Questions[qi].ID.String()
			table[id] = model.Anchor{
				Part:          part.Number,
				GroupIndex:    gi,
				QuestionIndex: qi,
			}
		}
	}

	n.mu.Lock()
	n.anchors = table
	n.activeID = ""
	n.generation++
	n.mu.Unlock()
}

// GoTo resolves the anchor for a question and marks it active. An
// unregistered id (part not rendered yet, or stale) is a no-op, not an
// error. The active marker clears itself after a fixed hold; navigating
// elsewhere replaces it immediately but never extends the old window.
func (n *Navigator) GoTo(questionID string) (model.Anchor, bool) {
	n.mu.Lock()
	anchor, ok := n.anchors[questionID]
	if !ok {
		n.mu.Unlock()
		return model.Anchor{}, false
	}
	n.activeID = questionID
	n.generation++
	gen := n.generation
	n.mu.Unlock()

	time.AfterFunc(n.holdFor, func() { n.clear(gen) })
	return anchor, true
}

// Active returns the currently highlighted question id, if any.
func (n *Navigator) Active() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.activeID
}

// clear drops the highlight set by the navigation identified by gen.
// A later navigation or rebuild bumps the generation and keeps its own marker.
func (n *Navigator) clear(gen uint64) {
	n.mu.Lock()
	if n.generation == gen {
		n.activeID = ""
	}
	n.mu.Unlock()
}
