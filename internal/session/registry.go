package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
)

// Registry holds the live sittings, keyed by user and exam so a user can
// only ever have one sitting per exam. Entries expire a grace period after
// the exam duration; eviction tears the controller down so its clock and
// subscribers do not outlive it.
type Registry struct {
	store *gocache.Cache
	grace time.Duration
	log   zerolog.Logger
}

// NewRegistry creates a registry whose entries live for the sitting
// duration plus grace.
func NewRegistry(grace time.Duration, log zerolog.Logger) *Registry {
	store := gocache.New(gocache.NoExpiration, time.Minute)
	store.OnEvicted(func(key string, value interface{}) {
		if ctrl, ok := value.(*Controller); ok {
			ctrl.Shutdown()
		}
	})
	return &Registry{
		store: store,
		grace: grace,
		log:   log.With().Str("component", "registry").Logger(),
	}
}

func registryKey(userID, examID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", userID, examID)
}

// Get returns the live sitting for a user and exam, if any.
func (r *Registry) Get(userID, examID uuid.UUID) (*Controller, bool) {
	value, ok := r.store.Get(registryKey(userID, examID))
	if !ok {
		return nil, false
	}
	return value.(*Controller), true
}

// Put registers a sitting with a lifetime of duration plus the grace
// period, leaving room to view the result or retry a failed submission
// after the clock has expired.
func (r *Registry) Put(ctrl *Controller, duration time.Duration) {
	ttl := duration + r.grace
	r.store.Set(registryKey(ctrl.userID, ctrl.examID), ctrl, ttl)
	r.log.Info().
		Str("session_id", ctrl.sessionID.String()).
		Dur("ttl", ttl).
		Msg("Sitting registered")
}

// Remove evicts a sitting immediately; the eviction hook shuts it down.
func (r *Registry) Remove(userID, examID uuid.UUID) {
	r.store.Delete(registryKey(userID, examID))
}

// Len returns the number of live sittings.
func (r *Registry) Len() int {
	return r.store.ItemCount()
}
