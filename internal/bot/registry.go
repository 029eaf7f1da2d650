package bot

import (
	"sync"

	"reportbot/backend/internal/models"
)

// PendingRegistry tracks moderation menus awaiting a moderator's reaction,
// keyed by the menu message ID. Entries are process-local.
type PendingRegistry struct {
	mu      sync.Mutex
	pending map[string]models.PendingAction
}

func NewPendingRegistry() *PendingRegistry {
	return &PendingRegistry{
		pending: make(map[string]models.PendingAction),
	}
}

func (r *PendingRegistry) Put(messageID string, action models.PendingAction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending[messageID] = action
}

func (r *PendingRegistry) Get(messageID string) (models.PendingAction, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	action, ok := r.pending[messageID]
	return action, ok
}

// Remove deletes the registration and reports whether it was still present,
// so terminal paths consume it exactly once.
func (r *PendingRegistry) Remove(messageID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pending[messageID]; !ok {
		return false
	}
	delete(r.pending, messageID)
	return true
}

func (r *PendingRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}
