package bot

import (
	"errors"
	"sync"
	"time"
)

// ErrPromptTimeout is returned when no qualifying message arrives before
// the reason-collection deadline.
var ErrPromptTimeout = errors.New("prompt timed out")

// promptTable suspends a moderation flow until the prompted moderator's
// next message in the same channel, or a timeout. Waiters are keyed by
// (channel, author) so concurrent flows in different channels or by
// different moderators never interfere.
type promptTable struct {
	mu      sync.Mutex
	waiters map[string]chan string
}

func newPromptTable() *promptTable {
	return &promptTable{waiters: make(map[string]chan string)}
}

func promptKey(channelID, userID string) string {
	return channelID + ":" + userID
}

// register installs a waiter and returns the function that blocks for the
// reply. Registering before the prompt is posted means the moderator's
// answer can never race the suspension.
func (p *promptTable) register(channelID, userID string) func(timeout time.Duration) (string, error) {
	key := promptKey(channelID, userID)
	ch := make(chan string, 1)

	p.mu.Lock()
	p.waiters[key] = ch
	p.mu.Unlock()

	return func(timeout time.Duration) (string, error) {
		defer func() {
			// Delete only our own channel: a later register for the same
			// key may have replaced it, and that waiter is still live.
			p.mu.Lock()
			if p.waiters[key] == ch {
				delete(p.waiters, key)
			}
			p.mu.Unlock()
		}()
		select {
		case content := <-ch:
			return content, nil
		case <-time.After(timeout):
			return "", ErrPromptTimeout
		}
	}
}

// deliver hands a message to a suspended waiter, reporting whether it was
// consumed.
func (p *promptTable) deliver(channelID, userID, content string) bool {
	key := promptKey(channelID, userID)

	p.mu.Lock()
	ch, ok := p.waiters[key]
	if ok {
		delete(p.waiters, key)
	}
	p.mu.Unlock()

	if !ok {
		return false
	}
	ch <- content
	return true
}
