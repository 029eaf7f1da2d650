package bot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPromptDeliverBeforeWait(t *testing.T) {
	p := newPromptTable()

	// The waiter is registered before the prompt is posted, so a reply may
	// arrive before anyone blocks on it.
	wait := p.register("chan-1", "300")
	assert.True(t, p.deliver("chan-1", "300", "repeated spam"))

	got, err := wait(time.Second)
	assert.NoError(t, err)
	assert.Equal(t, "repeated spam", got)
}

func TestPromptTimeout(t *testing.T) {
	p := newPromptTable()
	wait := p.register("chan-1", "300")

	_, err := wait(10 * time.Millisecond)

	assert.ErrorIs(t, err, ErrPromptTimeout)
	// The expired waiter is gone; later messages flow through normally.
	assert.False(t, p.deliver("chan-1", "300", "too late"))
}

// TestPromptOverlappingWaitsSameKey verifies that when a second prompt for
// the same moderator and channel supersedes a first one, the first timing
// out does not tear down the live waiter.
func TestPromptOverlappingWaitsSameKey(t *testing.T) {
	p := newPromptTable()
	first := p.register("chan-1", "300")
	second := p.register("chan-1", "300")

	_, err := first(10 * time.Millisecond)
	assert.ErrorIs(t, err, ErrPromptTimeout)

	assert.True(t, p.deliver("chan-1", "300", "for the second menu"))
	got, err := second(time.Second)
	assert.NoError(t, err)
	assert.Equal(t, "for the second menu", got)
}

// TestPromptKeyedByChannelAndAuthor verifies messages from other users or
// channels never satisfy a waiter.
func TestPromptKeyedByChannelAndAuthor(t *testing.T) {
	p := newPromptTable()
	wait := p.register("chan-1", "300")

	assert.False(t, p.deliver("chan-1", "400", "wrong user"))
	assert.False(t, p.deliver("chan-2", "300", "wrong channel"))
	assert.True(t, p.deliver("chan-1", "300", "right one"))

	got, err := wait(time.Second)
	assert.NoError(t, err)
	assert.Equal(t, "right one", got)
}
