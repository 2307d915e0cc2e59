package api

import (
	"context"

	"github.com/gammazero/channelqueue"
)

// RefChange reports the master ref moving from Old to New, as observed by a
// refresh.
type RefChange struct {
	Old Ref
	New Ref
}

// OnRefChange creates a channel that receives master ref change
// notifications, and adds that channel to the list of notification channels.
//
// Calling the returned cancel function removes the notification channel from
// the list of channels to be notified on changes, and it closes the channel
// to allow any reading goroutines to stop waiting on the channel.
func (c *Client) OnRefChange() (<-chan RefChange, context.CancelFunc) {
	// Channel is buffered to prevent Refresh from blocking if a reader is
	// not reading the channel immediately.
	cq := channelqueue.New[RefChange](-1)
	ch := cq.In()

	c.watchMutex.Lock()
	if c.watchers == nil {
		c.watchers = make(map[int]chan<- RefChange)
	}
	id := c.watchSeq
	c.watchSeq++
	c.watchers[id] = ch
	c.watchMutex.Unlock()

	cncl := func() {
		c.watchMutex.Lock()
		defer c.watchMutex.Unlock()
		w, ok := c.watchers[id]
		if !ok {
			return
		}
		delete(c.watchers, id)
		close(w)
	}
	return cq.Out(), cncl
}

func (c *Client) notifyRefChange(change RefChange) {
	c.watchMutex.Lock()
	defer c.watchMutex.Unlock()
	for _, ch := range c.watchers {
		ch <- change
	}
}
