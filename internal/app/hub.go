package app

import (
	"sync"

	"bible-quiz-service/internal/domain"
)

// LeaderboardHub fans leaderboard snapshots out to in-process subscribers
// (the WebSocket transport, mainly).
type LeaderboardHub struct {
	mu   sync.Mutex
	subs map[chan []domain.UserStat]struct{}
}

func NewLeaderboardHub() *LeaderboardHub {
	return &LeaderboardHub{subs: make(map[chan []domain.UserStat]struct{})}
}

// Subscribe returns a channel of leaderboard snapshots. The caller must
// invoke the returned cancel function to avoid leaks.
func (h *LeaderboardHub) Subscribe() (<-chan []domain.UserStat, func()) {
	ch := make(chan []domain.UserStat, 8)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subs[ch]; ok {
			delete(h.subs, ch)
			close(ch)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Broadcast pushes a snapshot to every subscriber, discarding the oldest
// pending snapshot for subscribers that have fallen behind.
func (h *LeaderboardHub) Broadcast(entries []domain.UserStat) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- entries:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- entries
		}
	}
}
