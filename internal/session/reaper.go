package session

import (
	"context"
	"time"
)

// ReapIdle deletes parties with no activity for longer than ttl and returns
// how many were removed. A non-positive ttl reaps nothing.
func (m *Manager) ReapIdle(ttl time.Duration) int {
	if ttl <= 0 {
		return 0
	}
	cutoff := m.now().Add(-ttl)
	reaped := 0
	for _, p := range m.store.all() {
		p.mu.Lock()
		if !p.deleted && p.lastActive.Before(cutoff) {
			p.deleted = true
			m.store.remove(p.code, p)
			reaped++
			m.logger.Info("party deleted", "party", p.code, "reason", "idle", "players", len(p.players))
		}
		p.mu.Unlock()
	}
	return reaped
}

// RunReaper calls ReapIdle every interval until ctx is done.
func (m *Manager) RunReaper(ctx context.Context, interval, ttl time.Duration) {
	if ttl <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.ReapIdle(ttl)
		}
	}
}
