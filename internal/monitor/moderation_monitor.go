package monitor

import (
	"log"
	"sync"
	"time"

	"github.com/ethanmoreau/bikejourney/internal/repository"
)

// ModerationMonitor periodically watches the guestbook moderation
// queue and logs a notification when new entries arrive. It only
// observes: approval itself happens through the admin tooling.
type ModerationMonitor struct {
	guestbookRepo repository.GuestbookRepository
	interval      time.Duration
	mu            sync.Mutex // protects lastPending
	lastPending   int64
	seeded        bool // false until the first successful check
}

// NewModerationMonitor creates and returns a new instance of ModerationMonitor.
// interval determines how frequently the pending queue is checked.
func NewModerationMonitor(guestbookRepo repository.GuestbookRepository, interval time.Duration) *ModerationMonitor {
	return &ModerationMonitor{
		guestbookRepo: guestbookRepo,
		interval:      interval,
	}
}

// Start launches the periodic check loop. This is a blocking function
// that runs until the program stops; callers run it in a goroutine.
func (m *ModerationMonitor) Start() {
	log.Printf("[MONITOR] Starting moderation monitor with interval of %v...", m.interval)
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	// Immediate check on startup before the first tick
	m.CheckPending()

	for range ticker.C {
		m.CheckPending()
	}
}

// CheckPending counts entries awaiting approval and compares the count
// with the previous observation, logging a notification when the queue
// grew.
func (m *ModerationMonitor) CheckPending() {
	pending, err := m.guestbookRepo.CountPendingEntries()
	if err != nil {
		log.Printf("[MONITOR] ERROR counting pending guestbook entries: %v", err)
		return
	}

	m.mu.Lock()
	previous, seeded := m.lastPending, m.seeded
	m.lastPending, m.seeded = pending, true
	m.mu.Unlock()

	if !seeded {
		log.Printf("[MONITOR] Initial moderation queue: %d entr(ies) awaiting approval", pending)
		return
	}

	if pending > previous {
		log.Printf("[NOTIFICATION] %d new guestbook entr(ies) awaiting approval (total pending: %d)",
			pending-previous, pending)
	}
}
