package web

import (
	"context"
	"sync"
	"time"

	"invoice-automation/internal/app"
)

// Processed uploads wait here between the upload POST and the form render.
const pendingTTL = 15 * time.Minute

type pendingUpload struct {
	Result    *app.UploadResult
	CreatedAt time.Time
}

// pendingStore is a thread-safe in-memory store with TTL expiry.
type pendingStore struct {
	mu      sync.Mutex
	uploads map[string]pendingUpload
}

func newPendingStore() *pendingStore {
	return &pendingStore{uploads: make(map[string]pendingUpload)}
}

func (s *pendingStore) put(token string, u pendingUpload) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads[token] = u
}

func (s *pendingStore) get(token string) (pendingUpload, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.uploads[token]
	if !ok {
		return pendingUpload{}, false
	}
	if time.Since(u.CreatedAt) > pendingTTL {
		delete(s.uploads, token)
		return pendingUpload{}, false
	}
	return u, true
}

// startPurge starts a background goroutine that evicts expired entries every 5 minutes.
func (s *pendingStore) startPurge(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.mu.Lock()
				for token, u := range s.uploads {
					if time.Since(u.CreatedAt) > pendingTTL {
						delete(s.uploads, token)
					}
				}
				s.mu.Unlock()
			}
		}
	}()
}
