package syncer

import "sync"

// runLock admits one reconciliation run at a time. Contenders do not wait.
type runLock struct {
	mu sync.Mutex
}

func (l *runLock) tryAcquire() (release func(), ok bool) {
	if !l.mu.TryLock() {
		return nil, false
	}
	return l.mu.Unlock, true
}
