package session

import (
	"fmt"
	"sync"
)

// Session tracks the host game's save context: whether this process is
// the authoritative host of the running session and which save file is
// currently active. Lifecycle callbacks and registration can arrive on
// different goroutines, so access is mutex-guarded.
type Session struct {
	mu          sync.RWMutex
	host        bool
	currentSave string
}

func New(host bool) *Session {
	return &Session{host: host}
}

// IsHost reports whether this process owns the current-save store.
// Non-host participants are refused current-save access.
func (s *Session) IsHost() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.host
}

func (s *Session) SetHost(host bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.host = host
}

// CurrentSave returns the active save file name. ok is false until the
// first save or load event names one.
func (s *Session) CurrentSave() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentSave, s.currentSave != ""
}

func (s *Session) SetCurrentSave(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentSave = name
}

func (s *Session) ClearCurrentSave() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentSave = ""
}

// SlotFile maps a host save-slot identifier to its store file name.
// The mapping is fixed: slot n pairs with the file "save-n".
func SlotFile(slot int) (string, error) {
	if slot < 0 {
		return "", fmt.Errorf("invalid save slot %d", slot)
	}
	return fmt.Sprintf("save-%d", slot), nil
}
