package spotlight

import (
	"sync"

	"spotlight/internal/config"
)

// HostState is the session state a lifecycle host keeps for the palette
type HostState struct {
	IsOpen        bool
	IsLoading     bool
	Query         string
	SelectedIndex int
}

// StatePatch is a partial HostState update; nil fields are left alone
type StatePatch struct {
	IsOpen        *bool
	IsLoading     *bool
	Query         *string
	SelectedIndex *int
}

// Host is the lifecycle capability the palette depends on: it receives the
// configuration, holds state and is torn down with the palette.
type Host interface {
	Initialize(cfg config.Config)
	State() HostState
	SetState(patch StatePatch)
	Destroy()
}

// MemoryHost is an in-process Host
type MemoryHost struct {
	mu        sync.RWMutex
	cfg       config.Config
	state     HostState
	destroyed bool
}

// NewMemoryHost creates an empty host
func NewMemoryHost() *MemoryHost {
	return &MemoryHost{}
}

func (h *MemoryHost) Initialize(cfg config.Config) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cfg = cfg
	h.state = HostState{}
	h.destroyed = false
}

func (h *MemoryHost) State() HostState {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state
}

func (h *MemoryHost) SetState(patch StatePatch) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.destroyed {
		return
	}
	if patch.IsOpen != nil {
		h.state.IsOpen = *patch.IsOpen
	}
	if patch.IsLoading != nil {
		h.state.IsLoading = *patch.IsLoading
	}
	if patch.Query != nil {
		h.state.Query = *patch.Query
	}
	if patch.SelectedIndex != nil {
		h.state.SelectedIndex = *patch.SelectedIndex
	}
}

func (h *MemoryHost) Destroy() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.destroyed = true
	h.state = HostState{}
}

// Config returns the configuration the host was initialized with
func (h *MemoryHost) Config() config.Config {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.cfg
}

// Destroyed reports whether Destroy has run
func (h *MemoryHost) Destroyed() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.destroyed
}
