package editor

import (
	"sync"
	"time"

	"github.com/Cyclone1070/codecollab/internal/debounce"
	"go.uber.org/zap"
)

// AutoSaver debounces saves of the active tab. The first observation is the
// baseline and never triggers a save; every later change of tab or content
// restarts the timer, and when it fires the last observed tab is saved once.
// Empty content is never auto-saved.
type AutoSaver struct {
	save   func(tabID string)
	logger *zap.Logger
	timer  *debounce.Debouncer

	mu          sync.Mutex
	primed      bool
	lastTab     string
	lastContent string
}

func NewAutoSaver(save func(tabID string), delay time.Duration, logger *zap.Logger) *AutoSaver {
	if save == nil {
		panic("save is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AutoSaver{save: save, logger: logger, timer: debounce.New(delay)}
}

// Observe records the active tab's current content.
func (a *AutoSaver) Observe(tabID, content string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.primed {
		a.primed = true
		a.lastTab, a.lastContent = tabID, content
		return
	}
	if tabID == a.lastTab && content == a.lastContent {
		return
	}
	a.lastTab, a.lastContent = tabID, content
	a.timer.Trigger(a.fire)
}

func (a *AutoSaver) fire() {
	a.mu.Lock()
	tabID, content := a.lastTab, a.lastContent
	a.mu.Unlock()

	if content == "" {
		return
	}
	a.logger.Debug("auto-saving", zap.String("id", tabID))
	a.save(tabID)
}

// Pending reports whether a save is scheduled.
func (a *AutoSaver) Pending() bool {
	return a.timer.Pending()
}

// Stop cancels any pending save. Later observations are ignored.
func (a *AutoSaver) Stop() {
	a.timer.Stop()
}

// Attach feeds the store's active tab into an AutoSaver that saves dirty
// tabs through the store. Call the returned function to detach.
func Attach(store *Store, delay time.Duration, logger *zap.Logger) (*AutoSaver, func()) {
	a := NewAutoSaver(func(tabID string) {
		if tab, ok := store.State().Tab(tabID); ok && tab.IsDirty {
			store.SaveFile(tabID)
		}
	}, delay, logger)

	if tab, ok := store.State().ActiveTab(); ok {
		a.Observe(tab.ID, tab.Content)
	}
	unsubscribe := store.Subscribe(func(st State) {
		if tab, ok := st.ActiveTab(); ok {
			a.Observe(tab.ID, tab.Content)
		}
	})
	return a, func() {
		unsubscribe()
		a.Stop()
	}
}
