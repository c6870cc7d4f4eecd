package editor

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type saveRecorder struct {
	mu    sync.Mutex
	saves []string
}

func (r *saveRecorder) save(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves = append(r.saves, id)
}

func (r *saveRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.saves)
}

const testDelay = 40 * time.Millisecond

func TestAutoSaver_FirstObservationSkipped(t *testing.T) {
	rec := &saveRecorder{}
	a := NewAutoSaver(rec.save, testDelay, nil)

	a.Observe("tab", "initial")

	assert.False(t, a.Pending())
	time.Sleep(2 * testDelay)
	assert.Zero(t, rec.count())
}

func TestAutoSaver_DebounceSavesOncePerQuietPeriod(t *testing.T) {
	rec := &saveRecorder{}
	a := NewAutoSaver(rec.save, testDelay, nil)
	a.Observe("tab", "")

	for _, c := range []string{"p", "pr", "pri", "print"} {
		a.Observe("tab", c)
		time.Sleep(testDelay / 4)
	}

	require.Eventually(t, func() bool { return rec.count() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(2 * testDelay)
	assert.Equal(t, 1, rec.count())
	assert.False(t, a.Pending())
}

func TestAutoSaver_UnchangedObservationDoesNotRestart(t *testing.T) {
	rec := &saveRecorder{}
	a := NewAutoSaver(rec.save, testDelay, nil)
	a.Observe("tab", "a")

	a.Observe("tab", "b")
	a.Observe("tab", "b")

	require.Eventually(t, func() bool { return rec.count() == 1 }, time.Second, 5*time.Millisecond)
}

func TestAutoSaver_EmptyContentNotSaved(t *testing.T) {
	rec := &saveRecorder{}
	a := NewAutoSaver(rec.save, testDelay, nil)
	a.Observe("tab", "x")

	a.Observe("tab", "")

	time.Sleep(3 * testDelay)
	assert.Zero(t, rec.count())
}

func TestAutoSaver_StopCancelsPendingSave(t *testing.T) {
	rec := &saveRecorder{}
	a := NewAutoSaver(rec.save, testDelay, nil)
	a.Observe("tab", "a")
	a.Observe("tab", "b")
	require.True(t, a.Pending())

	a.Stop()
	a.Observe("tab", "c")

	time.Sleep(3 * testDelay)
	assert.Zero(t, rec.count())
}

func TestAttach_SavesFinalContent(t *testing.T) {
	s, files := newTestStore(t)
	f := s.CreateFile("main.py", nil)
	s.OpenFile(f.ID)
	saver, detach := Attach(s, testDelay, nil)
	defer detach()

	s.UpdateTabContent(f.ID, "print(")
	s.UpdateTabContent(f.ID, "print(1")
	s.UpdateTabContent(f.ID, "print(1)")

	require.Eventually(t, func() bool {
		tab, _ := s.State().Tab(f.ID)
		return !tab.IsDirty
	}, time.Second, 5*time.Millisecond)
	node, _ := files.GetByID(f.ID)
	assert.Equal(t, "print(1)", node.ContentString())
	assert.False(t, saver.Pending())
}

func TestAttach_DetachStopsSaving(t *testing.T) {
	s, files := newTestStore(t)
	f := s.CreateFile("main.py", nil)
	s.OpenFile(f.ID)
	_, detach := Attach(s, testDelay, nil)

	s.UpdateTabContent(f.ID, "draft")
	detach()

	time.Sleep(3 * testDelay)
	node, _ := files.GetByID(f.ID)
	assert.Equal(t, "", node.ContentString())
	tab, _ := s.State().Tab(f.ID)
	assert.True(t, tab.IsDirty)
}
