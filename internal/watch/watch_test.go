package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldIgnore(t *testing.T) {
	tests := []struct {
		path   string
		ignore bool
	}{
		{"/src/page.md", false},
		{"/src/dir/notes.skip.md", false},
		{"/src/.hidden", true},
		{"/src/.page.md.swp", true},
		{"/src/page.md~", true},
		{"/src/page.md.swx", true},
		{"/src/#page.md#", true},
		{"/src/.#page.md", true},
		{"/src/Thumbs.db", true},
		{"/src/4913", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.ignore, ShouldIgnore(tt.path))
		})
	}
}

func TestDebouncerCoalesces(t *testing.T) {
	var fired atomic.Int32
	d := newDebouncer(30*time.Millisecond, func() { fired.Add(1) })

	for range 5 {
		d.trigger()
		time.Sleep(5 * time.Millisecond)
	}

	assert.Eventually(t, func() bool { return fired.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
}

func TestDebouncerStop(t *testing.T) {
	var fired atomic.Int32
	d := newDebouncer(20*time.Millisecond, func() { fired.Add(1) })

	d.trigger()
	d.stop()
	d.trigger()

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
}

func TestSchedulerCollapsesPendingRequests(t *testing.T) {
	s := newScheduler()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	release := make(chan struct{})
	started := make(chan struct{}, 10)
	var runs atomic.Int32
	var running atomic.Int32
	var overlapped atomic.Bool

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.run(ctx, func(context.Context) {
			if running.Add(1) > 1 {
				overlapped.Store(true)
			}
			runs.Add(1)
			started <- struct{}{}
			if runs.Load() == 1 {
				<-release
			}
			running.Add(-1)
		})
	}()

	s.request()
	<-started
	for range 5 {
		s.request()
	}
	close(release)

	<-started
	time.Sleep(30 * time.Millisecond)
	cancel()
	<-done

	assert.Equal(t, int32(2), runs.Load())
	assert.False(t, overlapped.Load())
}

func TestWatcherRecompilesOnChange(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.md"), []byte("a"), 0o600))

	var mu sync.Mutex
	runs := 0
	compile := func(context.Context) error {
		mu.Lock()
		defer mu.Unlock()
		runs++
		return errors.New("compile errors are logged, not fatal")
	}
	count := func() int {
		mu.Lock()
		defer mu.Unlock()
		return runs
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- New(root, compile, WithDebounce(20*time.Millisecond)).Run(ctx) }()

	require.Eventually(t, func() bool { return count() == 1 }, 2*time.Second, 10*time.Millisecond)

	// A new directory is picked up and changes inside it trigger a compile.
	sub := filepath.Join(root, "sub")
	require.NoError(t, os.MkdirAll(sub, 0o750))
	require.Eventually(t, func() bool { return count() >= 2 }, 2*time.Second, 10*time.Millisecond)

	before := count()
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(sub, "b.md"), []byte("b"), 0o600))
	require.Eventually(t, func() bool { return count() > before }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcherMissingRoot(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "missing"), func(context.Context) error { return nil })
	err := w.Run(context.Background())
	require.Error(t, err)
}
