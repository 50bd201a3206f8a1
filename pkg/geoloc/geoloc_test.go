package geoloc

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFeed(t *testing.T, path, content string) {
	t.Helper()
	// Write-then-rename, the way a platform bridge replaces the feed.
	tmp := path + ".tmp"
	require.NoError(t, os.WriteFile(tmp, []byte(content), 0644))
	require.NoError(t, os.Rename(tmp, path))
}

func authorize(t *testing.T, p *Provider) {
	t.Helper()
	p.RequestPermission()
	require.Eventually(t, func() bool {
		return p.AuthState() == Authorized
	}, 2*time.Second, 10*time.Millisecond)
}

func TestFixString(t *testing.T) {
	f := Fix{Latitude: 48.856614, Longitude: 2.3522219}
	assert.Equal(t, "48.85661, 2.35222", f.String())
}

func TestNoFixBeforeFirstUpdate(t *testing.T) {
	dir := t.TempDir()
	p := New(filepath.Join(dir, "fix.json"), nil)

	_, ok := p.CurrentLocation()
	assert.False(t, ok)

	authorize(t, p)
	require.NoError(t, p.StartUpdating())
	defer p.StopUpdating()

	// Feed file does not exist yet, so still no fix.
	_, ok = p.CurrentLocation()
	assert.False(t, ok)
}

func TestPermissionDeniedOnUnreadableFeed(t *testing.T) {
	dir := t.TempDir()
	// The feed's parent is a regular file, so neither the feed nor its
	// directory can ever be read.
	blocker := filepath.Join(dir, "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	p := New(filepath.Join(blocker, "fix.json"), nil)
	p.RequestPermission()
	require.Eventually(t, func() bool {
		return p.AuthState() == Denied
	}, 2*time.Second, 10*time.Millisecond)

	assert.Error(t, p.StartUpdating())
}

func TestPermissionStateNotifiesSubscribers(t *testing.T) {
	dir := t.TempDir()
	p := New(filepath.Join(dir, "fix.json"), nil)

	states := make(chan AuthState, 1)
	p.SubscribeAuth(func(s AuthState) { states <- s })

	p.RequestPermission()
	select {
	case s := <-states:
		assert.Equal(t, Authorized, s)
	case <-time.After(2 * time.Second):
		t.Fatal("no authorization state change delivered")
	}
}

func TestExistingFeedReadOnStart(t *testing.T) {
	dir := t.TempDir()
	feed := filepath.Join(dir, "fix.json")
	writeFeed(t, feed, `{"latitude": 59.32932, "longitude": 18.06858}`)

	p := New(feed, nil)
	authorize(t, p)
	require.NoError(t, p.StartUpdating())
	defer p.StopUpdating()

	fix, ok := p.CurrentLocation()
	require.True(t, ok)
	assert.Equal(t, "59.32932, 18.06858", fix.String())
}

func TestNewFixOverwritesSlot(t *testing.T) {
	dir := t.TempDir()
	feed := filepath.Join(dir, "fix.json")

	p := New(feed, nil)
	fixes := make(chan Fix, 4)
	p.Subscribe(func(f Fix) { fixes <- f })

	authorize(t, p)
	require.NoError(t, p.StartUpdating())
	defer p.StopUpdating()

	writeFeed(t, feed, `{"latitude": 41.0, "longitude": 29.0}`)
	select {
	case <-fixes:
	case <-time.After(2 * time.Second):
		t.Fatal("first fix not delivered")
	}

	writeFeed(t, feed, `{"latitude": 52.0, "longitude": 13.0}`)
	require.Eventually(t, func() bool {
		fix, ok := p.CurrentLocation()
		return ok && fix.Latitude == 52.0 && fix.Longitude == 13.0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestBadFeedContentKeepsLastFix(t *testing.T) {
	dir := t.TempDir()
	feed := filepath.Join(dir, "fix.json")
	writeFeed(t, feed, `{"latitude": 35.6764, "longitude": 139.65}`)

	p := New(feed, nil)
	authorize(t, p)
	require.NoError(t, p.StartUpdating())
	defer p.StopUpdating()

	before, ok := p.CurrentLocation()
	require.True(t, ok)

	writeFeed(t, feed, `not json at all`)

	// Give the watcher a moment to process the bad write, then make
	// sure the previous fix survived.
	time.Sleep(200 * time.Millisecond)
	after, ok := p.CurrentLocation()
	require.True(t, ok)
	assert.Equal(t, before, after)
}

func TestStopUpdatingKeepsLastFix(t *testing.T) {
	dir := t.TempDir()
	feed := filepath.Join(dir, "fix.json")
	writeFeed(t, feed, `{"latitude": 1.0, "longitude": 2.0}`)

	p := New(feed, nil)
	authorize(t, p)
	require.NoError(t, p.StartUpdating())
	p.StopUpdating()

	fix, ok := p.CurrentLocation()
	require.True(t, ok)
	assert.Equal(t, 1.0, fix.Latitude)

	// Start/stop cycles back to a working stream.
	require.NoError(t, p.StartUpdating())
	p.StopUpdating()
}
