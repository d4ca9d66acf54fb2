package reload

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/thetrustgroup/trustsite/internal/catalog"
)

func writeContentDir(t *testing.T, posts string) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		catalog.PostsFile: posts,
		catalog.JobsFile:  `[]`,
		catalog.WorkFile:  `[]`,
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

const onePost = `[{"id":"p1","slug":"a","title":"A","category":"strategy","published_at":"2025-01-01T00:00:00Z"}]`
const twoPosts = `[
	{"id":"p1","slug":"a","title":"A","category":"strategy","published_at":"2025-01-01T00:00:00Z"},
	{"id":"p2","slug":"b","title":"B","category":"strategy","published_at":"2025-02-01T00:00:00Z"}
]`

func TestReloadSwapsGeneration(t *testing.T) {
	dir := writeContentDir(t, onePost)
	first, err := catalog.Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	r := &Reloader{Library: catalog.NewLibrary(first), DataDir: dir}
	r.Start(false)

	if err := os.WriteFile(filepath.Join(dir, catalog.PostsFile), []byte(twoPosts), 0o644); err != nil {
		t.Fatal(err)
	}
	r.reload()
	if got := len(r.Library.Current().Posts); got != 2 {
		t.Fatalf("expected 2 posts after reload, got %d", got)
	}
}

func TestReloadKeepsPreviousGenerationOnBadContent(t *testing.T) {
	dir := writeContentDir(t, onePost)
	first, err := catalog.Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	r := &Reloader{Library: catalog.NewLibrary(first), DataDir: dir}
	r.Start(false)

	if err := os.WriteFile(filepath.Join(dir, catalog.PostsFile), []byte(`{broken`), 0o644); err != nil {
		t.Fatal(err)
	}
	r.reload()
	if got := len(r.Library.Current().Posts); got != 1 {
		t.Fatalf("broken content must not evict the live generation, got %d posts", got)
	}
}

func TestIsContentEvent(t *testing.T) {
	cases := []struct {
		event fsnotify.Event
		want  bool
	}{
		{fsnotify.Event{Name: "posts.json", Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: "jobs.json", Op: fsnotify.Create}, true},
		{fsnotify.Event{Name: "work.json", Op: fsnotify.Remove}, true},
		{fsnotify.Event{Name: "posts.json", Op: fsnotify.Chmod}, false},
		{fsnotify.Event{Name: "notes.txt", Op: fsnotify.Write}, false},
		{fsnotify.Event{Name: ".posts.json.swp", Op: fsnotify.Write}, false},
	}
	for _, c := range cases {
		if got := isContentEvent(c.event); got != c.want {
			t.Errorf("isContentEvent(%v %v) = %v, want %v", c.event.Name, c.event.Op, got, c.want)
		}
	}
}

func TestIsDue(t *testing.T) {
	now := time.Now()
	if isDue("@daily", now.Add(-time.Hour)) {
		t.Error("@daily fired after one hour")
	}
	if !isDue("@daily", now.Add(-25*time.Hour)) {
		t.Error("@daily did not fire after a day")
	}
	if isDue("@hourly", now.Add(-time.Minute)) {
		t.Error("@hourly fired after a minute")
	}
	if !isDue("@hourly", now.Add(-2*time.Hour)) {
		t.Error("@hourly did not fire after two hours")
	}
	// every-minute cron expression is always due after five minutes
	if !isDue("* * * * *", now.Add(-5*time.Minute)) {
		t.Error("per-minute cron did not fire")
	}
	// unparseable falls back to daily
	if isDue("nonsense", now.Add(-time.Hour)) {
		t.Error("bad expression must fall back to @daily")
	}
}

func TestWatcherTriggersReload(t *testing.T) {
	dir := writeContentDir(t, onePost)
	first, err := catalog.Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	r := &Reloader{Library: catalog.NewLibrary(first), DataDir: dir, Stop: make(chan struct{})}
	if err := r.Start(true); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer func() {
		close(r.Stop)
		r.Close()
	}()

	if err := os.WriteFile(filepath.Join(dir, catalog.PostsFile), []byte(twoPosts), 0o644); err != nil {
		t.Fatal(err)
	}
	deadline := time.After(5 * time.Second)
	for {
		if len(r.Library.Current().Posts) == 2 {
			return
		}
		select {
		case <-deadline:
			t.Fatal("watcher never picked up the edit")
		case <-time.After(50 * time.Millisecond):
		}
	}
}
