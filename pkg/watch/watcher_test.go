package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/goliatone/go-cardkit/pkg/host"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const initialDoc = `title: Skills
elements:
  - tag: tag-badge
    attributes:
      label-text: Go
      level: beginner
`

const updatedDoc = `title: Skills
elements:
  - tag: tag-badge
    attributes:
      label-text: Go
      level: expert
`

func writeDoc(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func mountFile(t *testing.T, path string) *host.Host {
	t.Helper()
	doc, err := host.LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	h := host.New()
	if err := h.Mount(doc); err != nil {
		t.Fatalf("mount: %v", err)
	}
	h.Flush()
	return h
}

func TestReloadAppliesChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.yaml")
	writeDoc(t, path, initialDoc)
	h := mountFile(t, path)
	before := h.Elements()[0]

	var snapshots []host.Snapshot
	w, err := New(path, h, OnChange(func(s host.Snapshot) { snapshots = append(snapshots, s) }))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	writeDoc(t, path, updatedDoc)
	if err := w.Reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}

	if len(snapshots) != 1 || !snapshots[0].Views[0].HasClass("level-expert") {
		t.Fatalf("expected one snapshot with the new level, got %+v", snapshots)
	}
	if h.Elements()[0] != before {
		t.Fatalf("reload should mutate the existing element")
	}
	if w.Reloads() != 1 {
		t.Fatalf("unexpected reload count %d", w.Reloads())
	}
}

func TestReloadKeepsPageOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.yaml")
	writeDoc(t, path, initialDoc)
	h := mountFile(t, path)

	var failures []error
	w, err := New(path, h, OnError(func(err error) { failures = append(failures, err) }))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	writeDoc(t, path, "elements:\n  - tag: profile-card\n")
	if err := w.Reload(); err == nil {
		t.Fatalf("expected reload error")
	}
	if len(failures) != 1 {
		t.Fatalf("expected error callback, got %d", len(failures))
	}
	if !h.Snapshot().Views[0].HasClass("level-beginner") {
		t.Fatalf("failed reload must keep the previous page")
	}
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.yaml")
	writeDoc(t, path, initialDoc)
	h := mountFile(t, path)

	changed := make(chan host.Snapshot, 4)
	w, err := New(path, h,
		WithDebounce(20*time.Millisecond),
		OnChange(func(s host.Snapshot) { changed <- s }),
	)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer w.Stop()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("second start should be a no-op: %v", err)
	}

	writeDoc(t, path, updatedDoc)

	select {
	case snap := <-changed:
		if !snap.Views[0].HasClass("level-expert") {
			t.Fatalf("unexpected classes %v", snap.Views[0].Classes())
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for reload")
	}
}

func TestStopWithoutStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.yaml")
	writeDoc(t, path, initialDoc)
	w, err := New(path, mountFile(t, path))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	w.Stop()
}

func TestNewRequiresHost(t *testing.T) {
	if _, err := New("page.yaml", nil); err == nil {
		t.Fatalf("expected error without host")
	}
}
