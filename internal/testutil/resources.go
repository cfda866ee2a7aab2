package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// ResourceDir writes files (name -> contents) into a fresh temporary
// directory and returns its path.
func ResourceDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, contents := range files {
		WriteResource(t, dir, name, contents)
	}
	return dir
}

// WriteResource creates or replaces one file inside dir.
func WriteResource(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// BackgroundsJSON is a three-entry catalog whose media files do not exist.
const BackgroundsJSON = `[
  {"id": "alpha", "file": "alpha.mp4", "type": "video", "label": "Alpha", "overlayIntensity": 0.4},
  {"id": "beta", "file": "beta.mp4", "type": "video"},
  {"id": "still", "file": "still.jpg", "type": "image", "label": "Still", "overlayIntensity": 0.7}
]`

// RevealTimelineJSON gates both regions.
const RevealTimelineJSON = `[
  {"at": 0, "action": "reveal.nav"},
  {"at": 2, "action": "reveal.buttons", "payload": {"stagger": 0.1}}
]`
