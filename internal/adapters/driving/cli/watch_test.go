package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchFile_CallsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom_rules.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"custom_rules":[]}`), 0600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 8)
	done := make(chan error, 1)
	go func() {
		done <- watchFile(ctx, path, func(context.Context) {
			changed <- struct{}{}
		})
	}()

	// Other files in the directory are ignored. Keep writing the target
	// until the watcher is registered and reports it.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0600))
	deadline := time.After(5 * time.Second)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

wait:
	for {
		select {
		case <-changed:
			break wait
		case <-ticker.C:
			require.NoError(t, os.WriteFile(path, []byte(`{"custom_rules":[]}`), 0600))
		case <-deadline:
			t.Fatal("timed out waiting for change notification")
		}
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watchFile did not return after cancel")
	}
}

func TestWatchFile_MissingDirectory(t *testing.T) {
	err := watchFile(context.Background(), filepath.Join(t.TempDir(), "missing", "rules.json"), func(context.Context) {})
	assert.Error(t, err)
}

func TestRuleWatchCmd_RequiresPath(t *testing.T) {
	setupTestServices(t)

	_, _, err := execute(t, "", "rule", "watch")
	assert.Error(t, err)
}
