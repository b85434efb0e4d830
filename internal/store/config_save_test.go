package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestSaveConfig_ConcurrentWriters_DoesNotCorruptConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("FILTERTREE_CONFIG_DIR", dir)

	if err := SaveConfig("", DefaultConfig()); err != nil {
		t.Fatalf("SaveConfig(seed): %v", err)
	}

	const n = 32
	errCh := make(chan error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			cfg, err := LoadConfig("")
			if err != nil {
				errCh <- err
				return
			}
			cfg.IndentPerLevel = 2 + i%4
			cfg.Seed = fmt.Sprintf("/tmp/seed-%d.json", i)
			if err := SaveConfig("", cfg); err != nil {
				errCh <- err
			}
		}(i)
	}

	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Errorf("concurrent SaveConfig: %v", err)
	}
	if t.Failed() {
		return
	}

	raw, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("read config.yaml: %v", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		t.Fatalf("config.yaml corrupted: %v\nraw:\n%s", err, raw)
	}
	if !strings.HasPrefix(cfg.Seed, "/tmp/seed-") {
		t.Fatalf("expected one writer's seed to win, got %q", cfg.Seed)
	}

	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, e := range ents {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Fatalf("leftover temp file: %s", e.Name())
		}
	}
}

func TestOpenJournal_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "journal.sqlite")
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	j, err := OpenJournal(ctx, path)
	if err != nil {
		t.Fatalf("OpenJournal: %v", err)
	}
	defer j.Close()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected journal file: %v", err)
	}
}
