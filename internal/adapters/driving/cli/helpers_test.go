package cli

import (
	"bytes"
	"context"

	"github.com/custodia-labs/jsonstore/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/jsonstore/internal/core/services"
)

const testDataDir = "/data"

// scriptedWatcher returns whatever its script produces.
type scriptedWatcher struct {
	script func(dir string) (<-chan string, <-chan error)
}

func (w *scriptedWatcher) Watch(_ context.Context, dir string) (<-chan string, <-chan error) {
	return w.script(dir)
}

// setupTestServices wires the commands to in-memory adapters.
// The returned cleanup restores the previous state.
func setupTestServices() (*memory.JSONFiles, *scriptedWatcher, func()) {
	prevDeps, prevFactory := deps, factory

	files := memory.NewJSONFiles(testDataDir)
	store := services.NewJSONStore(files)
	watcher := &scriptedWatcher{script: func(string) (<-chan string, <-chan error) {
		paths := make(chan string)
		errs := make(chan error)
		close(paths)
		close(errs)
		return paths, errs
	}}

	deps = &Services{
		Store:    store,
		Settings: services.NewSettingsService(memory.NewConfigStore()),
		Refresh:  services.NewRefresher(store, watcher, testDataDir),
	}
	factory = nil
	resetFlags()

	return files, watcher, func() {
		deps, factory = prevDeps, prevFactory
		resetFlags()
	}
}

func resetFlags() {
	getDefault = ""
	listValues = false
	dataDir = ""
	configDir = ""
	verbose = false
}

// execute runs the root command with args and returns its output.
func execute(args ...string) (string, error) {
	return executeWithInput("", args...)
}

func executeWithInput(stdin string, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(bytes.NewBufferString(stdin))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}
