package global

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/rs/zerolog/log"
)

func init() {
	setupLog()
	go exitOnSignal()
}

// exitOnSignal runs the cleanup tasks before an interrupted replay exits, so
// buffered alerts and open log files are not lost.
func exitOnSignal() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	sig := <-c
	log.Info().Str("signal", sig.String()).Msg("Got signal, cleaning up")
	Cleanup()
	os.Exit(1)
}

var (
	cleanupMu    sync.Mutex
	cleanupTasks []func()
)

// RegisterCleanupTask adds a task to run on exit, last registered first.
func RegisterCleanupTask(task func()) {
	cleanupMu.Lock()
	defer cleanupMu.Unlock()
	cleanupTasks = append(cleanupTasks, task)
}

// Cleanup runs and forgets the registered tasks. A second call is a no-op
// unless new tasks were registered in between.
func Cleanup() {
	cleanupMu.Lock()
	tasks := cleanupTasks
	cleanupTasks = nil
	cleanupMu.Unlock()

	for i := len(tasks) - 1; i >= 0; i-- {
		tasks[i]()
	}
}
