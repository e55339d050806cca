package shutdown

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/stormkit-io/fnmanagement/src/lib/slog"
)

var fns []func() error
var mux sync.Mutex
var once sync.Once

// Listen starts listening for termination signals. Once a signal is received
// the registered cleanup functions are executed and the process exits.
func Listen() {
	once.Do(func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

		go func() {
			<-c
			Cleanup()
			os.Exit(0)
		}()
	})
}

// Subscribe registers a cleanup function.
func Subscribe(fn func() error) {
	mux.Lock()
	defer mux.Unlock()
	fns = append(fns, fn)
}

// Cleanup runs the registered cleanup functions in reverse order
// of registration and forgets them.
func Cleanup() {
	mux.Lock()
	pending := fns
	fns = nil
	mux.Unlock()

	slog.Info("running clean up operations")

	for i := len(pending) - 1; i >= 0; i-- {
		if err := pending[i](); err != nil {
			slog.Errorf("error while shutting down: %s", err.Error())
		}
	}
}
