package platform

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"
	"sync"
)

// Fatal is the Host used by the entry point: it logs, restores the terminal,
// prints the message to stderr and exits with status 1
type Fatal struct {
	Logger   *slog.Logger
	Finalize func()    // restores the terminal, may be nil
	Stderr   io.Writer // defaults to os.Stderr
	Exit     func(int) // defaults to os.Exit

	once sync.Once
}

// Error implements Host; only the first report is acted on
func (f *Fatal) Error(msg string) {
	f.once.Do(func() {
		if f.Logger != nil {
			f.Logger.Error("fatal", "msg", msg)
		}
		if f.Finalize != nil {
			f.Finalize()
		}

		w := f.Stderr
		if w == nil {
			w = os.Stderr
		}
		fmt.Fprintf(w, "\r\n\x1b[31mpigpen: %s\x1b[0m\r\n", msg)
		if s, ok := w.(interface{ Sync() error }); ok {
			s.Sync()
		}
	})

	exit := f.Exit
	if exit == nil {
		exit = os.Exit
	}
	exit(1)
}

// Recover turns a panic on the calling goroutine into a fatal report with a
// stack trace; use as defer f.Recover()
func (f *Fatal) Recover() {
	r := recover()
	if r == nil {
		return
	}
	f.Error(fmt.Sprintf("panic: %v\r\nStack Trace:\r\n%s", r, debug.Stack()))
}

// Go runs fn in a new goroutine whose panics go through the fatal path
func (f *Fatal) Go(fn func()) {
	go func() {
		defer f.Recover()
		fn()
	}()
}
