package signal

import (
	"os"
	"os/signal"
	"syscall"
)

// interruptSignals defines the signals to catch in order to do a proper
// shutdown.
var interruptSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

// InterruptListener listens for OS signals such as SIGINT (Ctrl+C) and
// returns a channel that is closed when the first one is received.
// Signals received after the first one are logged and otherwise ignored.
func InterruptListener() <-chan struct{} {
	return listen(interruptSignals...)
}

func listen(signals ...os.Signal) <-chan struct{} {
	c := make(chan struct{})
	interruptChannel := make(chan os.Signal, 1)
	signal.Notify(interruptChannel, signals...)

	go func() {
		sig := <-interruptChannel
		log.Infof("Received signal (%s). Shutting down...", sig)
		close(c)

		for sig := range interruptChannel {
			log.Infof("Received signal (%s). Already shutting down...", sig)
		}
	}()

	return c
}
