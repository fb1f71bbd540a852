package utils

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/Renal37/dress-settlement/internal/logger"
	"go.uber.org/zap"
)

// HandleTerminationProcess runs cleanup once on SIGINT or SIGTERM and exits.
func HandleTerminationProcess(cleanup func()) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-c
		logger.Log.Info("shutting down", zap.String("signal", sig.String()))
		cleanup()
		os.Exit(0)
	}()
}
