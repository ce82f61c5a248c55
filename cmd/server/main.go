// Command server runs the bakabot HTTP server: health probes, the phrase API
// and the Discord interactions endpoint.
//
// Usage:
//
//	server
//
// Configuration comes from CONFIG_PATH (default ./config.yaml) and the
// environment.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/bakabot/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}
