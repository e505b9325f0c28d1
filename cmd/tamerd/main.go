// Command tamerd runs the tamer daemon directly, without the CLI wrapper.
// It reads the default configuration and blocks until SIGINT or SIGTERM.
package main

import (
	"context"
	"log"

	"tamer/internal/config"
	"tamer/internal/daemonrun"
)

func main() {
	cfg, _, _, err := config.Load("")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if err := daemonrun.Run(context.Background(), cfg, daemonrun.Options{}); err != nil {
		log.Fatalf("run daemon: %v", err)
	}
}
