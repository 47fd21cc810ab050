// Command framekeyd runs the framekey daemon without the CLI wrapper.
package main

import (
	"context"
	"log"

	"framekey/internal/config"
	"framekey/internal/daemonrun"
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
