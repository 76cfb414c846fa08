package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	panelcmd "github.com/louisbranch/constellation/internal/cmd/panel"
)

func main() {
	cfg, err := panelcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[PANEL] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := panelcmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
