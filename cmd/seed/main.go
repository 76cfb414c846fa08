package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	seedcmd "github.com/louisbranch/constellation/internal/cmd/seed"
)

func main() {
	cfg, err := seedcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[SEED] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := seedcmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to seed: %v", err)
	}
}
