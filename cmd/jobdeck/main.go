// Command jobdeck is a terminal client for a job-board REST service.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/jobdeck/jobdeck/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	apiBase := flag.String("api", "", "override job board API base URL (optional)")
	flag.Parse()

	// A .env next to the binary may carry JOBDECK_API_URL.
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{ConfigPath: *configPath, APIBase: *apiBase}
	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "jobdeck: %v\n", err)
		return 1
	}
	return 0
}
