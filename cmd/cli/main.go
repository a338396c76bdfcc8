package main

import (
	"context"
	"log"
	"os"

	"github.com/haulbay/haulbay-cli/internal/buildinfo"
	"github.com/haulbay/haulbay-cli/internal/client/cli"
	"github.com/haulbay/haulbay-cli/internal/client/config"
	"github.com/haulbay/haulbay-cli/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger := logging.NewZerologLogger(logging.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
		Output: os.Stderr,
	})

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
