// Command centi runs a pay-per-request agent wallet: free-text queries are
// resolved to paid service calls, each call is charged against a simulated
// USDC balance and journaled. A web dashboard streams committed
// transactions.
//
// Usage:
//
//	centi setup            (interactive configuration wizard)
//	centi --config config.yaml
//	centi (uses CLI arguments)
//
// Optional environment variables (also read from .env):
//
//	LLM_API_KEY for LLM intent resolution
//	BINANCE_API_KEY, BINANCE_API_SECRET / BYBIT_API_KEY, BYBIT_API_SECRET
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/vadiminshakov/centi/config"
	"github.com/vadiminshakov/centi/internal"
	"github.com/vadiminshakov/centi/internal/setup"
)

func main() {
	_ = godotenv.Load()

	var conf config.Config
	var err error
	if len(os.Args) > 1 && os.Args[1] == "setup" {
		if err := setup.RunTUI(); err != nil {
			log.Fatal(err)
		}
		// the wizard may have written a fresh .env
		_ = godotenv.Load()
		conf, err = config.FromFile("config.gen.yaml")
	} else {
		conf, err = config.Get()
	}
	if err != nil {
		log.Fatal(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	wallet, err := internal.NewWallet(conf, logger)
	if err != nil {
		logger.Fatal("failed to build wallet", zap.Error(err))
	}
	defer wallet.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := wallet.Run(ctx, os.Stdin, os.Stdout); err != nil && ctx.Err() == nil {
		logger.Fatal("wallet stopped", zap.Error(err))
	}
}
