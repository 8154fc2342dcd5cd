// Package internal wires the wallet application together: ledger, journal,
// dispatcher, intent resolution, event publishing and the dashboard.
package internal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vadiminshakov/centi/config"
	"github.com/vadiminshakov/centi/internal/agent"
	"github.com/vadiminshakov/centi/internal/events"
	"github.com/vadiminshakov/centi/internal/events/kafka"
	"github.com/vadiminshakov/centi/internal/ledger"
	"github.com/vadiminshakov/centi/internal/ratelimit"
	"github.com/vadiminshakov/centi/internal/services/dispatcher"
	"github.com/vadiminshakov/centi/internal/services/pricing"
	"github.com/vadiminshakov/centi/internal/storage/journal"
	"github.com/vadiminshakov/centi/internal/web"
)

var exitWords = map[string]struct{}{
	"exit": {},
	"quit": {},
	"bye":  {},
}

// Wallet is a single running wallet instance: the conversational agent plus
// the web dashboard over one shared ledger.
type Wallet struct {
	Agent  *agent.Agent
	Ledger *ledger.Ledger
	Web    *web.Server

	journal   *journal.Journal
	publisher events.Publisher
	conf      config.Config
	logger    *zap.Logger
}

// NewWallet builds a wallet instance from configuration.
func NewWallet(conf config.Config, logger *zap.Logger) (*Wallet, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var txJournal *journal.Journal
	var ledgerJournal ledger.TxJournal
	if conf.DataDir != "" {
		var err error
		txJournal, err = journal.Open(conf.DataDir)
		if err != nil {
			return nil, errors.Wrap(err, "open transaction journal")
		}
		ledgerJournal = txJournal
	}

	led, err := ledger.New(conf.InitialBalance, ledgerJournal, logger)
	if err != nil {
		if txJournal != nil {
			_ = txJournal.Close()
		}
		return nil, errors.Wrap(err, "create ledger")
	}

	prices := pricing.Default()

	q, err := newQuoter(conf)
	if err != nil {
		if txJournal != nil {
			_ = txJournal.Close()
		}
		return nil, err
	}

	var publisher events.Publisher
	if len(conf.KafkaBrokers) > 0 {
		publisher = kafka.NewPublisher(conf.KafkaBrokers)
		logger.Info("publishing transaction events to kafka",
			zap.Strings("brokers", conf.KafkaBrokers))
	}

	limiter := ratelimit.New(conf.RateLimitPerMinute, time.Minute)
	disp := dispatcher.New(prices, led, newBackends(q), limiter, publisher, logger)
	resolver := newResolver(conf, prices, logger)

	// hand the server a plain nil when no journal is configured, a typed
	// nil would pass its interface check
	var srv *web.Server
	if txJournal != nil {
		srv = web.NewServer(conf.WebAddr, led, txJournal, logger)
	} else {
		srv = web.NewServer(conf.WebAddr, led, nil, logger)
	}

	return &Wallet{
		Agent:     agent.New(resolver, disp, led, prices, logger),
		Ledger:    led,
		Web:       srv,
		journal:   txJournal,
		publisher: publisher,
		conf:      conf,
		logger:    logger,
	}, nil
}

// Run serves the dashboard and reads queries from in until ctx is cancelled
// or the user types an exit word.
func (w *Wallet) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		w.logger.Info("wallet dashboard started", zap.String("addr", w.conf.WebAddr))
		return w.Web.Start(ctx)
	})

	g.Go(func() error {
		defer cancel()
		return w.repl(ctx, in, out)
	})

	return g.Wait()
}

func (w *Wallet) repl(ctx context.Context, in io.Reader, out io.Writer) error {
	fmt.Fprintf(out, "Agent wallet ready. Balance: %s USDC. Ask me something (exit to quit).\n",
		w.Ledger.Balance().String())

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if _, ok := exitWords[strings.ToLower(line)]; ok {
			fmt.Fprintf(out, "Final balance: %s USDC, total spent: %s USDC. Bye.\n",
				w.Ledger.Balance().String(), w.Ledger.TotalSpent().String())
			return nil
		}

		reply, err := w.Agent.Process(ctx, line)
		if err != nil {
			w.logger.Error("query failed", zap.Error(err))
			fmt.Fprintf(out, "Something went wrong: %v\n", err)
			continue
		}
		fmt.Fprintln(out, reply)
	}
}

// Close releases the journal and the event publisher.
func (w *Wallet) Close() {
	if w.journal != nil {
		if err := w.journal.Close(); err != nil {
			w.logger.Warn("close journal", zap.Error(err))
		}
	}
	if closer, ok := w.publisher.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			w.logger.Warn("close publisher", zap.Error(err))
		}
	}
}
