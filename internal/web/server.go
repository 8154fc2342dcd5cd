// Package web serves a minimal wallet dashboard: current balance plus a
// live feed of committed transactions over SSE.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vadiminshakov/centi/internal/domain"
)

const txPollInterval = 2 * time.Second

type balanceReader interface {
	Balance() decimal.Decimal
	TotalSpent() decimal.Decimal
}

type txReader interface {
	TransactionsAfter(index uint64) ([]domain.TransactionRecord, error)
}

// Server exposes HTTP endpoints serving the HTML UI, a balance endpoint and
// an SSE transaction stream.
type Server struct {
	Addr    string
	Wallet  balanceReader
	Journal txReader
	Logger  *zap.Logger
}

// NewServer creates a new web server instance.
func NewServer(addr string, wallet balanceReader, journal txReader, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{Addr: addr, Wallet: wallet, Journal: journal, Logger: logger}
}

// Start runs the HTTP server (blocking) and shuts it down when ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/balance", s.handleBalance)
	mux.HandleFunc("/transactions/stream", s.handleTransactionStream)

	server := &http.Server{
		Addr:              s.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexHTML)
}

func (s *Server) handleBalance(w http.ResponseWriter, _ *http.Request) {
	if s.Wallet == nil {
		http.Error(w, "wallet not available", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"balance":     s.Wallet.Balance().String(),
		"total_spent": s.Wallet.TotalSpent().String(),
	})
}

func (s *Server) handleTransactionStream(w http.ResponseWriter, r *http.Request) {
	if s.Journal == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprint(w, "transaction journal not available")
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// comment heartbeat every 30s so proxies keep the connection
	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	pollTicker := time.NewTicker(txPollInterval)
	defer pollTicker.Stop()

	lastIndex := s.parseLastEventID(r.Header.Get("Last-Event-ID"), r.URL.Query().Get("last_event_id"))
	sendTransactions := func() error {
		records, err := s.Journal.TransactionsAfter(lastIndex)
		if err != nil {
			return err
		}
		for _, record := range records {
			payload, err := json.Marshal(record.Tx)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "id: %d\n", record.Index)
			fmt.Fprintf(w, "event: transaction\n")
			fmt.Fprintf(w, "data: %s\n\n", payload)
			flusher.Flush()
			lastIndex = record.Index
		}
		return nil
	}

	if err := sendTransactions(); err != nil {
		http.Error(w, "failed to load transactions", http.StatusInternalServerError)
		s.Logger.Error("transaction stream initial load", zap.Error(err))
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			fmt.Fprintf(w, ": ping\n\n")
			flusher.Flush()
		case <-pollTicker.C:
			if err := sendTransactions(); err != nil {
				s.Logger.Warn("transaction stream poll", zap.Error(err))
			}
		}
	}
}

// parseLastEventID extracts an SSE event ID from either the Last-Event-ID
// header or a query parameter. The header wins; the query parameter lets
// manual reconnects resume from a known index.
func (s *Server) parseLastEventID(headerVal, queryVal string) uint64 {
	idStr := strings.TrimSpace(headerVal)
	if idStr == "" {
		idStr = strings.TrimSpace(queryVal)
	}
	if idStr == "" {
		return 0
	}

	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		s.Logger.Warn("invalid last event id", zap.String("id", idStr), zap.Error(err))
		return 0
	}
	return id
}

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Centi</title>
  <link rel="preconnect" href="https://fonts.googleapis.com">
  <link rel="preconnect" href="https://fonts.gstatic.com" crossorigin>
  <link href="https://fonts.googleapis.com/css2?family=Space+Mono:wght@400;700&display=swap" rel="stylesheet">
  <style>
    :root {
      --bg:#ffffff;
      --ink:#111111;
      --ink-mid:#4d4d4d;
      --ink-soft:#9c9c9c;
      --panel:#f6f6f6;
    }
    * { box-sizing:border-box; }
    body {
      margin:0;
      min-height:100vh;
      display:flex;
      align-items:center;
      justify-content:center;
      padding:2rem;
      background:var(--bg);
      color:var(--ink);
      font-family:'Space Mono','JetBrains Mono',monospace;
    }
    body::before {
      content:'';
      position:fixed;
      inset:0;
      background:
        linear-gradient(90deg, rgba(0,0,0,.02) 1px, transparent 1px),
        linear-gradient(rgba(0,0,0,.02) 1px, transparent 1px);
      background-size:12px 12px;
      pointer-events:none;
    }
    #app {
      width:min(900px, 96vw);
      background:var(--panel);
      border:3px solid var(--ink);
      padding:2rem;
      box-shadow:12px 12px 0 rgba(0,0,0,.15);
    }
    h1 { margin:0 0 .25rem; font-size:1.4rem; letter-spacing:.1em; text-transform:uppercase; }
    .sub { color:var(--ink-soft); font-size:.75rem; margin-bottom:1.5rem; }
    .stats { display:flex; gap:2rem; margin-bottom:1.5rem; }
    .stat { border:2px solid var(--ink); background:var(--bg); padding:1rem 1.5rem; flex:1; }
    .stat .label { font-size:.65rem; text-transform:uppercase; color:var(--ink-mid); }
    .stat .value { font-size:1.6rem; font-weight:700; }
    table { width:100%; border-collapse:collapse; font-size:.8rem; }
    th { text-align:left; text-transform:uppercase; font-size:.65rem; color:var(--ink-mid);
         border-bottom:2px solid var(--ink); padding:.4rem .5rem; }
    td { padding:.4rem .5rem; border-bottom:1px solid rgba(0,0,0,.1); }
    td.ref { color:var(--ink-soft); font-size:.7rem; }
    #empty { color:var(--ink-soft); padding:1rem .5rem; font-size:.8rem; }
    #status { float:right; font-size:.65rem; color:var(--ink-soft); }
  </style>
</head>
<body>
  <div id="app">
    <span id="status">connecting…</span>
    <h1>Centi</h1>
    <div class="sub">pay-per-request agent wallet</div>
    <div class="stats">
      <div class="stat"><div class="label">Balance</div><div class="value" id="balance">—</div></div>
      <div class="stat"><div class="label">Total spent</div><div class="value" id="spent">—</div></div>
    </div>
    <table>
      <thead><tr><th>Time</th><th>Service</th><th>Amount</th><th>Reference</th></tr></thead>
      <tbody id="txs"></tbody>
    </table>
    <div id="empty">no transactions yet</div>
  </div>
  <script>
    const statusEl = document.getElementById('status');
    const txsEl = document.getElementById('txs');
    const emptyEl = document.getElementById('empty');

    const refreshBalance = () => fetch('/api/balance')
      .then(r => r.json())
      .then(b => {
        document.getElementById('balance').textContent = b.balance + ' USDC';
        document.getElementById('spent').textContent = b.total_spent + ' USDC';
      })
      .catch(() => {});

    refreshBalance();
    setInterval(refreshBalance, 5000);

    const es = new EventSource('/transactions/stream');
    es.onopen = () => { statusEl.textContent = 'live'; };
    es.onerror = () => { statusEl.textContent = 'reconnecting…'; };
    es.addEventListener('transaction', (ev) => {
      const tx = JSON.parse(ev.data);
      emptyEl.style.display = 'none';
      const row = document.createElement('tr');
      const ts = new Date(tx.ts).toLocaleTimeString();
      row.innerHTML = '<td>' + ts + '</td><td>' + tx.service + '</td><td>' +
        tx.amount + ' USDC</td><td class="ref">' + tx.reference.slice(0, 18) + '…</td>';
      txsEl.prepend(row);
      refreshBalance();
    });
  </script>
</body>
</html>`
