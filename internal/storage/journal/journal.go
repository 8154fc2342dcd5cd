// Package journal persists committed charges in a WAL so the ledger can be
// rebuilt after a restart.
package journal

import (
	"encoding/json"
	"os"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/vadiminshakov/gowal"

	"github.com/vadiminshakov/centi/internal/domain"
)

const (
	DefaultDir   = "./wal/transactions"
	segmentLimit = 1000
	maxSegments  = 100

	txKeyPrefix = "tx_"

	walDirPermissions = 0o755
)

// Journal is a WAL-backed append-only transaction log.
type Journal struct {
	wal *gowal.Wal
	mu  sync.RWMutex
}

// Open initializes the journal in the given directory.
func Open(dir string) (*Journal, error) {
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, walDirPermissions); err != nil {
		return nil, errors.Wrapf(err, "ensure journal directory %s", dir)
	}

	cfg := gowal.Config{
		Dir:              dir,
		Prefix:           "tx_log_",
		SegmentThreshold: segmentLimit,
		MaxSegments:      maxSegments,
		IsInSyncDiskMode: true,
	}

	wal, err := gowal.NewWAL(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "init transaction WAL")
	}

	return &Journal{wal: wal}, nil
}

// Append writes a committed transaction to the WAL.
func (j *Journal) Append(tx domain.Transaction) error {
	if j == nil || j.wal == nil {
		return errors.New("journal is not initialized")
	}
	if tx.ID == "" {
		return errors.New("transaction id is required")
	}

	payload, err := json.Marshal(tx)
	if err != nil {
		return errors.Wrap(err, "marshal transaction")
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	nextIndex := j.wal.CurrentIndex() + 1
	return j.wal.Write(nextIndex, txKeyPrefix+tx.ID, payload)
}

// Replay returns every journaled transaction in write order.
func (j *Journal) Replay() ([]domain.Transaction, error) {
	if j == nil || j.wal == nil {
		return nil, errors.New("journal is not initialized")
	}

	j.mu.RLock()
	defer j.mu.RUnlock()

	var txs []domain.Transaction
	for msg := range j.wal.Iterator() {
		if !strings.HasPrefix(msg.Key, txKeyPrefix) {
			continue
		}
		var tx domain.Transaction
		if err := json.Unmarshal(msg.Value, &tx); err != nil {
			return nil, errors.Wrapf(err, "decode journaled transaction %s", msg.Key)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// TransactionsAfter returns all transactions written after the provided
// WAL index. Used by the dashboard stream.
func (j *Journal) TransactionsAfter(index uint64) ([]domain.TransactionRecord, error) {
	if j == nil || j.wal == nil {
		return nil, errors.New("journal is not initialized")
	}

	j.mu.RLock()
	defer j.mu.RUnlock()

	current := j.wal.CurrentIndex()
	if current <= index {
		return nil, nil
	}

	records := make([]domain.TransactionRecord, 0, current-index)
	for idx := index + 1; idx <= current; idx++ {
		key, payload, err := j.wal.Get(idx)
		if err != nil {
			continue
		}
		if !strings.HasPrefix(key, txKeyPrefix) {
			continue
		}
		var tx domain.Transaction
		if err := json.Unmarshal(payload, &tx); err != nil {
			continue
		}
		records = append(records, domain.TransactionRecord{Index: idx, Tx: tx})
	}
	return records, nil
}

// CurrentIndex returns the latest WAL index stored.
func (j *Journal) CurrentIndex() uint64 {
	if j == nil || j.wal == nil {
		return 0
	}
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.wal.CurrentIndex()
}

// Close releases the underlying WAL.
func (j *Journal) Close() error {
	if j == nil || j.wal == nil {
		return nil
	}
	return j.wal.Close()
}
