package journal

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vadiminshakov/centi/internal/domain"
)

func testTx(id, service, amount string) domain.Transaction {
	return domain.Transaction{
		ID:          id,
		Timestamp:   time.Now().UTC().Truncate(time.Millisecond),
		Service:     service,
		Amount:      decimal.RequireFromString(amount),
		Reference:   domain.NewReference(),
		Description: service + " API call",
	}
}

func TestJournal_AppendAndReplay(t *testing.T) {
	j, err := Open(t.TempDir())
	require.NoError(t, err)
	defer j.Close()

	first := testTx("tx-1", "weather", "0.001")
	second := testTx("tx-2", "stock", "0.002")

	require.NoError(t, j.Append(first))
	require.NoError(t, j.Append(second))

	replayed, err := j.Replay()
	require.NoError(t, err)
	require.Len(t, replayed, 2)
	assert.Equal(t, "tx-1", replayed[0].ID)
	assert.Equal(t, "tx-2", replayed[1].ID)
	assert.True(t, replayed[1].Amount.Equal(second.Amount))
}

func TestJournal_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	j, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, j.Append(testTx("tx-1", "news", "0.003")))
	require.NoError(t, j.Close())

	reopened, err := Open(dir)
	require.NoError(t, err)
	defer reopened.Close()

	replayed, err := reopened.Replay()
	require.NoError(t, err)
	require.Len(t, replayed, 1)
	assert.Equal(t, "news", replayed[0].Service)
}

func TestJournal_TransactionsAfter(t *testing.T) {
	j, err := Open(t.TempDir())
	require.NoError(t, err)
	defer j.Close()

	require.NoError(t, j.Append(testTx("tx-1", "weather", "0.001")))
	require.NoError(t, j.Append(testTx("tx-2", "stock", "0.002")))
	require.NoError(t, j.Append(testTx("tx-3", "news", "0.003")))

	all, err := j.TransactionsAfter(0)
	require.NoError(t, err)
	require.Len(t, all, 3)

	tail, err := j.TransactionsAfter(all[1].Index)
	require.NoError(t, err)
	require.Len(t, tail, 1)
	assert.Equal(t, "tx-3", tail[0].Tx.ID)

	none, err := j.TransactionsAfter(j.CurrentIndex())
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestJournal_AppendRequiresID(t *testing.T) {
	j, err := Open(t.TempDir())
	require.NoError(t, err)
	defer j.Close()

	err = j.Append(domain.Transaction{Service: "weather"})
	require.Error(t, err)
}
