package load

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lakesync/internal/domain"
)

// testRecord is a minimal record with a single column.
type testRecord struct {
	col   string
	value any
}

func (r testRecord) Columns() []string { return []string{r.col} }
func (r testRecord) Values() []any     { return []any{r.value} }

// newTestDB creates a file-backed SQLite database with a STRICT table so
// type mismatches fail the individual insert, as they would on the real
// target.
func newTestDB(t *testing.T) string {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "load_test.db")

	db, err := sql.Open("sqlite3", dsn)
	require.NoError(t, err)
	defer db.Close() //nolint:errcheck

	_, err = db.Exec("CREATE TABLE `target` (`a` INTEGER) STRICT")
	require.NoError(t, err)
	return dsn
}

func countRows(t *testing.T, dsn string) int {
	t.Helper()
	db, err := sql.Open("sqlite3", dsn)
	require.NoError(t, err)
	defer db.Close() //nolint:errcheck

	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM `target`").Scan(&n))
	return n
}

func TestLoader_PerRecordIsolation(t *testing.T) {
	dsn := newTestDB(t)
	loader := New("sqlite3", dsn, slog.New(slog.NewTextHandler(io.Discard, nil)))

	// The second record violates the column type; the first still commits.
	records := []domain.Record{
		testRecord{col: "a", value: 1},
		testRecord{col: "a", value: "bad"},
	}
	err := loader.Load(context.Background(), records, "target")
	require.NoError(t, err)
	assert.Equal(t, 1, countRows(t, dsn))
}

func TestLoader_AllRecordsSucceed(t *testing.T) {
	dsn := newTestDB(t)
	loader := New("sqlite3", dsn, slog.New(slog.NewTextHandler(io.Discard, nil)))

	records := []domain.Record{
		testRecord{col: "a", value: 1},
		testRecord{col: "a", value: 2},
		testRecord{col: "a", value: 3},
	}
	require.NoError(t, loader.Load(context.Background(), records, "target"))
	assert.Equal(t, 3, countRows(t, dsn))
}

func TestLoader_EmptyBatchIsNoOp(t *testing.T) {
	dsn := newTestDB(t)
	loader := New("sqlite3", dsn, slog.New(slog.NewTextHandler(io.Discard, nil)))

	require.NoError(t, loader.Load(context.Background(), nil, "target"))
	assert.Equal(t, 0, countRows(t, dsn))
}

func TestLoader_ConnectionFailure(t *testing.T) {
	loader := New("sqlite3", "file:/no/such/dir/db.sqlite?mode=rw", slog.New(slog.NewTextHandler(io.Discard, nil)))

	err := loader.Load(context.Background(), []domain.Record{testRecord{col: "a", value: 1}}, "target")
	require.Error(t, err)

	var connErr *domain.ConnectionError
	assert.ErrorAs(t, err, &connErr)
}

func TestLoader_DomainRecordColumns(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "billing_test.db")
	db, err := sql.Open("sqlite3", dsn)
	require.NoError(t, err)
	_, err = db.Exec("CREATE TABLE `Billing` (`invoice_id` TEXT, `tenant_id` TEXT, `order_id` TEXT, `method` TEXT, `amount` ANY, `status` TEXT) STRICT")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	loader := New("sqlite3", dsn, slog.New(slog.NewTextHandler(io.Discard, nil)))
	records := []domain.Record{
		domain.BillingRecord{InvoiceID: "i1", TenantID: "t1", OrderID: "o1", Method: "card", Amount: "50", Status: "PAID"},
	}
	require.NoError(t, loader.Load(context.Background(), records, "Billing"))

	db, err = sql.Open("sqlite3", dsn)
	require.NoError(t, err)
	defer db.Close() //nolint:errcheck

	var method string
	var amount any
	require.NoError(t, db.QueryRow("SELECT `method`, `amount` FROM `Billing`").Scan(&method, &amount))
	assert.Equal(t, "card", method)
	assert.EqualValues(t, "50", amount)
}
