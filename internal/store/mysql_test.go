package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jekabolt/salesboard/internal/dependency"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestDB connects to MYSQL_TEST_DSN and empties the targets table.
func newTestDB(t *testing.T) *MYSQLStore {
	t.Helper()
	dsn := os.Getenv("MYSQL_TEST_DSN")
	if dsn == "" {
		t.Skip("MYSQL_TEST_DSN not set")
	}
	db, err := New(context.Background(), Config{
		DSN:         dsn,
		Automigrate: true,
	})
	require.NoError(t, err)
	t.Cleanup(db.Close)

	_, err = db.db.ExecContext(context.Background(), "DELETE FROM targets")
	require.NoError(t, err)
	return db
}

func TestIsErrorRepeat(t *testing.T) {
	ms := &MYSQLStore{}
	assert.True(t, ms.IsErrorRepeat(&mysql.MySQLError{Number: errDeadlock}))
	assert.True(t, ms.IsErrorRepeat(fmt.Errorf("upsert: %w", &mysql.MySQLError{Number: errLockWaitTimeout})))
	assert.False(t, ms.IsErrorRepeat(&mysql.MySQLError{Number: 1062}))
	assert.False(t, ms.IsErrorRepeat(errors.New("boom")))
	assert.False(t, ms.IsErrorRepeat(nil))
}

func TestResolveCertPath(t *testing.T) {
	assert.Equal(t, "/tmp/ca.pem", resolveCertPath("/tmp/ca.pem"))
	assert.Equal(t, "config/certs/missing.pem", resolveCertPath("@certs/missing.pem"))
}

func TestWithParseTime(t *testing.T) {
	out := withParseTime("user:pass@tcp(db:3306)/sales?charset=utf8mb4")
	c, err := mysql.ParseDSN(out)
	require.NoError(t, err)
	assert.True(t, c.ParseTime)
	assert.Equal(t, "sales", c.DBName)
	assert.Equal(t, "db:3306", c.Addr)

	dsn := "user:pass@tcp(db:3306)/sales?parseTime=true"
	assert.Equal(t, dsn, withParseTime(dsn))
	assert.Equal(t, "not a dsn", withParseTime("not a dsn"))
}

type fakeTx struct{ commits, rollbacks int }

func (f *fakeTx) Commit() error {
	f.commits++
	return nil
}

func (f *fakeTx) Rollback() error {
	f.rollbacks++
	return nil
}

func TestTx_JoinsOpenTransaction(t *testing.T) {
	tx := &fakeTx{}
	ms := &MYSQLStore{txDB: tx}

	calls := 0
	err := ms.Tx(context.Background(), func(_ context.Context, rep dependency.Repository) error {
		calls++
		assert.Same(t, ms, rep)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Zero(t, tx.commits)

	boom := errors.New("boom")
	err = ms.Tx(context.Background(), func(context.Context, dependency.Repository) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, tx.rollbacks)
}

func TestPing(t *testing.T) {
	db := newTestDB(t)
	assert.NoError(t, db.Ping(context.Background()))
}
