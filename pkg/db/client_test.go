package db

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rahulnair-dev/vastra-backend/pkg/config"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	cfg := config.DBConfig{
		Driver: "sqlite",
		DSN:    "file:dbclient_" + uuid.NewString() + "?mode=memory&cache=shared",
	}
	client, err := New(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("opening sqlite client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func countSamples(t *testing.T, client *Client) int64 {
	t.Helper()
	var count int64
	if err := client.Raw(context.Background(), "SELECT COUNT(*) FROM samples").Scan(&count).Error; err != nil {
		t.Fatalf("counting rows: %v", err)
	}
	return count
}

func TestClientRequiresDSN(t *testing.T) {
	if _, err := New(context.Background(), config.DBConfig{}, nil); err == nil {
		t.Fatal("expected error for empty DSN")
	}
}

func TestClientRejectsUnknownDriver(t *testing.T) {
	cfg := config.DBConfig{Driver: "oracle", DSN: "whatever"}
	if _, err := New(context.Background(), cfg, nil); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestWithTxCommitsOnSuccess(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	if err := client.Exec(ctx, "CREATE TABLE samples (id INTEGER PRIMARY KEY, label TEXT)").Error; err != nil {
		t.Fatalf("creating table: %v", err)
	}

	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		return tx.Exec("INSERT INTO samples (label) VALUES (?)", "banarasi").Error
	})
	if err != nil {
		t.Fatalf("WithTx returned error: %v", err)
	}

	if got := countSamples(t, client); got != 1 {
		t.Fatalf("expected 1 row after commit, got %d", got)
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	if err := client.Exec(ctx, "CREATE TABLE samples (id INTEGER PRIMARY KEY, label TEXT)").Error; err != nil {
		t.Fatalf("creating table: %v", err)
	}

	boom := errors.New("boom")
	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Exec("INSERT INTO samples (label) VALUES (?)", "chanderi").Error; err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	if got := countSamples(t, client); got != 0 {
		t.Fatalf("expected 0 rows after rollback, got %d", got)
	}
}

func TestPing(t *testing.T) {
	client := newTestClient(t)
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("ping failed: %v", err)
	}
}
