package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"grana/internal/config"
	"grana/internal/learning"
	"grana/internal/storage"
)

// openStorage opens and migrates the SQLite database at the configured path.
// Callers own the returned storage and must Close it.
func openStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	path := config.ExpandPath(viper.GetString("database.path"))
	if path == "" {
		path = config.DefaultDatabasePath()
	}

	store, err := storage.NewSQLiteStorage(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at %s: %w", path, err)
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// persistSnapshot hands the snapshot to the save queue and drains it before
// the command returns. Save failures are logged, never surfaced; the state
// the user was shown stays authoritative.
func persistSnapshot(store *storage.SQLiteStorage, snap storage.Snapshot) {
	queue := storage.NewSaveQueue(store, 1)
	queue.Enqueue(snap)
	queue.Close()
}

// newClassifier builds the learned classifier on top of the SQLite example
// store. With a nil store the classifier degrades to pure rules.
func newClassifier(store *storage.SQLiteStorage) *learning.Classifier {
	if store == nil {
		return learning.NewClassifier(nil)
	}
	return learning.NewClassifier(store)
}
