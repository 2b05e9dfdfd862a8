package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"printsync/internal/model"
	"printsync/internal/store"
)

// Dump is the serialized form of one actor's full projection.
type Dump struct {
	Scope         string               `json:"scope"`
	Role          model.Role           `json:"role"`
	Orders        []model.Order        `json:"orders"`
	Notifications []model.Notification `json:"notifications"`
}

type Snapshotter interface {
	WriteSnapshot(ctx context.Context, snapshotID string, actor model.Actor, kv store.KV) error
}

// FilesystemSnapshotter writes one actor's projection to
// baseDir/<snapshotID>/state.json.
type FilesystemSnapshotter struct {
	baseDir string
}

func NewFilesystemSnapshotter(baseDir string) *FilesystemSnapshotter {
	return &FilesystemSnapshotter{baseDir: baseDir}
}

func (f *FilesystemSnapshotter) WriteSnapshot(ctx context.Context, snapshotID string, actor model.Actor, kv store.KV) error {
	if err := os.MkdirAll(filepath.Join(f.baseDir, snapshotID), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	d := Dump{Scope: actor.ScopeID(), Role: actor.Role}
	if err := readCollection(ctx, kv, actor.OrdersKey(), &d.Orders); err != nil {
		return err
	}
	if err := readCollection(ctx, kv, actor.NotificationsKey(), &d.Notifications); err != nil {
		return err
	}

	file := filepath.Join(f.baseDir, snapshotID, "state.json")
	out, err := os.Create(file)
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}
	defer out.Close()
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Read loads a previously written snapshot dump.
func Read(baseDir string, snapshotID string) (Dump, error) {
	path := filepath.Join(baseDir, snapshotID, "state.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return Dump{}, fmt.Errorf("read snapshot: %w", err)
	}
	var d Dump
	if err := json.Unmarshal(data, &d); err != nil {
		return Dump{}, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return d, nil
}

func readCollection(ctx context.Context, kv store.KV, key string, dst any) error {
	b, ok, err := kv.Get(ctx, key)
	if err != nil {
		return &model.PersistenceError{Op: "get", Key: key, Err: err}
	}
	if !ok {
		return nil
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return &model.PersistenceError{Op: "get", Key: key, Err: fmt.Errorf("corrupt collection: %w", err)}
	}
	return nil
}
