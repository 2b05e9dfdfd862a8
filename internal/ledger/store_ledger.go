package ledger

import (
	"context"
	"encoding/json"
	"fmt"

	"printsync/internal/model"
	"printsync/internal/store"
)

// Key is the record-store key holding the shared all-orders ledger.
const Key = "all_orders"

// StoreWriter appends entries to the all_orders key in the record store.
// The ledger is read-modify-written as a whole, like every other collection.
type StoreWriter struct {
	kv store.KV
}

func NewStoreWriter(kv store.KV) *StoreWriter {
	return &StoreWriter{kv: kv}
}

func (w *StoreWriter) Append(e Entry) error {
	ctx := context.Background()
	entries, err := readStore(ctx, w.kv)
	if err != nil {
		return err
	}
	entries = append(entries, e)
	b, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal ledger: %w", err)
	}
	if err := w.kv.Set(ctx, Key, b); err != nil {
		return &model.PersistenceError{Op: "set", Key: Key, Err: err}
	}
	return nil
}

// StoreReader reads the all_orders ledger from the record store.
type StoreReader struct {
	kv store.KV
}

func NewStoreReader(kv store.KV) *StoreReader {
	return &StoreReader{kv: kv}
}

func (r *StoreReader) Entries() ([]Entry, error) {
	return readStore(context.Background(), r.kv)
}

func readStore(ctx context.Context, kv store.KV) ([]Entry, error) {
	b, ok, err := kv.Get(ctx, Key)
	if err != nil {
		return nil, &model.PersistenceError{Op: "get", Key: Key, Err: err}
	}
	if !ok {
		return nil, nil
	}
	var entries []Entry
	if err := json.Unmarshal(b, &entries); err != nil {
		return nil, &model.PersistenceError{Op: "get", Key: Key, Err: fmt.Errorf("corrupt ledger: %w", err)}
	}
	return entries, nil
}
