// Package ledger is the cross-actor record of all orders. Every order
// mutation appends one entry; each actor's engine reads the ledger to see
// changes made from the other side. Entries carry the full order payload so
// a reader can materialize an order it has never seen.
package ledger

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"printsync/internal/model"
)

// Entry is one order transition. Seq is monotonic per order: 1 for
// creation, incremented on every status change.
type Entry struct {
	OrderID string       `json:"orderId"`
	Seq     int64        `json:"seq"`
	Status  model.Status `json:"status"`
	Role    model.Role   `json:"role"`
	TS      time.Time    `json:"ts"`
	Order   model.Order  `json:"order"`
}

type Writer interface {
	Append(e Entry) error
}

type Reader interface {
	Entries() ([]Entry, error)
}

// MultiWriter fans out appends to multiple underlying writers.
type MultiWriter struct {
	writers []Writer
}

func NewMultiWriter(ws ...Writer) *MultiWriter {
	return &MultiWriter{writers: ws}
}

func (m *MultiWriter) Append(e Entry) error {
	for _, w := range m.writers {
		if err := w.Append(e); err != nil {
			return err
		}
	}
	return nil
}

// FileWriter appends entries to a JSONL file.
type FileWriter struct {
	path string
}

func NewFileWriter(dir string, filename string) (*FileWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir: %w", err)
	}
	return &FileWriter{path: filepath.Join(dir, filename)}, nil
}

func (w *FileWriter) Append(e Entry) error {
	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	if err := enc.Encode(&e); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// FileReader reads back a JSONL ledger file in append order.
type FileReader struct {
	path string
}

func NewFileReader(path string) *FileReader {
	return &FileReader{path: path}
}

func (r *FileReader) Entries() ([]Entry, error) {
	f, err := os.Open(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	defer f.Close()

	var out []Entry
	s := bufio.NewScanner(f)
	line := 0
	for s.Scan() {
		line++
		var e Entry
		if err := json.Unmarshal(s.Bytes(), &e); err != nil {
			return nil, fmt.Errorf("unmarshal line %d: %w", line, err)
		}
		out = append(out, e)
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("scan ledger: %w", err)
	}
	return out, nil
}
