package lena

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

const (
	propertiesFilename = "properties.jsonl"
	investorsFilename  = "investors.jsonl"
	purchasesFilename  = "purchases.jsonl"
)

// This file contains code to persist records in a folder, in a way that is
// still human-readable and git-friendly: one JSONL file per record kind, one
// record per line, keys in a fixed order.
//
// Every write reads the whole table, updates it in memory, and writes it back
// into a temporary file renamed over the previous one, so that a failed write
// never leaves a truncated table behind.

// FileStore is a Store backed by JSONL files in a folder.
// It is safe for concurrent use.
type FileStore struct {
	mu  sync.Mutex
	dir string
	now func() time.Time
}

// OpenFileStore opens the JSONL store in dir, creating the folder if needed.
func OpenFileStore(dir string) (*FileStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("data folder is required")
	}
	info, err := os.Stat(dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Printf("warning, data folder %q does not exist, creating it", dir)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("cannot create data folder: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("cannot open data folder: %w", err)
	case !info.IsDir():
		return nil, fmt.Errorf("data folder %q is not a directory", dir)
	}
	return &FileStore{dir: filepath.Clean(dir), now: time.Now}, nil
}

// Close releases nothing: files are only open during an operation.
func (s *FileStore) Close() error { return nil }

func (s *FileStore) PutProperty(ctx context.Context, p Property) (Property, error) {
	if err := p.Validate(); err != nil {
		return Property{}, err
	}
	p = p.Stamp(s.now())
	return p, putRow(ctx, s, propertiesFilename, p)
}

func (s *FileStore) Properties(ctx context.Context) ([]Property, error) {
	return readRows[Property](ctx, s, propertiesFilename)
}

func (s *FileStore) DeleteProperty(ctx context.Context, id string) error {
	return deleteRow[Property](ctx, s, propertiesFilename, id)
}

func (s *FileStore) PutInvestor(ctx context.Context, i Investor) (Investor, error) {
	if err := i.Validate(); err != nil {
		return Investor{}, err
	}
	i = i.Stamp(s.now())
	return i, putRow(ctx, s, investorsFilename, i)
}

func (s *FileStore) Investors(ctx context.Context) ([]Investor, error) {
	return readRows[Investor](ctx, s, investorsFilename)
}

func (s *FileStore) DeleteInvestor(ctx context.Context, id string) error {
	return deleteRow[Investor](ctx, s, investorsFilename, id)
}

func (s *FileStore) PutPurchase(ctx context.Context, p Purchase) (Purchase, error) {
	if err := p.Validate(); err != nil {
		return Purchase{}, err
	}
	p = p.Stamp(s.now())
	return p, putRow(ctx, s, purchasesFilename, p)
}

func (s *FileStore) Purchases(ctx context.Context) ([]Purchase, error) {
	return readRows[Purchase](ctx, s, purchasesFilename)
}

func (s *FileStore) DeletePurchase(ctx context.Context, id string) error {
	return deleteRow[Purchase](ctx, s, purchasesFilename, id)
}

// row is a record kind stored in its own file.
type row interface {
	Property | Investor | Purchase
}

// rowID returns the record ID of any row.
func rowID[T row](r T) string {
	switch v := any(r).(type) {
	case Property:
		return v.ID
	case Investor:
		return v.ID
	case Purchase:
		return v.ID
	}
	return ""
}

func readRows[T row](ctx context.Context, s *FileStore, filename string) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return decodeTable[T](filepath.Join(s.dir, filename))
}

func putRow[T row](ctx context.Context, s *FileStore, filename string, r T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	path := filepath.Join(s.dir, filename)
	rows, err := decodeTable[T](path)
	if err != nil {
		return err
	}
	id := rowID(r)
	replaced := false
	for i := range rows {
		if rowID(rows[i]) == id {
			rows[i] = r
			replaced = true
		}
	}
	if !replaced {
		rows = append(rows, r)
	}
	return encodeTable(path, rows)
}

func deleteRow[T row](ctx context.Context, s *FileStore, filename, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	path := filepath.Join(s.dir, filename)
	rows, err := decodeTable[T](path)
	if err != nil {
		return err
	}
	kept := rows[:0]
	for _, r := range rows {
		if rowID(r) != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(rows) {
		return nil
	}
	return encodeTable(path, kept)
}

// decodeTable reads all rows of a JSONL file. A missing file is an empty table.
func decodeTable[T row](path string) ([]T, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open %q for reading: %w", path, err)
	}
	defer f.Close()

	var rows []T
	// lines are unbounded: embedded photos make long ones.
	reader := bufio.NewReader(f)
	for i := 1; ; i++ {
		line, err := reader.ReadBytes('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("error reading %q: %w", path, err)
		}
		if len(bytes.TrimSpace(line)) > 0 {
			var r T
			if err := json.Unmarshal(line, &r); err != nil {
				return nil, fmt.Errorf("parse error %s:%v: not a correct json: %w", path, i, err)
			}
			rows = append(rows, r)
		}
		if err != nil {
			return rows, nil
		}
	}
}

// encodeTable writes rows as JSONL into path, atomically.
func encodeTable[T row](path string, rows []T) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("cannot create temporary file for %q: %w", path, err)
	}
	// no-op once renamed.
	defer os.Remove(tmp.Name())
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("cannot write %q: %w", path, err)
	}

	w := bufio.NewWriter(tmp)
	for _, r := range rows {
		data, err := json.Marshal(r)
		if err != nil {
			tmp.Close()
			return fmt.Errorf("cannot encode record %q: %w", rowID(r), err)
		}
		w.Write(data)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("cannot write %q: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cannot write %q: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("cannot replace %q: %w", path, err)
	}
	return nil
}

// Rewrite validates every record and writes each table back in its canonical
// form: one record per line, blank lines removed, keys in a fixed order.
// It returns the number of records rewritten.
func (s *FileStore) Rewrite(ctx context.Context) (int, error) {
	n := 0
	for _, rewrite := range []func(context.Context, *FileStore) (int, error){
		rewriteTable[Property](propertiesFilename),
		rewriteTable[Investor](investorsFilename),
		rewriteTable[Purchase](purchasesFilename),
	} {
		count, err := rewrite(ctx, s)
		if err != nil {
			return n, err
		}
		n += count
	}
	return n, nil
}

func rewriteTable[T row](filename string) func(context.Context, *FileStore) (int, error) {
	return func(ctx context.Context, s *FileStore) (int, error) {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		path := filepath.Join(s.dir, filename)
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		rows, err := decodeTable[T](path)
		if err != nil {
			return 0, err
		}
		for i, r := range rows {
			if err := any(r).(interface{ Validate() error }).Validate(); err != nil {
				return 0, fmt.Errorf("%s: record %d: %w", filename, i+1, err)
			}
		}
		return len(rows), encodeTable(path, rows)
	}
}
