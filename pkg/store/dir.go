package store

import (
	"cmp"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/matzehuels/pinboard/pkg/errors"
)

// DirStore keeps records as files in a single directory.
type DirStore struct {
	dir string
}

// NewDirStore creates dir if needed.
func NewDirStore(dir string) (*DirStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &DirStore{dir: dir}, nil
}

// Dir returns the output directory.
func (s *DirStore) Dir() string { return s.dir }

func recordName(pinCount, id int) string {
	return fmt.Sprintf("p%d-v%d.json", pinCount, id)
}

// Put writes the JSON record and, for solved designs, the circuit source.
func (s *DirStore) Put(_ context.Context, r *Record) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.dir, recordName(r.PinCount, r.Variant)), data, 0o644); err != nil {
		return err
	}
	if r.Code != "" && r.Filename != "" {
		return os.WriteFile(filepath.Join(s.dir, r.Filename), []byte(r.Code), 0o644)
	}
	return nil
}

func (s *DirStore) Get(_ context.Context, pinCount, id int) (*Record, error) {
	return s.read(filepath.Join(s.dir, recordName(pinCount, id)))
}

func (s *DirStore) read(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil, errors.New(errors.ErrCodeNotFound, "no stored design %s", filepath.Base(path))
	}
	if err != nil {
		return nil, err
	}
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return &r, nil
}

func (s *DirStore) List(_ context.Context, pinCount int) ([]*Record, error) {
	paths, err := filepath.Glob(filepath.Join(s.dir, fmt.Sprintf("p%d-v*.json", pinCount)))
	if err != nil {
		return nil, err
	}
	out := make([]*Record, 0, len(paths))
	for _, p := range paths {
		r, err := s.read(p)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b *Record) int { return cmp.Compare(a.Variant, b.Variant) })
	return out, nil
}

func (s *DirStore) Close() error { return nil }

var _ Store = (*DirStore)(nil)
