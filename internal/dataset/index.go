package dataset

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"audioprep/internal/logging"
)

// DefaultExtensions is the extension filter used when Options.Extensions is empty.
var DefaultExtensions = []string{"wav", "mp3", "npy", "pth"}

// Options configures Open.
type Options struct {
	// Roots are dataset root directories, scanned in order.
	Roots []string
	// Extensions are matched as substrings of file names, so "wav" also
	// accepts "a.wav.bak". Empty selects DefaultExtensions.
	Extensions []string
	Subset     Subset
	// Logger receives a one-line summary after indexing. Nil disables it.
	Logger *slog.Logger
}

// Record is one indexed sample.
type Record struct {
	Index int    `json:"index"`
	Label string `json:"label"`
	Path  string `json:"path"`
	// Split is the split directory the file was found under.
	Split string `json:"split"`
}

// Index is the immutable, ordered record sequence built by Open.
type Index struct {
	roots      []string
	extensions []string
	subset     Subset
	records    []Record
}

// Open scans the dataset roots and builds the index. It fails with
// ErrDirectoryNotFound when a split required by opts.Subset is missing for
// any root; no partial index is returned.
func Open(opts Options) (*Index, error) {
	if len(opts.Roots) == 0 {
		return nil, ErrNoRoots
	}
	extensions := opts.Extensions
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}

	idx := &Index{
		roots:      slices.Clone(opts.Roots),
		extensions: slices.Clone(extensions),
		subset:     opts.Subset,
	}
	for _, root := range idx.roots {
		for _, split := range idx.subset.Splits() {
			if err := idx.scanSplit(root, split); err != nil {
				return nil, err
			}
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	logger.Info("dataset indexed",
		logging.Any("roots", idx.roots),
		logging.String("subset", idx.subset.String()),
		logging.Any("extensions", idx.extensions),
		logging.Int("records", len(idx.records)),
		logging.Int("classes", len(idx.Labels())),
	)
	return idx, nil
}

func (x *Index) scanSplit(root, split string) error {
	splitDir := filepath.Join(root, split)
	info, err := os.Stat(splitDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("dataset root %s: %s: %w", root, split, ErrDirectoryNotFound)
		}
		return fmt.Errorf("inspect %s: %w", splitDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("dataset root %s: %s is not a directory: %w", root, split, ErrDirectoryNotFound)
	}

	labels, err := listVisible(splitDir, true)
	if err != nil {
		return err
	}
	for _, label := range labels {
		labelDir := filepath.Join(splitDir, label)
		files, err := listVisible(labelDir, false)
		if err != nil {
			return err
		}
		for _, name := range files {
			if !x.accepts(name) {
				continue
			}
			x.records = append(x.records, Record{
				Index: len(x.records),
				Label: label,
				Path:  filepath.Join(labelDir, name),
				Split: split,
			})
		}
	}
	return nil
}

func (x *Index) accepts(name string) bool {
	for _, ext := range x.extensions {
		if strings.Contains(name, ext) {
			return true
		}
	}
	return false
}

// listVisible returns the sorted names of non-hidden directories (dirs=true)
// or non-directory entries (dirs=false) inside dir. Symlinks are resolved.
func listVisible(dir string, dirs bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		isDir := entry.IsDir()
		if entry.Type()&fs.ModeSymlink != 0 {
			info, err := os.Stat(filepath.Join(dir, name))
			if err != nil {
				// dangling link
				continue
			}
			isDir = info.IsDir()
		}
		if isDir == dirs {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names, nil
}

// Len returns the number of records.
func (x *Index) Len() int {
	return len(x.records)
}

// Get returns record i, or ErrIndexOutOfRange.
func (x *Index) Get(i int) (Record, error) {
	if i < 0 || i >= len(x.records) {
		return Record{}, fmt.Errorf("record %d of %d: %w", i, len(x.records), ErrIndexOutOfRange)
	}
	return x.records[i], nil
}

// Records returns a copy of the full record sequence.
func (x *Index) Records() []Record {
	return slices.Clone(x.records)
}

// Labels returns the distinct labels in first-seen order.
func (x *Index) Labels() []string {
	seen := make(map[string]struct{})
	labels := make([]string, 0)
	for _, rec := range x.records {
		if _, ok := seen[rec.Label]; ok {
			continue
		}
		seen[rec.Label] = struct{}{}
		labels = append(labels, rec.Label)
	}
	return labels
}

func (x *Index) Roots() []string      { return slices.Clone(x.roots) }
func (x *Index) Extensions() []string { return slices.Clone(x.extensions) }
func (x *Index) Subset() Subset       { return x.subset }
