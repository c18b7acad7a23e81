package blkfile

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
)

var blockFileNamePattern = regexp.MustCompile(`^blk(\d+)\.dat$`)

// ParseBlockFileIndex extracts the file-index from a block-file base
// name, matching blk<digits>.dat. It reports false for anything else,
// including the node's own blkindex.dat.
func ParseBlockFileIndex(name string) (uint32, bool) {
	m := blockFileNamePattern.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	idx, err := strconv.ParseUint(m[1], 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(idx), true
}

// Set is a read-only, file-index-keyed collection of the block files found
// in one directory, with a shared XOR key if the directory carries one.
type Set struct {
	dir   string
	files map[uint32]*BlockFile
}

// Open discovers every blk<digits>.dat file directly inside dir, resolving
// symlinks, and attaches xor.dat's contents (if present) as every file's
// XOR key. Construction fails if no block files are found.
func Open(dir string) (*Set, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan block file directory %s: %w", dir, err)
	}

	xorKey, err := readXORKey(dir)
	if err != nil {
		return nil, err
	}

	files := make(map[uint32]*BlockFile)
	for _, entry := range entries {
		name := entry.Name()
		idx, ok := ParseBlockFileIndex(name)
		if !ok {
			continue
		}
		path := filepath.Join(dir, name)
		resolved, err := filepath.EvalSymlinks(path)
		if err != nil {
			return nil, fmt.Errorf("resolve block file %s: %w", path, err)
		}
		info, err := os.Stat(resolved)
		if err != nil {
			return nil, fmt.Errorf("stat block file %s: %w", resolved, err)
		}
		if !info.Mode().IsRegular() {
			continue
		}
		files[idx] = NewBlockFile(resolved, info.Size(), xorKey)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no block files found in %s", dir)
	}

	return &Set{dir: dir, files: files}, nil
}

// readXORKey reads xor.dat's full contents from dir, if present. A missing
// file is not an error: it means the directory's block files are stored
// unmasked.
func readXORKey(dir string) ([]byte, error) {
	key, err := os.ReadFile(filepath.Join(dir, "xor.dat"))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read xor key: %w", err)
	}
	return key, nil
}

// Get looks up the BlockFile for fileIndex. The returned pointer is the
// set's own mutable BlockFile, so opening or closing it through the
// returned value affects later lookups of the same index.
func (s *Set) Get(fileIndex uint32) (*BlockFile, bool) {
	bf, ok := s.files[fileIndex]
	return bf, ok
}

// Len returns the number of distinct block files discovered.
func (s *Set) Len() int { return len(s.files) }

// CloseAll closes every open file handle in the set, ignoring files that
// are already closed.
func (s *Set) CloseAll() error {
	var firstErr error
	for _, bf := range s.files {
		if err := bf.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
