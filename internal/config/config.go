// Package config persists the tool's settings and session data as key=value
// lines in a file under the per-user metadata directory.
package config

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/modular-tools/cli/internal/domain"
)

// Store reads and modifies one configuration file. The filesystem is
// injected so tests can substitute an in-memory one.
type Store struct {
	fs   afero.Fs
	path string
}

// NewStore creates a Store backed by the given filesystem and file path.
func NewStore(fs afero.Fs, path string) *Store {
	return &Store{fs: fs, path: path}
}

// Get returns the value for a configuration key.
func (s *Store) Get(key string) (string, bool) {
	lines, err := s.readLines()
	if err != nil {
		return "", false
	}
	for _, line := range lines {
		if k, v, ok := parseLine(line); ok && k == key {
			return v, true
		}
	}
	return "", false
}

// All returns all configuration values.
func (s *Store) All() (map[string]string, error) {
	lines, err := s.readLines()
	if err != nil {
		return nil, err
	}
	values := make(map[string]string)
	for _, line := range lines {
		if k, v, ok := parseLine(line); ok {
			values[k] = v
		}
	}
	return values, nil
}

// Set writes a configuration value, replacing an existing line for the same
// key in place or appending a new one. Only defined keys are accepted so a
// typo never silently lands in the file.
func (s *Store) Set(key, value string) error {
	if !Known(key) {
		return fmt.Errorf("unknown configuration key %q", key)
	}

	lines, err := s.readLines()
	if err != nil {
		return err
	}

	replaced := false
	for i, line := range lines {
		if k, _, ok := parseLine(line); ok && k == key {
			lines[i] = formatLine(key, value)
			replaced = true
			break
		}
	}
	if !replaced {
		lines = append(lines, formatLine(key, value))
	}

	return s.writeLines(lines)
}

// Unset removes a configuration value.
func (s *Store) Unset(key string) error {
	lines, err := s.readLines()
	if err != nil {
		return err
	}

	kept := lines[:0]
	for _, line := range lines {
		if k, _, ok := parseLine(line); ok && k == key {
			continue
		}
		kept = append(kept, line)
	}

	return s.writeLines(kept)
}

// Clear removes the configuration file entirely.
func (s *Store) Clear() error {
	if err := s.fs.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *Store) readLines() ([]string, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	return lines, scanner.Err()
}

// writeLines replaces the file through a temp file plus rename so a
// concurrent reader never sees a partial write.
func (s *Store) writeLines(lines []string) error {
	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	tmp, err := afero.TempFile(s.fs, dir, ".config.tmp.*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = s.fs.Remove(tmpPath)
		}
	}()

	writer := bufio.NewWriter(tmp)
	for _, line := range lines {
		if _, err := writer.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	if err := writer.Flush(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := s.fs.Rename(tmpPath, s.path); err != nil {
		return err
	}
	if err := s.fs.Chmod(s.path, 0o600); err != nil {
		return err
	}

	success = true
	return nil
}

// parseLine extracts a key=value pair from one line. Blank lines and
// comments yield ok=false. Values may be double-quoted.
func parseLine(line string) (key, value string, ok bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return "", "", false
	}

	idx := strings.Index(trimmed, "=")
	if idx <= 0 {
		return "", "", false
	}

	key = strings.TrimSpace(trimmed[:idx])
	value = strings.TrimSpace(trimmed[idx+1:])
	if len(value) >= 2 && strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) {
		value = value[1 : len(value)-1]
	}
	return key, value, true
}

func formatLine(key, value string) string {
	if strings.Contains(value, " ") {
		value = fmt.Sprintf("%q", value)
	}
	return key + "=" + value
}

// Verify Store implements domain.ConfigStore.
var _ domain.ConfigStore = (*Store)(nil)
