// Package expiry reads the expiration descriptors written by the DevEnv
// provisioner. Each descriptor is a "<owner>.<prefix>.map" file carrying two
// comment lines:
//
//	# create_ts: 1508284800
//	# lifespan: 604800
package expiry

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// Extension of descriptor files
	Extension = ".map"

	// TimeLayout is the expiration display format (UTC)
	TimeLayout = "2006-01-02 15:04"

	createPrefix   = "# create_ts:"
	lifespanPrefix = "# lifespan:"
)

// Entry is a single owner.prefix expiration
type Entry struct {
	Key       string
	ExpiresAt time.Time
}

// Formatted returns the expiration in TimeLayout
func (e Entry) Formatted() string {
	return e.ExpiresAt.UTC().Format(TimeLayout)
}

// Registry reads descriptors from a directory
type Registry struct {
	dir    string
	logger *zap.SugaredLogger
}

// NewRegistry creates a registry over dir
func NewRegistry(dir string, logger *zap.SugaredLogger) *Registry {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Registry{dir: dir, logger: logger}
}

// Dir returns the descriptor directory
func (r *Registry) Dir() string {
	return r.dir
}

// Entries returns every usable descriptor, sorted by key
func (r *Registry) Entries() ([]Entry, error) {
	dirEntries, err := os.ReadDir(r.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.logger.Debugw("expiration directory missing", "dir", r.dir)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan expiration directory: %w", err)
	}

	var entries []Entry
	for _, de := range dirEntries {
		if de.IsDir() || filepath.Ext(de.Name()) != Extension {
			continue
		}

		path := filepath.Join(r.dir, de.Name())
		expiresAt, ok := readDescriptor(path)
		if !ok {
			r.logger.Debugw("skipping expiration descriptor", "file", path)
			continue
		}

		entries = append(entries, Entry{
			Key:       strings.TrimSuffix(de.Name(), Extension),
			ExpiresAt: expiresAt,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Key < entries[j].Key
	})

	return entries, nil
}

// Expirations returns the owner.prefix -> formatted expiration mapping
func (r *Registry) Expirations() (map[string]string, error) {
	entries, err := r.Entries()
	if err != nil {
		return nil, err
	}

	result := make(map[string]string, len(entries))
	for _, e := range entries {
		result[e.Key] = e.Formatted()
	}
	return result, nil
}

// ReadDir returns the owner.prefix -> formatted expiration mapping for dir
func ReadDir(dir string) (map[string]string, error) {
	return NewRegistry(dir, nil).Expirations()
}

// readDescriptor returns create_ts + lifespan for a descriptor. ok is false
// when the file cannot be read or either value is missing, zero or malformed.
func readDescriptor(path string) (time.Time, bool) {
	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, false
	}
	defer func() { _ = f.Close() }()

	var created, lifespan int64

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case strings.HasPrefix(line, createPrefix):
			v, ok := parseField(line)
			if !ok {
				return time.Time{}, false
			}
			created = v
		case strings.HasPrefix(line, lifespanPrefix):
			v, ok := parseField(line)
			if !ok {
				return time.Time{}, false
			}
			lifespan = v
		}
	}
	if err := scanner.Err(); err != nil {
		return time.Time{}, false
	}

	if created == 0 || lifespan == 0 {
		return time.Time{}, false
	}

	return time.Unix(created+lifespan, 0).UTC(), true
}

// parseField parses the integer in the third space-separated field of a
// "# key: value" line
func parseField(line string) (int64, bool) {
	fields := strings.Split(line, " ")
	if len(fields) < 3 {
		return 0, false
	}

	v, err := strconv.ParseInt(strings.TrimSpace(fields[2]), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
