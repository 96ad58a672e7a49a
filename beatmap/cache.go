// SPDX-License-Identifier: EPL-2.0

package beatmap

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
)

// DefaultCacheDir is used when NewCache gets an empty directory.
const DefaultCacheDir = "SavedBeatmaps"

// Cache stores detected beatmaps as text files under a directory.
type Cache struct {
	dir string
}

// NewCache prepares a cache rooted at dir. A leading ~ is expanded.
func NewCache(dir string) (*Cache, error) {
	if dir == "" {
		dir = DefaultCacheDir
	}

	expanded, err := homedir.Expand(dir)
	if err != nil {
		return nil, fmt.Errorf("expand cache dir: %w", err)
	}

	if err := os.MkdirAll(expanded, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	return &Cache{dir: expanded}, nil
}

func (c *Cache) Dir() string { return c.dir }

// Key names the entry for a song: base file name, tracker id and the audio
// length in frames as hex.
func Key(name, tracker string, length int) string {
	base := filepath.Base(name)
	if base == "." || base == string(filepath.Separator) {
		base = "stream"
	}
	tracker = strings.ReplaceAll(tracker, string(filepath.Separator), "-")

	return fmt.Sprintf("%s_%s_%#x.txt", base, tracker, length)
}

// Path returns where the entry for the key parts lives.
func (c *Cache) Path(name, tracker string, length int) string {
	return filepath.Join(c.dir, Key(name, tracker, length))
}

// Load returns the cached beatmap or ErrNotCached.
func (c *Cache) Load(name, tracker string, length int) (BeatMap, error) {
	data, err := os.ReadFile(c.Path(name, tracker, length))
	if errors.Is(err, fs.ErrNotExist) {
		return BeatMap{}, ErrNotCached
	}
	if err != nil {
		return BeatMap{}, fmt.Errorf("read cache: %w", err)
	}

	return Decode(bytes.NewReader(data))
}

// Store writes the beatmap, replacing any previous entry.
func (c *Cache) Store(name, tracker string, length int, m BeatMap) error {
	var buf bytes.Buffer
	if err := Encode(&buf, m); err != nil {
		return err
	}

	path := c.Path(name, tracker, length)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write cache: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("commit cache: %w", err)
	}

	return nil
}

// Delete removes the entry. A missing entry is not an error.
func (c *Cache) Delete(name, tracker string, length int) error {
	err := os.Remove(c.Path(name, tracker, length))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete cache: %w", err)
	}

	return nil
}
