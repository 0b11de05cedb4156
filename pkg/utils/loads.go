package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

func Load[T any](path string) (T, error) {
	var v T
	f, err := os.Open(path)
	if err != nil {
		return v, err
	}
	defer f.Close()
	err = json.NewDecoder(f).Decode(&v)
	return v, err
}

// Save writes v as indented JSON via a temp file rename, so readers never
// observe a partially written record set.
func Save[T any](path string, v T) error {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Timestamped builds an output path like dir/prefix_20250114_153000.json.
// ext includes the dot.
func Timestamped(dir, prefix, ext string) string {
	stamp := time.Now().Format("20060102_150405")
	return filepath.Join(dir, fmt.Sprintf("%s_%s%s", prefix, stamp, ext))
}

// Latest returns the lexically last path matching dir/prefix*ext, which for
// Timestamped names is the most recent, or "" when none exist.
func Latest(dir, prefix, ext string) string {
	matches, err := filepath.Glob(filepath.Join(dir, prefix+"*"+ext))
	if err != nil || len(matches) == 0 {
		return ""
	}
	latest := matches[0]
	for _, m := range matches[1:] {
		if m > latest {
			latest = m
		}
	}
	return latest
}
