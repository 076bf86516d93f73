// Package atomicfile writes files through a temporary sibling and a rename,
// so a crash never leaves a truncated artifact behind.
package atomicfile

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/constants"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/errors"
)

// WriteFile atomically replaces path with data. Missing parent directories
// are created.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	return Write(path, bytes.NewReader(data), perm)
}

// Write atomically replaces path with the contents of r.
func Write(path string, r io.Reader, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.WrapIO("create", "temp file", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	if _, err := io.Copy(tmp, r); err != nil {
		cleanup()
		return errors.WrapIO("write", path, err)
	}
	if err := tmp.Chmod(perm); err != nil {
		cleanup()
		return errors.WrapIO("chmod", path, err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return errors.WrapIO("sync", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("close", path, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("move", path, err)
	}
	return nil
}

// WriteJSON encodes v and writes it atomically followed by a newline.
// indent "" produces compact output. HTML characters are not escaped.
func WriteJSON(path string, v any, indent string, perm os.FileMode) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(v); err != nil {
		return errors.WrapParse("json", path, err)
	}
	return WriteFile(path, buf.Bytes(), perm)
}

// ReadJSON decodes the JSON file at path into v.
func ReadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.WrapIO("read", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.WrapParse("json", path, err)
	}
	return nil
}

// CopyFile atomically copies src to dst with the given permissions.
func CopyFile(src, dst string, perm os.FileMode) error {
	f, err := os.Open(src)
	if err != nil {
		return errors.WrapIO("read", src, err)
	}
	defer func() { _ = f.Close() }()
	return Write(dst, f, perm)
}

// CopyDir copies the regular files of src into dst, recursively.
// It returns the number of files copied.
func CopyDir(src, dst string, perm os.FileMode) (int, error) {
	n := 0
	err := filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, constants.DirPermissions)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if err := CopyFile(path, target, perm); err != nil {
			return err
		}
		n++
		return nil
	})
	if err != nil {
		return n, errors.WrapIO("copy", src, err)
	}
	return n, nil
}

// EmptyDir removes everything inside dir and makes sure dir exists.
func EmptyDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil && !os.IsNotExist(err) {
		return errors.WrapIO("read", dir, err)
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(dir, e.Name())); err != nil {
			return errors.WrapIO("delete", filepath.Join(dir, e.Name()), err)
		}
	}
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}
	return nil
}
