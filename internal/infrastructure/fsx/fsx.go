// Package fsx holds the filesystem primitives the mover relies on: a rename that never replaces
// an existing destination, and a verified copy used when a rename cannot cross devices.
package fsx

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/google/uuid"
)

// Replaced in tests to simulate EXDEV and filesystems without hard links.
var (
	linkFunc   = os.Link
	removeFunc = os.Remove
	renameFunc = os.Rename
)

// CrossDeviceError reports a rename that failed because src and dst live on different devices.
type CrossDeviceError struct {
	Src string
	Dst string
	Err error
}

func (e *CrossDeviceError) Error() string {
	return fmt.Sprintf("cross-device rename %q -> %q: %v", e.Src, e.Dst, e.Err)
}

func (e *CrossDeviceError) Unwrap() error { return e.Err }

func IsCrossDevice(err error) bool {
	var e *CrossDeviceError
	return errors.As(err, &e)
}

// RenameNoReplace moves src to dst in one step. If dst already exists the call fails with an
// error matching fs.ErrExist and src is left in place.
func RenameNoReplace(src, dst string) error {
	err := renameNoReplace(src, dst)
	if err != nil && isEXDEV(err) {
		return &CrossDeviceError{Src: src, Dst: dst, Err: err}
	}
	return err
}

// Move tries RenameNoReplace first and falls back to CopyNoReplace across devices.
// copied reports whether the fallback was used.
func Move(src, dst string) (copied bool, err error) {
	err = RenameNoReplace(src, dst)
	if !IsCrossDevice(err) {
		return false, err
	}

	if err := CopyNoReplace(src, dst); err != nil {
		return true, err
	}

	return true, nil
}

// CopyNoReplace copies src next to dst, verifies the copy, publishes it at dst without replacing
// anything and only then removes src. On any failure src is untouched and no partial output remains.
func CopyNoReplace(src, dst string) (err error) {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	dir := filepath.Dir(dst)
	tmpPath := filepath.Join(dir, "."+filepath.Base(dst)+"."+uuid.NewString()+".tmp")

	srcSum, err := copyToTemp(src, tmpPath, info)
	if err != nil {
		return err
	}
	// no-op once the temp file has been published at dst
	defer func() { _ = os.Remove(tmpPath) }()

	if err := verifyCopy(tmpPath, info.Size(), srcSum); err != nil {
		return err
	}

	if err := os.Chtimes(tmpPath, info.ModTime(), info.ModTime()); err != nil {
		return fmt.Errorf("preserve modification time: %w", err)
	}

	if err := renameNoReplace(tmpPath, dst); err != nil {
		return err
	}

	_ = syncDirBestEffort(dir)

	if err := removeFunc(src); err != nil {
		if rbErr := os.Remove(dst); rbErr != nil {
			return fmt.Errorf("remove source after copy: %w", errors.Join(err, rbErr))
		}
		return fmt.Errorf("remove source after copy: %w", err)
	}

	return nil
}

func copyToTemp(src, tmpPath string, info fs.FileInfo) (_ []byte, err error) {
	in, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = out.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	hasher := sha256.New()
	written, err := io.Copy(out, io.TeeReader(in, hasher))
	if err != nil {
		return nil, fmt.Errorf("copy: %w", err)
	}

	if written != info.Size() {
		return nil, fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", info.Size(), written)
	}

	if err := out.Sync(); err != nil {
		return nil, fmt.Errorf("sync temp file: %w", err)
	}

	if err := out.Close(); err != nil {
		return nil, fmt.Errorf("close temp file: %w", err)
	}

	return hasher.Sum(nil), nil
}

func verifyCopy(path string, size int64, sum []byte) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open copy for verification: %w", err)
	}
	defer f.Close()

	hasher := sha256.New()
	n, err := io.Copy(hasher, f)
	if err != nil {
		return fmt.Errorf("read copy for verification: %w", err)
	}

	if n != size || !bytes.Equal(hasher.Sum(nil), sum) {
		return errors.New("copy verification failed: content differs from source")
	}

	return nil
}

// linkAndRemove gives dst a second name for src and drops the old one. Link refuses to replace
// an existing dst, which is what makes the move no-replace.
func linkAndRemove(src, dst string) error {
	err := linkFunc(src, dst)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrExist), isEXDEV(err):
		return err
	case linkUnsupported(err):
		return renameIfAbsent(src, dst)
	default:
		return err
	}

	if err := removeFunc(src); err != nil {
		if rbErr := os.Remove(dst); rbErr != nil {
			return errors.Join(err, rbErr)
		}
		return err
	}

	return nil
}

// renameIfAbsent is the last resort on filesystems without hard links. The check and the rename
// are not atomic.
func renameIfAbsent(src, dst string) error {
	if _, err := os.Lstat(dst); err == nil {
		return &os.LinkError{Op: "rename", Old: src, New: dst, Err: fs.ErrExist}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return renameFunc(src, dst)
}

func syncDirBestEffort(dir string) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}
