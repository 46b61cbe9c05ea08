// Package filex contains local filesystem helpers for the client.
package filex

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// EnsureSubDir creates dirName under the working directory if needed and
// returns its absolute path.
func EnsureSubDir(dirName string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}

	dir := filepath.Join(cwd, dirName)

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// CreateInSubDir creates (or truncates) fileName inside dirName. Only the
// base name of fileName is used.
func CreateInSubDir(dirName, fileName string) (*os.File, error) {
	dir, err := EnsureSubDir(dirName)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(dir, filepath.Base(fileName))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o660)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, nil
}

// Save creates fileName inside dirName, lets fill write its content and
// returns the full path. The file is removed when fill fails.
func Save(dirName, fileName string, fill func(io.Writer) error) (string, error) {
	f, err := CreateInSubDir(dirName, fileName)
	if err != nil {
		return "", err
	}

	if err := fill(f); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", err
	}

	if err := f.Close(); err != nil {
		return "", err
	}
	return f.Name(), nil
}
