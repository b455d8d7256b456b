package io

import (
	"iter"
	"os"
	"path/filepath"

	"github.com/matzehuels/appicon/pkg/errors"
	"github.com/matzehuels/appicon/pkg/pipeline"
)

// WriteArtifact writes a to dir/a.Name and returns the written path.
//
// The directory is created if needed. The data is written to a temporary
// file in dir and renamed over the target, so readers never observe a
// partially written file.
func WriteArtifact(dir string, a pipeline.Artifact) (string, error) {
	if err := errors.ValidateDestination(dir); err != nil {
		return "", err
	}
	if a.Name == "" || filepath.Base(a.Name) != a.Name {
		return "", errors.New(errors.ErrCodeInvalidPath, "invalid artifact name: %q", a.Name)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(errors.ErrCodeIO, err, "create %s", dir)
	}

	path := filepath.Join(dir, a.Name)
	tmp, err := os.CreateTemp(dir, "."+a.Name+".*.tmp")
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeIO, err, "create temp file in %s", dir)
	}
	tmpName := tmp.Name()
	ok := false
	defer func() {
		if !ok {
			os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(a.Data); err != nil {
		tmp.Close()
		return "", errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return "", errors.Wrap(errors.ErrCodeIO, err, "chmod %s", path)
	}
	if err := tmp.Close(); err != nil {
		return "", errors.Wrap(errors.ErrCodeIO, err, "close %s", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return "", errors.Wrap(errors.ErrCodeIO, err, "rename to %s", path)
	}
	ok = true
	return path, nil
}

// WriteAll writes every artifact from seq into dir as it is produced.
// onWrite, if non-nil, is called after each successful write.
// The first pipeline or write error stops the run and is returned unchanged.
func WriteAll(dir string, seq iter.Seq2[pipeline.Artifact, error], onWrite func(a pipeline.Artifact, path string)) error {
	for a, err := range seq {
		if err != nil {
			return err
		}
		path, err := WriteArtifact(dir, a)
		if err != nil {
			return err
		}
		if onWrite != nil {
			onWrite(a, path)
		}
	}
	return nil
}
