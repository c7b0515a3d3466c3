package typegen

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"

	"github.com/teranos/fsdefs/errors"
)

// CheckResult holds the result of comparing fresh output with committed output
type CheckResult struct {
	UpToDate bool
	// Differences lists files whose content differs, relative to the output dir
	Differences []string
	// Missing lists generated files absent from the output dir
	Missing []string
}

// CompareDirectories compares every file generated into generatedDir with the
// file of the same relative path in existingDir. Extra files in existingDir
// are ignored.
func CompareDirectories(generatedDir, existingDir string) (*CheckResult, error) {
	res := &CheckResult{}

	err := filepath.Walk(generatedDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		rel, err := filepath.Rel(generatedDir, path)
		if err != nil {
			return err
		}

		fresh, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, "failed to read %s", path)
		}
		existing, err := os.ReadFile(filepath.Join(existingDir, rel))
		if os.IsNotExist(err) {
			res.Missing = append(res.Missing, rel)
			return nil
		}
		if err != nil {
			return errors.Wrapf(err, "failed to read %s", rel)
		}
		if !bytes.Equal(fresh, existing) {
			res.Differences = append(res.Differences, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(res.Differences)
	sort.Strings(res.Missing)
	res.UpToDate = len(res.Differences) == 0 && len(res.Missing) == 0
	return res, nil
}

// Err returns ErrOutOfDate with the affected files as details, or nil.
func (r *CheckResult) Err() error {
	if r.UpToDate {
		return nil
	}
	err := errors.ErrOutOfDate
	for _, f := range r.Differences {
		err = errors.WithDetailf(err, "differs: %s", f)
	}
	for _, f := range r.Missing {
		err = errors.WithDetailf(err, "missing: %s", f)
	}
	return errors.WithHint(err, "run `fsdefs generate` to refresh the output")
}
