package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/teranos/fsdefs/errors"
	"github.com/teranos/fsdefs/logger"
)

// createBackup rotates .back1..3 before an existing file is overwritten
func createBackup(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	back3 := path + ".back3"
	back2 := path + ".back2"
	back1 := path + ".back1"

	if err := os.Remove(back3); err != nil && !os.IsNotExist(err) {
		logger.Logger.Warnw("Failed to delete old backup", logger.FieldFile, back3, logger.FieldError, err)
	}

	if _, err := os.Stat(back2); err == nil {
		if err := os.Rename(back2, back3); err != nil {
			return errors.Wrap(err, "failed to rotate .back2 to .back3")
		}
	}
	if _, err := os.Stat(back1); err == nil {
		if err := os.Rename(back1, back2); err != nil {
			return errors.Wrap(err, "failed to rotate .back1 to .back2")
		}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "failed to read config for backup")
	}
	if err := os.WriteFile(back1, content, DefaultFilePermissions); err != nil {
		return errors.Wrap(err, "failed to create .back1")
	}
	return nil
}

// Save writes cfg as TOML to path, rotating backups of any existing file.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), DefaultDirPermissions); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}
	if err := createBackup(path); err != nil {
		return errors.Wrap(err, "failed to create backup")
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}
	if err := os.WriteFile(path, data, DefaultFilePermissions); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

// IsBackupFile reports whether path is one of the rotated .backN files
func IsBackupFile(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".back1" || ext == ".back2" || ext == ".back3"
}
