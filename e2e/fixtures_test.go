//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// CreateTestWorkspace creates a temporary directory used as $HOME and config dir
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir
	return tmpDir, nil
}

// WriteFile writes a file relative to the workspace and returns its path
func (tf *TUITestFramework) WriteFile(name, content string) (string, error) {
	if tf.workspace == "" {
		return "", fmt.Errorf("workspace not created")
	}
	path := filepath.Join(tf.workspace, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	return path, os.WriteFile(path, []byte(content), 0644)
}

// LogPath is where the app under test writes its log
func (tf *TUITestFramework) LogPath() string {
	return filepath.Join(tf.workspace, "selectkit.log")
}

// StartDemo starts the app in a fresh workspace with logging kept inside it
func (tf *TUITestFramework) StartDemo(args ...string) error {
	if tf.workspace == "" {
		if _, err := tf.CreateTestWorkspace(); err != nil {
			return err
		}
	}
	return tf.StartApp(append([]string{"--log-file", tf.LogPath()}, args...)...)
}
