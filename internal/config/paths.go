package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains the application directories. All paths are resolved
// relative to the executable location, never the working directory.
type Paths struct {
	ExecutableDir string
	DataDir       string
	DownloadsDir  string
	OutputDir     string
	LogsDir       string
}

// GetPaths returns the application paths relative to the executable location.
func GetPaths() (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %w", err)
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %w", err)
	}
	return NewPaths(filepath.Dir(exe)), nil
}

// NewPaths builds the directory layout rooted at baseDir.
func NewPaths(baseDir string) *Paths {
	dataDir := filepath.Join(baseDir, "data")
	return &Paths{
		ExecutableDir: baseDir,
		DataDir:       dataDir,
		DownloadsDir:  filepath.Join(dataDir, "downloads"),
		OutputDir:     filepath.Join(dataDir, "output"),
		LogsDir:       filepath.Join(baseDir, "logs"),
	}
}

// EnsureDirectories creates all required directories.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.DataDir, p.DownloadsDir, p.OutputDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetDownloadPath returns the full path for a downloaded workbook.
func (p *Paths) GetDownloadPath(filename string) string {
	return filepath.Join(p.DownloadsDir, filename)
}

// GetOutputPath returns the full path for a generated output file.
func (p *Paths) GetOutputPath(filename string) string {
	return filepath.Join(p.OutputDir, filename)
}

// GetLogPath returns the full path for a log file.
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}
