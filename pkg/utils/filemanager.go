// =============================================================================
// Order Data Validator - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for the validator:
//   - Input file discovery
//   - Archival of processed input files
//   - Output file naming from a configurable pattern
//   - File checksums for run metadata
//
// ARCHIVAL STRATEGY:
//   - Input files are moved to the input archive after successful processing
//   - Failed files remain in their original location
//
// =============================================================================

package utils

import (
	"crypto/md5"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations for the validator.
type FileManager struct {
	// InputDir is the directory where input files are placed.
	InputDir string

	// OutputDir is the directory where output files are placed.
	OutputDir string

	// InputArchiveDir is the directory for archived input files.
	InputArchiveDir string

	// UseTimestampSubdirs creates date-based subdirectories in the archive.
	// Example: input_archive/2026/08/23/orders.csv
	UseTimestampSubdirs bool
}

// NewFileManager creates a new FileManager with the specified directories.
func NewFileManager(inputDir, outputDir, inputArchiveDir string) *FileManager {
	return &FileManager{
		InputDir:        inputDir,
		OutputDir:       outputDir,
		InputArchiveDir: inputArchiveDir,
	}
}

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// DiscoverInputFiles scans the input directory for order files. Only .csv
// and .xlsx files are returned; subdirectories are not descended into.
func (m *FileManager) DiscoverInputFiles() ([]string, error) {
	entries, err := os.ReadDir(m.InputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".csv", ".xlsx":
			files = append(files, filepath.Join(m.InputDir, entry.Name()))
		}
	}
	return files, nil
}

// =============================================================================
// ARCHIVAL
// =============================================================================

// ArchiveInput moves a processed input file into the archive directory and
// returns the destination path. If a file with the same name already exists
// there, a numeric suffix is added.
func (m *FileManager) ArchiveInput(path string) (string, error) {
	archiveDir := m.InputArchiveDir
	if m.UseTimestampSubdirs {
		now := time.Now()
		archiveDir = filepath.Join(archiveDir, now.Format("2006"), now.Format("01"), now.Format("02"))
	}

	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	dest := filepath.Join(archiveDir, filepath.Base(path))
	dest = uniquePath(dest)

	if err := os.Rename(path, dest); err != nil {
		return "", fmt.Errorf("failed to archive %s: %w", filepath.Base(path), err)
	}
	return dest, nil
}

// uniquePath appends " (n)" before the extension until the path is unused.
func uniquePath(path string) string {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}

	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s (%d)%s", base, n, ext)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}

// =============================================================================
// OUTPUT NAMING
// =============================================================================

// RenderOutputName expands an output name pattern for the given input file.
//
// PLACEHOLDERS:
//   {name}      - Input file name without extension
//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//   {uuid}      - A random UUID
//
// The returned name has no extension; the caller appends one per the export
// format.
func RenderOutputName(pattern, inputPath string) string {
	base := filepath.Base(inputPath)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	out := pattern
	out = strings.ReplaceAll(out, "{name}", name)
	out = strings.ReplaceAll(out, "{timestamp}", time.Now().Format("20060102_150405"))
	out = strings.ReplaceAll(out, "{uuid}", uuid.New().String())
	return out
}

// =============================================================================
// CHECKSUMS
// =============================================================================

// Checksum returns the hex MD5 digest of a file's contents. Used as run
// metadata so a processed file can be matched to its report later.
func Checksum(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file for checksum: %w", err)
	}
	return fmt.Sprintf("%x", md5.Sum(data)), nil
}
