package cellar

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Report summarizes the outcome of a Download run.
type Report struct {
	// ZipFiles counts payloads that arrived as zip archives and were
	// extracted into per-id directories.
	ZipFiles int `json:"zip_files"`

	// SingleFiles counts payloads written as single files.
	SingleFiles int `json:"single_files"`

	// Failed lists the ids that could not be fetched or written.
	Failed []string `json:"failed,omitempty"`

	// Paths maps each successful id to the file or directory it was
	// written to.
	Paths map[string]string `json:"paths"`
}

// Download fetches the given Cellar ids and writes them under dir.
// Zip payloads are extracted into a directory named after the id;
// other payloads are written as a single file with the given format as
// extension. Failures are logged and collected in the report rather
// than aborting the run.
func (client *Client) Download(ctx context.Context, ids []string, dir, format string) (*Report, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	report := &Report{Paths: make(map[string]string)}

	for _, id := range ids {
		payload, err := client.Fetch(ctx, id)
		if err != nil {
			client.logger.Warn("fetch failed", "id", id, "error", err)
			report.Failed = append(report.Failed, id)
			continue
		}

		if payload.IsZip() {
			target := filepath.Join(dir, id)
			if err := extractZip(payload.Body, target); err != nil {
				client.logger.Warn("zip extraction failed", "id", id, "error", err)
				report.Failed = append(report.Failed, id)
				continue
			}
			report.ZipFiles++
			report.Paths[id] = target
			continue
		}

		target := filepath.Join(dir, id+"."+format)
		if err := os.WriteFile(target, payload.Body, 0o644); err != nil {
			client.logger.Warn("write failed", "id", id, "error", err)
			report.Failed = append(report.Failed, id)
			continue
		}
		report.SingleFiles++
		report.Paths[id] = target
	}

	return report, nil
}

// extractZip unpacks a zip archive held in memory into dir.
func extractZip(archive []byte, dir string) error {
	reader, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return fmt.Errorf("failed to open zip archive: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	for _, file := range reader.File {
		target := filepath.Join(dir, file.Name)

		// Reject entries that escape the target directory.
		if !strings.HasPrefix(target, filepath.Clean(dir)+string(os.PathSeparator)) {
			return fmt.Errorf("zip entry %s escapes target directory", file.Name)
		}

		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", target, err)
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", filepath.Dir(target), err)
		}

		source, err := file.Open()
		if err != nil {
			return fmt.Errorf("failed to open zip entry %s: %w", file.Name, err)
		}
		data, err := io.ReadAll(source)
		source.Close()
		if err != nil {
			return fmt.Errorf("failed to read zip entry %s: %w", file.Name, err)
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", target, err)
		}
	}
	return nil
}
