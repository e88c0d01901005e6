package generator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type writeCategory string

const (
	categoryPage     writeCategory = "page"
	categoryAsset    writeCategory = "asset"
	categoryManifest writeCategory = "manifest"
)

// writeFileRequest is one output file. Checksum, when set, is the expected
// hex sha256 of Content.
type writeFileRequest struct {
	Path     string
	Content  io.Reader
	Size     int64
	Category writeCategory
	Checksum string
}

// artifactWriter is the only path by which the generator touches the output
// directory.
type artifactWriter interface {
	EnsureDir(ctx context.Context, path string) error
	WriteFile(ctx context.Context, req writeFileRequest) error
	RemoveAll(ctx context.Context, path string) error
}

// fileWriter writes to the local filesystem. Files are written to a temporary
// sibling and renamed into place, so a watcher or browser never sees a
// partial page.
type fileWriter struct{}

func (fileWriter) EnsureDir(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(path) == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o755)
}

func (fileWriter) WriteFile(ctx context.Context, req writeFileRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if req.Content == nil {
		return errors.New("generator: write requires content")
	}
	if strings.TrimSpace(req.Path) == "" {
		return errors.New("generator: write requires a path")
	}

	tmp, err := os.CreateTemp(filepath.Dir(req.Path), ".mdsite-*")
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	hash := sha256.New()
	written, err := io.Copy(io.MultiWriter(tmp, hash), req.Content)
	if err != nil {
		return err
	}
	if req.Size > 0 && written != req.Size {
		return fmt.Errorf("generator: %s %s: wrote %d of %d bytes", req.Category, req.Path, written, req.Size)
	}
	if req.Checksum != "" && hex.EncodeToString(hash.Sum(nil)) != req.Checksum {
		return fmt.Errorf("generator: %s %s: checksum mismatch", req.Category, req.Path)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), req.Path); err != nil {
		return err
	}
	committed = true
	return nil
}

func (fileWriter) RemoveAll(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(path) == "" {
		return nil
	}
	return os.RemoveAll(path)
}
