package generator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// CopyStatic clears the output directory when CleanBuild is set, recreates
// it and copies every file below StaticDir into it, keeping the relative
// layout. The page template is not copied when it lives inside StaticDir.
func (s *service) CopyStatic(ctx context.Context) (int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if strings.TrimSpace(s.cfg.OutputDir) == "" {
		return 0, errOutputRequired
	}

	if s.cfg.CleanBuild {
		if err := s.writer.RemoveAll(ctx, s.cfg.OutputDir); err != nil {
			return 0, fmt.Errorf("generator: clear %s: %w", s.cfg.OutputDir, err)
		}
	}
	if err := s.writer.EnsureDir(ctx, s.cfg.OutputDir); err != nil {
		return 0, fmt.Errorf("generator: create %s: %w", s.cfg.OutputDir, err)
	}

	staticDir := strings.TrimSpace(s.cfg.StaticDir)
	if staticDir == "" {
		return 0, nil
	}
	if info, err := os.Stat(staticDir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("generator.static.missing", "static_dir", staticDir)
			return 0, nil
		}
		return 0, fmt.Errorf("generator: stat static dir: %w", err)
	} else if !info.IsDir() {
		return 0, fmt.Errorf("generator: static path %s is not a directory", staticDir)
	}

	skip := ""
	if tmpl := strings.TrimSpace(s.cfg.TemplatePath); tmpl != "" {
		if abs, err := filepath.Abs(tmpl); err == nil {
			skip = abs
		}
	}

	copied := 0
	dirCache := map[string]struct{}{}
	err := filepath.WalkDir(staticDir, func(current string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, err := filepath.Rel(staticDir, current)
		if err != nil {
			return err
		}
		target := filepath.Join(s.cfg.OutputDir, rel)
		if d.IsDir() {
			return ensureDir(ctx, s.writer, dirCache, target)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if abs, err := filepath.Abs(current); err == nil && abs == skip {
			return nil
		}
		if err := s.copyStaticFile(ctx, current, target); err != nil {
			return err
		}
		copied++
		s.logger.Debug("generator.static.copied", "source", current, "output", target)
		return nil
	})
	if err != nil {
		return copied, fmt.Errorf("generator: copy static: %w", err)
	}
	s.logger.Info("generator.static.completed", "static_dir", staticDir, "files", copied)
	return copied, nil
}

func (s *service) copyStaticFile(ctx context.Context, source, target string) error {
	file, err := os.Open(source)
	if err != nil {
		return err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return err
	}
	return s.writer.WriteFile(ctx, writeFileRequest{
		Path:     target,
		Content:  file,
		Size:     info.Size(),
		Category: categoryAsset,
	})
}
