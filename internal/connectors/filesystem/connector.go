// Package filesystem reads a 20 Newsgroups corpus from local disk, either as
// a tar.gz archive or as an extracted directory tree.
package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/newsbayes/internal/connectors/archive"
	"github.com/custodia-labs/newsbayes/internal/core/domain"
	"github.com/custodia-labs/newsbayes/internal/core/ports/driven"
	"github.com/custodia-labs/newsbayes/internal/logger"
)

// Ensure Connector implements the interface.
var _ driven.Connector = (*Connector)(nil)

// Connector reads posts from a local archive or directory.
type Connector struct {
	rootPath string

	mu     sync.Mutex
	closed bool
}

// New creates a connector rooted at rootPath.
func New(rootPath string) *Connector {
	return &Connector{rootPath: rootPath}
}

// Type returns the connector type identifier.
func (c *Connector) Type() string {
	return string(domain.SourceFilesystem)
}

// RootPath returns the archive or directory path.
func (c *Connector) RootPath() string {
	return c.rootPath
}

// Validate checks the root path exists.
func (c *Connector) Validate(ctx context.Context) error {
	if err := c.checkOpen(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.rootPath == "" {
		return fmt.Errorf("%w: corpus path is empty", domain.ErrInvalidInput)
	}

	info, err := os.Stat(c.rootPath)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrCorpusUnavailable, err)
	}
	if !info.IsDir() && !IsArchive(c.rootPath) {
		return fmt.Errorf("%w: %s is neither a directory nor a .tar.gz archive", domain.ErrInvalidInput, c.rootPath)
	}
	return nil
}

// FullSync streams every post under the root path.
func (c *Connector) FullSync(ctx context.Context) (<-chan domain.RawDocument, <-chan error) {
	docsChan := make(chan domain.RawDocument)
	errsChan := make(chan error, 1)

	go func() {
		defer close(docsChan)
		defer close(errsChan)

		if err := c.Validate(ctx); err != nil {
			errsChan <- err
			return
		}

		emit := func(doc domain.RawDocument) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case docsChan <- doc:
				return nil
			}
		}

		var err error
		if IsArchive(c.rootPath) {
			err = c.readArchive(ctx, emit)
		} else {
			err = c.walk(ctx, emit)
		}
		if err != nil {
			errsChan <- fmt.Errorf("%w: %s: %w", domain.ErrCorpusUnavailable, c.rootPath, err)
		}
	}()

	return docsChan, errsChan
}

// Close marks the connector closed.
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

// IsArchive reports whether path names a gzip-compressed tarball.
func IsArchive(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".tar.gz") || strings.HasSuffix(lower, ".tgz")
}

func (c *Connector) checkOpen() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return domain.ErrConnectorClosed
	}
	return nil
}

func (c *Connector) readArchive(ctx context.Context, emit archive.EmitFunc) error {
	f, err := os.Open(c.rootPath)
	if err != nil {
		return err
	}
	defer f.Close()

	logger.Debug("Reading archive %s", c.rootPath)
	return archive.Read(ctx, f, emit)
}

// walk emits every regular file sitting under a category directory.
// Hidden directories are skipped.
func (c *Connector) walk(ctx context.Context, emit archive.EmitFunc) error {
	return filepath.WalkDir(c.rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			if path != c.rootPath && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(c.rootPath, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		category, subset, ok := archive.ParsePath(rel)
		if !ok {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", rel, err)
		}
		doc, err := archive.NewRawDocument(rel, category, subset, content)
		if err != nil {
			return err
		}
		doc.Metadata["path"] = path
		return emit(doc)
	})
}
