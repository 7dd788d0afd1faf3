// Package archive reads newsgroup posts out of the 20 Newsgroups layout.
//
// Posts are stored one per file under <subset dir>/<category>/<id>, where the
// subset directory is named like "20news-bydate-train". The same layout is
// used inside tar.gz archives and on disk. Posts are ISO-8859-1 encoded.
package archive

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/custodia-labs/newsbayes/internal/core/domain"
)

// MIMEType is the content type assigned to every post.
const MIMEType = "message/rfc822"

// MaxPostSize caps the size of a single post.
const MaxPostSize = 8 << 20

// EmitFunc receives each post read. Returning an error stops the read.
type EmitFunc func(doc domain.RawDocument) error

// Read streams the posts of a gzip-compressed tar archive to emit.
// Entries that do not sit under a category directory are skipped.
func Read(ctx context.Context, r io.Reader, emit EmitFunc) error {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return fmt.Errorf("open gzip: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read tar: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}

		category, subset, ok := ParsePath(hdr.Name)
		if !ok {
			continue
		}
		if hdr.Size > MaxPostSize {
			return fmt.Errorf("%w: entry %s is %d bytes", domain.ErrInvalidInput, hdr.Name, hdr.Size)
		}

		content, err := io.ReadAll(tr)
		if err != nil {
			return fmt.Errorf("read entry %s: %w", hdr.Name, err)
		}
		doc, err := NewRawDocument(strings.TrimPrefix(hdr.Name, "./"), category, subset, content)
		if err != nil {
			return err
		}
		if err := emit(doc); err != nil {
			return err
		}
	}
}

// NewRawDocument decodes latin-1 content into a raw post.
func NewRawDocument(uri, category string, subset domain.Subset, content []byte) (domain.RawDocument, error) {
	decoded, err := Decode(content)
	if err != nil {
		return domain.RawDocument{}, fmt.Errorf("decode %s: %w", uri, err)
	}
	return domain.RawDocument{
		URI:      uri,
		MIMEType: MIMEType,
		Content:  decoded,
		Category: category,
		Subset:   subset,
		Metadata: map[string]any{
			"size": len(content),
		},
	}, nil
}

// Decode converts ISO-8859-1 bytes to UTF-8.
func Decode(content []byte) ([]byte, error) {
	return charmap.ISO8859_1.NewDecoder().Bytes(content)
}

// ParsePath extracts the category and subset of a post from its slash
// separated path. The category is the parent directory; the subset comes
// from the directory above it when that is named "*train" or "*test".
// Hidden files and paths without a parent directory are rejected.
func ParsePath(p string) (string, domain.Subset, bool) {
	p = path.Clean(strings.ReplaceAll(p, "\\", "/"))
	parts := strings.Split(strings.TrimPrefix(p, "/"), "/")
	if len(parts) < 2 {
		return "", "", false
	}

	name := parts[len(parts)-1]
	category := parts[len(parts)-2]
	if strings.HasPrefix(name, ".") || category == "." || category == "" || strings.HasPrefix(category, ".") {
		return "", "", false
	}

	var subset domain.Subset
	if len(parts) >= 3 {
		subset = SubsetOf(parts[len(parts)-3])
	}
	return category, subset, true
}

// SubsetOf maps a directory name like "20news-bydate-test" to its subset.
// Names without a recognised suffix map to the empty subset.
func SubsetOf(dir string) domain.Subset {
	dir = strings.ToLower(dir)
	switch {
	case strings.HasSuffix(dir, string(domain.SubsetTrain)):
		return domain.SubsetTrain
	case strings.HasSuffix(dir, string(domain.SubsetTest)):
		return domain.SubsetTest
	default:
		return ""
	}
}
