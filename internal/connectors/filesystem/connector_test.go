package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/newsbayes/internal/connectors/archive/archivetest"
	"github.com/custodia-labs/newsbayes/internal/core/domain"
	"github.com/custodia-labs/newsbayes/internal/core/ports/driven"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func drain(t *testing.T, c *Connector) ([]domain.RawDocument, error) {
	t.Helper()
	docsCh, errsCh := c.FullSync(context.Background())

	var docs []domain.RawDocument
	for doc := range docsCh {
		docs = append(docs, doc)
	}
	var err error
	for e := range errsCh {
		if err == nil {
			err = e
		}
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].URI < docs[j].URI })
	return docs, err
}

func TestNew(t *testing.T) {
	t.Run("creates connector with root path", func(t *testing.T) {
		connector := New("/tmp/test")

		require.NotNil(t, connector)
		assert.Equal(t, "/tmp/test", connector.RootPath())
	})

	t.Run("implements Connector interface", func(t *testing.T) {
		var _ driven.Connector = New("/tmp")
	})

	t.Run("returns filesystem type", func(t *testing.T) {
		assert.Equal(t, "filesystem", New("/tmp").Type())
	})
}

func TestConnector_Validate(t *testing.T) {
	ctx := context.Background()

	t.Run("directory", func(t *testing.T) {
		assert.NoError(t, New(t.TempDir()).Validate(ctx))
	})

	t.Run("empty path", func(t *testing.T) {
		assert.ErrorIs(t, New("").Validate(ctx), domain.ErrInvalidInput)
	})

	t.Run("missing path", func(t *testing.T) {
		err := New(filepath.Join(t.TempDir(), "missing")).Validate(ctx)
		assert.ErrorIs(t, err, domain.ErrCorpusUnavailable)
	})

	t.Run("plain file", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "notes.txt", "x")
		err := New(filepath.Join(dir, "notes.txt")).Validate(ctx)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestConnector_FullSync_Directory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "20news-bydate-train/sci.space/1", "Subject: a\n\nrocket\n")
	writeFile(t, root, "20news-bydate-test/rec.autos/2", "Subject: b\n\nengine\n")
	writeFile(t, root, "misc.forsale/3", archivetest.Latin1("Subject: c\n\nprix réduit\n"))
	writeFile(t, root, "README", "top-level files have no category")
	writeFile(t, root, ".git/objects/ab", "hidden")

	docs, err := drain(t, New(root))
	require.NoError(t, err)
	require.Len(t, docs, 3)

	assert.Equal(t, "20news-bydate-test/rec.autos/2", docs[0].URI)
	assert.Equal(t, "rec.autos", docs[0].Category)
	assert.Equal(t, domain.SubsetTest, docs[0].Subset)

	assert.Equal(t, "sci.space", docs[1].Category)
	assert.Equal(t, domain.SubsetTrain, docs[1].Subset)
	assert.Equal(t, "message/rfc822", docs[1].MIMEType)

	assert.Equal(t, "misc.forsale", docs[2].Category)
	assert.Equal(t, domain.Subset(""), docs[2].Subset)
	assert.Equal(t, "Subject: c\n\nprix réduit\n", string(docs[2].Content))
	assert.Equal(t, filepath.Join(root, "misc.forsale", "3"), docs[2].Metadata["path"])
}

func TestConnector_FullSync_Archive(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "20news-bydate.tar.gz")
	data := archivetest.Build(t, map[string]string{
		"20news-bydate-train/sci.space/1": "Subject: a\n\nrocket\n",
		"20news-bydate-test/sci.space/2":  "Subject: b\n\norbit\n",
	})
	require.NoError(t, os.WriteFile(path, data, 0o644))

	docs, err := drain(t, New(path))
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, domain.SubsetTest, docs[0].Subset)
	assert.Equal(t, domain.SubsetTrain, docs[1].Subset)
}

func TestConnector_FullSync_CorruptArchive(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.tgz")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))

	_, err := drain(t, New(path))
	assert.ErrorIs(t, err, domain.ErrCorpusUnavailable)
}

func TestConnector_FullSync_MissingRoot(t *testing.T) {
	_, err := drain(t, New(filepath.Join(t.TempDir(), "nope")))
	assert.ErrorIs(t, err, domain.ErrCorpusUnavailable)
}

func TestConnector_Closed(t *testing.T) {
	c := New(t.TempDir())
	require.NoError(t, c.Close())

	_, err := drain(t, c)
	assert.ErrorIs(t, err, domain.ErrConnectorClosed)
}

func TestConnector_FullSync_Cancelled(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"1", "2", "3"} {
		writeFile(t, root, "train/sci.med/"+name, "x")
	}

	ctx, cancel := context.WithCancel(context.Background())
	docsCh, errsCh := New(root).FullSync(ctx)
	<-docsCh
	cancel()
	for range docsCh {
	}

	var err error
	for e := range errsCh {
		err = e
	}
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsArchive(t *testing.T) {
	assert.True(t, IsArchive("20news-bydate.tar.gz"))
	assert.True(t, IsArchive("/data/CORPUS.TGZ"))
	assert.False(t, IsArchive("/data/corpus"))
	assert.False(t, IsArchive("corpus.zip"))
}
