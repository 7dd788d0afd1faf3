package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/newsbayes/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/newsbayes/internal/core/domain"
	"github.com/custodia-labs/newsbayes/internal/core/ports/driven"
)

// jsonNull is the JSON representation of null.
const jsonNull = "null"

// timeLayout is the text encoding of timestamp columns.
const timeLayout = time.RFC3339Nano

// Store is a SQLite-based corpus cache.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.newsbayes/data/corpus.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".newsbayes", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "corpus.db")

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// CorpusStore returns a CorpusStore interface backed by this store.
func (s *Store) CorpusStore() driven.CorpusStore {
	return &corpusStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Corpus Store ====================

// corpusStore implements driven.CorpusStore.
type corpusStore struct {
	store *Store
}

var _ driven.CorpusStore = (*corpusStore)(nil)

// SaveCorpus replaces the corpus and all its documents in one transaction.
func (s *corpusStore) SaveCorpus(ctx context.Context, corpus *domain.Corpus) error {
	if corpus == nil || corpus.Name == "" {
		return fmt.Errorf("%w: corpus must have a name", domain.ErrInvalidInput)
	}

	categoriesJSON, err := json.Marshal(corpus.Categories)
	if err != nil {
		return fmt.Errorf("marshalling categories: %w", err)
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	// Documents go with the corpus row via ON DELETE CASCADE.
	if _, err := tx.ExecContext(ctx, "DELETE FROM corpora WHERE name = ?", corpus.Name); err != nil {
		return fmt.Errorf("removing previous corpus: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO corpora (name, categories, fetched_at, saved_at)
		VALUES (?, ?, ?, ?)
	`, corpus.Name, string(categoriesJSON), formatTime(corpus.FetchedAt), formatTime(time.Now()))
	if err != nil {
		return fmt.Errorf("saving corpus: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO documents (corpus, position, id, uri, title, content, category, label, subset, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for i := range corpus.Documents {
		doc := &corpus.Documents[i]
		var metadata sql.NullString
		if len(doc.Metadata) > 0 {
			data, err := json.Marshal(doc.Metadata)
			if err != nil {
				return fmt.Errorf("marshalling metadata of %s: %w", doc.URI, err)
			}
			metadata = sql.NullString{String: string(data), Valid: true}
		}

		_, err = stmt.ExecContext(ctx, corpus.Name, i, doc.ID, doc.URI, doc.Title, doc.Content,
			doc.Category, doc.Label, string(doc.Subset), metadata, formatTime(doc.CreatedAt))
		if err != nil {
			return fmt.Errorf("saving document %s: %w", doc.URI, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing corpus: %w", err)
	}
	return nil
}

// LoadCorpus retrieves a corpus with its documents in saved order.
func (s *corpusStore) LoadCorpus(ctx context.Context, name string) (*domain.Corpus, error) {
	corpus := &domain.Corpus{Name: name}
	var categoriesJSON, fetchedAt string

	err := s.store.db.QueryRowContext(ctx,
		"SELECT categories, fetched_at FROM corpora WHERE name = ?", name,
	).Scan(&categoriesJSON, &fetchedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("loading corpus: %w", err)
	}

	if err := json.Unmarshal([]byte(categoriesJSON), &corpus.Categories); err != nil {
		return nil, fmt.Errorf("unmarshalling categories: %w", err)
	}
	if corpus.FetchedAt, err = parseTime(fetchedAt); err != nil {
		return nil, err
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, uri, title, content, category, label, subset, metadata, created_at
		FROM documents WHERE corpus = ? ORDER BY position
	`, name)
	if err != nil {
		return nil, fmt.Errorf("loading documents: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		corpus.Documents = append(corpus.Documents, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return corpus, nil
}

// DeleteCorpus removes a corpus and its documents.
func (s *corpusStore) DeleteCorpus(ctx context.Context, name string) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM corpora WHERE name = ?", name); err != nil {
		return fmt.Errorf("deleting corpus: %w", err)
	}
	return nil
}

// ListCorpora summarises every cached corpus, ordered by name.
func (s *corpusStore) ListCorpora(ctx context.Context) ([]domain.CorpusInfo, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT c.name, c.categories, c.fetched_at,
			(SELECT COUNT(*) FROM documents d WHERE d.corpus = c.name)
		FROM corpora c ORDER BY c.name
	`)
	if err != nil {
		return nil, fmt.Errorf("listing corpora: %w", err)
	}
	defer rows.Close()

	var infos []domain.CorpusInfo
	for rows.Next() {
		var info domain.CorpusInfo
		var categoriesJSON, fetchedAt string
		if err := rows.Scan(&info.Name, &categoriesJSON, &fetchedAt, &info.Documents); err != nil {
			return nil, fmt.Errorf("scanning corpus: %w", err)
		}
		var categories []string
		if err := json.Unmarshal([]byte(categoriesJSON), &categories); err != nil {
			return nil, fmt.Errorf("unmarshalling categories: %w", err)
		}
		info.Categories = len(categories)
		if info.FetchedAt, err = parseTime(fetchedAt); err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating corpora: %w", err)
	}
	return infos, nil
}

// scanDocument scans a document from *sql.Rows.
func scanDocument(rows *sql.Rows) (*domain.Document, error) {
	var doc domain.Document
	var subset, createdAt string
	var metadata sql.NullString

	if err := rows.Scan(&doc.ID, &doc.URI, &doc.Title, &doc.Content, &doc.Category,
		&doc.Label, &subset, &metadata, &createdAt); err != nil {
		return nil, fmt.Errorf("scanning document: %w", err)
	}
	doc.Subset = domain.Subset(subset)

	if metadata.Valid && metadata.String != "" && metadata.String != jsonNull {
		if err := json.Unmarshal([]byte(metadata.String), &doc.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshalling metadata: %w", err)
		}
	}

	var err error
	if doc.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &doc, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t, nil
}
