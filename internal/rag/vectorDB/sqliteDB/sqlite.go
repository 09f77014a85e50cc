package sqliteDB

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/SHoar/Wedding-AI/internal/domain/commonModels"
	"github.com/SHoar/Wedding-AI/pkg/logger_i"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS chunks (
	id          TEXT PRIMARY KEY,
	source      TEXT NOT NULL,
	heading     TEXT NOT NULL,
	content     TEXT NOT NULL,
	chunk_order INTEGER NOT NULL,
	doc_type    TEXT NOT NULL,
	embedding   BLOB NOT NULL
)`

type chunkRow struct {
	ID         string `db:"id"`
	Source     string `db:"source"`
	Heading    string `db:"heading"`
	Content    string `db:"content"`
	ChunkOrder int    `db:"chunk_order"`
	DocType    string `db:"doc_type"`
	Embedding  []byte `db:"embedding"`
}

// Store keeps a collection in a single SQLite file and searches it by brute-force cosine similarity.
type Store struct {
	db     *sqlx.DB
	path   string
	logger *logger_i.Logger
}

// Open creates <dir>/<name>.db if needed.
func Open(dir string, name string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create index directory: %w", err)
	}
	path := filepath.Join(dir, name+".db")

	db, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite collection: %w", err)
	}
	// a single writer keeps WAL happy under concurrent requests
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	logger := logger_i.NewLogger("SQLite Collection")
	logger.Info("Collection opened", "path", path)
	return &Store{db: db, path: path, logger: logger}, nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM chunks`); err != nil {
		return 0, fmt.Errorf("count chunks: %w", err)
	}
	return n, nil
}

func (s *Store) Add(ctx context.Context, chunks []commonModels.DocChunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("mismatch: got %d chunks but %d vectors", len(chunks), len(vectors))
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for i, c := range chunks {
		row := chunkRow{
			ID:         c.ChunkId,
			Source:     c.Source,
			Heading:    c.Heading,
			Content:    c.Text,
			ChunkOrder: c.ChunkOrder,
			DocType:    string(c.DocType),
			Embedding:  vectorToBlob(vectors[i]),
		}
		_, err := tx.NamedExecContext(ctx, `INSERT OR REPLACE INTO chunks (id, source, heading, content, chunk_order, doc_type, embedding)
			VALUES (:id, :source, :heading, :content, :chunk_order, :doc_type, :embedding)`, row)
		if err != nil {
			return fmt.Errorf("insert chunk %s: %w", c.ChunkId, err)
		}
	}
	return tx.Commit()
}

type scored struct {
	chunk commonModels.DocChunk
	score float64
}

func (s *Store) Query(ctx context.Context, vector []float32, k int) ([]commonModels.DocChunk, error) {
	if k <= 0 {
		return []commonModels.DocChunk{}, nil
	}

	var rows []chunkRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT id, source, heading, content, chunk_order, doc_type, embedding FROM chunks`); err != nil {
		return nil, fmt.Errorf("load chunks: %w", err)
	}

	results := make([]scored, 0, len(rows))
	for _, r := range rows {
		stored, err := blobToVector(r.Embedding)
		if err != nil {
			s.logger.Warn("Skipping chunk with corrupt embedding", "id", r.ID, "error", err)
			continue
		}
		results = append(results, scored{
			chunk: commonModels.DocChunk{
				ChunkId:    r.ID,
				Source:     r.Source,
				Heading:    r.Heading,
				Text:       r.Content,
				ChunkOrder: r.ChunkOrder,
				DocType:    commonModels.DocType(r.DocType),
			},
			score: cosineSimilarity(vector, stored),
		})
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].score > results[j].score })
	if len(results) > k {
		results = results[:k]
	}

	out := make([]commonModels.DocChunk, len(results))
	for i, r := range results {
		out[i] = r.chunk
	}
	return out, nil
}

func (s *Store) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM chunks`); err != nil {
		return fmt.Errorf("reset collection: %w", err)
	}
	s.logger.Info("Collection reset", "path", s.path)
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func vectorToBlob(vector []float32) []byte {
	blob := make([]byte, len(vector)*4)
	for i, v := range vector {
		binary.LittleEndian.PutUint32(blob[i*4:i*4+4], math.Float32bits(v))
	}
	return blob
}

func blobToVector(blob []byte) ([]float32, error) {
	if len(blob)%4 != 0 {
		return nil, fmt.Errorf("blob size %d is not a multiple of 4", len(blob))
	}
	vector := make([]float32, len(blob)/4)
	for i := range vector {
		vector[i] = math.Float32frombits(binary.LittleEndian.Uint32(blob[i*4 : i*4+4]))
	}
	return vector, nil
}

// cosineSimilarity is 0 for mismatched or zero-length vectors.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
