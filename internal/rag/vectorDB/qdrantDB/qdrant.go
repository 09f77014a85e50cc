package qdrantDB

import (
	"context"
	"errors"
	"fmt"

	"github.com/SHoar/Wedding-AI/internal/config"
	"github.com/SHoar/Wedding-AI/internal/domain/commonModels"
	"github.com/SHoar/Wedding-AI/pkg/logger_i"
	"github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type ClientHolder struct {
	QObj           *qdrant.Client
	collectionName string
	logger         *logger_i.Logger
}

func NewQdrantCollection(host string, port int, collectionName string) (*ClientHolder, error) {
	if host == "" {
		return nil, errors.New("qdrant host is empty")
	}
	if collectionName == "" {
		return nil, errors.New("empty collection name")
	}
	if port == 0 {
		port = config.QdrantGrpcPort
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:          host,
		Port:          port,
		UseTLS:        config.QdrantUseTLS,
		PoolSize:      uint(config.QdrantPoolSize),
		KeepAliveTime: int(config.QdrantKeepAliveTimeout.Seconds()),
	})
	if err != nil {
		return nil, fmt.Errorf("could not instantiate qdrant client: %w", err)
	}

	logger := logger_i.NewLogger("Qdrant")
	logger.Info("Qdrant client created", "host", host, "port", port, "collection", collectionName)
	return &ClientHolder{QObj: client, collectionName: collectionName, logger: logger}, nil
}

func (db *ClientHolder) Count(ctx context.Context) (int, error) {
	exists, err := db.QObj.CollectionExists(ctx, db.collectionName)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, nil
	}
	n, err := db.QObj.Count(ctx, &qdrant.CountPoints{
		CollectionName: db.collectionName,
		Exact:          qdrant.PtrOf(true),
	})
	return int(n), err
}

func (db *ClientHolder) Query(ctx context.Context, vectorFloat []float32, k int) ([]commonModels.DocChunk, error) {
	loggr := db.logger.WithTrace(ctx)
	if k <= 0 {
		return []commonModels.DocChunk{}, nil
	}

	result, err := db.QObj.Query(ctx, &qdrant.QueryPoints{
		CollectionName: db.collectionName,
		Query:          qdrant.NewQuery(vectorFloat...),
		Limit:          qdrant.PtrOf(uint64(k)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		if s, ok := status.FromError(err); ok && s.Code() == codes.NotFound {
			loggr.Warn("Collection missing, nothing to search", "collection", db.collectionName)
			return []commonModels.DocChunk{}, nil
		}
		loggr.Error("Error querying Qdrant", "error", err)
		return nil, err
	}

	matches := make([]commonModels.DocChunk, 0, len(result))
	for _, hit := range result {
		matches = append(matches, payloadToChunk(hit.Payload))
	}
	loggr.Debug("Found matches", "count", len(matches))
	return matches, nil
}

func (db *ClientHolder) Add(ctx context.Context, chunks []commonModels.DocChunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("mismatch: got %d chunks but %d vectors", len(chunks), len(vectors))
	}
	if len(chunks) == 0 {
		return nil
	}
	if err := db.createCollection(ctx, uint64(len(vectors[0]))); err != nil {
		return fmt.Errorf("qdrant create collection failed: %w", err)
	}

	qdrantPoints := make([]*qdrant.PointStruct, len(chunks))
	for i, chunk := range chunks {
		qdrantPoints[i] = &qdrant.PointStruct{
			Id:      qdrant.NewID(chunk.ChunkId),
			Vectors: qdrant.NewVectors(vectors[i]...),
			Payload: qdrant.NewValueMap(chunkToPayload(chunk)),
		}
	}

	_, err := db.QObj.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: db.collectionName,
		Points:         qdrantPoints,
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("qdrant upsert failed: %w", err)
	}
	return nil
}

// Reset drops the collection; the next Add recreates it with the embedder's dimension.
func (db *ClientHolder) Reset(ctx context.Context) error {
	exists, err := db.QObj.CollectionExists(ctx, db.collectionName)
	if err != nil || !exists {
		return err
	}
	db.logger.Info("Dropping collection", "collection", db.collectionName)
	return db.QObj.DeleteCollection(ctx, db.collectionName)
}

func (db *ClientHolder) Close() error {
	db.logger.Info("Shutting down Qdrant")
	return db.QObj.Close()
}

func (db *ClientHolder) createCollection(ctx context.Context, dimension uint64) error {
	exists, err := db.QObj.CollectionExists(ctx, db.collectionName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	return db.QObj.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: db.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     dimension,
			Distance: qdrant.Distance_Cosine,
		}),
	})
}

func chunkToPayload(chunk commonModels.DocChunk) map[string]any {
	return map[string]any{
		"content":     chunk.Text,
		"source":      chunk.Source,
		"heading":     chunk.Heading,
		"chunk_order": int64(chunk.ChunkOrder),
		"doc_type":    string(chunk.DocType),
		"chunk_id":    chunk.ChunkId,
	}
}

func payloadToChunk(payload map[string]*qdrant.Value) commonModels.DocChunk {
	return commonModels.DocChunk{
		ChunkId:    payload["chunk_id"].GetStringValue(),
		Source:     payload["source"].GetStringValue(),
		Heading:    payload["heading"].GetStringValue(),
		Text:       payload["content"].GetStringValue(),
		ChunkOrder: int(payload["chunk_order"].GetIntegerValue()),
		DocType:    commonModels.DocType(payload["doc_type"].GetStringValue()),
	}
}
