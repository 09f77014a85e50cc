package config

import (
	"context"
	"log/slog"
	"time"
)

type ContextKey string

const (
	LOG_LEVEL_PROD                   = slog.LevelInfo
	TRACE_ID_KEY          ContextKey = "traceId"
	TRACE_ID_HEADER                  = "X-Trace-Id"
	RATE_LIMIT_PER_SECOND            = 2
	BURST_RATE_LIMIT_PER_SECOND      = 5
	RateLimiterIdleTTL               = 10 * time.Minute

	AppName    = "wedding-ai"
	AppVersion = "1.0.0"

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 120 * time.Second //generation + summary can take a while on slow models
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":8000"

	//request limits
	MaxQuestionLength = 4000
	MaxRequestBytes   = 1 << 20

	//documentation index
	CollectionName     = "wedding_ai_docs"
	MaxChunkChars      = 1200
	ChunkTruncateMark  = "\n..."
	EmbeddingBatchSize = 100
	DocsGlob           = "*.md"
	ExtraDocsGlob      = "*.{txt,docx,rtf,odt,pdf}"
	PdfPageTimeout     = 10 * time.Second

	//embeddings
	EmbeddingOutputDimensionality int32 = 1536

	//vectorDB
	QdrantGrpcPort         = 6334
	QdrantUseTLS           = false
	QdrantPoolSize         = 1
	QdrantKeepAliveTimeout = 30 * time.Second

	//llm
	ModelTemperature float32 = 0
	LLMMaxRetries            = 0

	//response cache
	CacheMaxEntries  = 500
	CacheRedisPrefix = "wedding-ai:answer:"
	CacheRedisDB     = 0

	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//redis
	redisHost        = "127.0.0.1"
	redisPort        = "6379"
	DefaultRedisAddr = redisHost + ":" + redisPort
	RedisPingTimeout = 3 * time.Second
	RedisIOTimeout   = 5 * time.Second
)

// TraceID returns the request trace id stored by the trace middleware, or "" when absent.
func TraceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	trace, _ := ctx.Value(TRACE_ID_KEY).(string)
	return trace
}

func WithTraceID(ctx context.Context, trace string) context.Context {
	return context.WithValue(ctx, TRACE_ID_KEY, trace)
}
