package utils

//run redis (only needed with CACHE_BACKEND=redis)
//docker run -p 6379:6379 -d redis

//run qdrant (only needed with QDRANT_HOST set)
//docker run -p 6333:6333 -p 6334:6334 -v weddingDocs:/qdrant/storage qdrant/qdrant

//swagger init
//swag init -g cmd/api/main.go --parseDependency --parseInternal --dir ./ --output ./cmd/api/docs
