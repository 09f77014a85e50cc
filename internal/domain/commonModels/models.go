package commonModels

type DocChunk struct {
	ChunkId    string  `json:"chunk_id"`
	Source     string  `json:"source"`
	Heading    string  `json:"heading"`
	Text       string  `json:"content"`
	ChunkOrder int     `json:"chunk_order"`
	DocType    DocType `json:"doc_type"`
}

type DocType string

var MD DocType = "MD"
var PDF DocType = "PDF"
var DOCX DocType = "DOCX"
var TXT DocType = "TXT"
var ERR DocType = "ERROR"

// Answer is the result of one question, as served and as cached.
type Answer struct {
	Answer         string  `json:"answer"`
	Model          string  `json:"model"`
	ContextSummary *string `json:"context_summary"`
}
