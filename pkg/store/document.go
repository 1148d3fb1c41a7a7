package store

import "time"

// Document is one chunk of a scraped knowledge page
type Document struct {
	ID         string    `json:"id"`
	SourceURL  string    `json:"source_url"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	ChunkIndex int       `json:"chunk_index"`
	Embedding  []float32 `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

// SourceLabel is the label shown in front of the chunk in a prompt context block
func (d Document) SourceLabel() string {
	if d.Title != "" {
		return d.Title
	}
	return d.SourceURL
}

// ScoredDocument pairs a document with its similarity to a query
type ScoredDocument struct {
	Document Document
	Score    float64
}
