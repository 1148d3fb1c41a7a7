package model

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

// KnowledgeChunk is one embedded page window. Seq preserves ingestion order for tie-breaks.
type KnowledgeChunk struct {
	Seq        int64           `gorm:"primaryKey;autoIncrement"`
	DocumentId string          `gorm:"type:uuid;uniqueIndex;not null"`
	SourceUrl  string          `gorm:"type:text;not null;index"`
	Title      string          `gorm:"type:text"`
	Content    string          `gorm:"type:text"`
	ChunkIndex int             `gorm:"default:0"`
	Embedding  pgvector.Vector `gorm:"type:vector"`
	CreatedAt  time.Time
}

func (KnowledgeChunk) TableName() string {
	return "knowledge_chunks"
}
