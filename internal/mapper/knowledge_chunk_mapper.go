package mapper

import (
	"kiosk-assistant-be/internal/model"
	"kiosk-assistant-be/pkg/store"

	"github.com/pgvector/pgvector-go"
)

type KnowledgeChunkMapper struct{}

func NewKnowledgeChunkMapper() *KnowledgeChunkMapper {
	return &KnowledgeChunkMapper{}
}

func (m *KnowledgeChunkMapper) ToDocument(c *model.KnowledgeChunk) store.Document {
	return store.Document{
		ID:         c.DocumentId,
		SourceURL:  c.SourceUrl,
		Title:      c.Title,
		Content:    c.Content,
		ChunkIndex: c.ChunkIndex,
		Embedding:  c.Embedding.Slice(),
		CreatedAt:  c.CreatedAt,
	}
}

// ToModel leaves Seq zero so the database assigns it
func (m *KnowledgeChunkMapper) ToModel(d store.Document) *model.KnowledgeChunk {
	return &model.KnowledgeChunk{
		DocumentId: d.ID,
		SourceUrl:  d.SourceURL,
		Title:      d.Title,
		Content:    d.Content,
		ChunkIndex: d.ChunkIndex,
		Embedding:  pgvector.NewVector(d.Embedding),
		CreatedAt:  d.CreatedAt,
	}
}

func (m *KnowledgeChunkMapper) ToModels(docs []store.Document) []*model.KnowledgeChunk {
	models := make([]*model.KnowledgeChunk, len(docs))
	for i, d := range docs {
		models[i] = m.ToModel(d)
	}
	return models
}
