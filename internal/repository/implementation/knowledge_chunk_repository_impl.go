package implementation

import (
	"context"
	"fmt"

	"kiosk-assistant-be/internal/mapper"
	"kiosk-assistant-be/internal/model"
	"kiosk-assistant-be/pkg/rag/index"
	"kiosk-assistant-be/pkg/store"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

const insertBatchSize = 100

// KnowledgeChunkRepositoryImpl is a pgvector-backed index.DocumentIndex.
type KnowledgeChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.KnowledgeChunkMapper
}

var _ index.DocumentIndex = (*KnowledgeChunkRepositoryImpl)(nil)

func NewKnowledgeChunkRepository(db *gorm.DB) *KnowledgeChunkRepositoryImpl {
	return &KnowledgeChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewKnowledgeChunkMapper(),
	}
}

// Migrate enables the vector extension and creates the chunk table
func (r *KnowledgeChunkRepositoryImpl) Migrate(ctx context.Context) error {
	db := r.db.WithContext(ctx)
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return fmt.Errorf("enable pgvector: %w", err)
	}
	return db.AutoMigrate(&model.KnowledgeChunk{})
}

// Reset drops every chunk, used before a fresh ingestion
func (r *KnowledgeChunkRepositoryImpl) Reset(ctx context.Context) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.KnowledgeChunk{}).Error
}

func (r *KnowledgeChunkRepositoryImpl) Add(ctx context.Context, docs ...store.Document) error {
	if len(docs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(r.mapper.ToModels(docs), insertBatchSize).Error
}

type scoredChunk struct {
	model.KnowledgeChunk
	Similarity float64
}

func (r *KnowledgeChunkRepositoryImpl) Search(ctx context.Context, query []float32, topK int) ([]store.ScoredDocument, error) {
	if topK == 0 {
		return []store.ScoredDocument{}, nil
	}

	var rows []scoredChunk
	if err := r.searchQuery(r.db.WithContext(ctx), query, topK).Scan(&rows).Error; err != nil {
		return nil, err
	}

	results := make([]store.ScoredDocument, len(rows))
	for i := range rows {
		results[i] = store.ScoredDocument{
			Document: r.mapper.ToDocument(&rows[i].KnowledgeChunk),
			Score:    rows[i].Similarity,
		}
	}
	return results, nil
}

// searchQuery ranks by cosine distance; seq breaks ties so earlier chunks win.
// A negative topK returns every chunk.
func (r *KnowledgeChunkRepositoryImpl) searchQuery(db *gorm.DB, query []float32, topK int) *gorm.DB {
	queryVector := pgvector.NewVector(query)
	q := db.Model(&model.KnowledgeChunk{}).
		Select("knowledge_chunks.*, 1 - (embedding <=> ?) AS similarity", queryVector).
		Order(gorm.Expr("embedding <=> ?", queryVector)).
		Order("seq ASC")
	if topK > 0 {
		q = q.Limit(topK)
	}
	return q
}

func (r *KnowledgeChunkRepositoryImpl) Count(ctx context.Context) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.KnowledgeChunk{}).Count(&count).Error
	return int(count), err
}
