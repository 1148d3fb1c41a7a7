package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"kiosk-assistant-be/internal/pkg/logger"
	"kiosk-assistant-be/pkg/embedding"
	"kiosk-assistant-be/pkg/rag/index"
	"kiosk-assistant-be/pkg/store"
	"kiosk-assistant-be/pkg/utils"

	"github.com/go-shiori/go-readability"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Page is the cleaned text of one knowledge source
type Page struct {
	URL   string
	Title string
	Text  string
}

type IPageFetcher interface {
	Fetch(ctx context.Context, source string) (*Page, error)
}

type readabilityFetcher struct {
	client    *http.Client
	userAgent string
}

// NewPageFetcher downloads a page and keeps only its main readable content.
func NewPageFetcher(timeout time.Duration) IPageFetcher {
	return &readabilityFetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: "kiosk-assistant-ingest/1.0",
	}
}

func (f *readabilityFetcher) Fetch(ctx context.Context, source string) (*Page, error) {
	pageURL, err := url.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("invalid source url %q: %w", source, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", source, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("fetch %s: status %d", source, resp.StatusCode)
	}

	article, err := readability.FromReader(resp.Body, pageURL)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", source, err)
	}

	return &Page{
		URL:   source,
		Title: utils.CollapseWhitespace(article.Title),
		Text:  utils.CollapseWhitespace(article.TextContent),
	}, nil
}

// SourceReport summarizes ingestion of one source. Err is empty on success.
type SourceReport struct {
	URL    string `json:"url"`
	Title  string `json:"title,omitempty"`
	Chunks int    `json:"chunks"`
	Err    string `json:"error,omitempty"`
}

type IngestReport struct {
	Sources   []SourceReport `json:"sources"`
	Documents int            `json:"documents"`
}

type IKnowledgeService interface {
	// Initialize loads every source into the index. Failing sources are skipped, never fatal.
	Initialize(ctx context.Context, sources []string) (*IngestReport, error)
}

type knowledgeService struct {
	fetcher           IPageFetcher
	embeddingProvider embedding.EmbeddingProvider
	index             index.DocumentIndex
	chunkSize         int
	concurrency       int
	logger            logger.ILogger
	now               func() time.Time
}

func NewKnowledgeService(
	fetcher IPageFetcher,
	embeddingProvider embedding.EmbeddingProvider,
	idx index.DocumentIndex,
	chunkSize, concurrency int,
	log logger.ILogger,
) IKnowledgeService {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &knowledgeService{
		fetcher:           fetcher,
		embeddingProvider: embeddingProvider,
		index:             idx,
		chunkSize:         chunkSize,
		concurrency:       concurrency,
		logger:            log,
		now:               time.Now,
	}
}

func (s *knowledgeService) Initialize(ctx context.Context, sources []string) (*IngestReport, error) {
	report := &IngestReport{Sources: make([]SourceReport, 0, len(sources))}

	for _, source := range sources {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		docs, title, err := s.ingestSource(ctx, source)
		if err != nil {
			s.logger.Warn("KNOWLEDGE", "Skipping knowledge source", map[string]interface{}{
				"source": source,
				"error":  err.Error(),
			})
			report.Sources = append(report.Sources, SourceReport{URL: source, Err: err.Error()})
			continue
		}

		report.Sources = append(report.Sources, SourceReport{URL: source, Title: title, Chunks: len(docs)})
		report.Documents += len(docs)
	}

	s.logger.Info("KNOWLEDGE", "Knowledge base initialized", map[string]interface{}{
		"sources":   len(sources),
		"documents": report.Documents,
	})
	return report, nil
}

func (s *knowledgeService) ingestSource(ctx context.Context, source string) ([]store.Document, string, error) {
	page, err := s.fetcher.Fetch(ctx, source)
	if err != nil {
		return nil, "", err
	}

	chunks := utils.SplitText(page.Text, s.chunkSize, 0)
	if len(chunks) == 0 {
		return nil, page.Title, fmt.Errorf("no readable text")
	}

	vectors := make([][]float32, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, chunk := range chunks {
		g.Go(func() error {
			vec, err := s.embeddingProvider.Generate(gctx, chunk)
			if err != nil {
				return fmt.Errorf("embed chunk %d: %w", i, err)
			}
			vectors[i] = vec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, page.Title, err
	}

	now := s.now()
	docs := make([]store.Document, len(chunks))
	for i, chunk := range chunks {
		docs[i] = store.Document{
			ID:         uuid.NewString(),
			SourceURL:  page.URL,
			Title:      page.Title,
			Content:    chunk,
			ChunkIndex: i,
			Embedding:  vectors[i],
			CreatedAt:  now,
		}
	}

	if err := s.index.Add(ctx, docs...); err != nil {
		return nil, page.Title, fmt.Errorf("index documents: %w", err)
	}
	return docs, page.Title, nil
}
