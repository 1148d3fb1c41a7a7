package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"kiosk-assistant-be/internal/pkg/logger"
	"kiosk-assistant-be/pkg/embedding"
	"kiosk-assistant-be/pkg/rag/index"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	pages map[string]*Page
}

func (f *fakeFetcher) Fetch(_ context.Context, source string) (*Page, error) {
	if p, ok := f.pages[source]; ok {
		return p, nil
	}
	return nil, errors.New("unreachable")
}

func TestKnowledgeServiceInitialize(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]*Page{
		"https://a": {URL: "https://a", Title: "How it works", Text: strings.Repeat("a", 25)},
		"https://b": {URL: "https://b", Title: "FAQ", Text: "short"},
		"https://e": {URL: "https://e", Title: "Empty", Text: "   "},
	}}
	idx := index.NewMemoryIndex()
	svc := NewKnowledgeService(fetcher, embedding.NewHashProvider(16), idx, 10, 2, logger.NewNopLogger())

	report, err := svc.Initialize(context.Background(), []string{"https://a", "https://down", "https://b", "https://e"})
	require.NoError(t, err)

	assert.Equal(t, 4, report.Documents)
	require.Len(t, report.Sources, 4)
	assert.Equal(t, SourceReport{URL: "https://a", Title: "How it works", Chunks: 3}, report.Sources[0])
	assert.NotEmpty(t, report.Sources[1].Err)
	assert.Equal(t, 1, report.Sources[2].Chunks)
	assert.NotEmpty(t, report.Sources[3].Err)

	n, err := idx.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	// chunks keep ingestion order and carry their embedding
	hits, err := idx.Search(context.Background(), embedding.HashEmbedding(strings.Repeat("a", 10), 16), 4)
	require.NoError(t, err)
	require.Len(t, hits, 4)
	assert.Equal(t, "https://a", hits[0].Document.SourceURL)
	assert.Equal(t, 0, hits[0].Document.ChunkIndex)
	assert.Len(t, hits[0].Document.Embedding, 16)
}

func TestKnowledgeServiceStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := NewKnowledgeService(&fakeFetcher{}, embedding.NewHashProvider(8), index.NewMemoryIndex(), 10, 1, logger.NewNopLogger())
	_, err := svc.Initialize(ctx, []string{"https://a"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPageFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><title>How ecoATM Works</title></head><body>
<nav>Home | Sell | Locations</nav>
<article><h1>How ecoATM Works</h1>
<p>Place your device in the test station and the kiosk evaluates it automatically. The offer depends on the model, condition and market value of the device.</p>
<p>If you accept the offer you are paid in cash right away. A valid government issued ID is required for every sale at an ecoATM kiosk.</p>
<p>Devices are checked for data and recycled responsibly when they cannot be resold.</p>
</article></body></html>`))
	}))
	defer srv.Close()

	fetcher := NewPageFetcher(time.Second)

	page, err := fetcher.Fetch(context.Background(), srv.URL+"/how-it-works")
	require.NoError(t, err)
	assert.Contains(t, page.Title, "ecoATM")
	assert.Contains(t, page.Text, "paid in cash right away")
	assert.NotContains(t, page.Text, "\n")

	_, err = fetcher.Fetch(context.Background(), srv.URL+"/missing")
	assert.Error(t, err)
}
