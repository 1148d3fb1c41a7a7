package service

import (
	"context"
	"sync"

	"kiosk-assistant-be/internal/dto"
	"kiosk-assistant-be/pkg/device"
	"kiosk-assistant-be/pkg/llm"
	"kiosk-assistant-be/pkg/store"
)

type fakePricing struct {
	estimate *dto.Estimate
	err      error
	calls    []*device.SlotSet
}

func (f *fakePricing) GetEstimate(_ context.Context, slots *device.SlotSet) (*dto.Estimate, error) {
	f.calls = append(f.calls, slots)
	return f.estimate, f.err
}

type fakeLocation struct {
	locations []dto.KioskLocation
	err       error
	zips      []string
}

func (f *fakeLocation) FindByZip(_ context.Context, zip string) ([]dto.KioskLocation, error) {
	f.zips = append(f.zips, zip)
	return f.locations, f.err
}

type fakeRetriever struct {
	docs    []store.ScoredDocument
	err     error
	queries []string
}

func (f *fakeRetriever) Search(_ context.Context, query string, _ int) ([]store.ScoredDocument, error) {
	f.queries = append(f.queries, query)
	return f.docs, f.err
}

type fakeLLM struct {
	reply   string
	err     error
	history []llm.Message
}

func (f *fakeLLM) Chat(_ context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
	f.history = history
	return f.reply, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}

type fakePublisher struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (f *fakePublisher) Publish(_ context.Context, payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payloads = append(f.payloads, payload)
	return nil
}

type fakeObserver struct {
	actions  []string
	failures []string
}

func (f *fakeObserver) ObserveAction(action string)          { f.actions = append(f.actions, action) }
func (f *fakeObserver) ObserveGatewayFailure(gateway string) { f.failures = append(f.failures, gateway) }
