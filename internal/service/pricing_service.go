package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"kiosk-assistant-be/internal/dto"
	"kiosk-assistant-be/pkg/device"
	"kiosk-assistant-be/pkg/errs"
)

type IPricingService interface {
	// GetEstimate quotes a complete device. A nil Offer means no quote is available.
	GetEstimate(ctx context.Context, slots *device.SlotSet) (*dto.Estimate, error)
}

type pricingService struct {
	baseURL string
	apiKey  string
	client  *http.Client
	timeout time.Duration
}

func NewPricingService(baseURL, apiKey string, timeout time.Duration) IPricingService {
	return &pricingService{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{},
		timeout: timeout,
	}
}

func (s *pricingService) GetEstimate(ctx context.Context, slots *device.SlotSet) (*dto.Estimate, error) {
	if !slots.IsComplete() {
		return nil, &errs.ValidationError{Missing: slots.Missing()}
	}

	payload, err := json.Marshal(dto.EstimateRequest{
		Brand:   slots.Brand,
		Model:   slots.Model,
		Series:  slots.Series,
		Storage: slots.Storage,
		Carrier: slots.Carrier,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	ctx, cancel := gatewayContext(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/estimates", bytes.NewBuffer(payload))
	if err != nil {
		return nil, errs.NewUpstreamError("pricing", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errs.NewUpstreamError("pricing", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.NewUpstreamError("pricing", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errs.NewUpstreamError("pricing", fmt.Errorf("status %d: %s", resp.StatusCode, string(body)))
	}

	var estimate dto.Estimate
	if err := json.Unmarshal(body, &estimate); err != nil {
		return nil, errs.NewUpstreamError("pricing", fmt.Errorf("decode response: %w", err))
	}
	if estimate.Currency == "" {
		estimate.Currency = "USD"
	}
	return &estimate, nil
}
