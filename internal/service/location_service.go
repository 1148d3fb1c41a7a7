// FILE: internal/service/location_service.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"kiosk-assistant-be/internal/dto"
	"kiosk-assistant-be/internal/pkg/logger"
	"kiosk-assistant-be/pkg/errs"

	"github.com/patrickmn/go-cache"
)

type ILocationService interface {
	// FindByZip returns kiosks near zipCode, closest first. Zero results wrap errs.ErrNotFound.
	FindByZip(ctx context.Context, zipCode string) ([]dto.KioskLocation, error)
}

type locationService struct {
	baseURL string
	apiKey  string
	client  *http.Client
	timeout time.Duration
	cache   *cache.Cache
	logger  logger.ILogger
}

func NewLocationService(baseURL, apiKey string, timeout, cacheTTL time.Duration, log logger.ILogger) ILocationService {
	return &locationService{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{},
		timeout: timeout,
		cache:   cache.New(cacheTTL, 10*time.Minute),
		logger:  log,
	}
}

type kioskSearchResponse struct {
	Kiosks []struct {
		Name    string `json:"name"`
		Address string `json:"address"`
		City    string `json:"city"`
		State   string `json:"state"`
		Zip     string `json:"zip"`
	} `json:"kiosks"`
}

func (s *locationService) FindByZip(ctx context.Context, zipCode string) ([]dto.KioskLocation, error) {
	cacheKey := "kiosks:" + zipCode
	if val, ok := s.cache.Get(cacheKey); ok {
		return val.([]dto.KioskLocation), nil
	}

	ctx, cancel := gatewayContext(ctx, s.timeout)
	defer cancel()

	params := url.Values{}
	params.Add("zip", zipCode)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/kiosks?"+params.Encode(), nil)
	if err != nil {
		return nil, errs.NewUpstreamError("location", err)
	}
	req.Header.Set("Accept", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errs.NewUpstreamError("location", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.NewUpstreamError("location", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errs.NewUpstreamError("location", fmt.Errorf("status %d: %s", resp.StatusCode, string(body)))
	}

	var result kioskSearchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, errs.NewUpstreamError("location", fmt.Errorf("decode response: %w", err))
	}

	locations := make([]dto.KioskLocation, 0, len(result.Kiosks))
	for _, k := range result.Kiosks {
		if k.Name == "" {
			continue
		}
		locations = append(locations, dto.KioskLocation{
			Name:    k.Name,
			Address: k.Address,
			City:    k.City,
			State:   k.State,
			ZipCode: k.Zip,
		})
	}

	if len(locations) == 0 {
		return nil, fmt.Errorf("kiosks near %s: %w", zipCode, errs.ErrNotFound)
	}

	s.cache.Set(cacheKey, locations, cache.DefaultExpiration)
	s.logger.Debug("LOCATION", "Kiosk lookup", map[string]interface{}{
		"zip":   zipCode,
		"count": len(locations),
	})
	return locations, nil
}
