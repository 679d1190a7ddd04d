package cep

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/huum-shop/storefront-api/internal/obs"
	"github.com/huum-shop/storefront-api/internal/resilience"
)

// AddressLookup resolves a normalized postal code into a structured address.
type AddressLookup interface {
	Lookup(ctx context.Context, code string) (Address, error)
}

// ViaCEPClient queries the public ViaCEP service.
type ViaCEPClient struct {
	BaseURL string
	HTTP    resilience.HTTPClient
}

type viaCEPResponse struct {
	CEP          string `json:"cep"`
	Street       string `json:"logradouro"`
	Complement   string `json:"complemento"`
	Neighborhood string `json:"bairro"`
	City         string `json:"localidade"`
	State        string `json:"uf"`
	Erro         bool   `json:"erro"`
}

// Lookup fetches the address for a normalized 8-digit code. Unknown codes
// return ErrNotFound; anything unexpected wraps ErrLookupFailed.
func (c ViaCEPClient) Lookup(ctx context.Context, code string) (Address, error) {
	url := fmt.Sprintf("%s/ws/%s/json/", strings.TrimRight(c.BaseURL, "/"), code)
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}
	start := time.Now()
	resp, err := c.HTTP.Do(ctx, req)
	obs.UpstreamLatency.WithLabelValues("viacep").Observe(float64(time.Since(start).Milliseconds()))
	if err != nil {
		return Address{}, fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return Address{}, fmt.Errorf("%w: viacep status %d", ErrLookupFailed, resp.StatusCode)
	}
	var payload viaCEPResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Address{}, fmt.Errorf("%w: decode viacep response: %v", ErrLookupFailed, err)
	}
	if payload.Erro {
		return Address{}, ErrNotFound
	}
	return Address{
		PostalCode:   code,
		Street:       payload.Street,
		Neighborhood: payload.Neighborhood,
		City:         payload.City,
		State:        payload.State,
	}, nil
}
