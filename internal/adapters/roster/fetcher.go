package roster

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/lukegvoigt/vnr-checkin/internal/domain"
)

type httpFetcher struct {
	client *http.Client
}

// NewHTTPFetcher returns a fetcher that downloads a roster CSV over HTTP.
// The registration form publishes responses at a stable CSV URL, so imports
// can pull straight from there instead of a local file.
func NewHTTPFetcher(client *http.Client) domain.RosterFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &httpFetcher{client: client}
}

func (f *httpFetcher) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roster: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("roster url returned status: %d", resp.StatusCode)
	}
	return resp.Body, nil
}
