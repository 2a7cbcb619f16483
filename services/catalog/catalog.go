package catalog

import (
	redis_models "TuneDuel/models/redis"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

/**
 * Song metadata fetcher. Queries a CORS/rate-limit proxy in front of the
 * catalog API first and falls back to the direct endpoint when the proxy
 * fails. Results are filtered down to tracks that are actually playable in
 * a game (preview audio + artwork present) and normalized to https with
 * upgraded artwork resolution.
 */

const defaultProxyURL = "https://tuneduel-proxy.fly.dev/search"
const defaultDirectURL = "https://itunes.apple.com/search"

// Client fetches song metadata for the pool builder.
type Client struct {
	proxyURL  string
	directURL string
	http      *http.Client
}

// NewClient builds a catalog client from the environment, keeping the
// defaults when CATALOG_PROXY_URL / CATALOG_DIRECT_URL are unset.
func NewClient() *Client {
	proxy := os.Getenv("CATALOG_PROXY_URL")
	if proxy == "" {
		proxy = defaultProxyURL
	}
	direct := os.Getenv("CATALOG_DIRECT_URL")
	if direct == "" {
		direct = defaultDirectURL
	}
	return &Client{
		proxyURL:  proxy,
		directURL: direct,
		http:      &http.Client{Timeout: 10 * time.Second},
	}
}

// NewClientWithEndpoints is used by tests to point at local servers.
func NewClientWithEndpoints(proxyURL, directURL string) *Client {
	c := NewClient()
	c.proxyURL = proxyURL
	c.directURL = directURL
	return c
}

type searchResponse struct {
	Results []searchResult `json:"results"`
}

type searchResult struct {
	TrackID       int64  `json:"trackId"`
	ArtistName    string `json:"artistName"`
	TrackName     string `json:"trackName"`
	ReleaseDate   string `json:"releaseDate"`
	PreviewURL    string `json:"previewUrl"`
	ArtworkURL100 string `json:"artworkUrl100"`
}

// Search fetches up to limit tracks for a search term, trying the proxy
// endpoint first and the direct endpoint on any failure.
func (c *Client) Search(ctx context.Context, term string, limit int) ([]redis_models.Track, error) {
	tracks, proxyErr := c.fetch(ctx, c.proxyURL, term, limit)
	if proxyErr == nil {
		return tracks, nil
	}

	tracks, directErr := c.fetch(ctx, c.directURL, term, limit)
	if directErr != nil {
		return nil, fmt.Errorf("catalog search failed (proxy: %v): %v", proxyErr, directErr)
	}
	return tracks, nil
}

func (c *Client) fetch(ctx context.Context, endpoint string, term string, limit int) ([]redis_models.Track, error) {
	query := url.Values{}
	query.Set("term", term)
	query.Set("media", "music")
	query.Set("limit", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("error building catalog request: %v", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error querying catalog: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("error decoding catalog response: %v", err)
	}

	tracks := make([]redis_models.Track, 0, len(parsed.Results))
	for _, result := range parsed.Results {
		// Unplayable entries are useless to every game type
		if result.PreviewURL == "" || result.ArtworkURL100 == "" {
			continue
		}
		tracks = append(tracks, redis_models.Track{
			TrackID:     result.TrackID,
			ArtistName:  result.ArtistName,
			TrackName:   result.TrackName,
			ReleaseYear: parseReleaseYear(result.ReleaseDate),
			PreviewURL:  secureURL(result.PreviewURL),
			ArtworkURL:  upgradeArtwork(secureURL(result.ArtworkURL100)),
		})
	}
	return tracks, nil
}

func secureURL(raw string) string {
	return strings.Replace(raw, "http://", "https://", 1)
}

// upgradeArtwork swaps the catalog's thumbnail resolution for the larger
// rendition the game screens display.
func upgradeArtwork(raw string) string {
	return strings.Replace(raw, "100x100", "600x600", 1)
}

func parseReleaseYear(releaseDate string) int {
	if len(releaseDate) < 4 {
		return 0
	}
	year, err := strconv.Atoi(releaseDate[:4])
	if err != nil {
		return 0
	}
	return year
}
