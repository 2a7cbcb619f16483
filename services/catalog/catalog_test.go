package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleResponse = `{
	"resultCount": 3,
	"results": [
		{
			"trackId": 111,
			"artistName": "Daft Punk",
			"trackName": "One More Time",
			"releaseDate": "2000-11-13T08:00:00Z",
			"previewUrl": "http://audio.example.com/one-more-time.m4a",
			"artworkUrl100": "http://img.example.com/cover/100x100bb.jpg"
		},
		{
			"trackId": 222,
			"artistName": "No Preview",
			"trackName": "Filtered Out",
			"releaseDate": "1999-01-01T08:00:00Z",
			"previewUrl": "",
			"artworkUrl100": "https://img.example.com/cover/100x100bb.jpg"
		},
		{
			"trackId": 333,
			"artistName": "No Artwork",
			"trackName": "Also Filtered",
			"releaseDate": "1999-01-01T08:00:00Z",
			"previewUrl": "https://audio.example.com/x.m4a",
			"artworkUrl100": ""
		}
	]
}`

func TestSearchFiltersAndNormalizes(t *testing.T) {
	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "daft punk", r.URL.Query().Get("term"))
		assert.Equal(t, "20", r.URL.Query().Get("limit"))
		w.Write([]byte(sampleResponse))
	}))
	defer proxy.Close()

	client := NewClientWithEndpoints(proxy.URL, "http://127.0.0.1:0")

	tracks, err := client.Search(context.Background(), "daft punk", 20)
	assert.NoError(t, err)

	// Entries without preview or artwork are dropped
	assert.Len(t, tracks, 1)

	track := tracks[0]
	assert.Equal(t, int64(111), track.TrackID)
	assert.Equal(t, 2000, track.ReleaseYear)
	assert.Equal(t, "https://audio.example.com/one-more-time.m4a", track.PreviewURL)
	assert.Equal(t, "https://img.example.com/cover/600x600bb.jpg", track.ArtworkURL)
}

func TestSearchFallsBackToDirectEndpoint(t *testing.T) {
	proxyCalls, directCalls := 0, 0

	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		proxyCalls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer proxy.Close()

	direct := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		directCalls++
		w.Write([]byte(sampleResponse))
	}))
	defer direct.Close()

	client := NewClientWithEndpoints(proxy.URL, direct.URL)

	tracks, err := client.Search(context.Background(), "daft punk", 5)
	assert.NoError(t, err)
	assert.Len(t, tracks, 1)
	assert.Equal(t, 1, proxyCalls)
	assert.Equal(t, 1, directCalls)
}

func TestSearchErrorWhenBothEndpointsFail(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer failing.Close()

	client := NewClientWithEndpoints(failing.URL, failing.URL)

	tracks, err := client.Search(context.Background(), "daft punk", 5)
	assert.Error(t, err)
	assert.Nil(t, tracks)
}
