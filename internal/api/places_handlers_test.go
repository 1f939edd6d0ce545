package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablelog/tablelog-server/internal/places"
)

var fakePhoto = []byte{0xFF, 0xD8, 0xFF, 0xE0, 'j', 'p', 'e', 'g'}

// fakeGateway serves a two-result search, details for both places, and a photo.
func fakeGateway(t *testing.T) places.Config {
	t.Helper()

	mux := http.NewServeMux()
	search := func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"status":"OK","results":[
			{"place_id":"p-1","name":"Paradise Biryani","types":["restaurant","food"]},
			{"place_id":"p-2","name":"Night Owl Cafe","types":["cafe","food"]}
		]}`)
	}
	mux.HandleFunc("/textsearch/json", search)
	mux.HandleFunc("/nearbysearch/json", search)
	mux.HandleFunc("/details/json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("place_id") {
		case "p-1":
			fmt.Fprint(w, `{"status":"OK","result":{
				"name":"Paradise Biryani","formatted_address":"38 MG Road","rating":4.4,
				"user_ratings_total":1520,"types":["restaurant","food"],
				"photos":[{"photo_reference":"ref-1","width":1200,"height":800}],
				"opening_hours":{"open_now":true},
				"geometry":{"location":{"lat":17.385,"lng":78.4867}},
				"reviews":[{"author_name":"Asha","rating":5,"text":"Great","time":1700000000}]
			}}`)
		case "p-2":
			fmt.Fprint(w, `{"status":"OK","result":{
				"name":"Night Owl Cafe","formatted_address":"9 Lake View","rating":4.1,
				"user_ratings_total":310,"types":["cafe","food"],
				"geometry":{"location":{"lat":17.4,"lng":78.5}}
			}}`)
		default:
			fmt.Fprint(w, `{"status":"NOT_FOUND"}`)
		}
	})
	mux.HandleFunc("/photo", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("photoreference") != "ref-1" {
			http.Error(w, "unknown photo", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write(fakePhoto)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return places.Config{APIKey: "test-key", BaseURL: srv.URL, RequestsPerSecond: 1000}
}

func TestPlacesSearch(t *testing.T) {
	ts := setupTestServer(t, fakeGateway(t))

	resp := ts.api.Get("/api/v1/places/search?query=biryani&lat=17.4&lng=78.5")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	results := decodeData[PlaceResultsResponse](t, resp).Results
	require.Len(t, results, 2)
	assert.Equal(t, "p-1", results[0].PlaceID)
	assert.Equal(t, "38 MG Road", results[0].Address)
	assert.InDelta(t, 17.385, results[0].Location.Lat, 1e-9)
	require.NotNil(t, results[0].PhotoURL)
	assert.Equal(t, places.PhotoURL("ref-1", places.DefaultPhotoWidth), *results[0].PhotoURL)
	assert.Nil(t, results[1].PhotoURL)

	resp = ts.api.Get("/api/v1/places/nearby?lat=17.4&lng=78.5&keyword=cafe")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Len(t, decodeData[PlaceResultsResponse](t, resp).Results, 2)
}

func TestPlacesSearch_MissingQuery(t *testing.T) {
	ts := setupTestServer(t, fakeGateway(t))

	resp := ts.api.Get("/api/v1/places/search")
	requireError(t, resp, http.StatusUnprocessableEntity, "VALIDATION")
}

func TestPlaceDetails_IncludesStoredReviews(t *testing.T) {
	ts := setupTestServer(t, fakeGateway(t))

	resp := ts.api.Post("/api/v1/restaurants/p-1/reviews", map[string]any{"rating": 4, "comment": "Solid"})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	resp = ts.api.Get("/api/v1/places/p-1")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	details := decodeData[PlaceDetailsResponse](t, resp)
	assert.Equal(t, "Paradise Biryani", details.Name)
	assert.Equal(t, 1520, details.ReviewCount)
	require.NotNil(t, details.OpenNow)
	assert.True(t, *details.OpenNow)
	require.Len(t, details.Reviews, 1)
	assert.Equal(t, "Asha", details.Reviews[0].UserName)
	require.Len(t, details.StoredUserReview, 1)
	assert.Equal(t, "Solid", details.StoredUserReview[0]["comment"])

	resp = ts.api.Get("/api/v1/places/unknown")
	requireError(t, resp, http.StatusNotFound, "NOT_FOUND")
}

func TestPlacePhoto(t *testing.T) {
	ts := setupTestServer(t, fakeGateway(t))

	req := httptest.NewRequest(http.MethodGet, places.PhotoURL("ref-1", 400), nil)
	w := httptest.NewRecorder()
	ts.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))
	assert.Equal(t, CacheOneDay, w.Header().Get("Cache-Control"))
	assert.Equal(t, fakePhoto, w.Body.Bytes())
}

func TestPlacePhoto_Errors(t *testing.T) {
	ts := setupTestServer(t, fakeGateway(t))

	tests := []struct {
		name   string
		target string
		status int
		code   string
	}{
		{"missing reference", places.PhotoPath, http.StatusBadRequest, "VALIDATION"},
		{"width too large", places.PhotoPath + "?photo_reference=ref-1&maxwidth=5000", http.StatusBadRequest, "VALIDATION"},
		{"gateway rejects", places.PhotoPath + "?photo_reference=nope", http.StatusBadGateway, "UPSTREAM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			ts.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.target, nil))
			requireError(t, w, tt.status, tt.code)
		})
	}
}

func TestPlaces_NotConfigured(t *testing.T) {
	ts := setupTestServer(t, places.Config{})

	resp := ts.api.Get("/api/v1/places/search?query=biryani")
	requireError(t, resp, http.StatusServiceUnavailable, "NOT_CONFIGURED")

	resp = ts.api.Get("/api/v1/places/p-1")
	requireError(t, resp, http.StatusServiceUnavailable, "NOT_CONFIGURED")
}

func TestPlaces_RateLimited(t *testing.T) {
	ts := setupTestServer(t, places.Config{})

	limited := 0
	for range 30 {
		resp := ts.api.Get("/api/v1/places/search?query=biryani")
		if resp.Code == http.StatusTooManyRequests {
			env := decodeEnvelope(t, resp)
			assert.Equal(t, "RATE_LIMITED", env.Code)
			limited++
		}
	}
	assert.Positive(t, limited)
}

func TestCuratedLists_Refresh(t *testing.T) {
	ts := setupTestServer(t, fakeGateway(t))

	resp := ts.api.Post("/api/v1/curated-lists/refresh", map[string]any{
		"location": map[string]any{"lat": 17.4, "lng": 78.5},
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	lists := decodeData[CuratedListsResponse](t, resp).Lists
	require.Len(t, lists, 3)
	for _, l := range lists {
		assert.Len(t, l.Restaurants, 2, l.ID)
	}

	resp = ts.api.Get("/api/v1/curated-lists")
	assert.Len(t, decodeData[CuratedListsResponse](t, resp).Lists, 3)
}

func TestCuratedLists_RefreshWithoutBody(t *testing.T) {
	ts := setupTestServer(t, fakeGateway(t))

	resp := ts.api.Post("/api/v1/curated-lists/refresh")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Len(t, decodeData[CuratedListsResponse](t, resp).Lists, 3)
}
