// file: internal/lookup/audible_test.go
// version: 1.0.0
// guid: 5f7a9b1c-3d4e-5f6a-7b8c-9d0e1f2a3b4d

package lookup

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAudibleSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/1.0/catalog/products", r.URL.Path)
		assert.Contains(t, r.URL.Query().Get("keywords"), "Jaws of Darkness")
		assert.Contains(t, r.URL.Query().Get("response_groups"), "series")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"products": [
				{
					"asin": "B002V0QK4C",
					"title": "Jaws of Darkness",
					"authors": [{"name": "Harry Turtledove"}],
					"narrators": [{"name": "George Guidall"}],
					"release_date": "2003-06-17",
					"series": [{"title": "Southern Victory", "sequence": "5"}]
				},
				{"title": "No Authors Entry"}
			]
		}`))
	}))
	defer server.Close()

	res := NewAudibleClientWithBaseURL(server.URL).Search("Harry Turtledove", "Jaws of Darkness")

	require.Empty(t, res.Reason)
	require.Len(t, res.Candidates, 1, "a product without authors is dropped")
	c := res.Candidates[0]
	assert.Equal(t, "Harry Turtledove", c.Author)
	assert.Equal(t, "Jaws of Darkness", c.Title)
	assert.Equal(t, "2003", c.Year)
	assert.Equal(t, "Southern Victory", c.Series)
	assert.Equal(t, "5", c.Sequence)
	assert.Equal(t, "George Guidall", c.Narrator)
	assert.Equal(t, "audible", c.Source)
}

func TestAudibleSearchEmptyCatalog(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"products": []}`))
	}))
	defer server.Close()

	res := NewAudibleClientWithBaseURL(server.URL).Search("a", "t")
	assert.Empty(t, res.Candidates)
	assert.Contains(t, res.Reason, "no results")
}
