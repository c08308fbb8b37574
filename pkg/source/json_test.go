package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/dealscope/pkg/domain"
)

func TestJSONSource_FetchDefaultFields(t *testing.T) {
	body := `{"query":"kindle","results":[
		{"id":"MLB1","title":"Kindle 11","price":399.0,"original_price":499.0,
		 "permalink":"https://produto.mercadolivre.com.br/MLB-1-kindle","thumbnail":"http://img/1.jpg"},
		{"id":"X9","title":"Capa","price":"R$ 10,00","original_price":null,"permalink":"https://loja.example.com/capa"}
	]}`
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	src := NewJSONSource(JSONParams{Name: "ml", URL: server.URL + "/search?q={query}"})
	listings, err := src.Fetch(context.Background(), "kindle 11", 0)
	require.NoError(t, err)
	assert.Equal(t, "kindle 11", gotQuery)
	require.Len(t, listings, 2)

	k := listings[0]
	assert.Equal(t, "Kindle 11", k.Title)
	assert.Empty(t, k.Identity, "marketplace identity is derived from url later")
	assert.InDelta(t, 399.0, k.Price, 0.001)
	require.NotNil(t, k.OriginalPrice)
	assert.InDelta(t, 499.0, *k.OriginalPrice, 0.001)
	assert.Equal(t, "http://img/1.jpg", k.ImageURL)
	assert.Equal(t, domain.OriginVolumeCategory, k.Origin)

	c := listings[1]
	assert.Equal(t, "ml:X9", c.Identity)
	assert.InDelta(t, 10.0, c.Price, 0.001)
	assert.Nil(t, c.OriginalPrice)
}

func TestJSONSource_FetchCustomFields(t *testing.T) {
	body := `[{"name":"Echo Dot","offer":{"price":279.9,"list":[399.9]},"link":"https://www.amazon.com.br/dp/B09B8V1LZ3",
		"off":30,"seller":"Amazon BR"}]`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	src := NewJSONSource(JSONParams{Name: "custom", URL: server.URL, Origin: domain.OriginFeed, Fields: map[string]string{
		"title": "name", "price": "offer.price", "original_price": "offer.list.0", "url": "link",
		"discount": "off", "store": "seller",
	}})
	listings, err := src.Fetch(context.Background(), "", 0)
	require.NoError(t, err)
	require.Len(t, listings, 1)
	l := listings[0]
	assert.Equal(t, "Echo Dot", l.Title)
	assert.InDelta(t, 279.9, l.Price, 0.001)
	assert.InDelta(t, 399.9, *l.OriginalPrice, 0.001)
	assert.InDelta(t, 30.0, *l.SourceDiscountPct, 0.001)
	assert.Equal(t, "Amazon BR", l.Store)
	assert.Equal(t, domain.OriginFeed, l.Origin)
}

func TestJSONSource_FetchErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/bad":
			_, _ = w.Write([]byte("{oops"))
		case "/noitems":
			_, _ = w.Write([]byte(`{"results":"none"}`))
		default:
			w.WriteHeader(http.StatusTooManyRequests)
		}
	}))
	defer server.Close()

	for _, path := range []string{"/bad", "/noitems", "/limited"} {
		_, err := NewJSONSource(JSONParams{URL: server.URL + path}).Fetch(context.Background(), "", 0)
		assert.Error(t, err, path)
	}
}

func TestLookup(t *testing.T) {
	doc := map[string]any{"a": map[string]any{"b": []any{"x", map[string]any{"c": 1.5}}}}
	assert.Equal(t, 1.5, lookup(doc, "a.b.1.c"))
	assert.Equal(t, "x", lookup(doc, "a.b.0"))
	assert.Nil(t, lookup(doc, "a.b.5"))
	assert.Nil(t, lookup(doc, "a.z.c"))
	assert.Nil(t, lookup(doc, ""))
}
