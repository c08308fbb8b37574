package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/dealscope/pkg/domain"
)

const merchantFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:g="http://base.google.com/ns/1.0">
<channel>
	<title>Ofertas</title>
	<link>https://loja.example.com</link>
	<item>
		<title>Fone Bluetooth</title>
		<link>https://loja.example.com/fone</link>
		<g:id>123</g:id>
		<g:price>199.90 BRL</g:price>
		<g:sale_price>99.90 BRL</g:sale_price>
		<g:image_link>https://loja.example.com/img/fone.jpg</g:image_link>
	</item>
	<item>
		<title>Air Fryer de R$ 499,90 por R$ 299,90 - 40% OFF</title>
		<link>https://produto.mercadolivre.com.br/MLB-1234-air-fryer</link>
		<description>Oferta relâmpago</description>
		<enclosure url="https://img.example.com/air.jpg" type="image/jpeg" length="1"/>
	</item>
	<item>
		<title>Kindle por R$ 1.299,00</title>
		<link>https://www.amazon.com.br/dp/B09SWRYPB2</link>
	</item>
</channel>
</rss>`

func TestFeedSource_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("Accept-Language"), "pt")
		assert.Equal(t, "secret", r.Header.Get("X-Token"))
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(merchantFeed))
	}))
	defer server.Close()

	src := NewFeedSource(FeedParams{Name: "loja", URL: server.URL,
		Client: newHTTPClient(5*time.Second, map[string]string{"X-Token": "secret"})})
	assert.Equal(t, "loja", src.Name())

	listings, err := src.Fetch(context.Background(), "", 0)
	require.NoError(t, err)
	require.Len(t, listings, 3)

	fone := listings[0]
	assert.Equal(t, "loja:123", fone.Identity, "merchant id used when url has no marketplace id")
	assert.Equal(t, "Fone Bluetooth", fone.Title)
	assert.InDelta(t, 99.9, fone.Price, 0.001)
	require.NotNil(t, fone.OriginalPrice)
	assert.InDelta(t, 199.9, *fone.OriginalPrice, 0.001)
	assert.Equal(t, "https://loja.example.com/img/fone.jpg", fone.ImageURL)
	assert.Equal(t, domain.OriginFeed, fone.Origin)

	air := listings[1]
	assert.Empty(t, air.Identity, "marketplace identity is derived later")
	assert.InDelta(t, 299.9, air.Price, 0.001)
	require.NotNil(t, air.OriginalPrice)
	assert.InDelta(t, 499.9, *air.OriginalPrice, 0.001)
	require.NotNil(t, air.SourceDiscountPct)
	assert.InDelta(t, 40.0, *air.SourceDiscountPct, 0.001)
	assert.Equal(t, "https://img.example.com/air.jpg", air.ImageURL)

	kindle := listings[2]
	assert.InDelta(t, 1299.0, kindle.Price, 0.001)
	assert.Nil(t, kindle.OriginalPrice)

	limited, err := src.Fetch(context.Background(), "", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestFeedSource_FetchQueryTemplate(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		_, _ = w.Write([]byte(merchantFeed))
	}))
	defer server.Close()

	src := NewFeedSource(FeedParams{URL: server.URL + "/busca?q={query}", Origin: domain.OriginTrendSearch})
	listings, err := src.Fetch(context.Background(), "air fryer", 1)
	require.NoError(t, err)
	assert.Equal(t, "air fryer", gotQuery)
	require.Len(t, listings, 1)
	assert.Equal(t, domain.OriginTrendSearch, listings[0].Origin)
}

func TestFeedSource_FetchErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/broken" {
			_, _ = w.Write([]byte("not a feed"))
			return
		}
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := NewFeedSource(FeedParams{URL: server.URL + "/blocked"}).Fetch(context.Background(), "", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")

	_, err = NewFeedSource(FeedParams{URL: server.URL + "/broken"}).Fetch(context.Background(), "", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse feed")
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"199.90 BRL", 199.9, true},
		{"R$ 1.299,90", 1299.9, true},
		{"1299,9", 1299.9, true},
		{"1.299", 1299, true},
		{"19.99", 19.99, true},
		{"1.234.567", 1234567, true},
		{"R$ 49", 49, true},
		{"1,299.90", 1299.9, true},
		{"US$ 1,299.90", 1299.9, true},
		{"2,499.00 BRL", 2499, true},
		{"1.299,90", 1299.9, true},
		{"1299.9", 1299.9, true},
		{"1,234,567.5", 1234567.5, true},
		{"1,299", 1299, true},
		{"49,9", 49.9, true},
		{"grátis", 0, false},
		{"0,00", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParsePrice(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}
}

func TestTextPrices(t *testing.T) {
	assert.Equal(t, []float64{499.9, 299.9}, textPrices("De R$ 499,90 por R$299,90"))
	assert.Empty(t, textPrices("sem preço"))
}
