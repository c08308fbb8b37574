package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentity(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"mercado livre item", "https://produto.mercadolivre.com.br/MLB-4049279695-tenis-corrida-_JM", "MLB4049279695"},
		{"mercado livre catalog", "https://www.mercadolivre.com.br/kindle-11/p/MLB34229008?pdp_filters=x", "MLB34229008"},
		{"mercado livre query id", "https://www.mercadolivre.com.br/ofertas?item_id=MLB123456", "MLB123456"},
		{"amazon dp", "https://www.amazon.com.br/Echo-Dot/dp/B09B8V1LZ3/ref=sr_1_1?tag=x", "AMZ-B09B8V1LZ3"},
		{"amazon gp product", "https://amazon.com.br/gp/product/B0BQJS1ZYV", "AMZ-B0BQJS1ZYV"},
		{"shopee slug", "https://shopee.com.br/Fone-Bluetooth-i.123456.789012?sp_atk=1", "SHP-123456.789012"},
		{"shopee product path", "https://shopee.com.br/product/123/456", "SHP-123.456"},
		{"unknown store", "https://WWW.Loja.example.com/produto/fone/?utm=1#top", "loja.example.com/produto/fone"},
		{"amazon without asin", "https://www.amazon.com.br/s?k=fone", "amazon.com.br/s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Identity(tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("same product from different urls", func(t *testing.T) {
		a, err := Identity("https://produto.mercadolivre.com.br/MLB-1234-fone-a")
		require.NoError(t, err)
		b, err := Identity("https://produto.mercadolivre.com.br/MLB-1234-fone-b?ref=x")
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("no host", func(t *testing.T) {
		_, err := Identity("/relative/path")
		require.Error(t, err)
		_, err = Identity("")
		require.Error(t, err)
	})
}

func TestStoreKeyAndName(t *testing.T) {
	assert.Equal(t, "amazon", StoreKey("https://www.amazon.com.br/dp/B09B8V1LZ3"))
	assert.Equal(t, "mercadolivre", StoreKey("https://produto.mercadolivre.com.br/MLB-1"))
	assert.Equal(t, "", StoreKey("not a url"))

	assert.Equal(t, "Amazon", StoreName("https://www.amazon.com.br/dp/B09B8V1LZ3"))
	assert.Equal(t, "Mercado Livre", StoreName("https://produto.mercadolivre.com.br/MLB-1"))
	assert.Equal(t, "Shopee", StoreName("https://shopee.com.br/x-i.1.2"))
	assert.Equal(t, "kabum.com.br", StoreName("https://www.kabum.com.br/produto/1"))
	assert.Equal(t, "", StoreName(""))
}
