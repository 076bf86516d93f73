package assets_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/assets"
)

func raw(coin, name string, legal bool, networks ...string) assets.RawAsset {
	a := assets.RawAsset{Coin: coin, Name: name, IsLegalMoney: legal}
	for _, n := range networks {
		a.NetworkList = append(a.NetworkList, assets.Network{Network: n, Coin: coin})
	}
	return a
}

func coins(list []assets.ClassifiedAsset) []string {
	out := make([]string, 0, len(list))
	for _, a := range list {
		out = append(out, a.Coin)
	}
	return out
}

func TestClassifyExample(t *testing.T) {
	in := []assets.RawAsset{
		raw("BTC", "Bitcoin", false, "BTC"),
		raw("USD", "US Dollar", true),
		raw("BTCDOWN", "3X Short BTC Token", false),
	}

	got := assets.Classify(in)
	assert.Equal(t, []string{"btc"}, coins(got.Crypto))
	assert.Equal(t, []string{"usd"}, coins(got.Currency))
	assert.Equal(t, []string{"btcdown"}, coins(got.ETF))
	assert.Equal(t, assets.CryptoETF, got.ETF[0].Category)

	// input is left untouched
	assert.Equal(t, "BTC", in[0].Coin)
}

func TestClassifyOne(t *testing.T) {
	tests := []struct {
		name  string
		asset assets.RawAsset
		want  assets.Category
	}{
		{"legal money wins over etf network", raw("EUR", "3X Long EUR Token", true, "ETF"), assets.FiatCurrency},
		{"etf by first network", raw("BNBUP", "BNBUP", false, "ETF", "BSC"), assets.CryptoETF},
		{"etf network only counts when first", raw("XYZ", "Xyz", false, "BSC", "ETF"), assets.Crypto},
		{"leveraged long token", raw("ETHBULL", "3X Long BTC Token", false), assets.CryptoETF},
		{"leveraged short token", raw("ETHBEAR", "3X Short Ethereum Token", false, "ETH"), assets.CryptoETF},
		{"short name never leveraged", raw("X", "3X BTC", false), assets.Crypto},
		{"no token suffix", raw("X", "3X Long Bitcoin Coin", false), assets.Crypto},
		{"empty network list", raw("ABC", "Abc", false), assets.Crypto},
		{"empty network tag", raw("ABC", "Abc", false, ""), assets.Crypto},
		{"missing coin still classified", raw("", "Nameless", false), assets.Crypto},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, assets.ClassifyOne(tt.asset))
		})
	}
}

func TestClassifyPartition(t *testing.T) {
	in := []assets.RawAsset{
		raw("ZEC", "Zcash", false, "ZEC"),
		raw("GBP", "British Pound", true),
		raw("BNBUP", "BNBUP", false, "ETF"),
		raw("ADA", "Cardano", false, "ADA", "BSC"),
		raw("TRY", "Turkish Lira", true),
		raw("LINKDOWN", "3X Short Chainlink Token", false),
		raw("", "", false),
	}

	got := assets.Classify(in)
	require.Equal(t, len(in), got.Len())
	// per-category input order is kept
	assert.Equal(t, []string{"zec", "ada", ""}, coins(got.Crypto))
	assert.Equal(t, []string{"bnbup", "linkdown"}, coins(got.ETF))
	assert.Equal(t, []string{"gbp", "try"}, coins(got.Currency))

	seen := map[string]int{}
	for _, a := range got.All() {
		seen[a.Name]++
	}
	for _, a := range in {
		assert.Equal(t, 1, seen[a.Name], a.Name)
	}
}

func TestSortByCoin(t *testing.T) {
	got := assets.Classify([]assets.RawAsset{raw("ZEC", "Zcash", false), raw("ADA", "Cardano", false), raw("ada", "Second", false)})
	sorted := assets.SortByCoin(got.Crypto)
	assert.Equal(t, []string{"ada", "ada", "zec"}, coins(sorted))
	assert.Equal(t, "Cardano", sorted[0].Name)
	assert.Equal(t, "zec", got.Crypto[0].Coin)
}

func TestBuildNameIndex(t *testing.T) {
	got := assets.Classify([]assets.RawAsset{
		raw("BTC", "Bitcoin", false),
		raw("USD", "US Dollar", true),
		raw("ETH", "Ethereum", false),
		raw("btc", "Bitcoin (second)", false),
		raw("BTCUP", "BTCUP", false, "ETF"),
	})

	index := assets.BuildNameIndex(got.All())
	want := assets.NameIndex{
		"btc":   "Bitcoin (second)",
		"eth":   "Ethereum",
		"btcup": "BTCUP",
	}
	assert.Equal(t, want, index)

	name, ok := index.Lookup("ETH")
	assert.True(t, ok)
	assert.Equal(t, "Ethereum", name)
}

func TestMergeCategory(t *testing.T) {
	published := []assets.RepositoryAsset{{Symbol: "btc", Name: "Bitcoin"}, {Symbol: "eth", Name: "Ethereum"}}
	fresh := assets.Classify([]assets.RawAsset{
		raw("BTC", "", false),
		raw("ADA", "", false),
		raw("XRP", "XRP", false),
		raw("NEW", "", false),
	}).Crypto
	names := assets.NameIndex{"ada": "Cardano", "btc": "Bitcoin Renamed"}

	got := assets.MergeCategory(published, fresh, names)
	want := []assets.RepositoryAsset{
		{Symbol: "ada", Name: "Cardano"},
		{Symbol: "btc", Name: "Bitcoin"},
		{Symbol: "eth", Name: "Ethereum"},
		{Symbol: "new", Name: ""},
		{Symbol: "xrp", Name: "XRP"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("MergeCategory() mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, published, 2, "published list must not grow")
}

func TestMergeIdempotent(t *testing.T) {
	prior := assets.Manifest{
		Crypto:   []assets.RepositoryAsset{{Symbol: "eth", Name: "Ethereum"}, {Symbol: "btc", Name: "Bitcoin"}},
		Currency: []assets.RepositoryAsset{{Symbol: "usd", Name: "US Dollar"}},
	}
	fresh := assets.Classify([]assets.RawAsset{
		raw("BTC", "", false),
		raw("BNB", "BNB", false),
		raw("EUR", "Euro", true),
		raw("BNBUP", "BNBUP", false, "ETF"),
	})
	names := assets.BuildNameIndex(fresh.All())

	once := assets.Merge(prior, fresh, names)
	twice := assets.Merge(once, fresh, names)
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("Merge() not idempotent (-once +twice):\n%s", diff)
	}
	require.NoError(t, once.Validate())
	assert.Equal(t, []assets.RepositoryAsset{{Symbol: "bnbup", Name: "BNBUP"}}, once.ETF)
	assert.Equal(t, "Bitcoin", once.Crypto[1].Name)
}

func TestManifestValidate(t *testing.T) {
	m := assets.Manifest{Crypto: []assets.RepositoryAsset{{Symbol: "btc"}, {Symbol: "btc"}}}
	err := m.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "crypto")

	assert.NoError(t, assets.Manifest{}.Validate())
}

func TestManifestJSONNeverNull(t *testing.T) {
	data, err := json.Marshal(assets.Manifest{}.Normalized())
	require.NoError(t, err)
	assert.Equal(t, `{"crypto":[],"etf":[],"currency":[]}`, string(data))
}

func TestAdded(t *testing.T) {
	prev := assets.Manifest{Crypto: []assets.RepositoryAsset{{Symbol: "btc"}}}
	next := assets.Manifest{Crypto: []assets.RepositoryAsset{{Symbol: "ada"}, {Symbol: "btc"}}, Currency: []assets.RepositoryAsset{{Symbol: "eur"}}}
	added := assets.Added(prev, next)
	assert.Equal(t, []assets.RepositoryAsset{{Symbol: "ada"}}, added[assets.Crypto])
	assert.Equal(t, []assets.RepositoryAsset{{Symbol: "eur"}}, added[assets.FiatCurrency])
	assert.Empty(t, added[assets.CryptoETF])
}

func TestBuildReport(t *testing.T) {
	published := []assets.RepositoryAsset{{Symbol: "usd", Name: "US Dollar"}}
	candidates := assets.Classify([]assets.RawAsset{
		raw("EUR", "Euro", true),
		raw("USD", "US Dollar", true),
		raw("GBP", "British Pound", true),
	}).Currency

	r := assets.BuildReport(assets.FiatCurrency, published, candidates)
	assert.False(t, r.Done())
	assert.Equal(t, 3, r.Total)
	require.Len(t, r.Missing, 2)
	assert.Equal(t, "eur", r.Missing[0].Coin)
	assert.Equal(t, "€", r.Missing[0].Grapheme)
	assert.Equal(t, "gbp", r.Missing[1].Coin)
}

func TestBuildReportNothingToDo(t *testing.T) {
	published := []assets.RepositoryAsset{{Symbol: "btc"}, {Symbol: "eth"}}
	candidates := assets.Classify([]assets.RawAsset{raw("BTC", "Bitcoin", false), raw("ETH", "Ethereum", false)}).Crypto

	r := assets.BuildReport(assets.Crypto, published, candidates)
	assert.True(t, r.Done())
	assert.Empty(t, r.Missing)
	assert.Equal(t, 2, r.Total)
}

func TestValidate(t *testing.T) {
	issues := assets.Validate([]assets.RawAsset{
		raw("BTC", "Bitcoin", false),
		raw("", "Ghost", false),
		raw("ETH", "", false),
		raw("btc", "Bitcoin", false),
	})
	require.Len(t, issues, 3)
	assert.Equal(t, 1, issues[0].Index)
	assert.Equal(t, "coin", issues[0].Field)
	assert.Equal(t, "name", issues[1].Field)
	assert.Equal(t, "duplicate of record 0", issues[2].Reason)
}

func TestRawAssetDecodesStringAmounts(t *testing.T) {
	var a assets.RawAsset
	err := json.Unmarshal([]byte(`{"coin":"BTC","name":"Bitcoin","free":"0.5","locked":"0.25","freeze":"0","withdrawing":"0","networkList":[{"network":"BTC","withdrawFee":"0.0002"}]}`), &a)
	require.NoError(t, err)
	assert.True(t, a.Balance().Equal(decimal.RequireFromString("0.75")))
	assert.Equal(t, "0.0002", a.NetworkList[0].WithdrawFee.String())
}

func TestRawAssetDecodesMalformedAmounts(t *testing.T) {
	var a assets.RawAsset
	err := json.Unmarshal([]byte(`{"coin":"XYZ","name":"Weird","free":"","locked":"0.5","freeze":null,"withdrawing":"n/a","networkList":[{"network":"BSC","withdrawFee":""}]}`), &a)
	require.NoError(t, err)
	assert.False(t, a.Free.Valid())
	assert.True(t, a.Freeze.Valid())
	assert.True(t, a.Balance().Equal(decimal.RequireFromString("0.5")))

	issues := assets.Validate([]assets.RawAsset{raw("BTC", "Bitcoin", false), a})
	var fields []string
	for _, is := range issues {
		assert.Equal(t, 1, is.Index)
		assert.Equal(t, "xyz", is.Coin)
		fields = append(fields, is.Field)
	}
	assert.Equal(t, []string{"free", "withdrawing", "networkList.BSC.withdrawFee"}, fields)
	assert.Equal(t, `invalid amount ""`, issues[0].Reason)

	// Malformed amounts are written back as received.
	out, err := json.Marshal(a)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"free":""`)
	assert.Contains(t, string(out), `"withdrawing":"n/a"`)
	assert.Contains(t, string(out), `"locked":"0.5"`)

	classified := assets.Classify([]assets.RawAsset{a})
	assert.Equal(t, []string{"xyz"}, coins(classified.Crypto))
}

func TestCategoryText(t *testing.T) {
	for _, c := range assets.Categories() {
		text, err := c.MarshalText()
		require.NoError(t, err)
		var back assets.Category
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, c, back)
	}
	assert.Equal(t, []string{"Crypto", "ETFs", "Currencies"}, []string{
		assets.Crypto.Plural(), assets.CryptoETF.Plural(), assets.FiatCurrency.Plural(),
	})
	_, err := assets.ParseCategory("stocks")
	assert.Error(t, err)
}
