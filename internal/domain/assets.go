package domain

// TrackedSymbols lists the assets shown on the dashboard, in display order.
var TrackedSymbols = []string{"BTC", "ETH", "SOL", "USDT"}

// CoinGeckoID maps tracked symbols to CoinGecko API identifiers.
var CoinGeckoID = map[string]string{
	"BTC":  "bitcoin",
	"ETH":  "ethereum",
	"SOL":  "solana",
	"USDT": "tether",
}

// CoinCapID maps tracked symbols to CoinCap asset ids.
var CoinCapID = map[string]string{
	"BTC":  "bitcoin",
	"ETH":  "ethereum",
	"SOL":  "solana",
	"USDT": "tether",
}

// IsTracked reports whether symbol is one of TrackedSymbols.
func IsTracked(symbol string) bool {
	_, ok := CoinGeckoID[symbol]
	return ok
}
