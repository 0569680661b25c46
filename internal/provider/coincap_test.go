package provider

import (
	"context"
	"net/http"
	"testing"
)

func TestCoinCapProviderFetchPrices(t *testing.T) {
	t.Parallel()

	provider := NewCoinCapProvider(testTracer())
	provider.baseURL = "http://example/v2"
	provider.client = &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			if req.URL.Path != "/v2/assets" {
				t.Fatalf("unexpected path: %s", req.URL.Path)
			}
			return jsonResponse(http.StatusOK, `{"data":[
				{"id":"ethereum","symbol":"eth","priceUsd":"3000.5","changePercent24Hr":"-1.25"},
				{"id":"bitcoin","symbol":"BTC","priceUsd":"65000","changePercent24Hr":"not-a-number"},
				{"id":"dogecoin","symbol":"DOGE","priceUsd":"0.1","changePercent24Hr":"1"}
			]}`), nil
		}),
	}

	items, err := provider.FetchPrices(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 4 || items[0].Symbol != "BTC" || items[1].Symbol != "ETH" {
		t.Fatalf("unexpected order: %+v", items)
	}
	if items[0].Price == nil || *items[0].Price != 65000 {
		t.Fatalf("unexpected BTC price: %+v", items[0])
	}
	if items[0].Change24h != nil {
		t.Fatalf("unparsable change should be absent: %+v", items[0])
	}
	if items[1].Price == nil || *items[1].Price != 3000.5 || *items[1].Change24h != -1.25 {
		t.Fatalf("unexpected ETH: %+v", items[1])
	}
	if items[2].Price != nil || items[3].Price != nil {
		t.Fatalf("missing symbols should be absent: %+v", items[2:])
	}
}

func TestCoinCapProviderRejectsEmptyData(t *testing.T) {
	t.Parallel()

	provider := NewCoinCapProvider(testTracer())
	provider.client = &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"data":[]}`), nil
	})}
	if _, err := provider.FetchPrices(context.Background()); err == nil {
		t.Fatal("expected error for empty asset list")
	}
}

func TestCoinCapProviderStatusError(t *testing.T) {
	t.Parallel()

	provider := NewCoinCapProvider(testTracer())
	provider.client = &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusBadGateway, `upstream`), nil
	})}
	if _, err := provider.FetchPrices(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestParseFloatString(t *testing.T) {
	if v := parseFloatString(" 1.5 "); v == nil || *v != 1.5 {
		t.Fatalf("expected 1.5, got %v", v)
	}
	for _, in := range []string{"", "abc", "NaN", "Inf"} {
		if v := parseFloatString(in); v != nil {
			t.Fatalf("%q should be absent, got %v", in, *v)
		}
	}
}
