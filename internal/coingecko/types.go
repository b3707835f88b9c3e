package coingecko

// globalResponse represents the /global endpoint response.
// Example:
//
//	{
//	  "data": {
//	    "market_cap_percentage": {"btc": 52.4, "eth": 17.1}
//	  }
//	}
type globalResponse struct {
	Data struct {
		MarketCapPercentage map[string]float64 `json:"market_cap_percentage"`
	} `json:"data"`
}

// geckoError represents an error body from the CoinGecko API.
type geckoError struct {
	Error string `json:"error"`
}
