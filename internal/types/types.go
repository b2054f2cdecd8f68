package types

import "fiveday-api/pkg/series"

type ClosesRequest struct {
	Symbol     string `form:"symbol,default=TX"`
	Days       int    `form:"days,default=30"`
	MarketCode string `form:"marketCode,optional"`
	Start      string `form:"start,optional"`
}

type ClosesResponse struct {
	series.Result
	Start *string `json:"start"`
}

type SeriesRequest struct {
	Symbol     string `form:"symbol,default=TX"`
	MarketCode string `form:"marketCode,optional"`
}

type ArchiveRequest struct {
	Symbol     string `form:"symbol,default=TX"`
	MarketCode string `form:"marketCode,optional"`
	Days       int    `form:"days,default=30"`
}

type ArchiveResponse struct {
	Symbol     string              `json:"symbol"`
	MarketCode series.Session      `json:"marketCode"`
	Points     []series.ClosePoint `json:"data"`
}

type BootResponse struct {
	DefaultSymbol string                    `json:"defaultSymbol"`
	DefaultMarket string                    `json:"defaultMarket"`
	Boot          map[string]*series.Result `json:"boot"`
}

type RefreshResult struct {
	Symbol     string         `json:"symbol"`
	MarketCode series.Session `json:"marketCode"`
	Ok         bool           `json:"ok"`
	FetchedAt  string         `json:"fetchedAtTaipei,omitempty"`
	Error      string         `json:"error,omitempty"`
}

type RefreshResponse struct {
	Ok      bool            `json:"ok"`
	Type    string          `json:"type"`
	Results []RefreshResult `json:"results"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
