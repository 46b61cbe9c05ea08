// Package models holds the client-side views of tracker API responses.
package models

import "github.com/dmitrijs2005/climatetracker/internal/insight"

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RankEntry struct {
	UserName string  `json:"username"`
	Emission float64 `json:"emission"`
}

type Prediction struct {
	Available bool    `json:"available"`
	Value     float64 `json:"value"`
	Message   string  `json:"message,omitempty"`
}

// Report is the answer to a recorded calculation.
type Report struct {
	insight.Assessment
	Ranking    []RankEntry `json:"ranking"`
	History    []float64   `json:"history"`
	Prediction Prediction  `json:"prediction"`
}

type ExportResult struct {
	Key string `json:"key"`
	URL string `json:"url"`
}
