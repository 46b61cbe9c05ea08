package models

// EmissionRecord is one persisted "Calculate" action. Seq reflects insertion
// order and is the only temporal signal available.
type EmissionRecord struct {
	Seq           int64
	UserName      string
	TotalEmission float64
}

// RankEntry is a user's best (lowest) recorded total emission.
type RankEntry struct {
	UserName string  `json:"username"`
	Emission float64 `json:"emission"`
}
