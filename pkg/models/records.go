package models

import "time"

// Reading represents a single raw demand observation from the utility feed
type Reading struct {
	Timestamp time.Time `json:"timestamp"` // Full timestamp, nominally on a 30-minute grid
	DemandMW  float64   `json:"demand_mw"`
}

// BinnedReading is a Reading rounded to its nearest whole hour with
// calendar attributes attached. The rounded hour, not the original
// timestamp, is the grouping key for all downstream aggregation.
type BinnedReading struct {
	Date     time.Time `json:"date"` // Midnight UTC of the rounded timestamp
	Year     int       `json:"year"`
	Month    int       `json:"month"`
	Day      int       `json:"day"`
	Hour     int       `json:"hour"` // 0-23
	DemandMW float64   `json:"demand_mw"`
}

// HourlyRecord represents mean demand over all readings sharing a (date, hour)
type HourlyRecord struct {
	Date    time.Time `json:"date"`
	Year    int       `json:"year"`
	Month   int       `json:"month"`
	Day     int       `json:"day"`
	Hour    int       `json:"hour"`
	MeanMW  float64   `json:"mean_mw"`
	Samples int       `json:"samples"` // Number of readings in the bin
}

// DailyRecord summarizes one calendar day of demand.
// TroughMW is the empirical 5th percentile, not the minimum, so a single
// zero-demand outage reading can't blow up the peak-to-trough ratio.
type DailyRecord struct {
	Date         time.Time `json:"date"`
	MeanMW       float64   `json:"mean_mw"`
	PeakMW       float64   `json:"peak_mw"`
	TroughMW     float64   `json:"trough_mw"`
	PeakToMean   float64   `json:"peak_to_mean"`
	PeakToTrough float64   `json:"peak_to_trough"`
	Samples      int       `json:"samples"`
}

// TemperatureRecord is one day's temperature from the independent weather series
type TemperatureRecord struct {
	Date  time.Time `json:"date"`
	TempF float64   `json:"temp_f"`
}

// JoinedObservation pairs a day's mean demand with that day's temperature
type JoinedObservation struct {
	Date   time.Time `json:"date"`
	MeanMW float64   `json:"mean_mw"`
	TempF  float64   `json:"temp_f"`
}

// Regime labels the temperature-defined sub-population an observation falls in
type Regime string

const (
	RegimeHeating Regime = "heating" // temperature below the split threshold
	RegimeCooling Regime = "cooling" // temperature above the split threshold
)

// FittedModel holds an ordinary-least-squares fit of demand on temperature
// within one regime, along with the training data needed for diagnostics
// and cross-validation.
type FittedModel struct {
	Regime     Regime    `json:"regime"`
	N          int       `json:"n"`
	Intercept  float64   `json:"intercept"`
	Slope      float64   `json:"slope"`
	R2         float64   `json:"r2"`
	ResidualSE float64   `json:"residual_se"` // sqrt(RSS / (n-2))
	TempMinF   float64   `json:"temp_min_f"`  // Training temperature range, for
	TempMaxF   float64   `json:"temp_max_f"`  // callers judging extrapolation
	Temps      []float64 `json:"-"`
	Demands    []float64 `json:"-"`
	Fitted     []float64 `json:"-"`
	Residuals  []float64 `json:"-"`
}
