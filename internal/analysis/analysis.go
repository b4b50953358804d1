// Package analysis provides shared types for the technical analysis pipeline:
// price levels, trend labels, trading signals and detected patterns.
package analysis

// Level represents a support or resistance level.
type Level struct {
	Price float64   `json:"price"`
	Type  LevelType `json:"type"`
}

// LevelType represents the type of price level.
type LevelType string

const (
	LevelSupport    LevelType = "support"
	LevelResistance LevelType = "resistance"
)

// TrendLabel classifies the prevailing trend of a series.
type TrendLabel string

const (
	StrongUptrend     TrendLabel = "Strong Uptrend"
	ModerateUptrend   TrendLabel = "Moderate Uptrend"
	StrongDowntrend   TrendLabel = "Strong Downtrend"
	ModerateDowntrend TrendLabel = "Moderate Downtrend"
	Sideways          TrendLabel = "Sideways"
)

// SignalKind enumerates the discrete signal types the generator can emit.
type SignalKind string

const (
	SignalBuy           SignalKind = "BUY"
	SignalSell          SignalKind = "SELL"
	SignalPotentialBuy  SignalKind = "POTENTIAL_BUY"
	SignalPotentialSell SignalKind = "POTENTIAL_SELL"
	SignalVolumeSpike   SignalKind = "VOLUME_SPIKE"
	SignalNone          SignalKind = "NONE"
)

// Signal is one discrete trading signal. The order of signals in a slice is
// the evaluation order of the generator, not a priority ranking.
type Signal struct {
	Kind    SignalKind `json:"kind"`
	Message string     `json:"message"`
}

// Pattern represents a detected chart or candlestick pattern.
type Pattern struct {
	Name       string           `json:"name"`
	Type       PatternType      `json:"type"`
	Direction  PatternDirection `json:"direction"`
	StartIndex int              `json:"start_index"`
	EndIndex   int              `json:"end_index"`
	Strength   float64          `json:"strength"`
}

// PatternType represents the type of pattern.
type PatternType string

const (
	PatternTypeCandlestick PatternType = "candlestick"
	PatternTypeChart       PatternType = "chart"
)

// PatternDirection represents the expected direction of a pattern.
type PatternDirection string

const (
	PatternBullish PatternDirection = "bullish"
	PatternBearish PatternDirection = "bearish"
	PatternNeutral PatternDirection = "neutral"
)
