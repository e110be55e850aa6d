package ppt

import "github.com/deckextract/deckextract/internal/presentation"

// Limits bounds the record walker and property-set decoder so adversarial
// or merely malformed input can't exhaust memory or recurse unboundedly
// (spec §5), and sets the heuristic slide-packing size used when no
// structural slide boundary survives (spec §9 Open Question 1). Callers
// that don't need non-default bounds can use ParsePPT, which applies
// DefaultLimits(); internal/config surfaces these as tunables for
// ParsePPTWithLimits.
type Limits struct {
	MaxRecursionDepth         int
	MaxRecordsPerLevel        int
	MaxRecordLength           int64
	MaxPropertiesPerSet       int
	FallbackSlideContentLimit int
}

// DefaultLimits matches the walker's historical hardcoded bounds.
func DefaultLimits() Limits {
	return Limits{
		MaxRecursionDepth:         50,
		MaxRecordsPerLevel:        100000,
		MaxRecordLength:           100 << 20,
		MaxPropertiesPerSet:       1000,
		FallbackSlideContentLimit: presentation.DefaultFallbackSlideContentLimit,
	}
}

func (l Limits) withDefaults() Limits {
	d := DefaultLimits()
	if l.MaxRecursionDepth <= 0 {
		l.MaxRecursionDepth = d.MaxRecursionDepth
	}
	if l.MaxRecordsPerLevel <= 0 {
		l.MaxRecordsPerLevel = d.MaxRecordsPerLevel
	}
	if l.MaxRecordLength <= 0 {
		l.MaxRecordLength = d.MaxRecordLength
	}
	if l.MaxPropertiesPerSet <= 0 {
		l.MaxPropertiesPerSet = d.MaxPropertiesPerSet
	}
	if l.FallbackSlideContentLimit <= 0 {
		l.FallbackSlideContentLimit = d.FallbackSlideContentLimit
	}
	return l
}
