package scoring

import (
	"errors"
	"regexp"
	"strconv"
)

// DefaultScore is returned whenever no score can be read from model output.
const DefaultScore Score = 0.5

var ErrExtractionFailed = errors.New("failed to extract a valid risk score from the response")

// decimalPattern only matches numbers with a fractional part, so "1" or
// "100%" never count as a score.
var decimalPattern = regexp.MustCompile(`\d+\.\d+`)

// Score is a risk score in [0,1], 0 being the lowest risk.
type Score float64

// Percentage is the score on a 0-100 scale.
func (s Score) Percentage() float64 {
	return float64(s) * 100
}

type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// ExtractScore reads the first decimal number in text and clamps it into
// [0,1]. Signs are not part of the match, so "-0.3" yields 0.3. When text
// holds no decimal number it returns DefaultScore and ErrExtractionFailed;
// the score is usable either way.
func ExtractScore(text string) (Score, error) {
	match := decimalPattern.FindString(text)
	if match == "" {
		return DefaultScore, ErrExtractionFailed
	}
	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return DefaultScore, ErrExtractionFailed
	}
	return Clamp(value), nil
}

func Clamp(value float64) Score {
	return Score(max(0, min(1, value)))
}

// Classify bands a score by its percentage: below 30 is low, below 70 is
// medium, anything else is high.
func Classify(score Score) Level {
	percentage := score.Percentage()
	switch {
	case percentage < 30:
		return LevelLow
	case percentage < 70:
		return LevelMedium
	default:
		return LevelHigh
	}
}
