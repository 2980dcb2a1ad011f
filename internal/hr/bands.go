// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package hr

import "strings"

// Band is a three-step display tone.
type Band int

const (
	BandPoor Band = iota
	BandFair
	BandGood
)

// String returns the tone name used by renderers.
func (band Band) String() string {
	switch band {
	case BandGood:
		return "good"
	case BandFair:
		return "fair"
	default:
		return "poor"
	}
}

// QuestionMaxScore is the per-question ceiling of a technical evaluation.
const QuestionMaxScore = 20

// ScoreBand grades a CV match percentage: 80 and up good, 60 and up fair.
func ScoreBand(score float64) Band {
	switch {
	case score >= 80:
		return BandGood
	case score >= 60:
		return BandFair
	default:
		return BandPoor
	}
}

// RecommendationBand grades a hire recommendation by its wording.
func RecommendationBand(recommendation string) Band {
	switch {
	case strings.Contains(recommendation, "Strong Hire"):
		return BandGood
	case strings.Contains(recommendation, "Consider"):
		return BandFair
	default:
		return BandPoor
	}
}

// QuestionBand grades one technical answer out of 20: 16 and up good, 10 and up fair.
func QuestionBand(score float64) Band {
	switch {
	case score >= 16:
		return BandGood
	case score >= 10:
		return BandFair
	default:
		return BandPoor
	}
}
