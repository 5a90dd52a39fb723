// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package similarity

// Decision strings reported to clients.
const (
	DecisionHigh     = "High Probability of Plagiarism"
	DecisionModerate = "Moderate Similarity Detected"
	DecisionOriginal = "Original Content"
)

// Classify maps a cosine score to a decision. Thresholds are strict:
// a score exactly at the high threshold classifies as moderate, and
// exactly at the moderate threshold as original.
func Classify(score, high, moderate float64) string {
	switch {
	case score > high:
		return DecisionHigh
	case score > moderate:
		return DecisionModerate
	default:
		return DecisionOriginal
	}
}

// DecisionColor returns the UI color for a decision string.
func DecisionColor(decision string) string {
	switch decision {
	case DecisionHigh:
		return "red"
	case DecisionModerate:
		return "yellow"
	default:
		return "green"
	}
}
