package application

import (
	"fmt"
	"math"
	"strings"
)

// SentimentAnalysis is the payload of the analyze_sentiment tool.
type SentimentAnalysis struct {
	Sentiment   string  `json:"sentiment"`
	Confidence  float64 `json:"confidence"`
	Explanation string  `json:"explanation"`
}

// Fixed sentiment lexicons. Matching is by substring containment within a
// token, so "loved" counts for "love".
var positiveWords = []string{
	"good", "great", "excellent", "amazing", "wonderful",
	"fantastic", "love", "happy", "best", "awesome",
}

var negativeWords = []string{
	"bad", "terrible", "awful", "horrible", "hate",
	"worst", "poor", "sad", "angry", "disappointing",
}

// analyzeSentiment classifies text by counting tokens that contain words
// from the fixed positive and negative sets. It always succeeds: text with
// no sentiment-bearing words is neutral, not an error. Confidence is always
// within [0, 1].
func analyzeSentiment(text string) SentimentAnalysis {
	tokens := strings.Fields(strings.ToLower(text))

	positive, negative := 0, 0
	for _, token := range tokens {
		for _, word := range positiveWords {
			if strings.Contains(token, word) {
				positive++
				break
			}
		}
		for _, word := range negativeWords {
			if strings.Contains(token, word) {
				negative++
				break
			}
		}
	}

	var sentiment string
	var confidence float64

	switch {
	case positive == 0 && negative == 0:
		sentiment = "neutral"
		confidence = 0.6
	case positive > 0 && negative > 0:
		sentiment = "mixed"
		asymmetry := math.Abs(float64(positive-negative)) / float64(positive+negative)
		confidence = 0.5 + 0.35*asymmetry
	case positive > 0:
		sentiment = "positive"
		confidence = 0.6 + math.Min(0.35, 0.05*float64(positive))
	default:
		sentiment = "negative"
		confidence = 0.6 + math.Min(0.35, 0.05*float64(negative))
	}

	if confidence > 1.0 {
		confidence = 1.0
	}

	return SentimentAnalysis{
		Sentiment:   sentiment,
		Confidence:  confidence,
		Explanation: fmt.Sprintf("Found %d positive and %d negative indicators", positive, negative),
	}
}
