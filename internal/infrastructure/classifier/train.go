package classifier

import "fmt"

// MaxVocabulary caps the fitted vocabulary size.
const MaxVocabulary = 10000

// Sample is one labeled training example.
type Sample struct {
	Text     string
	Category string
}

// Train fits the vectorizer and linear model on the samples.
func Train(samples []Sample) (*Artifact, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("no training samples")
	}
	texts := make([]string, len(samples))
	labels := make([]string, len(samples))
	for i, s := range samples {
		if s.Category == "" {
			return nil, fmt.Errorf("sample %d has empty category", i)
		}
		texts[i] = s.Text
		labels[i] = s.Category
	}

	vectorizer := FitVectorizer(texts, MaxVocabulary)
	features := make([]map[int]float64, len(texts))
	for i, text := range texts {
		features[i] = vectorizer.Transform(text)
	}
	model := TrainLinear(features, labels, vectorizer.Dim())

	return &Artifact{Vectorizer: vectorizer, Model: model}, nil
}
