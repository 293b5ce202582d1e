// Command train fits the category classifier from a labelled CSV and
// writes the resulting model artifact to disk.
//
// The CSV needs a header row with "text" and "category" columns:
//
//	text,category
//	"invoice total 120.50 payment due",finance
//	"employment contract probation period",hr
package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"strings"

	"github.com/officemate/office-mate-backend/internal/infrastructure/classifier"
)

func main() {
	csvPath := flag.String("csv", "./data/training/documents.csv", "labelled training data (text,category)")
	outPath := flag.String("out", "./data/models/classifier.gob", "where to write the model artifact")
	holdout := flag.Float64("holdout", 0.2, "fraction of samples held out for accuracy reporting")
	flag.Parse()

	samples, err := readSamples(*csvPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Fatalf("training data not found at %s; pass -csv with a file containing text,category rows", *csvPath)
		}
		log.Fatalf("read training data: %v", err)
	}
	log.Printf("loaded %d samples from %s", len(samples), *csvPath)

	train, eval := split(samples, *holdout)

	artifact, err := classifier.Train(train)
	if err != nil {
		log.Fatalf("train classifier: %v", err)
	}

	if len(eval) > 0 {
		correct := 0
		for _, s := range eval {
			features := artifact.Vectorizer.Transform(s.Text)
			if artifact.Model.Predict(features) == s.Category {
				correct++
			}
		}
		log.Printf("holdout accuracy: %.3f (%d/%d)", float64(correct)/float64(len(eval)), correct, len(eval))
	}

	if err := classifier.SaveArtifact(*outPath, artifact); err != nil {
		log.Fatalf("save artifact: %v", err)
	}
	log.Printf("model written to %s", *outPath)
}

func readSamples(path string) ([]classifier.Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	textCol, categoryCol := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "text":
			textCol = i
		case "category":
			categoryCol = i
		}
	}
	if textCol < 0 || categoryCol < 0 {
		return nil, fmt.Errorf("header must contain text and category columns, got %v", header)
	}

	var samples []classifier.Sample
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if textCol >= len(record) || categoryCol >= len(record) {
			return nil, fmt.Errorf("line %d: missing columns", line)
		}
		text := strings.TrimSpace(record[textCol])
		category := strings.TrimSpace(record[categoryCol])
		if text == "" || category == "" {
			continue
		}
		samples = append(samples, classifier.Sample{Text: text, Category: category})
	}
	return samples, nil
}

// split shuffles deterministically so repeated runs report comparable
// holdout numbers on the same data.
func split(samples []classifier.Sample, holdout float64) (train, eval []classifier.Sample) {
	if holdout <= 0 || holdout >= 1 || len(samples) < 5 {
		return samples, nil
	}

	shuffled := make([]classifier.Sample, len(samples))
	copy(shuffled, samples)
	rng := rand.New(rand.NewSource(42))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	cut := len(shuffled) - int(float64(len(shuffled))*holdout)
	if cut <= 0 || cut >= len(shuffled) {
		return shuffled, nil
	}
	return shuffled[:cut], shuffled[cut:]
}
