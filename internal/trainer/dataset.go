// Package trainer builds the complaint classifier artifact from labeled
// training examples.
package trainer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/complaintdesk/triage/internal/domain"
	"github.com/complaintdesk/triage/internal/logging"
)

// SeedExamples is the built-in dataset used when no training file exists.
// It covers every supported category so the service stays bootable without
// external data.
func SeedExamples() []domain.TrainingExample {
	return []domain.TrainingExample{
		{Description: "My laptop won't turn on", Category: "hardware"},
		{Description: "Keyboard is not working", Category: "hardware"},
		{Description: "Monitor screen is blank", Category: "hardware"},
		{Description: "Software keeps crashing", Category: "software"},
		{Description: "Application is slow", Category: "software"},
		{Description: "Error in software update", Category: "software"},
		{Description: "Internet connection is down", Category: "network"},
		{Description: "WiFi not connecting", Category: "network"},
		{Description: "Network speed is slow", Category: "network"},
		{Description: "Printer not responding", Category: "technical"},
		{Description: "Server access issue", Category: "technical"},
		{Description: "Account login problem", Category: "technical"},
	}
}

// LoadCSV reads training examples from a `description,category` CSV file.
// The file must be UTF-8; if decoding fails the bytes are reinterpreted as
// ISO 8859-1, matching the documented legacy fallback.
func LoadCSV(path string) ([]domain.TrainingExample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read training data: %w", err)
	}
	if !utf8.Valid(data) {
		decoded, decErr := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if decErr != nil {
			return nil, fmt.Errorf("%w: %s is neither UTF-8 nor ISO 8859-1: %v",
				domain.ErrTrainingData, path, decErr)
		}
		data = decoded
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = 2

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: missing header: %v", domain.ErrTrainingData, path, err)
	}
	if !strings.EqualFold(header[0], "description") || !strings.EqualFold(header[1], "category") {
		return nil, fmt.Errorf("%w: %s: expected header description,category got %v",
			domain.ErrTrainingData, path, header)
	}

	var examples []domain.TrainingExample
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrTrainingData, path, err)
		}
		desc := strings.TrimSpace(record[0])
		category := strings.TrimSpace(record[1])
		if desc == "" || category == "" {
			return nil, fmt.Errorf("%w: %s: blank description or category", domain.ErrTrainingData, path)
		}
		examples = append(examples, domain.TrainingExample{Description: desc, Category: category})
	}
	if len(examples) == 0 {
		return nil, fmt.Errorf("%w: %s: no examples", domain.ErrTrainingData, path)
	}
	return examples, nil
}

// LoadOrSeed loads the training file at path, falling back to the built-in
// seed dataset when the file does not exist. The fallback is logged loudly;
// a file that exists but cannot be parsed is still an error.
func LoadOrSeed(path string, log logging.Logger) ([]domain.TrainingExample, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Warn("training data file missing, falling back to built-in seed dataset",
			logging.String("path", path),
		)
		seed := SeedExamples()
		if writeErr := WriteCSV(path, seed); writeErr != nil {
			log.Warn("could not persist seed dataset", logging.Error(writeErr))
		}
		return seed, nil
	}
	return LoadCSV(path)
}

// WriteCSV writes examples to path in the training-file format.
func WriteCSV(path string, examples []domain.TrainingExample) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create training data: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"description", "category"}); err != nil {
		return fmt.Errorf("write training data header: %w", err)
	}
	for _, ex := range examples {
		if err := w.Write([]string{ex.Description, ex.Category}); err != nil {
			return fmt.Errorf("write training example: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
