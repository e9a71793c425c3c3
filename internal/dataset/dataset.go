// Package dataset loads training examples for a network from CSV.
//
// Each record holds the input values followed by the target values:
//
//	# in0,in1,target
//	0.5,1.0,1.0
//	0.0,0.25,0.0
//
// A leading header row in which no field parses as a number is skipped, as
// are lines starting with '#'.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/born-ml/ffnet/internal/topology"
)

// ErrBadRecord is returned for records that do not fit the topology.
var ErrBadRecord = errors.New("bad record")

// Example is one training example.
type Example struct {
	Input  []float64 // One value per input node
	Target []float64 // One value per output node
}

// LoadFile loads examples from a CSV file.
func LoadFile(path string, t topology.Topology) ([]Example, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Load(file, t)
}

// Load reads examples for t from CSV.
//
// Parameters:
//   - r: CSV source
//   - t: Topology; each record needs t.InputSize()+t.OutputSize() fields
//
// Returns the examples in file order.
func Load(r io.Reader, t topology.Topology) ([]Example, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	width := t.InputSize() + t.OutputSize()
	examples := make([]Example, 0, len(records))

	for i, record := range records {
		values, err := parseRecord(record)
		if err != nil {
			if i == 0 && isHeader(record) {
				continue
			}
			return nil, fmt.Errorf("%w: row %d: %w", ErrBadRecord, i+1, err)
		}
		if len(values) != width {
			return nil, fmt.Errorf("%w: row %d: got %d fields, topology %s needs %d",
				ErrBadRecord, i+1, len(values), t, width)
		}
		examples = append(examples, Example{
			Input:  values[:t.InputSize():t.InputSize()],
			Target: values[t.InputSize():],
		})
	}

	return examples, nil
}

func parseRecord(record []string) ([]float64, error) {
	values := make([]float64, len(record))
	for j, field := range record {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", j+1, err)
		}
		values[j] = v
	}
	return values, nil
}

// isHeader reports whether none of the fields is a number.
func isHeader(record []string) bool {
	for _, field := range record {
		if _, err := strconv.ParseFloat(strings.TrimSpace(field), 64); err == nil {
			return false
		}
	}
	return true
}

// Zeros returns n all-zero examples for t.
func Zeros(n int, t topology.Topology) []Example {
	examples := make([]Example, n)
	for i := range examples {
		examples[i] = Example{
			Input:  make([]float64, t.InputSize()),
			Target: make([]float64, t.OutputSize()),
		}
	}
	return examples
}
