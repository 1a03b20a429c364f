package dataset

import (
	"encoding/csv"
	"os"

	"github.com/santiagoprado12/ML-e2e-challenge/pkg/errors"
)

// LoadCSV reads a CSV file with a header row into a Frame.
func LoadCSV(path string) (*Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open CSV file %s", path)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse CSV file %s", path)
	}
	if len(records) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, path)
	}

	return FromRows(records[0], records[1:])
}
