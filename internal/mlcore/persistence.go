package mlcore

import (
	"encoding/gob"
	"os"

	"github.com/santiagoprado12/ML-e2e-challenge/pkg/errors"
)

// SaveModel serializes a fitted component to a binary artifact using
// encoding/gob. Concrete estimator types stored behind interfaces must be
// registered with gob by the caller's package.
func SaveModel(model interface{}, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "failed to create model file %s", filename)
	}
	defer file.Close()

	encoder := gob.NewEncoder(file)
	if err := encoder.Encode(model); err != nil {
		return errors.Wrap(err, "failed to encode model")
	}

	return nil
}

// LoadModel deserializes a component previously written by SaveModel into
// the value pointed to by model.
func LoadModel(model interface{}, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return errors.Wrapf(err, "failed to open model file %s", filename)
	}
	defer file.Close()

	decoder := gob.NewDecoder(file)
	if err := decoder.Decode(model); err != nil {
		return errors.Wrap(err, "failed to decode model")
	}

	return nil
}
