package models

import (
	"compress/zlib"
	"encoding/json"
	"io"
	"os"

	"github.com/neurlang/evaluator/hashtron"
)

type classifierJSON struct {
	Bits    byte                `json:"bits"`
	Units   []hashtron.Hashtron `json:"units"`
	Trained []bool              `json:"trained"`
}

// WriteZlibWeights writes the model weights to a writer as zlib compressed
// JSON.
func (c *HashtronClassifier) WriteZlibWeights(w io.Writer) error {
	zw := zlib.NewWriter(w)
	err := json.NewEncoder(zw).Encode(classifierJSON{
		Bits:    c.bits,
		Units:   c.units,
		Trained: c.trained,
	})
	if err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

// ReadZlibWeights loads model weights written by WriteZlibWeights.
func (c *HashtronClassifier) ReadZlibWeights(r io.Reader) error {
	zr, err := zlib.NewReader(r)
	if err != nil {
		return err
	}
	var raw classifierJSON
	if err := json.NewDecoder(zr).Decode(&raw); err != nil {
		zr.Close()
		return err
	}
	if err := zr.Close(); err != nil {
		return err
	}
	if raw.Bits == 0 {
		raw.Bits = 1
	}
	c.bits = raw.Bits
	c.units = raw.Units
	c.trained = raw.Trained
	if c.trained == nil && c.units != nil {
		c.trained = make([]bool, len(c.units))
	}
	return nil
}

// WriteZlibWeightsToFile writes the model weights to a zlib file.
func (c *HashtronClassifier) WriteZlibWeightsToFile(name string) error {
	file, err := os.Create(name)
	if err != nil {
		return err
	}
	err = c.WriteZlibWeights(file)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	return err
}

// ReadZlibWeightsFromFile reads the model weights from a zlib file.
func (c *HashtronClassifier) ReadZlibWeightsFromFile(name string) error {
	file, err := os.Open(name)
	if err != nil {
		return err
	}
	err = c.ReadZlibWeights(file)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	return err
}
