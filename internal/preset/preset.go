// Package preset reads and writes equalizer settings as YAML documents.
//
// A preset stores the seven control values. Slopes are written in dB per
// octave (12, 24, 36 or 48) rather than as level indices:
//
//	version: 1
//	peak:
//	  frequency: 750
//	  gain_db: 0
//	  quality: 1
//	low_cut:
//	  frequency: 20
//	  slope: 12
//	high_cut:
//	  frequency: 20000
//	  slope: 12
package preset

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-eq/dsp/eq"
)

// Version is the document version written by Save.
const Version = 1

// ErrUnsupportedVersion is returned for documents newer than Version.
var ErrUnsupportedVersion = errors.New("preset: unsupported version")

// Document is the on-disk form of a preset.
type Document struct {
	Version int  `yaml:"version"`
	Peak    Peak `yaml:"peak"`
	LowCut  Cut  `yaml:"low_cut"`
	HighCut Cut  `yaml:"high_cut"`
}

// Peak holds the bell band.
type Peak struct {
	Frequency float64 `yaml:"frequency"`
	GainDB    float64 `yaml:"gain_db"`
	Quality   float64 `yaml:"quality"`
}

// Cut holds one of the Butterworth cut bands.
type Cut struct {
	Frequency float64 `yaml:"frequency"`
	Slope     int     `yaml:"slope"`
}

// FromSettings converts s into a document.
func FromSettings(s eq.Settings) Document {
	return Document{
		Version: Version,
		Peak:    Peak{Frequency: s.PeakFreq, GainDB: s.PeakGainDB, Quality: s.PeakQuality},
		LowCut:  Cut{Frequency: s.LowCutFreq, Slope: s.LowCutSlope.DBPerOctave()},
		HighCut: Cut{Frequency: s.HighCutFreq, Slope: s.HighCutSlope.DBPerOctave()},
	}
}

// Settings converts d back and validates the result.
func (d Document) Settings() (eq.Settings, error) {
	if d.Version > Version {
		return eq.Settings{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, d.Version)
	}

	low, err := eq.SlopeFromDBPerOctave(d.LowCut.Slope)
	if err != nil {
		return eq.Settings{}, fmt.Errorf("preset: low cut: %w", err)
	}
	high, err := eq.SlopeFromDBPerOctave(d.HighCut.Slope)
	if err != nil {
		return eq.Settings{}, fmt.Errorf("preset: high cut: %w", err)
	}

	s := eq.Settings{
		PeakFreq:     d.Peak.Frequency,
		PeakGainDB:   d.Peak.GainDB,
		PeakQuality:  d.Peak.Quality,
		LowCutFreq:   d.LowCut.Frequency,
		HighCutFreq:  d.HighCut.Frequency,
		LowCutSlope:  low,
		HighCutSlope: high,
	}
	if err := s.Validate(); err != nil {
		return eq.Settings{}, fmt.Errorf("preset: %w", err)
	}
	return s, nil
}

// Load decodes a preset from r. Missing fields take their defaults.
func Load(r io.Reader) (eq.Settings, error) {
	doc := FromSettings(eq.DefaultSettings())
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return eq.Settings{}, fmt.Errorf("preset: decode: %w", err)
	}
	return doc.Settings()
}

// Save encodes s to w.
func Save(w io.Writer, s eq.Settings) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("preset: %w", err)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(FromSettings(s)); err != nil {
		return fmt.Errorf("preset: encode: %w", err)
	}
	return enc.Close()
}

// LoadFile reads a preset from path.
func LoadFile(path string) (eq.Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return eq.Settings{}, fmt.Errorf("preset: %w", err)
	}
	return Load(bytes.NewReader(data))
}

// SaveFile writes s to path, replacing any existing file.
func SaveFile(path string, s eq.Settings) error {
	var buf bytes.Buffer
	if err := Save(&buf, s); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("preset: %w", err)
	}
	return nil
}
