package presentation

import (
	"encoding/json"
	"io"
)

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer) *Formatter {
	return &Formatter{
		writer: writer,
	}
}

// FormatRegistry formats the page registry as indented JSON
func (f *Formatter) FormatRegistry(reg RegistryDTO) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(reg)
}

// FormatTransition writes a transition as one JSON line
func (f *Formatter) FormatTransition(tr TransitionDTO) error {
	return json.NewEncoder(f.writer).Encode(tr)
}

// FormatRunResult writes a run summary as one JSON line
func (f *Formatter) FormatRunResult(result RunResultDTO) error {
	return json.NewEncoder(f.writer).Encode(result)
}
