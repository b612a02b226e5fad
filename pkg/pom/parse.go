package pom

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"golang.org/x/net/html/charset"
)

// NewDecoder creates an XML decoder that copes with the non UTF-8 charsets and HTML entities found in published POMs.
func NewDecoder(reader io.Reader) *xml.Decoder {
	decoder := xml.NewDecoder(reader)
	decoder.CharsetReader = charset.NewReaderLabel
	decoder.Entity = xml.HTMLEntity
	return decoder
}

func Parse(reader io.Reader) (*Project, error) {
	var project Project
	if err := NewDecoder(reader).Decode(&project); err != nil {
		return nil, fmt.Errorf("failed to decode pom: %w", err)
	}
	return &project, nil
}

func ParseFile(filename string) (*Project, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	project, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return project, nil
}
