package bom

import (
	"fmt"
	"io"
	"os"

	cdx "github.com/CycloneDX/cyclonedx-go"
)

// Write encodes bom as pretty printed CycloneDX JSON.
func Write(w io.Writer, bom *cdx.BOM) error {
	encoder := cdx.NewBOMEncoder(w, cdx.BOMFileFormatJSON)
	encoder.SetPretty(true)
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(bom); err != nil {
		return fmt.Errorf("failed to encode BOM: %w", err)
	}
	return nil
}

// WriteFile writes bom to outputPath, or stdout when outputPath is empty.
func WriteFile(bom *cdx.BOM, outputPath string) error {
	if outputPath == "" {
		return Write(os.Stdout, bom)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	return Write(f, bom)
}

func ParseCycloneDX(filename string) (*cdx.BOM, error) {
	var bom cdx.BOM

	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	decoder := cdx.NewBOMDecoder(f, cdx.BOMFileFormatJSON)
	err = decoder.Decode(&bom)
	if err != nil {
		return nil, fmt.Errorf("cdx.Decode: %w", err)
	}

	return &bom, nil
}
