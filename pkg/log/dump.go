package log

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Dump prints contents as indented JSON on stdout.
func Dump(something any) {
	if err := DumpTo(os.Stdout, something); err != nil {
		fmt.Printf("Dump error: %v\n", err)
	}
}

func DumpTo(w io.Writer, something any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(something)
}
