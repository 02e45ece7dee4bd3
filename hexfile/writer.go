package hexfile

import (
	"fmt"
	"io"

	"github.com/marcinbor85/gohex"
)

// DefaultLineLength is the number of data bytes per record written by WriteHex.
const DefaultLineLength = 16

// WriteHex writes the image as Intel HEX data records starting at address
// zero, followed by an end of file record. The output is accepted by
// ParseReader and yields the same image.
func (img *Image) WriteHex(w io.Writer) error {
	mem := gohex.NewMemory()
	if err := mem.AddBinary(0, img.data); err != nil {
		return fmt.Errorf("add image: %w", err)
	}

	if err := mem.DumpIntelHex(w, DefaultLineLength); err != nil {
		return fmt.Errorf("write intel hex: %w", err)
	}

	return nil
}
