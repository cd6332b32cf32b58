package testutil

import (
	"bytes"
	"io"
)

// PNG is enough of a PNG file for content sniffing
var PNG = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R', 0, 0, 0, 1, 0, 0, 0, 1}

// PDF is enough of a PDF file for content sniffing
var PDF = []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF\n")

// Reader returns a fresh seekable reader over b
func Reader(b []byte) io.ReadSeeker {
	return bytes.NewReader(b)
}
