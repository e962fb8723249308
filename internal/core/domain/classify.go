package domain

import (
	"bytes"
	"strings"
)

// imageExtensions is the fixed hint table: a file_type hint matching one of
// these resolves to KindImage, any other hint to KindPDF.
var imageExtensions = map[string]struct{}{
	"jpg":  {},
	"jpeg": {},
	"png":  {},
	"bmp":  {},
	"tiff": {},
	"tif":  {},
	"gif":  {},
}

// imageMagic holds byte prefixes of the raster formats the service accepts.
// First match wins.
var imageMagic = [][]byte{
	{0xFF, 0xD8, 0xFF}, // JPEG
	{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, // PNG
	[]byte("BM"),                 // BMP
	[]byte("GIF87a"),             // GIF
	[]byte("GIF89a"),             // GIF
	{0x49, 0x49, 0x2A, 0x00},     // TIFF little-endian
	{0x4D, 0x4D, 0x00, 0x2A},     // TIFF big-endian
}

// DetectKind classifies raw document bytes. An explicit extension hint takes
// precedence over content sniffing. Total and deterministic: unknown content
// resolves to KindPDF, the service's primary expected input.
func DetectKind(data []byte, hint string) DocumentKind {
	if hint != "" {
		if _, ok := imageExtensions[normalizeExt(hint)]; ok {
			return KindImage
		}
		return KindPDF
	}
	for _, magic := range imageMagic {
		if bytes.HasPrefix(data, magic) {
			return KindImage
		}
	}
	return KindPDF
}

// normalizeExt lowercases and trims a leading dot from a file extension hint.
func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
