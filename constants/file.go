package constants

import "strings"

// AllowedImageExtensions holds the file extensions accepted by the local image
// loader. Card photos arrive as JPEG or PNG; anything else is rejected up
// front instead of failing inside the decoder.
var AllowedImageExtensions = map[string]struct{}{
	"jpg":  {},
	"jpeg": {},
	"png":  {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
