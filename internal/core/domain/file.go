package domain

import (
	"crypto/md5"
	"encoding/hex"
	"path/filepath"
	"strings"
)

// AllowedExtensions is the fixed upload allow-list. Validation is by
// extension only; bytes are never sniffed.
var AllowedExtensions = map[string]struct{}{
	".pdf":  {},
	".doc":  {},
	".docx": {},
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".tiff": {},
	".tif":  {},
	".txt":  {},
}

// SupportedContentTypes are the MIME types advertised by the health endpoint.
var SupportedContentTypes = []string{
	"application/pdf",
	"image/jpeg",
	"image/png",
	"image/tiff",
	"text/plain",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// NormalizeExt returns the lowercased extension of name, dot included.
func NormalizeExt(name string) string {
	return strings.ToLower(filepath.Ext(name))
}

// ExtensionAllowed reports whether name carries an allow-listed extension.
func ExtensionAllowed(name string) bool {
	_, ok := AllowedExtensions[NormalizeExt(name)]
	return ok
}

// FileHash returns the hex MD5 digest of data. Identical bytes always
// produce the identical hash.
func FileHash(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}
