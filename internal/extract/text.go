package extract

import "strings"

// decodeText reads data as UTF-8, dropping a byte order mark and invalid bytes.
func decodeText(data []byte) string {
	s := strings.ToValidUTF8(string(data), "")
	return strings.TrimPrefix(s, "\ufeff")
}
