package sqlite

import (
	"fmt"
	"strings"
)

// ensurePragmas turns a path into a file DSN and appends the WAL and
// busy-timeout pragmas when missing. In-memory DSNs are left alone.
func ensurePragmas(dsn string, busyTimeoutMS int) string {
	lower := strings.ToLower(dsn)
	if dsn == "" || dsn == ":memory:" || strings.HasPrefix(lower, "file::memory:") {
		return dsn
	}
	if !strings.HasPrefix(lower, "file:") {
		dsn = "file:" + dsn
	}
	if !strings.Contains(lower, "_pragma=journal_mode") {
		dsn = addPragma(dsn, "journal_mode(WAL)")
	}
	if busyTimeoutMS > 0 && !strings.Contains(lower, "_pragma=busy_timeout") {
		dsn = addPragma(dsn, fmt.Sprintf("busy_timeout(%d)", busyTimeoutMS))
	}
	return dsn
}

func addPragma(dsn, pragma string) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=" + pragma
}
