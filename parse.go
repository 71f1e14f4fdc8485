package torquedriver

import (
	"strconv"
	"strings"
)

// ParseQsubStdout extracts the scheduler-assigned job id from qsub's
// stdout.
//
// It reads up to the first '.' and parses that prefix as an integer;
// if no '.' is present, the entire content is parsed as an integer.
// The second return value is false if no positive integer could be
// extracted.
func ParseQsubStdout(stdout []byte) (int64, bool) {
	s := strings.TrimSpace(string(stdout))
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
