package domain

import (
	"strconv"
	"strings"
	"time"
)

// snowflakeEpochMillis is the custom epoch of snowflake ids (2010-11-04).
const snowflakeEpochMillis = 1288834974657

// CompareIDs orders numeric string ids without parsing them, so ids wider
// than 64 bits still compare correctly. Non-numeric ids fall back to plain
// string order. It returns -1, 0 or +1.
func CompareIDs(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) && isDigits(a) && isDigits(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

// OldestID returns the smallest id in ids, or "" if ids is empty.
func OldestID(ids []string) string {
	oldest := ""
	for _, id := range ids {
		if oldest == "" || CompareIDs(id, oldest) < 0 {
			oldest = id
		}
	}
	return oldest
}

// SnowflakeTime recovers the creation time embedded in a snowflake id.
// Ids that are not snowflakes yield the zero time.
func SnowflakeTime(id string) time.Time {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n <= 0 {
		return time.Time{}
	}
	offset := n >> 22
	if offset == 0 {
		return time.Time{}
	}
	return time.UnixMilli(offset + snowflakeEpochMillis).UTC()
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
