package platform

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// parseIdleMillis reads the single integer printed by xprintidle.
func parseIdleMillis(output []byte) (float64, error) {
	value := strings.TrimSpace(string(output))
	idleMillis, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse idle milliseconds: %w", err)
	}
	if idleMillis < 0 {
		idleMillis = 0
	}
	return float64(idleMillis) / 1000, nil
}

// parseHIDIdleTime extracts HIDIdleTime (nanoseconds) from `ioreg -c IOHIDSystem`.
func parseHIDIdleTime(output []byte) (float64, error) {
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		index := strings.Index(line, `"HIDIdleTime"`)
		if index < 0 {
			continue
		}
		_, value, found := strings.Cut(line[index:], "=")
		if !found {
			continue
		}
		idleNanos, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parse HIDIdleTime: %w", err)
		}
		return float64(idleNanos) / 1e9, nil
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("scan ioreg output: %w", err)
	}
	return 0, fmt.Errorf("HIDIdleTime not found in ioreg output")
}
