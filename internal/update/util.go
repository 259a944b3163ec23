package update

import "strings"

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

func clampCursor(cursor, n int) int {
	if n <= 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}

// nextPreset steps through presets from current, wrapping at either end.
func nextPreset(presets []int, current, step int) int {
	if len(presets) == 0 {
		return current
	}
	idx := 0
	for i, p := range presets {
		if p == current {
			idx = i
			break
		}
	}
	idx = (idx + step + len(presets)) % len(presets)
	return presets[idx]
}
