package service

import "fmt"

const minutesPerDay = 24 * 60

// minuteOfDay parses a HH:MM clock string into minutes since midnight.
func minuteOfDay(clock string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(clock, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %w", clock, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock value %q out of range", clock)
	}
	return h*60 + m, nil
}

func formatMinute(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// GenerateSlots expands an opening window into candidate slot start times.
// Slots start at opens and step by interval minutes; a slot whose start
// equals the closing time is not produced. Malformed or inverted windows
// yield no slots.
func GenerateSlots(opens, closes string, intervalMin int) []string {
	if intervalMin <= 0 {
		return nil
	}
	start, err := minuteOfDay(opens)
	if err != nil {
		return nil
	}
	end, err := minuteOfDay(closes)
	if err != nil {
		return nil
	}
	if end <= start {
		return nil
	}

	slots := make([]string, 0, (end-start)/intervalMin)
	for t := start; t < end; t += intervalMin {
		slots = append(slots, formatMinute(t))
	}
	return slots
}
