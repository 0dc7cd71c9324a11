package scheduler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/robfig/cron/v3"
)

// cronParser uses standard 5-field cron expressions (minute, hour, dom, month, dow).
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// CronToHuman renders a 5-field cron expression as a short human-readable
// phrase. Expressions it cannot parse or summarize come back unchanged.
func CronToHuman(expr string) string {
	if _, err := cronParser.Parse(expr); err != nil {
		return expr
	}

	fields := strings.Fields(expr)
	if len(fields) != 5 {
		return expr
	}
	minute, hour, dom, month, dow := fields[0], fields[1], fields[2], fields[3], fields[4]

	if dom != "*" || month != "*" || dow != "*" {
		return expr
	}

	// Interval patterns: */N or 0 */N.
	if n, ok := everyN(minute); ok && hour == "*" {
		if n == 1 {
			return "Every minute"
		}
		return fmt.Sprintf("Every %d minutes", n)
	}
	if minute == "0" {
		if hour == "*" {
			return "Every hour"
		}
		if n, ok := everyN(hour); ok {
			if n == 1 {
				return "Every hour"
			}
			return fmt.Sprintf("Every %d hours", n)
		}
	}

	// Fixed daily time: M H * * *.
	m, merr := strconv.Atoi(minute)
	h, herr := strconv.Atoi(hour)
	if merr == nil && herr == nil {
		return fmt.Sprintf("Daily at %02d:%02d", h, m)
	}

	return expr
}

// everyN matches a "*/N" field and returns N.
func everyN(field string) (int, bool) {
	rest, ok := strings.CutPrefix(field, "*/")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
