package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/adhocore/gronx"
	"github.com/gclaussn/go-bpmn-schema/model"
)

var iso8601DurationDateRegexp = regexp.MustCompile(`^P(\d+Y)?(\d+M)?(\d+W)?(\d+D)?$`)
var iso8601DurationTimeRegexp = regexp.MustCompile(`^(\d+H)?(\d+M)?(\d+S)?$`)

// validateTimerTriggers checks that every timer event has a trigger, which is an ISO 8601 duration, a repeating interval,
// an RFC 3339 date-time or a CRON expression.
func validateTimerTriggers(d *model.Diagram) []Finding {
	index := newElementIndex(d)

	var findings []Finding
	for _, event := range index.events {
		if !event.IsTimerEvent() {
			continue
		}

		var message string
		if event.Trigger == "" {
			message = "Timer event must define a time date, duration or cycle"
		} else if !IsTimerTrigger(event.Trigger) {
			message = fmt.Sprintf("Timer trigger %s is neither an ISO 8601 duration, a repeating interval, a date-time nor a CRON expression", event.Trigger)
		} else {
			continue
		}

		findings = append(findings, Finding{
			Severity:    SeverityError,
			ElementId:   event.Id(),
			ElementType: elementTypeLabel(event),
			Message:     message,
			RuleName:    RuleTimerTrigger,
		})
	}
	return findings
}

// IsTimerTrigger determines if the given value is a supported timer trigger:
//   - ISO 8601 duration (e.g. PT1H or P1DT12H)
//   - repeating interval (e.g. R3/PT10M or R/P1D)
//   - RFC 3339 date-time (e.g. 2025-01-01T12:00:00Z)
//   - CRON expression (e.g. 0 9 * * MON-FRI)
func IsTimerTrigger(v string) bool {
	if v == "" {
		return false
	}
	if isISO8601Duration(v) {
		return true
	}
	if isRepeatingInterval(v) {
		return true
	}
	if _, err := time.Parse(time.RFC3339, v); err == nil {
		return true
	}
	return gronx.IsValid(v)
}

func isISO8601Duration(v string) bool {
	s := strings.Split(v, "T")

	var valid bool
	if len(s) == 1 && len(s[0]) >= 3 { // e.g. P1D
		valid = iso8601DurationDateRegexp.MatchString(s[0])
	} else if len(s) == 2 {
		if len(s[0]) == 1 && s[0][0] == 'P' { // e.g. PT1S -> P
			valid = true
		} else { // e.g. P1DT1S -> P1D
			valid = iso8601DurationDateRegexp.MatchString(s[0])
		}

		if len(s[1]) >= 2 { // e.g. PT1S -> 1S
			valid = valid && iso8601DurationTimeRegexp.MatchString(s[1])
		} else {
			valid = false
		}
	}
	return valid
}

// isRepeatingInterval accepts R<n>/<duration> and R/<duration>.
func isRepeatingInterval(v string) bool {
	repetitions, duration, ok := strings.Cut(v, "/")
	if !ok || !strings.HasPrefix(repetitions, "R") {
		return false
	}
	if n := repetitions[1:]; n != "" {
		if i, err := strconv.Atoi(n); err != nil || i < 0 {
			return false
		}
	}
	return isISO8601Duration(duration)
}
