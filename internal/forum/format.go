// Bienestar - Student Wellbeing Questionnaire Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bienestar

package forum

import (
	"fmt"
	"time"
)

var monthAbbr = [...]string{
	"ene", "feb", "mar", "abr", "may", "jun",
	"jul", "ago", "sept", "oct", "nov", "dic",
}

// RelativeTime formats a post timestamp (Unix milliseconds) relative to now:
// "hace un momento", "hace N min", "hace N h", "hace N d", and a short date
// for anything older than a week. The year is shown only when it differs
// from now's.
func RelativeTime(ts int64, now time.Time) string {
	t := time.UnixMilli(ts).In(now.Location())
	diff := int64(now.Sub(t) / time.Second)

	switch {
	case diff < 60:
		return "hace un momento"
	case diff < 3600:
		return fmt.Sprintf("hace %d min", diff/60)
	case diff < 86400:
		return fmt.Sprintf("hace %d h", diff/3600)
	case diff < 604800:
		return fmt.Sprintf("hace %d d", diff/86400)
	}

	date := fmt.Sprintf("%d %s", t.Day(), monthAbbr[t.Month()-1])
	if t.Year() != now.Year() {
		date += fmt.Sprintf(" %d", t.Year())
	}
	return date
}
