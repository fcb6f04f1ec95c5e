// Package birthday selects contacts whose birthday falls into an upcoming
// window of days.
package birthday

import (
	"gitlab.com/akravets/contact-book/internal/model"
)

// Upcoming filters contacts down to those whose birth month and day lie in
// the window (current, to], compared as (month, day) tuples with the month
// compared first. The input order is preserved.
//
// Because the comparison is on tuples rather than on elapsed days, a window
// that spans the turn of the year (for example Dec 29 to Jan 5) matches no
// January birthdays: (1, day) never exceeds (12, 29). This mirrors the
// behavior the API has always had and is pinned by tests.
func Upcoming(current, to model.Date, contacts []model.Contact) []model.Contact {
	upcoming := make([]model.Contact, 0, len(contacts))
	for _, contact := range contacts {
		b := monthDay{int(contact.BirthDate.Month()), contact.BirthDate.Day()}
		from := monthDay{int(current.Month()), current.Day()}
		until := monthDay{int(to.Month()), to.Day()}
		if from.less(b) && !until.less(b) {
			upcoming = append(upcoming, contact)
		}
	}
	return upcoming
}

type monthDay struct {
	month int
	day   int
}

func (m monthDay) less(other monthDay) bool {
	if m.month != other.month {
		return m.month < other.month
	}
	return m.day < other.day
}
