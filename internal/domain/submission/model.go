package submission

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the textual form of submitted_at (UTC, second precision).
const TimestampLayout = "2006-01-02 15:04:05"

// Kind identifies one of the two intake forms.
type Kind string

const (
	KindContact Kind = "contact"
	KindOrder   Kind = "order"
)

// Table returns the table that holds submissions of this kind.
func (k Kind) Table() string {
	if k == KindOrder {
		return "order_submissions"
	}
	return "contact_submissions"
}

// ErrMissingField is returned when a required field is blank.
var ErrMissingField = errors.New("required field missing")

// Fields holds the raw values posted by a form. Postcode is ignored for contacts.
type Fields struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Postcode  string
	Message   string
	PageURL   string
}

// Contact is one row of contact_submissions.
// INVARIANT: once persisted a Contact is never updated or deleted.
type Contact struct {
	ID          int64
	SubmittedAt time.Time
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	Message     string
	PageURL     string // empty means NULL
}

// Order is one row of order_submissions.
// INVARIANT: once persisted an Order is never updated or deleted.
type Order struct {
	ID          int64
	SubmittedAt time.Time
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	Postcode    string // empty means NULL
	Message     string
	PageURL     string // empty means NULL
}

// NewContact trims the posted fields and stamps the submission time.
// PRE: now is the server clock; clients never supply it
// POST: returns an unvalidated Contact with SubmittedAt in UTC, truncated to the second
func NewContact(f Fields, now time.Time) Contact {
	return Contact{
		SubmittedAt: stamp(now),
		FirstName:   strings.TrimSpace(f.FirstName),
		LastName:    strings.TrimSpace(f.LastName),
		Email:       strings.TrimSpace(f.Email),
		Phone:       strings.TrimSpace(f.Phone),
		Message:     strings.TrimSpace(f.Message),
		PageURL:     strings.TrimSpace(f.PageURL),
	}
}

// NewOrder trims the posted fields and stamps the submission time.
// PRE: now is the server clock; clients never supply it
// POST: returns an unvalidated Order with SubmittedAt in UTC, truncated to the second
func NewOrder(f Fields, now time.Time) Order {
	return Order{
		SubmittedAt: stamp(now),
		FirstName:   strings.TrimSpace(f.FirstName),
		LastName:    strings.TrimSpace(f.LastName),
		Email:       strings.TrimSpace(f.Email),
		Phone:       strings.TrimSpace(f.Phone),
		Postcode:    strings.TrimSpace(f.Postcode),
		Message:     strings.TrimSpace(f.Message),
		PageURL:     strings.TrimSpace(f.PageURL),
	}
}

// Validate checks that every required field is present.
// PRE: none
// POST: returns an error wrapping ErrMissingField naming the first blank field
func (c Contact) Validate() error {
	return requireAll(
		"firstname", c.FirstName,
		"lastname", c.LastName,
		"email", c.Email,
		"phone", c.Phone,
		"message", c.Message,
	)
}

// Validate checks that every required field is present. Postcode is optional.
// PRE: none
// POST: returns an error wrapping ErrMissingField naming the first blank field
func (o Order) Validate() error {
	return requireAll(
		"firstname", o.FirstName,
		"lastname", o.LastName,
		"email", o.Email,
		"phone", o.Phone,
		"message", o.Message,
	)
}

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp parses a stored submitted_at value.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.ParseInLocation(TimestampLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse submitted_at %q: %w", s, err)
	}
	return t, nil
}

func stamp(now time.Time) time.Time {
	return now.UTC().Truncate(time.Second)
}

// requireAll takes name/value pairs.
func requireAll(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			return fmt.Errorf("%s: %w", pairs[i], ErrMissingField)
		}
	}
	return nil
}
