package core

import (
	"encoding/binary"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for a live contact.
// IDs are positive, assigned by the book, and recycled after deletion.
type ID uint64

const birthdayLayout = "2006-01-02"

var (
	phonePattern = regexp.MustCompile(`^\d{9}$`)
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)
)

// Phone is a validated phone number. The zero value is invalid; construct
// with NewPhone.
type Phone struct {
	value string
}

// NewPhone validates and wraps a phone number. Numbers are exactly nine
// ASCII digits.
func NewPhone(value string) (Phone, error) {
	if !phonePattern.MatchString(value) {
		return Phone{}, fmt.Errorf("%w: %q", ErrInvalidPhone, value)
	}
	return Phone{value: value}, nil
}

func (p Phone) String() string {
	return p.value
}

// Email is a validated email address. Construct with NewEmail.
type Email struct {
	value string
}

// NewEmail validates and wraps an email address.
func NewEmail(value string) (Email, error) {
	if !emailPattern.MatchString(value) {
		return Email{}, fmt.Errorf("%w: %q", ErrInvalidEmail, value)
	}
	return Email{value: value}, nil
}

func (e Email) String() string {
	return e.value
}

// Birthday is a calendar date. Construct with NewBirthday.
type Birthday struct {
	date time.Time
}

// NewBirthday parses a date in YYYY-MM-DD form.
func NewBirthday(value string) (Birthday, error) {
	date, err := time.Parse(birthdayLayout, value)
	if err != nil {
		return Birthday{}, fmt.Errorf("%w: %q", ErrInvalidBirthday, value)
	}
	return Birthday{date: date}, nil
}

func (b Birthday) String() string {
	return b.date.Format(birthdayLayout)
}

// Date returns the underlying calendar date at UTC midnight.
func (b Birthday) Date() time.Time {
	return b.date
}

// DaysUntil returns the number of days from now until the next occurrence
// of the birthday.
func (b Birthday) DaysUntil(now time.Time) int {
	next := time.Date(now.Year(), b.date.Month(), b.date.Day(), 0, 0, 0, 0, now.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if next.Before(today) {
		next = next.AddDate(1, 0, 0)
	}
	return int(next.Sub(today).Hours() / 24)
}

// Address is a four-part postal address.
type Address struct {
	Street     string
	City       string
	PostalCode string
	Country    string
}

func (a Address) String() string {
	return strings.Join([]string{a.Street, a.City, a.PostalCode, a.Country}, ", ")
}

// Contact represents a single person in the book.
// The Id field is assigned by the book on Add and never mutated afterwards.
type Contact struct {
	Id         ID
	Name       string
	Phones     []Phone
	Emails     []Email
	Birthday   *Birthday
	Address    *Address
	InsertedAt time.Time // When the contact was added to the book
	UpdatedAt  time.Time // When the contact was last modified
}

// AddPhone appends a phone number.
func (c *Contact) AddPhone(phone Phone) {
	c.Phones = append(c.Phones, phone)
}

// RemovePhone removes the first matching phone number.
// Returns false if the number is not present.
func (c *Contact) RemovePhone(phone Phone) bool {
	for i, p := range c.Phones {
		if p == phone {
			c.Phones = append(c.Phones[:i], c.Phones[i+1:]...)
			return true
		}
	}
	return false
}

// EditPhone replaces old with updated in place, preserving order.
// Returns false if old is not present.
func (c *Contact) EditPhone(old, updated Phone) bool {
	for i, p := range c.Phones {
		if p == old {
			c.Phones[i] = updated
			return true
		}
	}
	return false
}

// AddEmail appends an email address.
func (c *Contact) AddEmail(email Email) {
	c.Emails = append(c.Emails, email)
}

// RemoveEmail removes the first matching email address.
// Returns false if the address is not present.
func (c *Contact) RemoveEmail(email Email) bool {
	for i, e := range c.Emails {
		if e == email {
			c.Emails = append(c.Emails[:i], c.Emails[i+1:]...)
			return true
		}
	}
	return false
}

// EditEmail replaces old with updated in place, preserving order.
// Returns false if old is not present.
func (c *Contact) EditEmail(old, updated Email) bool {
	for i, e := range c.Emails {
		if e == old {
			c.Emails[i] = updated
			return true
		}
	}
	return false
}

// Rename changes the contact's name. The new name must be non-empty.
func (c *Contact) Rename(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	c.Name = name
	return nil
}

// Fingerprint generates a deterministic content identity from the
// contact's name, phones, and emails using BLAKE2b hashing. Two contacts
// with the same identifying fields produce the same fingerprint, which is
// used for duplicate detection on import.
func (c *Contact) Fingerprint() ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(c.Name))
	for _, p := range c.Phones {
		h.Write([]byte{0})
		h.Write([]byte(p.String()))
	}
	for _, e := range c.Emails {
		h.Write([]byte{1})
		h.Write([]byte(e.String()))
	}
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}
