package services

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrNotFound covers rows that do not exist or belong to another user; the
// two cases are indistinguishable to callers on purpose.
var ErrNotFound = errors.New("record not found")

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

// ValidDate reports whether s is a YYYY-MM-DD calendar date.
func ValidDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

// ValidMonth reports whether s is a YYYY-MM month key.
func ValidMonth(s string) bool {
	_, err := time.Parse(monthLayout, s)
	return err == nil
}

// Today returns the current date key in local time, matching how clients
// label their days.
func Today() string {
	return time.Now().Format(dateLayout)
}
