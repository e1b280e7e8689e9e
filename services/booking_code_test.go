package services

import (
	"regexp"
	"testing"
)

var bookingCodePattern = regexp.MustCompile(`^BK\d{6}$`)

func TestGenerateBookingCodeFormat(t *testing.T) {
	for i := 0; i < 1000; i++ {
		code := GenerateBookingCode()
		if !bookingCodePattern.MatchString(code) {
			t.Fatalf("GenerateBookingCode() = %q, want BK followed by six digits", code)
		}
	}
}

func TestNewUniqueBookingCodeRetries(t *testing.T) {
	collisions := 3
	calls := 0
	code, err := newUniqueBookingCode(func(string) (bool, error) {
		calls++
		return calls <= collisions, nil
	})
	if err != nil {
		t.Fatalf("newUniqueBookingCode() error = %v", err)
	}
	if !bookingCodePattern.MatchString(code) {
		t.Errorf("newUniqueBookingCode() = %q, want BK followed by six digits", code)
	}
	if calls != collisions+1 {
		t.Errorf("exists called %d times, want %d", calls, collisions+1)
	}
}

func TestNewUniqueBookingCodeGivesUp(t *testing.T) {
	calls := 0
	_, err := newUniqueBookingCode(func(string) (bool, error) {
		calls++
		return true, nil
	})
	if err == nil {
		t.Fatal("newUniqueBookingCode() expected error when every code collides")
	}
	if calls != bookingCodeAttempts {
		t.Errorf("exists called %d times, want %d", calls, bookingCodeAttempts)
	}
}
