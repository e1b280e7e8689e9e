package services

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorClassification(t *testing.T) {
	nf := NewNotFound("Job", 42)
	if nf.Error() != "Job with ID 42 not found" {
		t.Errorf("NotFoundError message = %q", nf.Error())
	}
	if !IsNotFound(nf) || IsConflict(nf) || IsValidation(nf) {
		t.Error("NotFoundError misclassified")
	}

	ve := NewValidation("urgency_level", "must be one of Low, Medium, High, Urgent")
	if !IsValidation(ve) || IsNotFound(ve) {
		t.Error("ValidationError misclassified")
	}
	if ve.Error() != "urgency_level: must be one of Low, Medium, High, Urgent" {
		t.Errorf("ValidationError message = %q", ve.Error())
	}

	ce := NewConflict("job 7 is no longer open for assignment")
	if !IsConflict(ce) || IsNotFound(ce) {
		t.Error("ConflictError misclassified")
	}

	if IsNotFound(errors.New("boom")) || IsConflict(errors.New("boom")) {
		t.Error("plain errors must not match the taxonomy")
	}
}

func TestErrorClassificationThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("accept bid: %w", NewConflict("lost the race"))
	if !IsConflict(wrapped) {
		t.Error("IsConflict must see through wrapping")
	}

	wrapped = fmt.Errorf("load booking: %w", NewNotFound("Booking", 9))
	if !IsNotFound(wrapped) {
		t.Error("IsNotFound must see through wrapping")
	}
}
