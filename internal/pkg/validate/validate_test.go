package validate

import "testing"

type sample struct {
	Name  string  `json:"name" validate:"required,min=2"`
	Email string  `json:"email" validate:"required,email"`
	Note  *string `json:"note" validate:"omitempty,max=5"`
}

func TestStruct_Valid(t *testing.T) {
	if errs := Struct(sample{Name: "Ann", Email: "ann@example.com"}); errs != nil {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestStruct_FieldMessagesUseJSONNames(t *testing.T) {
	long := "too long note"
	errs := Struct(sample{Name: "A", Email: "nope", Note: &long})
	if len(errs) != 3 {
		t.Fatalf("expected 3 errors, got %v", errs)
	}
	if errs["name"] != "must be at least 2 characters" {
		t.Fatalf("unexpected name message %q", errs["name"])
	}
	if errs["email"] != "must be a valid email" {
		t.Fatalf("unexpected email message %q", errs["email"])
	}
	if errs["note"] != "must be at most 5 characters" {
		t.Fatalf("unexpected note message %q", errs["note"])
	}
}
