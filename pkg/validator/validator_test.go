package validator

import "testing"

type signUp struct {
	Phone    string `json:"phone" validate:"required,phone"`
	Password string `json:"password" validate:"required,min=6"`
	Stars    int    `json:"stars" validate:"omitempty,min=1,max=5"`
}

func TestStruct_UsesJSONNames(t *testing.T) {
	v := New()
	v.Struct(signUp{Phone: "abc", Password: "123", Stars: 9})

	if v.Valid() {
		t.Fatalf("expected errors")
	}
	want := map[string]string{
		"phone":    "must be a valid phone number",
		"password": "must be at least 6",
		"stars":    "must be at most 5",
	}
	for field, msg := range want {
		if got := v.Errors[field]; got != msg {
			t.Fatalf("%s: got %q want %q", field, got, msg)
		}
	}
}

func TestStruct_Valid(t *testing.T) {
	v := New()
	v.Struct(signUp{Phone: "09171234567", Password: "secret1"})
	if !v.Valid() {
		t.Fatalf("unexpected errors: %v", v.Errors)
	}
}

func TestCheck_KeepsFirstMessage(t *testing.T) {
	v := New()
	v.Check(false, "phone", "first")
	v.Check(false, "phone", "second")
	v.Check(true, "password", "never")

	if v.Errors["phone"] != "first" {
		t.Fatalf("got %q", v.Errors["phone"])
	}
	if _, ok := v.Errors["password"]; ok {
		t.Fatalf("passing check must not add an error")
	}
}

func TestPermittedValue(t *testing.T) {
	if !PermittedValue("trip", "trip", "promo") {
		t.Fatalf("expected permitted")
	}
	if PermittedValue(3, 1, 2) {
		t.Fatalf("expected rejected")
	}
}
