package schema

import (
	"reflect"
	"testing"
)

func TestDueDayValidator(t *testing.T) {
	validate := V()

	tests := []struct {
		input   int
		isValid bool
	}{
		{1, true},
		{15, true},
		{28, true},
		{0, false},
		{29, false},
		{31, false},
		{-3, false},
	}

	for _, test := range tests {
		err := validate.Var(test.input, "dueDayValidator")
		if (err == nil) != test.isValid {
			t.Errorf("Expected %v for input %d, but got %v", test.isValid, test.input, err == nil)
		}
	}
}

func TestPriorityValidator(t *testing.T) {
	validate := V()

	tests := []struct {
		input   string
		isValid bool
	}{
		{"low", true},
		{"normal", true},
		{"urgent", true},
		{"critical", false},
		{"", false},
		{"Normal", false},
	}

	for _, test := range tests {
		err := validate.Var(test.input, "priorityValidator")
		if (err == nil) != test.isValid {
			t.Errorf("Expected %v for input '%s', but got %v", test.isValid, test.input, err == nil)
		}
	}
}

func TestPhaseValidator(t *testing.T) {
	validate := V()

	tests := []struct {
		input   string
		isValid bool
	}{
		{"move_in", true},
		{"move_out", true},
		{"move-in", false},
		{"", false},
	}

	for _, test := range tests {
		err := validate.Var(test.input, "phaseValidator")
		if (err == nil) != test.isValid {
			t.Errorf("Expected %v for input '%s', but got %v", test.isValid, test.input, err == nil)
		}
	}
}

func TestRoleValidator(t *testing.T) {
	validate := V()

	if err := validate.Var("admin", "roleValidator"); err != nil {
		t.Errorf("expected admin to be a valid role")
	}
	if err := validate.Var("tenant", "roleValidator"); err != nil {
		t.Errorf("expected tenant to be a valid role")
	}
	if err := validate.Var("superuser", "roleValidator"); err == nil {
		t.Errorf("expected superuser to be rejected")
	}
}

func TestGetJSONFieldPath(t *testing.T) {
	type sample struct {
		RentDueDay int    `json:"rentDueDay" validate:"dueDayValidator"`
		Untagged   string `validate:"required"`
	}
	s := sample{}
	value := reflect.ValueOf(&s).Elem()
	typeOf := value.Type()

	if got := GetJSONFieldPath(value, typeOf, "RentDueDay"); got != "rentDueDay" {
		t.Errorf("expected 'rentDueDay', got '%s'", got)
	}
	if got := GetJSONFieldPath(value, typeOf, "Untagged"); got != "Untagged" {
		t.Errorf("expected 'Untagged', got '%s'", got)
	}
	if got := GetJSONFieldPath(value, typeOf, "Missing"); got != "Missing" {
		t.Errorf("expected 'Missing', got '%s'", got)
	}
}
