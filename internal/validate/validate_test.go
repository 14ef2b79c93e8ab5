package validate

import (
	"errors"
	"strings"
	"testing"
)

type sample struct {
	Topic string `json:"topic" validate:"required"`
	Count int    `json:"count" validate:"min=1,max=20"`
	Level string `csv:"difficulty" validate:"oneof=easy medium hard"`
}

func TestStruct_Valid(t *testing.T) {
	v := New()
	if err := v.Struct(sample{Topic: "SQL", Count: 5, Level: "easy"}); err != nil {
		t.Fatalf("Struct() = %v, want nil", err)
	}
}

func TestStruct_FieldsError(t *testing.T) {
	v := New()
	err := v.Struct(sample{Count: 40, Level: "expert"})

	var fe *FieldsError
	if !errors.As(err, &fe) {
		t.Fatalf("Struct() error = %T, want *FieldsError", err)
	}

	for _, field := range []string{"topic", "count", "difficulty"} {
		if _, ok := fe.Fields[field]; !ok {
			t.Errorf("missing message for field %q in %v", field, fe.Fields)
		}
	}
	if !strings.HasPrefix(err.Error(), "validation failed: ") {
		t.Errorf("Error() = %q, want validation failed prefix", err.Error())
	}
}

func TestStruct_NotAStruct(t *testing.T) {
	v := New()
	err := v.Struct(42)
	if err == nil {
		t.Fatal("expected error for non-struct input")
	}
	var fe *FieldsError
	if errors.As(err, &fe) {
		t.Error("non-struct input should not produce a FieldsError")
	}
}

func TestStruct_TranslatedMessages(t *testing.T) {
	err := New().Struct(sample{Count: 5, Level: "easy"})

	var fe *FieldsError
	if !errors.As(err, &fe) {
		t.Fatalf("Struct() error = %T, want *FieldsError", err)
	}
	if got, want := fe.Fields["topic"], "topic is a required field"; got != want {
		t.Errorf("Fields[topic] = %q, want %q", got, want)
	}
}
