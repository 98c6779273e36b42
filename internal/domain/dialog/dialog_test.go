package dialog_test

import (
	"testing"

	"github.com/jsamuelsen11/taskdialog/internal/domain/dialog"
)

func TestField_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		field dialog.Field
		want  bool
	}{
		{dialog.FieldTitle, true},
		{dialog.FieldDescription, true},
		{"", false},
		{"Title", false},
		{"priority", false},
	}

	for _, tt := range tests {
		if got := tt.field.IsValid(); got != tt.want {
			t.Errorf("Field(%q).IsValid() = %v, want %v", tt.field, got, tt.want)
		}
	}
}

func TestTarget_IsValid(t *testing.T) {
	t.Parallel()

	if !dialog.TargetBackdrop.IsValid() || !dialog.TargetPanel.IsValid() {
		t.Error("defined targets must be valid")
	}
	if dialog.Target("button").IsValid() {
		t.Error(`Target("button").IsValid() = true, want false`)
	}
}

func TestFieldView_Counter(t *testing.T) {
	t.Parallel()

	f := dialog.FieldView{Count: 8, Max: 100}
	if got := f.Counter(); got != "8/100" {
		t.Errorf("Counter() = %q, want %q", got, "8/100")
	}
}

func TestView_HasError(t *testing.T) {
	t.Parallel()

	if (dialog.View{}).HasError() {
		t.Error("zero View reports an error")
	}
	if !(dialog.View{Error: dialog.MsgSubmitFailed}).HasError() {
		t.Error("View with Error reports none")
	}
}
