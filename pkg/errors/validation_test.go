package errors

import (
	"testing"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "out.svg", false},
		{"nested", "build/out/photo.png", false},
		{"absolute", "/tmp/out.jpg", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 5000)), true},
		{"null byte", "out\x00.png", true},
		{"control char", "out\x01.png", true},
		{"trailing slash", "build/", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateRadius(t *testing.T) {
	tests := []struct {
		r       int
		wantErr bool
	}{
		{1, false},
		{10, false},
		{MaxRadius, false},
		{0, true},
		{-3, true},
		{MaxRadius + 1, true},
		{100000000, true},
	}
	for _, tt := range tests {
		err := ValidateRadius(tt.r)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateRadius(%d) error = %v, wantErr %v", tt.r, err, tt.wantErr)
		}
		if err != nil && !Is(err, ErrCodeInvalidConfig) {
			t.Errorf("ValidateRadius(%d) code = %v", tt.r, GetCode(err))
		}
	}
}
