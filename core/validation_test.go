package core

import (
	"errors"
	"testing"
)

func TestValidateContact(t *testing.T) {
	phone, err := NewPhone("123456789")
	if err != nil {
		t.Fatalf("NewPhone failed: %v", err)
	}

	tests := []struct {
		name    string
		contact *Contact
		wantErr error
	}{
		{
			name:    "valid contact",
			contact: &Contact{Name: "Anna Kowalska", Phones: []Phone{phone}},
			wantErr: nil,
		},
		{
			name:    "valid contact with no fields beyond name",
			contact: &Contact{Name: "Jan Kowalski"},
			wantErr: nil,
		},
		{
			name:    "nil contact",
			contact: nil,
			wantErr: ErrInvalidContact,
		},
		{
			name:    "empty name",
			contact: &Contact{Phones: []Phone{phone}},
			wantErr: ErrEmptyName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateContact(tt.contact)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateContact() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateContact() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
