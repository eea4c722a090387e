// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import "fmt"

// ValidateContact validates a Contact according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//
// NOT validated here:
//   - Phones, Emails, Birthday (valid by construction; the Phone, Email,
//     and Birthday types can only be built through their constructors)
//   - ID (0 is valid before the book assigns one)
func ValidateContact(contact *Contact) error {
	if contact == nil {
		return fmt.Errorf("%w: contact is nil", ErrInvalidContact)
	}

	if contact.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidContact, ErrEmptyName)
	}

	return nil
}
