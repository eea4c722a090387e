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

import "errors"

// Domain validation errors
var (
	// ErrInvalidContact indicates a Contact failed validation.
	ErrInvalidContact = errors.New("invalid contact")

	// ErrEmptyName indicates the Name field is empty.
	ErrEmptyName = errors.New("contact name cannot be empty")

	// ErrInvalidPhone indicates a phone number is not nine digits.
	ErrInvalidPhone = errors.New("invalid phone number")

	// ErrInvalidEmail indicates an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrInvalidBirthday indicates a birthday is not a valid calendar date.
	ErrInvalidBirthday = errors.New("invalid birthday")

	// ErrInvalidNote indicates a Note failed validation.
	ErrInvalidNote = errors.New("invalid note")

	// ErrEmptyTitle indicates a note title is empty or whitespace-only.
	ErrEmptyTitle = errors.New("note title cannot be empty")
)

// Allocator errors
var (
	// ErrIdentifierCollision indicates the allocator's accounting
	// disagrees with the caller's: a released identifier is still live,
	// or vice versa. This is an internal invariant violation and is
	// never repaired silently.
	ErrIdentifierCollision = errors.New("identifier collision")

	// ErrIdentifierInUse indicates an attempt to reserve an identifier
	// that is already held by a live contact.
	ErrIdentifierInUse = errors.New("identifier already in use")

	// ErrIdentifierNotInUse indicates an attempt to release an
	// identifier that no live contact holds.
	ErrIdentifierNotInUse = errors.New("identifier not in use")
)
