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


package notes

import "errors"

var (
	// ErrNotFound indicates an operation referenced a title with no
	// stored note.
	ErrNotFound = errors.New("note not found")

	// ErrTitleTaken indicates a create collided with an existing title.
	ErrTitleTaken = errors.New("note title already taken")
)
