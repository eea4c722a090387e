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


// Package search provides edit-distance computation and nearest-match
// suggestions for contact lookup.
//
// When an exact search over the book comes up empty, callers collect the
// stored names, phones, and emails and ask Suggest for the closest one.
// Ranking uses the length-normalized Levenshtein distance so candidates
// of different lengths compare fairly; the raw distance is exported as a
// building block. Suggestions are advisory only and never alter stored
// data.
package search
