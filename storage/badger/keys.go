package badger

import (
	"fmt"

	"github.com/poiesic/rolodex/core"
)

// Key prefixes for different data types
const (
	contactPrefix     = "ctcrec"
	fingerprintPrefix = "ctcfpr"
	notePrefix        = "ntsrec"
)

// makeContactKey generates a key for a contact by ID.
func makeContactKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", contactPrefix, id))
}

// makeFingerprintKey generates a key for the content-fingerprint index.
// The value stored under it is the marshaled contact ID.
func makeFingerprintKey(fingerprint core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", fingerprintPrefix, fingerprint))
}

// makeNoteKey generates a key for a note by its normalized title.
func makeNoteKey(key string) []byte {
	return []byte(fmt.Sprintf("%s:%s", notePrefix, key))
}
