package utils

import (
	"fmt"

	"github.com/google/uuid"
)

// GenerateID returns a prefixed unique id such as "note_<uuid>". The
// prefix keeps ids self-describing in the stored JSON, matching the
// original data files.
func GenerateID(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, uuid.NewString())
}
