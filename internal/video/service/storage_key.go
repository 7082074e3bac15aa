package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Media slot names used in storage keys.
const (
	SlotThumb     = "thumb"
	SlotBanner    = "banner"
	SlotThumbHalf = "thumbhalf"
	SlotMedia     = "media"
	SlotTrailer   = "trailer"
)

// StorageKey builds the object store key "{id}-{slot}.{extension}".
// The key is deterministic: a compensating delete must reproduce it
// exactly.
func StorageKey(id uuid.UUID, slot, extension string) string {
	extension = strings.TrimPrefix(extension, ".")
	return fmt.Sprintf("%s-%s.%s", id, strings.ToLower(slot), extension)
}
