package service

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestStorageKey(t *testing.T) {
	id := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	tests := []struct {
		slot string
		ext  string
		want string
	}{
		{SlotThumb, "jpg", fmt.Sprintf("%s-thumb.jpg", id)},
		{SlotBanner, ".png", fmt.Sprintf("%s-banner.png", id)},
		{SlotThumbHalf, "webp", fmt.Sprintf("%s-thumbhalf.webp", id)},
		{SlotMedia, "mp4", fmt.Sprintf("%s-media.mp4", id)},
		{SlotTrailer, ".mov", fmt.Sprintf("%s-trailer.mov", id)},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, StorageKey(id, tt.slot, tt.ext))
	}
}
