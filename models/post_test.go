package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindFromMime(t *testing.T) {
	cases := []struct {
		mime string
		want AttachmentKind
	}{
		{"image/png", KindImage},
		{"IMAGE/JPEG", KindImage},
		{"video/mp4", KindVideo},
		{"audio/mpeg", KindAudio},
		{"application/pdf", KindFile},
		{"text/plain", KindFile},
		{"", KindFile},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, KindFromMime(tc.mime), tc.mime)
	}
}
