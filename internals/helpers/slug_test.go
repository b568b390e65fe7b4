package helper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"  Astra Motor  Bekasi ": "astra-motor-bekasi",
		"Café Déjà Vu":           "cafe-deja-vu",
		"KTP / Pasangan":         "ktp-pasangan",
		"###":                    "item",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in, 0), in)
	}

	long := Slugify(strings.Repeat("ab ", 50), 10)
	assert.LessOrEqual(t, len(long), 10)
	assert.False(t, strings.HasSuffix(long, "-"))
}

func TestPhotoKey(t *testing.T) {
	k := PhotoKey("orders/123", "KTP Pasangan")
	assert.True(t, strings.HasPrefix(k, "orders/123/ktp-pasangan/"))
	assert.True(t, strings.HasSuffix(k, ".webp"))
}
