package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeriesDirName(t *testing.T) {
	assert.Equal(t, "Shadow_Slave_EPUB", SeriesDirName("Shadow Slave"))
	assert.Equal(t, "Lord_of_the_Mysteries_EPUB", SeriesDirName("  Lord of  the Mysteries "))
	assert.Equal(t, "Re_Zero_EPUB", SeriesDirName("Re/Zero"))
}

func TestSanitize(t *testing.T) {
	tests := map[string]string{
		"Shadow Slave":        "shadow_slave",
		"Pokémon: Rêve":       "pokemon_reve",
		"  --Vol. 1 (Early)":  "vol_1_early",
		"a___b":               "a_b",
		"":                    "",
	}

	for in, want := range tests {
		assert.Equal(t, want, Sanitize(in), in)
	}
}

func TestHuman(t *testing.T) {
	assert.Equal(t, "512 B", Human(512))
	assert.Equal(t, "1.50 KB", Human(1536))
	assert.Equal(t, "2.00 MB", Human(2<<20))
	assert.Equal(t, "1.00 GB", Human(1<<30))
}
