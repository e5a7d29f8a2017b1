package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSharedSecret(t *testing.T) {
	gate := NewSharedSecret("s3cret")

	tests := []struct {
		supplied string
		want     bool
	}{
		{"s3cret", true},
		{"S3CRET", false},
		{"s3cret ", false},
		{"s3cre", false},
		{"", false},
		{"wrong", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, gate.IsAdmin(tt.supplied), "supplied %q", tt.supplied)
	}
}

func TestSharedSecret_EmptyDeniesAll(t *testing.T) {
	gate := NewSharedSecret("")
	assert.False(t, gate.IsAdmin(""))
	assert.False(t, gate.IsAdmin("anything"))

	var zero SharedSecret
	assert.False(t, zero.IsAdmin(""))
}
