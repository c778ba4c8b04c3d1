package models

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func stringsReader(s string) io.Reader { return strings.NewReader(s) }

func TestUser_Email(t *testing.T) {
	assert.Equal(t, "ana@example.com", User{"email": " ana@example.com "}.Email())
	assert.Equal(t, "", User{"email": 12}.Email())
	assert.Equal(t, "", User{}.Email())
}

func TestUser_Name(t *testing.T) {
	assert.Equal(t, "Ana", User{"name": "Ana"}.Name())
	assert.Equal(t, "", User{}.Name())
}
