package cryptox

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPassword_KnownVectors(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{"abc", "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		{"password", "5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := HashPassword([]byte(tt.in))
			assert.Equal(t, tt.want, got)
			assert.Len(t, got, 64)
		})
	}
}

func TestHashPassword_UTF8(t *testing.T) {
	a := HashPassword([]byte("密码"))
	b := HashPassword([]byte("密码"))
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, HashPassword([]byte("密碼")))
}
