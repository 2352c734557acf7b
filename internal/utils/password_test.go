package utils

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Sup3rSecret", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	if hash == "Sup3rSecret" {
		t.Error("Hash must not equal the plain password")
	}

	if !CheckPasswordHash("Sup3rSecret", hash) {
		t.Error("Expected correct password to match its hash")
	}

	if CheckPasswordHash("WrongPassword1", hash) {
		t.Error("Expected wrong password not to match the hash")
	}
}

func TestCheckPasswordHashWithInvalidHash(t *testing.T) {
	if CheckPasswordHash("Sup3rSecret", "not-a-bcrypt-hash") {
		t.Error("Expected invalid hash not to match")
	}
}
