package utils

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("calavera")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "calavera" {
		t.Fatal("hash equals plain password")
	}

	if !VerifyPassword("calavera", hash) {
		t.Error("correct password rejected")
	}
	if VerifyPassword("salah", hash) {
		t.Error("wrong password accepted")
	}
	if VerifyPassword("calavera", "not-a-bcrypt-hash") {
		t.Error("garbage hash accepted")
	}
}
