package utils

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3cret" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !CheckPassword(hash, "s3cret") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "wrong") {
		t.Error("wrong password accepted")
	}
}

func TestHashPasswordCostClamped(t *testing.T) {
	tests := []struct {
		name string
		cost int
	}{
		{"below minimum", bcrypt.MinCost - 2},
		{"above maximum", bcrypt.MaxCost + 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword("s3cret", tt.cost)
			if err != nil {
				t.Fatalf("HashPassword: %v", err)
			}
			cost, err := bcrypt.Cost([]byte(hash))
			if err != nil {
				t.Fatalf("Cost: %v", err)
			}
			if cost != bcrypt.DefaultCost {
				t.Errorf("cost = %d, want clamped to %d", cost, bcrypt.DefaultCost)
			}
		})
	}
}
