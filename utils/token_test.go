package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"github.com/raushankrgupta/wardrobe-ai-backend/config"
)

func TestTokenRoundTrip(t *testing.T) {
	config.JWTSecret = "test-secret"

	tokenString, err := GenerateToken("u1")
	if err != nil {
		t.Fatal(err)
	}

	token, err := ValidateToken(tokenString)
	if err != nil {
		t.Fatal(err)
	}
	if !token.Valid {
		t.Fatal("token should be valid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatalf("claims = %T, want jwt.MapClaims", token.Claims)
	}
	if claims["user_id"] != "u1" {
		t.Errorf("user_id claim = %v, want u1", claims["user_id"])
	}
}

func TestGenerateTokenWithoutSecret(t *testing.T) {
	config.JWTSecret = ""

	if _, err := GenerateToken("u1"); err == nil {
		t.Fatal("want error when JWT_SECRET is unset")
	}
}
