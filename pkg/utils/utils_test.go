package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestGenerateAndValidateToken(t *testing.T) {
	secret := []byte("s3cret")
	tok, err := GenerateAccessToken(secret, time.Hour, 42, "sara", "Manager")
	if err != nil {
		t.Fatalf("GenerateAccessToken error: %v", err)
	}
	claims, err := ValidateToken(secret, tok)
	if err != nil {
		t.Fatalf("ValidateToken error: %v", err)
	}
	if claims.UserID != 42 || claims.Username != "sara" || claims.Role != "Manager" {
		t.Fatalf("ValidateToken claims unexpected: %+v", claims)
	}

	if _, err := ValidateToken([]byte("other"), tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("ValidateToken(wrong secret) expected ErrInvalidToken, got %v", err)
	}
	expired, err := GenerateAccessToken(secret, -time.Minute, 42, "sara", "Manager")
	if err != nil {
		t.Fatalf("GenerateAccessToken error: %v", err)
	}
	if _, err := ValidateToken(secret, expired); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("ValidateToken(expired) expected ErrInvalidToken, got %v", err)
	}
}

func TestGetenvHelpers(t *testing.T) {
	t.Setenv("CAFE_TEST_STR", "value")
	t.Setenv("CAFE_TEST_INT", " 15 ")
	t.Setenv("CAFE_TEST_BAD_INT", "fifteen")
	t.Setenv("CAFE_TEST_BOOL", "Yes")
	t.Setenv("CAFE_TEST_SECONDS", "90")

	if got := Getenv("CAFE_TEST_STR", "x"); got != "value" {
		t.Fatalf("Getenv expected value, got %s", got)
	}
	if got := Getenv("CAFE_TEST_MISSING", "x"); got != "x" {
		t.Fatalf("Getenv(missing) expected fallback, got %s", got)
	}
	if got := GetenvInt("CAFE_TEST_INT", 1); got != 15 {
		t.Fatalf("GetenvInt expected 15, got %d", got)
	}
	if got := GetenvInt("CAFE_TEST_BAD_INT", 1); got != 1 {
		t.Fatalf("GetenvInt(bad) expected fallback 1, got %d", got)
	}
	if !GetenvBool("CAFE_TEST_BOOL", false) || !GetenvBool("CAFE_TEST_MISSING", true) {
		t.Fatalf("GetenvBool unexpected result")
	}
	if got := GetenvSeconds("CAFE_TEST_SECONDS", time.Second); got != 90*time.Second {
		t.Fatalf("GetenvSeconds expected 90s, got %s", got)
	}
}

func TestDecimalConversions(t *testing.T) {
	cases := []struct {
		in       float64
		expected string
	}{
		{1500, "1500"},
		{2500.456, "2500.46"},
		{0, "0"},
	}
	for _, tc := range cases {
		if got := FloatToDecimal(tc.in).String(); got != tc.expected {
			t.Fatalf("FloatToDecimal(%v) expected %s, got %s", tc.in, tc.expected, got)
		}
	}
	if got := NullDecimalToFloat(decimal.NullDecimal{}); got != 0 {
		t.Fatalf("NullDecimalToFloat(NULL) expected 0, got %v", got)
	}
	if got := DecimalToFloat(decimal.RequireFromString("12345.50")); got != 12345.5 {
		t.Fatalf("DecimalToFloat expected 12345.5, got %v", got)
	}
}
