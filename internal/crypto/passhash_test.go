package crypto

import "testing"

func TestRandBytes_LenAndVariability(t *testing.T) {
	a, err := RandBytes(16)
	if err != nil || len(a) != 16 {
		t.Fatalf("RandBytes: len=%d err=%v", len(a), err)
	}
	b, err := RandBytes(16)
	if err != nil {
		t.Fatalf("RandBytes: %v", err)
	}
	if string(a) == string(b) {
		t.Fatalf("two random draws should differ")
	}
}

func TestHashVerify_RoundTrip(t *testing.T) {
	salt, err := RandBytes(16)
	if err != nil {
		t.Fatalf("salt: %v", err)
	}
	h := HashPassword([]byte("123456789"), salt)
	if !VerifyPassword([]byte("123456789"), salt, h) {
		t.Fatalf("correct password must verify")
	}
	if VerifyPassword([]byte("wrong"), salt, h) {
		t.Fatalf("wrong password must not verify")
	}
	other, _ := RandBytes(16)
	if VerifyPassword([]byte("123456789"), other, h) {
		t.Fatalf("wrong salt must not verify")
	}
}
