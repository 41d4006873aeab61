package webhook

import (
	"strings"
	"testing"
)

func TestComputeHMAC(t *testing.T) {
	payload := []byte(`{"event":"strategy.saved"}`)
	secret := "test-secret"

	sig := ComputeHMAC(payload, secret)

	if !strings.HasPrefix(sig, "sha256=") {
		t.Errorf("signature %q missing sha256= prefix", sig)
	}
	// sha256 hex is 64 chars
	if len(sig) != len("sha256=")+64 {
		t.Errorf("signature length = %d", len(sig))
	}

	// Deterministic
	if again := ComputeHMAC(payload, secret); again != sig {
		t.Error("same payload and secret produced different signatures")
	}

	// Sensitive to both inputs
	if ComputeHMAC([]byte("other"), secret) == sig {
		t.Error("different payload produced same signature")
	}
	if ComputeHMAC(payload, "other-secret") == sig {
		t.Error("different secret produced same signature")
	}
}

func TestVerifySignature(t *testing.T) {
	payload := []byte(`{"event":"strategy.deleted"}`)
	secret := "test-secret"
	sig := ComputeHMAC(payload, secret)

	if !VerifySignature(payload, sig, secret) {
		t.Error("valid signature rejected")
	}
	if VerifySignature(payload, sig, "wrong-secret") {
		t.Error("signature verified with wrong secret")
	}
	if VerifySignature([]byte("tampered"), sig, secret) {
		t.Error("signature verified for tampered payload")
	}
	if VerifySignature(payload, "sha256=deadbeef", secret) {
		t.Error("bogus signature verified")
	}
}
