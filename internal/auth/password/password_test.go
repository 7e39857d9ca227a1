package password

import "testing"

func TestHashVerifyRoundTrip(t *testing.T) {
	encoded, err := Hash("chantier-2025")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !Verify("chantier-2025", encoded) {
		t.Fatalf("expected password to verify")
	}
	if Verify("wrong", encoded) {
		t.Fatalf("expected wrong password to fail")
	}
}

func TestVerifyRejectsMalformed(t *testing.T) {
	if Verify("anything", "not-an-argon2-hash") {
		t.Fatalf("expected malformed hash to fail verification")
	}
}
