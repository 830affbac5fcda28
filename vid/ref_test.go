package vid

import "testing"

func TestRef_DisperseProveVerifyRoundTrip(t *testing.T) {
	payload := []byte("the quick brown fox jumps over the lazy dog")
	scheme := Ref{}

	d, err := scheme.Disperse(payload)
	if err != nil {
		t.Fatalf("Disperse: %v", err)
	}
	if scheme.PayloadByteLen(d.Common) != uint64(len(payload)) {
		t.Fatalf("PayloadByteLen = %d, want %d", scheme.PayloadByteLen(d.Common), len(payload))
	}

	opening, err := scheme.PayloadProof(payload, 4, 9)
	if err != nil {
		t.Fatalf("PayloadProof: %v", err)
	}
	if err := scheme.PayloadVerify(opening, d.Commit, 4, 9, payload[4:9]); err != nil {
		t.Fatalf("PayloadVerify rejected a valid opening: %v", err)
	}
}

func TestRef_PayloadProof_RejectsOutOfBoundsRange(t *testing.T) {
	scheme := Ref{}
	payload := []byte("short")
	if _, err := scheme.PayloadProof(payload, 2, 100); err == nil {
		t.Fatalf("expected an error for an out-of-bounds range")
	}
	if _, err := scheme.PayloadProof(payload, 3, 1); err == nil {
		t.Fatalf("expected an error for an inverted range")
	}
}

func TestRef_PayloadVerify_RejectsWrongRange(t *testing.T) {
	scheme := Ref{}
	payload := []byte("0123456789")
	d, _ := scheme.Disperse(payload)
	opening, err := scheme.PayloadProof(payload, 2, 5)
	if err != nil {
		t.Fatalf("PayloadProof: %v", err)
	}
	if err := scheme.PayloadVerify(opening, d.Commit, 1, 5, payload[1:5]); err == nil {
		t.Fatalf("expected a range mismatch to be rejected")
	}
}

func TestRef_PayloadVerify_RejectsTamperedData(t *testing.T) {
	scheme := Ref{}
	payload := []byte("0123456789")
	d, _ := scheme.Disperse(payload)
	opening, err := scheme.PayloadProof(payload, 2, 5)
	if err != nil {
		t.Fatalf("PayloadProof: %v", err)
	}
	tampered := append([]byte(nil), payload[2:5]...)
	tampered[0] ^= 0xff
	if err := scheme.PayloadVerify(opening, d.Commit, 2, 5, tampered); err == nil {
		t.Fatalf("expected tampered data to be rejected")
	}
}

func TestRef_PayloadVerify_RejectsWrongCommit(t *testing.T) {
	scheme := Ref{}
	payload := []byte("0123456789")
	opening, err := scheme.PayloadProof(payload, 0, 10)
	if err != nil {
		t.Fatalf("PayloadProof: %v", err)
	}
	var wrongCommit Commit
	if err := scheme.PayloadVerify(opening, wrongCommit, 0, 10, payload); err == nil {
		t.Fatalf("expected a wrong commitment to be rejected")
	}
}

func TestRef_EmptyPayload(t *testing.T) {
	scheme := Ref{}
	d, err := scheme.Disperse(nil)
	if err != nil {
		t.Fatalf("Disperse(nil): %v", err)
	}
	opening, err := scheme.PayloadProof(nil, 0, 0)
	if err != nil {
		t.Fatalf("PayloadProof on empty payload: %v", err)
	}
	if err := scheme.PayloadVerify(opening, d.Commit, 0, 0, nil); err != nil {
		t.Fatalf("PayloadVerify rejected an empty, valid opening: %v", err)
	}
}
