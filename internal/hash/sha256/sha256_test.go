package sha256

import "testing"

func TestDigestDeterministic(t *testing.T) {
	t.Parallel()

	got := Digest([]byte("hello world"))
	want := "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
	if again := DigestString("hello world"); again != got {
		t.Fatalf("expected identical digest, got %s vs %s", got, again)
	}
}

func TestDigestDistinguishesContent(t *testing.T) {
	t.Parallel()

	if Digest([]byte("a")) == Digest([]byte("b")) {
		t.Fatal("expected different digests for different content")
	}
}
