package utils

import "testing"

func TestGravatarURL(t *testing.T) {
	// hash from the gravatar documentation example
	got := GravatarURL("MyEmailAddress@example.com ")
	want := "https://www.gravatar.com/avatar/0bc83cb571cd1c50ba6f3e8a78ef1346?s=200&r=pg&d=mm"
	if got != want {
		t.Errorf("GravatarURL mismatch:\n got %s\nwant %s", got, want)
	}
}

func TestGravatarURLDeterministic(t *testing.T) {
	if GravatarURL("a@x.com") != GravatarURL("A@X.COM") {
		t.Error("expected case-insensitive hashing")
	}
}
