package textutil

import "testing"

func TestSanitizePathSegment(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "m64-5s-chunks", want: "m64-5s-chunks"},
		{in: "  spaced name  ", want: "spaced name"},
		{in: "a/b\\c:d*e", want: "a-b-c-d-e"},
		{in: "what?<is>|this\"", want: "whatisthis"},
		{in: ".hidden", want: "hidden"},
		{in: "..", want: "run"},
		{in: "   ", want: "run"},
		{in: "?|", want: "run"},
	}
	for _, tc := range cases {
		if got := SanitizePathSegment(tc.in, "run"); got != tc.want {
			t.Errorf("SanitizePathSegment(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestStem(t *testing.T) {
	cases := map[string]string{
		"clip.npy":      "clip",
		"clip.v2.npy":   "clip.v2",
		"noext":         "noext",
		".rc":           ".rc",
		"trailingdot.":  "trailingdot",
		"a.wav.bak.npy": "a.wav.bak",
	}
	for in, want := range cases {
		if got := Stem(in); got != want {
			t.Errorf("Stem(%q) = %q, want %q", in, got, want)
		}
	}
}
