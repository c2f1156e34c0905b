package normalize

import "testing"

func TestStrainKey(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Blue Dream", "blue dream"},
		{"Blue Dream #1", "blue dream 1"},
		{"O.G. Kush", "og kush"},
		{"Girl-Scout_Cookies", "girl scout cookies"},
		{"  Sour   Diesel  ", "sour diesel"},
		{"Jack's \"Gift\"", "jack s gift"},
		{"Gorilla Glue (GG4)", "gorilla glue gg4"},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range cases {
		if got := StrainKey(tc.in); got != tc.want {
			t.Errorf("StrainKey(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestStrainKeyIdempotent(t *testing.T) {
	inputs := []string{
		"Blue Dream #1", "O.G. Kush", "a--b__c##d", "ALREADY normal", "",
		"White-Widow (Original)",
	}
	for _, in := range inputs {
		once := StrainKey(in)
		twice := StrainKey(once)
		if once != twice {
			t.Errorf("StrainKey not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestEffectKey(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Dry Mouth", "dry-mouth"},
		{"Lack of Appetite", "lack-of-appetite"},
		{"HAPPY", "happy"},
		{"  relaxed ", "relaxed"},
	}
	for _, tc := range cases {
		if got := EffectKey(tc.in); got != tc.want {
			t.Errorf("EffectKey(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
