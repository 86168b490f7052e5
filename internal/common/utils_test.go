package common

import "testing"

func TestHasAny(t *testing.T) {
	if !HasAny("../tokyo", "/", `\`) {
		t.Fatal("expected separator to be found")
	}
	if HasAny("tokyo", "/", `\`) {
		t.Fatal("expected no separator")
	}
}

func TestStem(t *testing.T) {
	cases := map[string]string{
		"tokyo.csv":           "tokyo",
		"/srv/data/osaka.csv": "osaka",
		"fukuoka":             "fukuoka",
		"new.york.csv":        "new.york",
	}
	for in, want := range cases {
		if got := Stem(in); got != want {
			t.Errorf("Stem(%q) = %q, want %q", in, got, want)
		}
	}
}
