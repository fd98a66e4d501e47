package core

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Intro to Algorithms", want: "intro-to-algorithms"},
		{in: "Café Société", want: "cafe-societe"},
		{in: "  --Hello!! World??  ", want: "hello-world"},
		{in: "Université de Kinshasa", want: "universite-de-kinshasa"},
		{in: "2021: A Go Odyssey", want: "2021-a-go-odyssey"},
		{in: "", want: ""},
		{in: "???", want: ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
