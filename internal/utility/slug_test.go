// Package utility - Test sinh slug từ tên tiếng Ả Rập và tiếng Pháp.
package utility

import "testing"

func TestSlugify_French(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Huile d'argan", "huile-d-argan"},
		{"Thé à la menthe", "the-a-la-menthe"},
		{"Savon noir", "savon-noir"},
		{"Cœur de fleur", "coeur-de-fleur"},
		{"Pack 2 savons", "pack-2-savons"},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, muốn %q", tc.in, got, tc.want)
		}
	}
}

func TestSlugify_ArabicPreserved(t *testing.T) {
	got := Slugify("زيت أركان")
	want := "زيت-أركان"
	if got != want {
		t.Errorf("chữ Ả Rập phải được giữ nguyên: Slugify = %q, muốn %q", got, want)
	}
}

func TestSlugify_CollapsesSeparators(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  Savon -- noir !!", "savon-noir"},
		{"---", ""},
		{"", ""},
		{"a   b", "a-b"},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, muốn %q", tc.in, got, tc.want)
		}
	}
}

func TestSlugify_Deterministic(t *testing.T) {
	in := "Thé à la menthe زيت"
	first := Slugify(in)
	for i := 0; i < 5; i++ {
		if got := Slugify(in); got != first {
			t.Fatalf("Slugify phải cho kết quả ổn định, lần đầu %q, sau đó %q", first, got)
		}
	}
}
