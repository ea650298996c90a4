package format

import "testing"

func TestMinutes(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{0, "0 мин"},
		{1, "1 мин"},
		{59, "59 мин"},
		{60, "1 ч"},
		{90, "1 ч 30 мин"},
		{120, "2 ч"},
		{150, "2 ч 30 мин"},
	}
	for _, tc := range cases {
		if got := Minutes(tc.in); got != tc.want {
			t.Errorf("Minutes(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDifficulty(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"easy", "Легко"},
		{"medium", "Средне"},
		{"hard", "Сложно"},
		{"expert", "expert"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Difficulty(tc.in); got != tc.want {
			t.Errorf("Difficulty(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestImageURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", PlaceholderImage},
		{"http://a", "http://a"},
		{"https://cdn.example/a.png", "https://cdn.example/a.png"},
		{"/uploads/a.png", "/uploads/a.png"},
		{"uploads/a.png", "/uploads/a.png"},
		{"other/path.png", "other/path.png"},
	}
	for _, tc := range cases {
		if got := ImageURL(tc.in); got != tc.want {
			t.Errorf("ImageURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestImageURLIdempotent(t *testing.T) {
	inputs := []string{"", "http://a", "/uploads/a.png", "uploads/a.png", "weird"}
	for _, in := range inputs {
		once := ImageURL(in)
		if twice := ImageURL(once); twice != once {
			t.Errorf("ImageURL(ImageURL(%q)) = %q, want %q", in, twice, once)
		}
	}
}

func TestDate(t *testing.T) {
	if got := Date("2026-03-05T10:30:00Z"); got != "5 марта 2026 г." {
		t.Errorf("Date() = %q, want %q", got, "5 марта 2026 г.")
	}
	if got := Date("not-a-date"); got != "not-a-date" {
		t.Errorf("Date() = %q, want input unchanged", got)
	}
}
