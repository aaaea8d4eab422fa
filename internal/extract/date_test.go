package extract

import "testing"

func TestFindDate(t *testing.T) {
	cases := map[string]string{
		"foo 01/02/2020 bar 03/04/2021": "01/02/2020",
		"realizado 15/03/2023 por X":    "15/03/2023",
		"99/99/9999":                    "99/99/9999",
		"1/2/2020":                      "",
		"2020-01-02":                    "",
		"x123/45/67890":                 "",
		"":                              "",
	}
	for in, want := range cases {
		if got := FindDate(in); got != want {
			t.Errorf("FindDate(%q) = %q, want %q", in, got, want)
		}
	}
}
