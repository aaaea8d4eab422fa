package extract

import "testing"

func doctorRoster() Roster {
	return NewRoster("doctors", []Entry{
		{Name: "VICTOR HUGO RUIZ GRANADA", Keywords: []string{"RUIZ"}},
		{Name: "SANDRA LUCIA LOPEZ SIERRA", Keywords: []string{"SANDRA", "DANDRA"}},
		{Name: "OSCAR ANDRES ALVAREZ GOMEZ", Keywords: []string{"OSCAR", "ÁLVAREZ"}},
		{Name: "ALONSO GOMEZ GARCIA", Keywords: []string{"GOMEZ", "GARCIA", "ALONSO"}},
	})
}

func TestClassifyAccentAndCase(t *testing.T) {
	r := doctorRoster()
	a := r.Classify("MÉDICO: Dr. ÁLVAREZ")
	b := r.Classify("medico: dr alvarez")
	if a == "" || a != b {
		t.Fatalf("got %q and %q", a, b)
	}
	if a != "OSCAR ANDRES ALVAREZ GOMEZ" {
		t.Fatalf("got %q", a)
	}
}

func TestClassifyOrderIsPriority(t *testing.T) {
	r := doctorRoster()
	// both "RUIZ" and "GOMEZ" appear; RUIZ is declared first
	if got := r.Classify("Gomez y Ruiz"); got != "VICTOR HUGO RUIZ GRANADA" {
		t.Fatalf("got %q", got)
	}
	swapped := NewRoster("swapped", []Entry{
		{Name: "B", Keywords: []string{"GOMEZ"}},
		{Name: "A", Keywords: []string{"RUIZ"}},
	})
	if got := swapped.Classify("Gomez y Ruiz"); got != "B" {
		t.Fatalf("got %q", got)
	}
}

func TestClassifyNoMatch(t *testing.T) {
	r := doctorRoster()
	for _, s := range []string{"", "nadie firma", "   "} {
		if got := r.Classify(s); got != "" {
			t.Errorf("Classify(%q) = %q", s, got)
		}
	}
}

func TestRosterTokensFromName(t *testing.T) {
	r := NewRoster("transcribers", []Entry{
		{Name: "GALVIS MORALES JENIFFER"},
		{Name: "OROZCO BARTOLO OSBALDO"},
	})
	if got := r.Classify("por bartolo"); got != "OROZCO BARTOLO OSBALDO" {
		t.Fatalf("got %q", got)
	}
	if kws := r.Entries()[0].Keywords; len(kws) != 3 || kws[2] != "JENIFFER" {
		t.Fatalf("derived keywords: %v", kws)
	}
}

func TestRosterIgnoresBlankKeywords(t *testing.T) {
	r := NewRoster("x", []Entry{{Name: "BLANK", Keywords: []string{"", "  "}}, {Name: "REAL", Keywords: []string{"eco"}}})
	if got := r.Classify("ecografia"); got != "REAL" {
		t.Fatalf("blank keyword must not match everything, got %q", got)
	}
}

func TestRosterIsCopied(t *testing.T) {
	entries := []Entry{{Name: "A", Keywords: []string{"ALFA"}}}
	r := NewRoster("x", entries)
	entries[0].Keywords[0] = "BETA"
	if r.Classify("alfa") != "A" {
		t.Fatalf("roster must not alias caller slices")
	}
	out := r.Entries()
	out[0].Name = "mutated"
	if r.Entries()[0].Name != "A" {
		t.Fatalf("Entries must return a copy")
	}
}

func TestClassifyBottomUp(t *testing.T) {
	r := doctorRoster()
	paras := []string{"Paciente: Oscar Ruiz", "Informe", "Dra. Sandra Lopez"}
	if got := r.ClassifyBottomUp(paras); got != "SANDRA LUCIA LOPEZ SIERRA" {
		t.Fatalf("got %q", got)
	}
	if got := r.ClassifyBottomUp([]string{"a", "b"}); got != "" {
		t.Fatalf("got %q", got)
	}
}
