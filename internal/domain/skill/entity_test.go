package skill

import "testing"

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"JavaScript", "javascript"},
		{"  Node.js  ", "node.js"},
		{"Google   Cloud\tPlatform", "google cloud platform"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := NormalizeName(tt.in); got != tt.want {
			t.Fatalf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSynonymKey(t *testing.T) {
	if SynonymKey("golang") != SynonymKey("go") {
		t.Fatal("golang and go should share a synonym group")
	}
	if SynonymKey("k8s") != SynonymKey("kubernetes") {
		t.Fatal("k8s and kubernetes should share a synonym group")
	}
	if SynonymKey("go") == SynonymKey("python") {
		t.Fatal("unrelated skills must not share a group")
	}
	// Unknown names map to themselves.
	if SynonymKey("zig") != "zig" {
		t.Fatalf("SynonymKey(zig) = %q", SynonymKey("zig"))
	}
}

func TestProficiencyOrdinal(t *testing.T) {
	order := []Proficiency{ProficiencyBeginner, ProficiencyIntermediate, ProficiencyAdvanced, ProficiencyExpert}
	for i := 1; i < len(order); i++ {
		if order[i-1].Ordinal() >= order[i].Ordinal() {
			t.Fatalf("%s should rank below %s", order[i-1], order[i])
		}
	}
	if Proficiency("guru").Ordinal() != 0 {
		t.Fatal("unknown proficiency should rank below beginner")
	}
}
