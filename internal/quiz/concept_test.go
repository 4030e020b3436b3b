package quiz

import "testing"

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		line string
		want Concept
	}{
		{"", ConceptDeclaration},
		{"   ", ConceptDeclaration},
		{"Punkt a = new Punkt();", ConceptObjectCreation},
		{"int[] zahlen = new int[4];", ConceptObjectCreation},
		{`System.out.println("Summe: " + summe);`, ConceptConsoleOutput},
		{`System.out.print(x);`, ConceptConsoleOutput},
		{"if (x > 3) {", ConceptCondition},
		{"else if (x == 3) {", ConceptCondition},
		{"for (int i = 0; i < zahlen.length; i++) {", ConceptLoop},
		{"while (true) {", ConceptLoop},
		{"return ergebnis;", ConceptReturn},
		{"public static int verdoppeln(int x) {", ConceptDeclaration},
		{"public static void main(String[] args) {", ConceptDeclaration},
		{"int summe = 0;", ConceptAssignment},
		{"summe = summe + zahlen[i];", ConceptAssignment},
		{"int doppelt = verdoppeln(zahl);", ConceptAssignment},
		{"verdoppeln(zahl);", ConceptMethodCall},
		{"liste.add(3);", ConceptMethodCall},
		{"}", ConceptDeclaration},
		{"int x;", ConceptDeclaration},
	}

	for _, tc := range tests {
		got := ClassifyLine(tc.line)
		if got != tc.want {
			t.Errorf("ClassifyLine(%q) = %q, want %q", tc.line, got, tc.want)
		}
	}
}

func TestAllConcepts(t *testing.T) {
	all := AllConcepts()
	if len(all) != 8 {
		t.Fatalf("AllConcepts() len = %d, want 8", len(all))
	}
	seen := make(map[Concept]bool)
	for _, c := range all {
		if seen[c] {
			t.Errorf("duplicate concept %q", c)
		}
		seen[c] = true
	}
}
