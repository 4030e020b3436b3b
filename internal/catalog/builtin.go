package catalog

import "fmt"

// Builtin returns the traces shipped with tracetutor.
func Builtin() []Trace {
	return []Trace{
		arrayLoopTrace(),
		methodCallTrace(),
		objectReferenceTrace(),
	}
}

func intVar(name, value string, changed bool) Variable {
	return Variable{Name: name, Type: "int", Value: value, Changed: changed}
}

func refVar(name, typ, label, refID string, changed bool) Variable {
	return Variable{Name: name, Type: typ, Value: "→ " + label, IsReference: true, RefID: refID, Changed: changed}
}

func intPtr(n int) *int { return &n }

const arrayLoopCode = `public class Main {
    public static void main(String[] args) {
        int summe = 0;
        int[] zahlen = {3, 7, 2, 5};

        for (int i = 0; i < zahlen.length; i++) {
            summe = summe + zahlen[i];
            System.out.println("Summe: " + summe);
        }

        System.out.println("Ergebnis: " + summe);
    }
}`

func arrayLoopTrace() Trace {
	values := []int{3, 7, 2, 5}

	array := func(highlight *int) []HeapObject {
		vals := make([]string, len(values))
		idx := make([]int, len(values))
		for i, v := range values {
			vals[i] = fmt.Sprint(v)
			idx[i] = i
		}
		return []HeapObject{{
			ID: "arr1", Type: "int[]", Label: fmt.Sprintf("int[%d]", len(values)),
			Values: vals, Indices: idx, HighlightIndex: highlight,
		}}
	}
	frame := func(vars ...Variable) []StackFrame {
		return []StackFrame{{Method: "main", Variables: vars}}
	}
	zahlen := func(changed bool) Variable {
		return refVar("zahlen", "int[]", "Array#1", "arr1", changed)
	}

	steps := []Step{
		{
			Line:        3,
			Frames:      frame(intVar("summe", "0", true)),
			Explanation: "Die Variable 'summe' wird erstellt und mit dem Wert 0 initialisiert. Sie speichert später die Gesamtsumme aller Array-Elemente.",
		},
		{
			Line:        4,
			Frames:      frame(intVar("summe", "0", false), zahlen(true)),
			Heap:        array(nil),
			Explanation: "Ein neues int-Array mit 4 Elementen {3, 7, 2, 5} wird auf dem Heap erstellt. Die Variable 'zahlen' speichert eine Referenz (Verweis) auf dieses Array.",
		},
	}

	sum := 0
	var console []string
	for i, v := range values {
		s := fmt.Sprint(sum)
		cond := fmt.Sprintf("i++ → i = %d. Bedingung: %d < %d → wahr ✓.", i, i, len(values))
		if i == 0 {
			cond = "Die for-Schleife beginnt. Die Schleifenvariable 'i' wird mit 0 initialisiert. Bedingung: i (0) < zahlen.length (4) → wahr ✓. Die Schleife wird betreten."
		}
		steps = append(steps, Step{
			Line:        6,
			Frames:      frame(intVar("summe", s, false), zahlen(false), intVar("i", fmt.Sprint(i), true)),
			Heap:        array(nil),
			Console:     clone(console),
			Explanation: cond,
		})

		prev := sum
		sum += v
		s = fmt.Sprint(sum)
		steps = append(steps, Step{
			Line:        7,
			Frames:      frame(intVar("summe", s, true), zahlen(false), intVar("i", fmt.Sprint(i), false)),
			Heap:        array(intPtr(i)),
			Console:     clone(console),
			Explanation: fmt.Sprintf("zahlen[%d] wird gelesen → Wert ist %d. Berechnung: summe = %d + %d = %d.", i, v, prev, v, sum),
		})

		console = append(console, "Summe: "+s)
		steps = append(steps, Step{
			Line:        8,
			Frames:      frame(intVar("summe", s, false), zahlen(false), intVar("i", fmt.Sprint(i), false)),
			Heap:        array(nil),
			Console:     clone(console),
			Explanation: fmt.Sprintf("System.out.println gibt den aktuellen Wert von 'summe' (%d) auf der Konsole aus.", sum),
		})
	}

	n := len(values)
	steps = append(steps, Step{
		Line:        6,
		Frames:      frame(intVar("summe", fmt.Sprint(sum), false), zahlen(false), intVar("i", fmt.Sprint(n), true)),
		Heap:        array(nil),
		Console:     clone(console),
		Explanation: fmt.Sprintf("i++ → i = %d. Bedingung: i (%d) < zahlen.length (%d) → falsch ✗. Die Schleife wird beendet.", n, n, n),
	})
	console = append(console, fmt.Sprintf("Ergebnis: %d", sum))
	steps = append(steps, Step{
		Line:        11,
		Frames:      frame(intVar("summe", fmt.Sprint(sum), false), zahlen(false)),
		Heap:        array(nil),
		Console:     clone(console),
		Explanation: fmt.Sprintf("Die Schleifenvariable 'i' existiert nicht mehr (nur innerhalb der Schleife gültig). Die finale Summe %d wird ausgegeben. Programm beendet. ✓", sum),
	})

	return Trace{
		ID:          "array-loop",
		Title:       "Array & Schleife",
		Description: "Grundlagen: Array-Zugriff und For-Schleife",
		Code:        arrayLoopCode,
		Steps:       steps,
		Topic:       "Arrays",
		LearningGoals: []string{
			"Arrays liegen im Heap, die Variable hält nur eine Referenz.",
			"Ablauf einer for-Schleife: Initialisierung, Bedingung, Rumpf, Inkrement.",
		},
		Difficulty: DifficultyBasic,
		Questions: []Question{
			{
				ID:            "array-loop-conditions",
				Kind:          KindChoice,
				Prompt:        "Wie oft wird die Schleifenbedingung i < zahlen.length insgesamt geprüft?",
				Options:       []string{"3", "4", "5", "6"},
				CorrectOption: "5",
				Explanation:   "Viermal ist die Bedingung wahr, beim fünften Mal (i = 4) ist sie falsch und die Schleife endet.",
			},
			{
				ID:                "array-loop-scope",
				Kind:              KindOpen,
				Prompt:            "Warum ist die Variable i nach der Schleife nicht mehr vorhanden?",
				HintQuestion:      "Wo wurde i deklariert?",
				ReferenceSolution: "Die Variable i wurde im Kopf der for-Schleife deklariert. Ihr Gültigkeitsbereich endet mit der Schleife.",
			},
			{
				ID:                "array-loop-print",
				Kind:              KindCoding,
				Prompt:            "Schreibe eine Schleife, die jedes Element von zahlen auf einer eigenen Zeile ausgibt.",
				HintQuestion:      "Welche Grenze muss i einhalten, damit kein Index außerhalb des Arrays gelesen wird?",
				ReferenceSolution: "for (int i = 0; i < zahlen.length; i++) { System.out.println(zahlen[i]); }",
			},
		},
	}
}

const methodCallCode = `public class Main {
    public static int verdoppeln(int x) {
        int ergebnis = x * 2;
        return ergebnis;
    }

    public static void main(String[] args) {
        int zahl = 5;
        int doppelt = verdoppeln(zahl);
        System.out.println("Ergebnis: " + doppelt);
    }
}`

func methodCallTrace() Trace {
	return Trace{
		ID:          "method-call",
		Title:       "Methodenaufruf",
		Description: "Methoden mit Parametern, Rückgabewert & Call Stack",
		Code:        methodCallCode,
		Topic:       "Methoden",
		LearningGoals: []string{
			"Jeder Methodenaufruf legt einen eigenen Stack-Frame an.",
			"Parameter werden als Kopie des Werts übergeben.",
		},
		Difficulty: DifficultyBasic,
		Steps: []Step{
			{
				Line:        8,
				Frames:      []StackFrame{{Method: "main", Variables: []Variable{intVar("zahl", "5", true)}}},
				Explanation: "Das Programm startet in der main-Methode. Die Variable 'zahl' wird mit dem Wert 5 initialisiert.",
			},
			{
				Line: 9,
				Frames: []StackFrame{
					{Method: "main", Variables: []Variable{intVar("zahl", "5", false)}},
					{Method: "verdoppeln", Variables: []Variable{intVar("x", "5", true)}},
				},
				Explanation: "Die Methode 'verdoppeln' wird aufgerufen. Der Wert von 'zahl' (5) wird als Parameter 'x' übergeben. Ein neuer Stack-Frame wird erstellt. ⬆️ Sprung zur Methode!",
			},
			{
				Line: 3,
				Frames: []StackFrame{
					{Method: "main", Variables: []Variable{intVar("zahl", "5", false)}},
					{Method: "verdoppeln", Variables: []Variable{intVar("x", "5", false), intVar("ergebnis", "10", true)}},
				},
				Explanation: "In der Methode 'verdoppeln': ergebnis = x * 2 = 5 * 2 = 10. Die lokale Variable 'ergebnis' wird erstellt.",
			},
			{
				Line: 4,
				Frames: []StackFrame{
					{Method: "main", Variables: []Variable{intVar("zahl", "5", false), intVar("doppelt", "10", true)}},
				},
				Explanation: "Die Methode gibt den Wert 10 zurück (return ergebnis). Der Stack-Frame von 'verdoppeln' wird entfernt. ⬇️ Zurück zu main! Der Rückgabewert 10 wird in 'doppelt' gespeichert.",
			},
			{
				Line: 10,
				Frames: []StackFrame{
					{Method: "main", Variables: []Variable{intVar("zahl", "5", false), intVar("doppelt", "10", false)}},
				},
				Console:     []string{"Ergebnis: 10"},
				Explanation: "Ausgabe: \"Ergebnis: 10\". Das Programm ist beendet. ✓",
			},
		},
		Questions: []Question{
			{
				ID:     "method-call-frame",
				Kind:   KindChoice,
				Prompt: "Was passiert mit dem Stack-Frame von verdoppeln nach return?",
				Options: []string{
					"Er wird vom Stack entfernt.",
					"Er bleibt bis zum Programmende erhalten.",
					"Er wird in den Heap verschoben.",
					"Er wird in main kopiert.",
				},
				CorrectOption: "Er wird vom Stack entfernt.",
				Explanation:   "Mit return endet die Methode. Ihr Frame samt lokaler Variablen wird abgebaut.",
			},
			{
				ID:                "method-call-static",
				Kind:              KindOpen,
				Prompt:            "Warum kann main die Methode verdoppeln aufrufen, ohne vorher ein Objekt zu erzeugen?",
				HintQuestion:      "Welches Schlüsselwort steht vor beiden Methoden?",
				ReferenceSolution: "B) Weil statische Methoden keinen impliziten Objektbezug (this) haben.",
			},
			{
				ID:                "method-call-value",
				Kind:              KindOpen,
				Prompt:            "Ändert sich zahl, wenn verdoppeln den Parameter x verändert? Begründe.",
				ReferenceSolution: "Nein. Java übergibt primitive Werte als Kopie. Der Parameter x ist eine eigene Variable im Stack-Frame von verdoppeln.",
			},
		},
	}
}

const objectReferenceCode = `public class Main {
    static class Punkt {
        int x;
        int y;
    }

    public static void main(String[] args) {
        Punkt a = new Punkt();
        a.x = 4;
        Punkt b = a;
        b.x = 9;
        System.out.println("a.x = " + a.x);
    }
}`

func objectReferenceTrace() Trace {
	punkt := func(x string) []HeapObject {
		return []HeapObject{{ID: "p1", Type: "Punkt", Label: "Punkt#1", Values: []string{"x = " + x, "y = 0"}}}
	}
	a := func(changed bool) Variable { return refVar("a", "Punkt", "Punkt#1", "p1", changed) }
	b := func(changed bool) Variable { return refVar("b", "Punkt", "Punkt#1", "p1", changed) }
	frame := func(vars ...Variable) []StackFrame {
		return []StackFrame{{Method: "main", Variables: vars}}
	}

	return Trace{
		ID:          "object-reference",
		Title:       "Objekte & Referenzen",
		Description: "Zwei Variablen, ein Objekt: Referenzen im Stack, Objekte im Heap",
		Code:        objectReferenceCode,
		Topic:       "Objekte",
		LearningGoals: []string{
			"Objekte werden im Heap gespeichert, Referenzen im Stack.",
			"Eine Zuweisung kopiert die Referenz, nicht das Objekt.",
		},
		SourceRefs: []string{"Java Language Specification §4.3.1 Objects"},
		Difficulty: DifficultyIntermediate,
		Steps: []Step{
			{
				Line:        8,
				Frames:      frame(a(true)),
				Heap:        punkt("0"),
				Explanation: "new Punkt() legt ein neues Objekt im Heap an. Die Felder x und y starten mit 0. Die Variable 'a' im Stack speichert nur die Referenz darauf.",
			},
			{
				Line:        9,
				Frames:      frame(a(false)),
				Heap:        punkt("4"),
				Explanation: "Über die Referenz in 'a' wird das Feld x des Objekts auf 4 gesetzt.",
			},
			{
				Line:        10,
				Frames:      frame(a(false), b(true)),
				Heap:        punkt("4"),
				Explanation: "b = a kopiert die Referenz, nicht das Objekt. Beide Variablen zeigen jetzt auf dasselbe Punkt-Objekt.",
			},
			{
				Line:        11,
				Frames:      frame(a(false), b(false)),
				Heap:        punkt("9"),
				Explanation: "Über 'b' wird x auf 9 gesetzt. Da 'a' auf dasselbe Objekt zeigt, sieht auch 'a' den neuen Wert.",
			},
			{
				Line:        12,
				Frames:      frame(a(false), b(false)),
				Heap:        punkt("9"),
				Console:     []string{"a.x = 9"},
				Explanation: "Ausgabe: \"a.x = 9\". Das Programm ist beendet. ✓",
			},
		},
		Questions: []Question{
			{
				ID:            "object-reference-output",
				Kind:          KindChoice,
				Prompt:        "Welchen Wert gibt Zeile 12 aus?",
				Options:       []string{"a.x = 4", "a.x = 9", "a.x = 0", "Kompilierfehler"},
				CorrectOption: "a.x = 9",
				Explanation:   "a und b verweisen auf dasselbe Objekt. Die Änderung über b ist auch über a sichtbar.",
			},
			{
				ID:                "object-reference-memory",
				Kind:              KindOpen,
				Prompt:            "Wo liegen in diesem Programm das Punkt-Objekt und die Variablen a und b?",
				HintQuestion:      "Was entsteht bei new, und was speichert eine lokale Variable?",
				ReferenceSolution: "Objekte werden im Heap gespeichert, Referenzen im Stack.",
			},
			{
				ID:                "object-reference-alias",
				Kind:              KindOpen,
				Prompt:            "Warum ändert b.x = 9 auch den Wert von a.x?",
				HintQuestion:      "Wie viele Punkt-Objekte gibt es nach Zeile 10?",
				ReferenceSolution: "Beide Variablen a und b speichern dieselbe Referenz auf dasselbe Objekt im Heap. Eine Änderung über b ist deshalb auch über a sichtbar.",
			},
			{
				ID:                "object-reference-copy",
				Kind:              KindCoding,
				Prompt:            "Erzeuge ein unabhängiges Punkt-Objekt c, das den x-Wert von a übernimmt.",
				HintQuestion:      "Wie entsteht ein zweites Objekt im Heap?",
				ReferenceSolution: "Punkt c = new Punkt(); c.x = a.x;",
			},
		},
	}
}

func clone(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
