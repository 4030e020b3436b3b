package quiz

import (
	"regexp"
	"strings"
)

// Concept is the main purpose of a line of Java source.
type Concept string

const (
	ConceptObjectCreation Concept = "Objekterzeugung (new)"
	ConceptMethodCall     Concept = "Methodenaufruf"
	ConceptAssignment     Concept = "Zuweisung/Aktualisierung"
	ConceptCondition      Concept = "Bedingungsprüfung"
	ConceptLoop           Concept = "Schleifenkontrolle"
	ConceptConsoleOutput  Concept = "Konsolenausgabe"
	ConceptReturn         Concept = "Rückgabe"
	ConceptDeclaration    Concept = "Deklaration/Definition"
)

// AllConcepts returns every concept in display order.
func AllConcepts() []Concept {
	return []Concept{
		ConceptObjectCreation,
		ConceptMethodCall,
		ConceptAssignment,
		ConceptCondition,
		ConceptLoop,
		ConceptConsoleOutput,
		ConceptReturn,
		ConceptDeclaration,
	}
}

var (
	reNew        = regexp.MustCompile(`\bnew\b`)
	rePrint      = regexp.MustCompile(`System\.out\.print`)
	reCondition  = regexp.MustCompile(`^\s*(if|else if)\s*\(`)
	reLoop       = regexp.MustCompile(`^\s*(for|while|do)\b`)
	reReturn     = regexp.MustCompile(`\breturn\b`)
	reTypedName  = regexp.MustCompile(`(^|\s)[\w<>\[\]]+\s+\w+\s*(=|;|\()`)
	reControl    = regexp.MustCompile(`^\s*(if|for|while)\b`)
	reSignature  = regexp.MustCompile(`\w+\s+\w+\s*\(`)
	reComparison = regexp.MustCompile(`==|!=|<=|>=`)
	reCall       = regexp.MustCompile(`\w+\s*\(.*\)\s*;`)
)

// ClassifyLine guesses the concept of one line of Java source. It looks at
// surface syntax only; the first matching rule wins.
func ClassifyLine(line string) Concept {
	t := strings.TrimSpace(line)
	switch {
	case t == "":
		return ConceptDeclaration
	case reNew.MatchString(t):
		return ConceptObjectCreation
	case rePrint.MatchString(t):
		return ConceptConsoleOutput
	case reCondition.MatchString(t):
		return ConceptCondition
	case reLoop.MatchString(t):
		return ConceptLoop
	case reReturn.MatchString(t):
		return ConceptReturn
	}

	// Method headers such as "public static int f(int x) {".
	if reTypedName.MatchString(t) && !reControl.MatchString(t) && reSignature.MatchString(t) {
		return ConceptDeclaration
	}
	if strings.Contains(t, "=") && !reComparison.MatchString(t) {
		return ConceptAssignment
	}
	if reCall.MatchString(t) {
		return ConceptMethodCall
	}
	return ConceptDeclaration
}
