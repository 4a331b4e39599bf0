package integration

// DefaultAffinity applies to language pairs with no table entry.
const DefaultAffinity = 50.0

// pairKey is a canonical (sorted) language pair.
type pairKey struct {
	first  string
	second string
}

func keyFor(a, b string) pairKey {
	if a > b {
		a, b = b, a
	}

	return pairKey{first: a, second: b}
}

// pairAffinities scores how naturally two languages interoperate in one
// tree. Values are 0-100; pairs commonly shipped together score high.
var pairAffinities = map[pairKey]float64{
	keyFor("Python", "SQL"):        90,
	keyFor("Python", "R"):          80,
	keyFor("Python", "Shell"):      85,
	keyFor("Python", "JavaScript"): 70,
	keyFor("Python", "C"):          75,
	keyFor("Python", "C++"):        75,

	keyFor("JavaScript", "HTML"):       95,
	keyFor("JavaScript", "CSS"):        90,
	keyFor("JavaScript", "TypeScript"): 90,
	keyFor("TypeScript", "HTML"):       90,
	keyFor("TypeScript", "CSS"):        85,
	keyFor("HTML", "CSS"):              95,
	keyFor("PHP", "HTML"):              85,
	keyFor("PHP", "SQL"):               85,
	keyFor("PHP", "JavaScript"):        80,

	keyFor("Go", "Shell"):      75,
	keyFor("Go", "SQL"):        80,
	keyFor("Go", "Protobuf"):   85,
	keyFor("Go", "JavaScript"): 65,

	keyFor("Java", "SQL"):    85,
	keyFor("Java", "XML"):    80,
	keyFor("Java", "Kotlin"): 85,
	keyFor("C#", "SQL"):      85,
	keyFor("C#", "XML"):      75,

	keyFor("R", "SQL"):      80,
	keyFor("SAS", "SQL"):    85,
	keyFor("SAS", "Python"): 60,
	keyFor("MATLAB", "C"):   70,

	keyFor("C", "C++"):      85,
	keyFor("C", "Shell"):    70,
	keyFor("Rust", "C"):     75,
	keyFor("Rust", "Shell"): 70,
}

// Affinity returns the interoperability score for a language pair,
// order-independent, falling back to the neutral default.
func Affinity(a, b string) float64 {
	if score, ok := pairAffinities[keyFor(a, b)]; ok {
		return score
	}

	return DefaultAffinity
}
