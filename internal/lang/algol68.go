package lang

// Word tables for the ALGOL 68 modes. Kept as flat `|`-delimited
// strings so membership is a single substring probe.

const algol68ReportKeywords = "" +
	// Final Report, unrevised
	"|priority|thef" +
	"|btb|ctb|conj|quote|ct|ctab|either|sign" +

	// Revised Report
	"|true|false" +
	"|if|then|else|elif|fi" +
	"|case|in|out|ouse|esac" +
	"|nil|skip|empty" +
	"|mode|op|prio|proc" +
	"|goto" +
	"|not|up|down|lwb|upb" +
	"|abs|bin|entier|leng|level|odd|repr|round|shorten" +
	"|shl|shr" +
	"|over|mod|elem" +
	"|lt|le|ge|gt" +
	"|eq|ne" +
	"|and|or" +
	"|andf|orf|andth|orel|andthen|orelse" +
	"|minusab|plusab|timesab|divab|overab|modab|plusto" +
	"|is|isnt|of|at" +
	"|for|from|by|upto|downto|to|while|do|od" +
	"|par|begin|exit|end" +
	"|struct|union|ref" +
	"|vector" +
	"|"

const algol68ExtendedKeywords = algol68ReportKeywords +
	"todo|fixme|xxx|debug|note" +
	// ALGOL 68R
	"|decs|context|configinfo|a68config|keep|finish|use|sysprocs|iostate|forall" +
	// ALGOL 68C
	"|using|environ|foreach|assert" +
	// ga68
	"|module|def|fed|pub|postlude|access" +
	"|"

const algol68Types = "" +
	"|flex|heap|loc|long|short" +
	"|bits|bool|bytes|char|compl|int|real|complex|sema|string|void" +
	"|channel|file|format" +
	"|"

// Algol68 is the default mode: Revised Report words plus the 68R, 68C
// and ga68 extensions.
var Algol68 = &Mode{
	Name:       "algol68",
	Extensions: []string{"a68", "alg", "algol"},
	Keywords:   algol68ExtendedKeywords,
	Types:      algol68Types,
}

// Algol68Report restricts the keyword table to the Report vocabularies.
// It claims no extension and is selected explicitly.
var Algol68Report = &Mode{
	Name:     "algol68-report",
	Keywords: algol68ReportKeywords,
	Types:    algol68Types,
}

// Builtin returns a registry with the stock modes registered.
func Builtin() *Registry {
	r := NewRegistry()
	r.Register(Algol68)
	r.Register(Algol68Report)
	return r
}
