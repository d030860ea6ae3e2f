package style

// Kind represents the display category assigned to a span of characters.
type Kind uint8

const (
	// Text is the default category for characters no rule claimed.
	Text Kind = iota
	// Keyword marks reserved words of the language.
	Keyword
	// Type marks mode names, either from the type table or capitalized.
	Type
	// Comment marks comment bodies of every delimiter flavor.
	Comment
	// String marks string and character literals.
	String
	// Identifier marks plain identifiers.
	Identifier
	// Number marks numeric literals.
	Number
	// Function marks identifiers at a call site.
	Function
	// Preprocess marks pragmat (PR) directive bodies.
	Preprocess
)

// String returns the lowercase name used in span dumps and theme keys.
func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Keyword:
		return "keyword"
	case Type:
		return "type"
	case Comment:
		return "comment"
	case String:
		return "string"
	case Identifier:
		return "identifier"
	case Number:
		return "number"
	case Function:
		return "function"
	case Preprocess:
		return "preprocess"
	}
	return "unknown"
}

// Kinds lists every category once, in declaration order.
func Kinds() []Kind {
	return []Kind{Text, Keyword, Type, Comment, String, Identifier, Number, Function, Preprocess}
}
