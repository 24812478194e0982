package method

// Method names the search stages that produced a result set.
type Method string

// Search method values.
const (
	Text              Method = "text"
	TextSynonyms      Method = "text+synonyms"
	Fuzzy             Method = "fuzzy"
	TextFuzzy         Method = "text+fuzzy"
	TextSynonymsFuzzy Method = "text+synonyms+fuzzy"
	SynonymsFuzzy     Method = "synonyms+fuzzy"
)

// IsValid checks if the method is one of the supported values.
func (m Method) IsValid() bool {
	switch m {
	case Text, TextSynonyms, Fuzzy, TextFuzzy, TextSynonymsFuzzy, SynonymsFuzzy:
		return true
	}
	return false
}

// Compose derives the method from the stages that contributed results.
// text: the primary stage returned results; synonyms: expansion added terms;
// fuzzy: the fuzzy stage contributed results. When neither stage contributed,
// fuzzyRan names the deepest path taken.
func Compose(text, synonyms, fuzzy, fuzzyRan bool) Method {
	if !text && !fuzzy {
		fuzzy = fuzzyRan
	}
	switch {
	case text && fuzzy && synonyms:
		return TextSynonymsFuzzy
	case text && fuzzy:
		return TextFuzzy
	case fuzzy && synonyms:
		return SynonymsFuzzy
	case fuzzy:
		return Fuzzy
	case synonyms:
		return TextSynonyms
	default:
		return Text
	}
}
