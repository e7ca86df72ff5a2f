package chatbot

// Tag identifies the language of a corpus record or user input.
type Tag string

const (
	LangEN Tag = "EN"
	LangBN Tag = "BN"
)

// PrimaryLang is the tag assumed when no script detector fires.
const PrimaryLang = LangEN

type languageSpec struct {
	Tag   Tag
	Match func(r rune) bool
}

// Detection is script based: the first tag whose predicate matches any rune
// wins. Adding a language means adding a row here, the matcher itself does not
// care how many tags exist.
var languageSpecs = []languageSpec{
	{Tag: LangBN, Match: func(r rune) bool { return r >= 0x0980 && r <= 0x09FF }},
}

func knownTags() []Tag {
	tags := []Tag{PrimaryLang}
	for _, spec := range languageSpecs {
		tags = append(tags, spec.Tag)
	}
	return tags
}

func DetectLanguage(text string) Tag {
	for _, spec := range languageSpecs {
		for _, r := range text {
			if spec.Match(r) {
				return spec.Tag
			}
		}
	}
	return PrimaryLang
}
