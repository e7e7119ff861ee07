// Package language is the registry of fence tags codeblocks knows how to decorate.
//
// The registry is a closed set: every Language value is one of the constants
// below, and every lookup is a pure function of the value. Nothing in this
// package is mutable, so it is safe to share across goroutines.
package language

// Language identifies the language of a fenced code block.
type Language int

const (
	// Empty is a fence with no tag at all.
	Empty Language = iota
	// Unknown is a fence whose tag matches no registered alias.
	Unknown
	Swift
	Redscript
	Rust
	Cpp
	Lua
	YAML
	JSON
	XML
	JavaScript
	TypeScript
	CSharp
)

// supported is the lookup priority. The first language owning an alias wins.
var supported = [...]Language{
	Redscript,
	Swift,
	Cpp,
	Lua,
	Rust,
	YAML,
	JSON,
	XML,
	JavaScript,
	TypeScript,
	CSharp,
}

// Supported returns every recognized language in lookup priority order.
func Supported() []Language {
	out := make([]Language, len(supported))
	copy(out, supported[:])
	return out
}

// OptionKeys returns the configuration keys of all recognized languages in
// lookup priority order.
func OptionKeys() []string {
	keys := make([]string, 0, len(supported))
	for _, l := range supported {
		keys = append(keys, l.OptionKey())
	}
	return keys
}

// FromOptionKey returns the language configured under key.
func FromOptionKey(key string) (Language, bool) {
	for _, l := range supported {
		if l.OptionKey() == key {
			return l, true
		}
	}
	return Unknown, false
}

// Identify maps a raw fence tag to its Language.
//
// The whole tag is compared against each alias; "rust,ignore" is not "rust".
// The empty tag is Empty and anything unmatched is Unknown.
func Identify(tag string) Language {
	if tag == "" {
		return Empty
	}
	for _, l := range supported {
		for _, alias := range l.Aliases() {
			if alias == tag {
				return l
			}
		}
	}
	return Unknown
}

// IsRecognized reports whether tag maps to a decoratable language.
func IsRecognized(tag string) bool {
	return !Identify(tag).IsSentinel()
}

// IsSentinel reports whether l is Empty or Unknown.
func (l Language) IsSentinel() bool {
	return l == Empty || l == Unknown
}

// Aliases returns the fence tags that select l.
func (l Language) Aliases() []string {
	switch l {
	case Redscript:
		return []string{"swift reds", "swift redscript"}
	case Swift:
		return []string{"swift"}
	case Lua:
		return []string{"lua"}
	case Cpp:
		return []string{"cpp"}
	case Rust:
		return []string{"rust", "rs"}
	case YAML:
		return []string{"yaml", "yml"}
	case JSON:
		return []string{"json"}
	case XML:
		return []string{"xml"}
	case JavaScript:
		return []string{"javascript", "js"}
	case TypeScript:
		return []string{"typescript", "ts"}
	case CSharp:
		return []string{"csharp", "c#"}
	default:
		return nil
	}
}

// OptionKey is the configuration key holding overrides for l.
// It is empty for the sentinels.
func (l Language) OptionKey() string {
	switch l {
	case Empty, Unknown:
		return ""
	case Redscript:
		return "redscript"
	default:
		return l.Aliases()[0]
	}
}

// Label is the built-in display name.
func (l Language) Label() string {
	switch l {
	case Unknown:
		return "unknown"
	case Swift:
		return "Swift"
	case Redscript:
		return "Redscript"
	case Rust:
		return "Rust"
	case Cpp:
		return "C++"
	case Lua:
		return "Lua"
	case YAML:
		return "YAML"
	case JSON:
		return "JSON"
	case XML:
		return "XML"
	case JavaScript:
		return "JavaScript"
	case TypeScript:
		return "TypeScript"
	case CSharp:
		return "C#"
	default:
		return ""
	}
}

// Link is the built-in reference URL. Sentinels link to "#".
func (l Language) Link() string {
	switch l {
	case Swift:
		return "https://developer.apple.com/swift"
	case Redscript:
		return "https://wiki.redmodding.org/redscript"
	case Rust:
		return "https://www.rust-lang.org"
	case Cpp:
		return "https://isocpp.org"
	case Lua:
		return "https://www.lua.org"
	case YAML:
		return "https://yaml.org"
	case JSON:
		return "https://www.json.org"
	case XML:
		return "https://www.xml.org"
	case JavaScript:
		return "https://developer.mozilla.org/docs/Web/JavaScript"
	case TypeScript:
		return "https://www.typescriptlang.org"
	case CSharp:
		return "https://learn.microsoft.com/dotnet/csharp"
	default:
		return "#"
	}
}

// Icon is the built-in Font Awesome icon class.
func (l Language) Icon() string {
	switch l {
	case Swift:
		return "fa-dove"
	case Redscript:
		return "fa-r"
	case Rust:
		return "fa-spaghetti-monster-flying"
	case Cpp:
		return "fa-cube"
	case Lua:
		return "fa-globe"
	case YAML, JSON, XML:
		return "fa-file"
	case JavaScript:
		return "fa-js"
	case TypeScript:
		return "fa-square-tumblr"
	case CSharp:
		return "fa-microsoft"
	default:
		return ""
	}
}

func (l Language) String() string {
	return l.Label()
}
