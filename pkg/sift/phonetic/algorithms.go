package phonetic

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/antzucaro/matchr"

	"github.com/cognicore/sift/pkg/sift/filter"
	"github.com/cognicore/sift/pkg/sift/internalerr"
)

// Algorithm names accepted by Config.
const (
	Soundex         = "soundex"
	NYSIIS          = "nysiis"
	Phonex          = "phonex"
	Metaphone       = "metaphone"
	DoubleMetaphone = "double_metaphone"
	Hebon           = "hebon"
	Rules           = "rules"
	RulesCompact    = "rules_compact"
)

// metaphoneLength is the code length of the Double Metaphone reference
// implementation.
const metaphoneLength = 4

// Config selects an algorithm and its parameters.
type Config struct {
	Algorithm     string   `yaml:"algorithm"`
	Inject        bool     `yaml:"inject"`
	MaxCodeLength int      `yaml:"max_code_length"`
	Fold          bool     `yaml:"fold"`
	Branching     *bool    `yaml:"branching"`
	MaxBranches   int      `yaml:"max_branches"`
	Rules         string   `yaml:"rules"`
	RulesPath     string   `yaml:"rules_path"`
	Languages     []string `yaml:"languages"`
}

// Algorithms lists the supported algorithm names.
func Algorithms() []string {
	return []string{Soundex, NYSIIS, Phonex, Metaphone, DoubleMetaphone, Hebon, Rules, RulesCompact}
}

// New builds the expander for cfg. It fails for unknown algorithms, invalid
// lengths and rule tables that cannot be loaded.
func New(cfg Config) (*Expander, error) {
	if cfg.MaxCodeLength < 0 {
		return nil, fmt.Errorf("%w: phonetic max_code_length must not be negative", internalerr.ErrInvalidConfig)
	}
	if cfg.MaxBranches < 0 {
		return nil, fmt.Errorf("%w: phonetic max_branches must not be negative", internalerr.ErrInvalidConfig)
	}

	pre := func(s string) string { return s }
	if cfg.Fold {
		pre = filter.Fold
	}

	switch cfg.Algorithm {
	case Soundex, NYSIIS, Phonex:
		code := map[string]func(string) string{
			Soundex: matchr.Soundex,
			NYSIIS:  matchr.NYSIIS,
			Phonex:  matchr.Phonex,
		}[cfg.Algorithm]
		return NewSingle(EncoderFunc(func(s string) string {
			s = asciiLetters(pre(s))
			if s == "" {
				return ""
			}
			return truncate(code(s), cfg.MaxCodeLength)
		}), cfg.Inject), nil

	case Metaphone, DoubleMetaphone:
		if cfg.MaxCodeLength > metaphoneLength {
			return nil, fmt.Errorf("%w: %s max_code_length must be at most %d, got %d",
				internalerr.ErrInvalidConfig, cfg.Algorithm, metaphoneLength, cfg.MaxCodeLength)
		}
		limit := cfg.MaxCodeLength
		if limit == 0 {
			limit = metaphoneLength
		}
		encode := func(s string) (string, string) {
			s = letters(pre(s))
			if s == "" {
				return "", ""
			}
			primary, alternate := matchr.DoubleMetaphone(s)
			return truncate(primary, limit), truncate(alternate, limit)
		}
		if cfg.Algorithm == Metaphone {
			return NewSingle(EncoderFunc(func(s string) string {
				primary, _ := encode(s)
				return primary
			}), cfg.Inject), nil
		}
		return NewDouble(DoubleEncoderFunc(encode), cfg.Inject), nil

	case Hebon:
		return NewSingle(EncoderFunc(func(s string) string {
			return truncate(filter.Romanize(pre(s)), cfg.MaxCodeLength)
		}), cfg.Inject), nil

	case Rules, RulesCompact:
		table, err := ruleTable(cfg)
		if err != nil {
			return nil, err
		}
		enc := NewRuleEncoder(table, RuleOptions{
			Languages:     cfg.Languages,
			SingleBranch:  cfg.Branching != nil && !*cfg.Branching,
			MaxBranches:   cfg.MaxBranches,
			MaxCodeLength: cfg.MaxCodeLength,
		})
		if cfg.Algorithm == Rules {
			return NewBranching(BranchEncoderFunc(func(s string) []string {
				return enc.EncodeBranches(pre(s))
			}), cfg.Inject), nil
		}
		return NewAlternation(AlternationEncoderFunc(func(s string) string {
			return enc.EncodeAlternation(pre(s))
		}), cfg.Inject), nil

	case "":
		return nil, fmt.Errorf("%w: phonetic algorithm is required", internalerr.ErrInvalidConfig)
	}
	return nil, fmt.Errorf("%w: unknown phonetic algorithm %q (want one of %s)",
		internalerr.ErrInvalidConfig, cfg.Algorithm, strings.Join(Algorithms(), ", "))
}

func ruleTable(cfg Config) (*Table, error) {
	switch {
	case cfg.Rules != "" && cfg.RulesPath != "":
		return nil, fmt.Errorf("%w: set either rules or rules_path, not both", internalerr.ErrInvalidConfig)
	case cfg.Rules != "":
		return ParseTable([]byte(cfg.Rules))
	case cfg.RulesPath != "":
		return LoadTable(cfg.RulesPath)
	}
	return nil, fmt.Errorf("%w: algorithm %q needs rules or rules_path", internalerr.ErrInvalidConfig, cfg.Algorithm)
}

// asciiLetters keeps only A-Z and a-z, the alphabet of the Soundex family.
func asciiLetters(s string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return r
		}
		return -1
	}, s)
}

func letters(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) {
			return r
		}
		return -1
	}, s)
}

// truncate cuts s to at most n runes; n <= 0 keeps s whole.
func truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
