package analysis

import "fmt"

// Token is one term produced by an analysis chain.
//
// OffsetFrom and OffsetTo are byte offsets into the original input text.
// Position is the ordinal slot of the token; tokens derived from the same
// source token share it (and its offsets), which makes them synonyms for
// phrase matching and highlighting.
type Token struct {
	Text           string
	OffsetFrom     int
	OffsetTo       int
	Position       int
	PositionLength int
}

func (t Token) String() string {
	return fmt.Sprintf("%q [%d:%d] pos=%d len=%d", t.Text, t.OffsetFrom, t.OffsetTo, t.Position, t.PositionLength)
}
