package domain

// Frame pairs a subcategorization label with its natural-language pattern.
type Frame struct {
	Label   string
	Pattern string
}

var defaultFrames = []Frame{
	{"nonreferential", "It is ----ing"},
	{"nonreferential-sent", "It ----s that CLAUSE"},
	{"ditransitive", "Somebody ----s somebody something"},
	{"via", "Somebody ----s"},
	{"via-adj", "Somebody ----s Adjective"},
	{"via-at", "Somebody ----s at something"},
	{"via-for", "Somebody ----s for something"},
	{"via-ger", "Somebody ----s VERB-ing"},
	{"via-inf", "Somebody ----s INFINITIVE"},
	{"via-on-anim", "Somebody ----s on somebody"},
	{"via-on-inanim", "Somebody ----s on something"},
	{"via-out-of", "Somebody ----s out of somebody"},
	{"via-pp", "Somebody ----s PP"},
	{"via-that", "Somebody ----s that CLAUSE"},
	{"via-to", "Somebody ----s to somebody"},
	{"via-to-inf", "Somebody ----s to INFINITIVE"},
	{"via-whether-inf", "Somebody ----s whether INFINITIVE"},
	{"vibody", "Somebody's (body part) ----s"},
	{"vii", "Something ----s"},
	{"vii-adj", "Something ----s Adjective/Noun"},
	{"vii-inf", "Something ----s INFINITIVE"},
	{"vii-pp", "Something is ----ing PP"},
	{"vii-to", "Something ----s to somebody"},
	{"vtaa", "Somebody ----s somebody"},
	{"vtaa-inf", "Somebody ----s somebody INFINITIVE"},
	{"vtaa-into-ger", "Somebody ----s somebody into V-ing something"},
	{"vtaa-of", "Somebody ----s somebody of something"},
	{"vtaa-pp", "Somebody ----s somebody PP"},
	{"vtaa-to-inf", "Somebody ----s somebody to INFINITIVE"},
	{"vtaa-with", "Somebody ----s somebody with something"},
	{"vtai", "Somebody ----s something"},
	{"vtai-from", "Somebody ----s something from somebody"},
	{"vtai-on", "Somebody ----s something on somebody"},
	{"vtai-pp", "Somebody ----s something PP"},
	{"vtai-to", "Somebody ----s something to somebody"},
	{"vtai-with", "Somebody ----s something with something"},
	{"vtia", "Something ----s somebody"},
	{"vtii", "Something ----s something"},
	{"vtii-adj", "Something ----s something Adjective/Noun"},
}

// FrameTable is a bidirectional label <-> pattern lookup.
// It is immutable once built.
type FrameTable struct {
	frames    []Frame
	byLabel   map[string]string
	byPattern map[string]string
}

// NewFrameTable builds a table from frames. Later duplicates of a label win.
func NewFrameTable(frames []Frame) *FrameTable {
	t := &FrameTable{
		frames:    make([]Frame, 0, len(frames)),
		byLabel:   make(map[string]string, len(frames)),
		byPattern: make(map[string]string, len(frames)),
	}
	pos := make(map[string]int, len(frames))
	for _, f := range frames {
		if i, dup := pos[f.Label]; dup {
			t.frames[i] = f
		} else {
			pos[f.Label] = len(t.frames)
			t.frames = append(t.frames, f)
		}
		t.byLabel[f.Label] = f.Pattern
		t.byPattern[f.Pattern] = f.Label
	}
	return t
}

// DefaultFrameTable returns the fixed English WordNet verb frame table.
func DefaultFrameTable() *FrameTable {
	return NewFrameTable(defaultFrames)
}

// Pattern resolves a frame label.
func (t *FrameTable) Pattern(label string) (string, bool) {
	p, ok := t.byLabel[label]
	return p, ok
}

// Label resolves a frame pattern back to its label.
func (t *FrameTable) Label(pattern string) (string, bool) {
	l, ok := t.byPattern[pattern]
	return l, ok
}

// Frames returns a copy of the table in declaration order.
func (t *FrameTable) Frames() []Frame {
	out := make([]Frame, len(t.frames))
	copy(out, t.frames)
	return out
}

// Len returns the number of frames.
func (t *FrameTable) Len() int { return len(t.frames) }
