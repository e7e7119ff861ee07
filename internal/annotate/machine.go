package annotate

import (
	"git.home.luguber.info/inful/codeblocks/internal/config"
	"git.home.luguber.info/inful/codeblocks/internal/language"
	"git.home.luguber.info/inful/codeblocks/internal/markdown"
)

// State is the position of a Machine relative to a recognized code block.
type State int

const (
	// Idle is outside any recognized block.
	Idle State = iota
	// Opened has seen a recognized fence start and waits for the body.
	Opened
	// Gathering is inside the body of a decorated block.
	Gathering
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Opened:
		return "opened"
	case Gathering:
		return "gathering"
	default:
		return "unknown"
	}
}

// Stats counts what a Machine did to one document.
type Stats struct {
	// Decorated counts wrapped blocks per language.
	Decorated map[language.Language]int
	// Passed counts fences left undecorated: unknown or missing tags, empty
	// bodies and blocks that already carry a decoration.
	Passed int
}

// DecoratedTotal returns the number of wrapped blocks.
func (s Stats) DecoratedTotal() int {
	n := 0
	for _, c := range s.Decorated {
		n += c
	}
	return n
}

// Machine inserts decoration events around recognized fenced code blocks.
//
// A Machine handles a single document and is not safe for concurrent use.
// The Config it reads is shared and read-only.
type Machine struct {
	cfg   *config.Config
	state State

	// pending holds the decoration open and fence start while Opened. The
	// fence start is always the last element.
	pending []markdown.Event
	lang    language.Language
	prefix  string

	// decorated is set while the last significant event was a decoration
	// wrapper left by an earlier run.
	decorated bool

	stats Stats
}

// NewMachine returns a Machine in the Idle state.
func NewMachine(cfg *config.Config) *Machine {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Machine{
		cfg:   cfg,
		stats: Stats{Decorated: map[language.Language]int{}},
	}
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

// Stats returns the counts so far.
func (m *Machine) Stats() Stats { return m.stats }

// Step consumes one event and returns the events to emit in its place.
func (m *Machine) Step(ev markdown.Event) []markdown.Event {
	switch m.state {
	case Opened:
		return m.stepOpened(ev)
	case Gathering:
		return m.stepGathering(ev)
	default:
		return m.stepIdle(ev)
	}
}

func (m *Machine) stepIdle(ev markdown.Event) []markdown.Event {
	switch ev.Kind {
	case markdown.KindFenceStart:
		wasDecorated := m.decorated
		m.decorated = false

		l := language.Identify(ev.Tag)
		if l.IsSentinel() || wasDecorated {
			m.stats.Passed++
			return []markdown.Event{ev}
		}

		m.lang = l
		m.prefix = ev.Prefix
		m.pending = append(m.pending[:0],
			markdown.InlineHTML(openMarkup(m.cfg.Decoration(l)), ev.Prefix),
			markdown.HardBreak(ev.Prefix),
			ev,
		)
		m.state = Opened
		return nil
	case markdown.KindHTMLBlock:
		m.decorated = opensDecoration(ev.Source)
	case markdown.KindRaw:
		if !isBlank(ev.Source) {
			m.decorated = false
		}
	default:
		m.decorated = false
	}
	return []markdown.Event{ev}
}

func (m *Machine) stepOpened(ev markdown.Event) []markdown.Event {
	if ev.Kind == markdown.KindText {
		out := append(m.takePending(), ev)
		m.stats.Decorated[m.lang]++
		m.state = Gathering
		return out
	}

	// Empty body or an unexpected event: drop the decoration and keep the
	// fence start as it was.
	out := []markdown.Event{m.pending[len(m.pending)-1]}
	m.takePending()
	m.stats.Passed++
	m.state = Idle
	return m.appendIdle(out, ev)
}

func (m *Machine) stepGathering(ev markdown.Event) []markdown.Event {
	if ev.Kind != markdown.KindFenceEnd {
		return []markdown.Event{ev}
	}
	m.state = Idle
	out := []markdown.Event{ev}
	if ev.Unterminated() {
		// Cut off by its container: close it so the wrapper stays outside
		// the code.
		out = append(out, markdown.FenceClose(ev.Fence, m.prefix))
	}
	return append(out, m.closing()...)
}

// appendIdle feeds ev through the Idle state after leaving Opened, so a
// fence start right after an empty block is still recognized.
func (m *Machine) appendIdle(out []markdown.Event, ev markdown.Event) []markdown.Event {
	if ev.Kind == markdown.KindFenceEnd {
		return append(out, ev)
	}
	return append(out, m.stepIdle(ev)...)
}

func (m *Machine) closing() []markdown.Event {
	return []markdown.Event{
		markdown.HardBreak(m.prefix),
		markdown.InlineHTML(closeMarkup, m.prefix),
		markdown.BlockEnd(m.prefix),
	}
}

func (m *Machine) takePending() []markdown.Event {
	out := make([]markdown.Event, len(m.pending))
	copy(out, m.pending)
	m.pending = m.pending[:0]
	return out
}

// Finish ends the document and returns any events still held back. A block
// still being gathered is closed; a block still Opened is emitted
// undecorated.
func (m *Machine) Finish() []markdown.Event {
	var out []markdown.Event
	switch m.state {
	case Gathering:
		out = m.closing()
	case Opened:
		out = []markdown.Event{m.pending[len(m.pending)-1]}
		m.takePending()
		m.stats.Passed++
	}
	m.state = Idle
	m.decorated = false
	return out
}

// Transform runs events through a new Machine and returns the result with
// the machine's counts.
func Transform(events []markdown.Event, cfg *config.Config) ([]markdown.Event, Stats) {
	m := NewMachine(cfg)
	out := make([]markdown.Event, 0, len(events)+8)
	for _, ev := range events {
		out = append(out, m.Step(ev)...)
	}
	out = append(out, m.Finish()...)
	return out, m.Stats()
}
