package calc

import "sort"

// Session holds the state shared between expressions in one interactive
// run: the variable table and the last computed result. A Session is not
// safe for concurrent use; evaluation takes the session for its whole
// duration, and independent sessions need no coordination.
type Session struct {
	vars map[string]float64
	last float64
}

// SessionOption is an option used when creating a session.
type SessionOption interface {
	sessionOption(*Session)
}

type (
	varopt struct {
		name string
		val  float64
	}
	varsopt map[string]float64
	lastopt float64
)

func (o varopt) sessionOption(s *Session) {
	s.vars[o.name] = o.val
}

func (o varsopt) sessionOption(s *Session) {
	for k, v := range o {
		s.vars[k] = v
	}
}

func (o lastopt) sessionOption(s *Session) {
	s.last = float64(o)
}

// Var presets the value of one variable in a new session.
func Var(name string, val float64) SessionOption {
	return varopt{name, val}
}

// Vars presets the values of any number of variables in a new session.
func Vars(vars map[string]float64) SessionOption {
	return varsopt(vars)
}

// LastResult presets the value of ans in a new session. Without it, ans
// starts at 0.
func LastResult(val float64) SessionOption {
	return lastopt(val)
}

// NewSession creates a session with an empty variable table and a last
// result of 0, then applies the given options in order.
func NewSession(opts ...SessionOption) *Session {
	s := Session{vars: make(map[string]float64)}
	for _, opt := range opts {
		opt.sessionOption(&s)
	}
	return &s
}

// Set binds a variable, as an assignment expression would.
func (s *Session) Set(name string, val float64) {
	s.vars[name] = val
}

// Lookup returns the value of a variable and whether it is bound.
func (s *Session) Lookup(name string) (float64, bool) {
	v, ok := s.vars[name]
	return v, ok
}

// Last returns the most recently computed non-assignment value, the one
// the ans reference reads.
func (s *Session) Last() float64 {
	return s.last
}

// Names returns the bound variable names, sorted.
func (s *Session) Names() []string {
	out := make([]string, 0, len(s.vars))
	for k := range s.vars {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
