package catalog

// Session lifecycle states.
const (
	StateIdle     = "IDLE"
	StateActive   = "ACTIVE"
	StateComplete = "COMPLETE"
	StateFailed   = "FAILED"
)

// Session is the per-user narrowing state machine: which attributes have
// been chosen and which stage is being asked. It is pure in-memory state,
// owned by exactly one user; callers key sessions by chat user id in a
// registry. All catalog access goes through the arguments, the session
// never holds catalog data.
type Session struct {
	UserID string `json:"user_id"`
	Source string `json:"source"`
	Schema Schema `json:"schema"`
	State  string `json:"state"`

	// Stage indexes Schema; valid 0..len(Schema)-1 while ACTIVE.
	Stage  int    `json:"stage"`
	Filter Filter `json:"filter"`

	// Result is set when State is COMPLETE.
	Result *ResolvedItem `json:"result,omitempty"`
}

func NewSession(userID, source string, schema Schema) *Session {
	return &Session{
		UserID: userID,
		Source: source,
		Schema: schema,
		State:  StateIdle,
		Filter: Filter{},
	}
}

// Start moves the session to stage 0 with an empty filter. Restarting an
// in-flight session discards the previous progress.
func (s *Session) Start() {
	s.State = StateActive
	s.Stage = 0
	s.Filter = Filter{}
	s.Result = nil
}

// Reset returns the session to IDLE and clears the filter. Safe to call
// from any state, repeatedly.
func (s *Session) Reset() {
	s.State = StateIdle
	s.Stage = 0
	s.Filter = Filter{}
	s.Result = nil
}

// CurrentAttribute returns the schema attribute being asked at the active
// stage, or false when the session is not ACTIVE.
func (s *Session) CurrentAttribute() (string, bool) {
	if s.State != StateActive || s.Stage >= len(s.Schema) {
		return "", false
	}
	return s.Schema[s.Stage], true
}

// Options computes the choosable values for the active stage. Returns
// ErrNoOptions when no candidate has the stage attribute populated; the
// caller must offer a restart since the dialogue cannot continue.
func (s *Session) Options(catalog []Record) ([]string, error) {
	attr, ok := s.CurrentAttribute()
	if !ok {
		return nil, ErrNoSession
	}

	values := AvailableValues(catalog, s.Filter, attr)
	if len(values) == 0 {
		return nil, ErrNoOptions
	}
	return values, nil
}

// Choose accepts value for the active stage. The value must be a member of
// the stage's available set; anything else (stale callbacks included) is
// rejected with ErrInvalidChoice and the session stays put.
//
// Accepting the final stage resolves the completed filter: COMPLETE with
// the resolved item on a match, FAILED with ErrNotFound otherwise.
func (s *Session) Choose(catalog []Record, value string) (*ResolvedItem, error) {
	attr, ok := s.CurrentAttribute()
	if !ok {
		return nil, ErrNoSession
	}

	if !contains(AvailableValues(catalog, s.Filter, attr), value) {
		return nil, ErrInvalidChoice
	}

	s.Filter[attr] = value

	if s.Stage < len(s.Schema)-1 {
		s.Stage++
		return nil, nil
	}

	item, err := Resolve(catalog, s.Filter)
	if err != nil {
		s.State = StateFailed
		return nil, err
	}
	s.State = StateComplete
	s.Result = item
	return item, nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
