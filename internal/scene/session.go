package scene

// Session is the mutable UI state of one run: the active layer, the
// hovered label, the last picked country and whether a render is pending.
// It is owned by the UI loop and never shared across goroutines.
type Session struct {
	layer   string
	hover   string
	country string
	pending bool
}

// NewSession returns a session with a first render already requested.
func NewSession() *Session {
	return &Session{pending: true}
}

// RequestRender marks a render as pending. It returns false if one was
// already pending, so many requests within one frame yield one render.
func (s *Session) RequestRender() bool {
	if s.pending {
		return false
	}
	s.pending = true
	return true
}

// TakeRender clears and returns the pending flag.
func (s *Session) TakeRender() bool {
	p := s.pending
	s.pending = false
	return p
}

// Pending reports whether a render is requested.
func (s *Session) Pending() bool {
	return s.pending
}

// SetLayer records the active layer key.
func (s *Session) SetLayer(key string) bool {
	if s.layer == key {
		return false
	}
	s.layer = key
	s.RequestRender()
	return true
}

// Layer returns the active layer key.
func (s *Session) Layer() string {
	return s.layer
}

// SetHover records the hovered label's country code, "" for none.
func (s *Session) SetHover(code string) bool {
	if s.hover == code {
		return false
	}
	s.hover = code
	s.RequestRender()
	return true
}

// Hover returns the hovered label's country code.
func (s *Session) Hover() string {
	return s.hover
}

// SetCountry records the last picked country, "" to clear.
func (s *Session) SetCountry(code string) {
	if s.country != code {
		s.country = code
		s.RequestRender()
	}
}

// Country returns the last picked country code.
func (s *Session) Country() string {
	return s.country
}
