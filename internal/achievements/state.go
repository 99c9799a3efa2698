package achievements

// Progress is the per-player counter for one achievement. Current never
// decreases and Unlocked never reverts.
type Progress struct {
	Current  int  `json:"current"`
	Unlocked bool `json:"unlocked"`
}

// State maps every achievement id to the player's progress.
type State map[ID]Progress

// NewState returns a state with zeroed progress for every definition.
func NewState() State {
	s := make(State, len(definitions))
	for _, d := range definitions {
		s[d.ID] = Progress{}
	}
	return s
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := make(State, len(s))
	for id, p := range s {
		out[id] = p
	}
	return out
}

// Normalize returns a copy of s with missing definitions added and unknown
// ids dropped. It is used when loading persisted profiles.
func (s State) Normalize() State {
	out := NewState()
	for id, p := range s {
		if _, ok := out[id]; ok {
			out[id] = p
		}
	}
	return out
}

// Advance raises the counter for id to at least value and unlocks it when the
// target is reached. It reports whether this call unlocked the achievement.
// Already-unlocked achievements are left untouched.
func (s State) Advance(id ID, value int) bool {
	def, ok := Lookup(id)
	if !ok {
		return false
	}
	p := s[id]
	if p.Unlocked {
		return false
	}
	if value > p.Current {
		p.Current = value
	}
	if p.Current >= def.Target {
		p.Unlocked = true
	}
	s[id] = p
	return p.Unlocked
}

// Increment adds one to the counter for id. See Advance.
func (s State) Increment(id ID) bool {
	return s.Advance(id, s[id].Current+1)
}

// UnlockedCount returns how many achievements are unlocked.
func (s State) UnlockedCount() int {
	n := 0
	for _, p := range s {
		if p.Unlocked {
			n++
		}
	}
	return n
}
