package diag

// SizeChange is one recorded size transition and where it happened.
type SizeChange struct {
	Old int      `json:"old" yaml:"old"`
	New int      `json:"new" yaml:"new"`
	At  Location `json:"at" yaml:"at"`
}

// Provenance remembers where a vector was last constructed and where its size
// last changed. It is written by every size-changing operation and read only
// when an access fails.
type Provenance struct {
	Constructed Location   `json:"constructed" yaml:"constructed"`
	LastChange  SizeChange `json:"lastChange,omitzero" yaml:"lastChange,omitempty"`
	// Changed is false until the first size change after construction.
	Changed bool `json:"changed" yaml:"changed"`
}

// Construct starts a fresh history at loc.
func (p *Provenance) Construct(loc Location) {
	*p = Provenance{Constructed: loc}
}

// Record stores a size change. Operations record even when old == new, since
// the call still happened at loc.
func (p *Provenance) Record(old, new int, loc Location) {
	p.LastChange = SizeChange{Old: old, New: new, At: loc}
	p.Changed = true
}
