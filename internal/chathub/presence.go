package chathub

// PresenceCounter counts connected clients. It is owned by the hub loop and
// is not safe for concurrent use.
type PresenceCounter struct {
	count int
}

func (p *PresenceCounter) Increment() int {
	p.count++
	return p.count
}

// Decrement never takes the counter below zero.
func (p *PresenceCounter) Decrement() int {
	if p.count > 0 {
		p.count--
	}
	return p.count
}

func (p *PresenceCounter) Value() int { return p.count }
