package chathub

// Presence tracks which connections are currently in which room. It is owned
// by the hub goroutine and must not be touched from anywhere else. The reverse
// index keeps a connection in at most one set at a time. Empty sets are kept
// around: rooms outlive their occupants and a teardown path is not worth the
// saved map entries.
type Presence struct {
	rooms  map[string]map[string]struct{}
	byConn map[string]string
}

func NewPresence() *Presence {
	return &Presence{
		rooms:  make(map[string]map[string]struct{}),
		byConn: make(map[string]string),
	}
}

// Join puts connID into the room's set, first removing it from its previous
// set when that set is a different room. It returns the name of the vacated
// room, or "" if nothing was vacated. Re-joining the current room vacates
// nothing.
func (p *Presence) Join(connID, room string) (vacated string) {
	if current, ok := p.byConn[connID]; ok && current != room {
		p.remove(connID, current)
		vacated = current
	}

	set, ok := p.rooms[room]
	if !ok {
		set = make(map[string]struct{})
		p.rooms[room] = set
	}
	set[connID] = struct{}{}
	p.byConn[connID] = room

	return vacated
}

// Leave removes connID from the named set; it is a no-op when absent.
func (p *Presence) Leave(connID, room string) {
	p.remove(connID, room)
}

func (p *Presence) remove(connID, room string) {
	if set, ok := p.rooms[room]; ok {
		delete(set, connID)
	}
	if p.byConn[connID] == room {
		delete(p.byConn, connID)
	}
}

// CountOf reports the live connection count for a room, 0 for untracked rooms.
func (p *Presence) CountOf(room string) int {
	return len(p.rooms[room])
}

// Occupants returns the connection IDs currently in the room.
func (p *Presence) Occupants(room string) []string {
	set := p.rooms[room]
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}

// EnsureRoom initializes an empty set for a freshly created room so its count
// reads as zero immediately.
func (p *Presence) EnsureRoom(room string) {
	if _, ok := p.rooms[room]; !ok {
		p.rooms[room] = make(map[string]struct{})
	}
}
