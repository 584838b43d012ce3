package chat

import (
	"cmp"
	"slices"
	"strings"
	"unicode/utf8"

	"voxroom/internal/app/user"
	"voxroom/internal/pkg/errs"
)

const (
	// DefaultRoomName is the room that exists for the whole process lifetime.
	DefaultRoomName = "General"

	// RoomCapacity is the maximum number of members per room.
	RoomCapacity = 5

	// MaxRoomNameRunes bounds the length of a room name.
	MaxRoomNameRunes = 64
)

// Member is a connection's seat in a room.
type Member struct {
	ID ConnID

	Profile user.Profile

	Muted         bool
	Deafened      bool
	ScreenSharing bool
}

func (m *Member) peerInfo() PeerInfo {
	return PeerInfo{
		ID:            m.ID,
		Username:      m.Profile.Username,
		Avatar:        m.Profile.Avatar,
		Muted:         m.Muted,
		Deafened:      m.Deafened,
		ScreenSharing: m.ScreenSharing,
	}
}

// Room is a named, capacity-bounded group of members with its own chat log.
type Room struct {
	Name string

	members map[ConnID]*Member
	history *ChatBuffer
}

func newRoom(name string) *Room {
	return &Room{
		Name:    name,
		members: make(map[ConnID]*Member, RoomCapacity),
		history: NewChatBuffer(ChatHistorySize),
	}
}

// Len returns the number of members.
func (r *Room) Len() int { return len(r.members) }

// IsFull reports whether the room has reached RoomCapacity.
func (r *Room) IsFull() bool { return len(r.members) >= RoomCapacity }

// Member returns the member seated under id.
func (r *Room) Member(id ConnID) (*Member, bool) {
	m, ok := r.members[id]
	return m, ok
}

// Members returns the members ordered by connection id.
func (r *Room) Members() []*Member {
	out := make([]*Member, 0, len(r.members))
	for _, m := range r.members {
		out = append(out, m)
	}
	slices.SortFunc(out, func(a, b *Member) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// History returns the room's chat log.
func (r *Room) History() *ChatBuffer { return r.history }

func (r *Room) summary() RoomSummary {
	members := r.Members()
	users := make([]UserSummary, 0, len(members))
	for _, m := range members {
		users = append(users, UserSummary{ID: m.ID, Username: m.Profile.Username, Avatar: m.Profile.Avatar})
	}
	return RoomSummary{Name: r.Name, Users: users, Count: len(users)}
}

func (r *Room) add(m *Member) { r.members[m.ID] = m }

func (r *Room) remove(id ConnID) bool {
	if _, ok := r.members[id]; !ok {
		return false
	}
	delete(r.members, id)
	return true
}

// Directory maps room names to rooms and remembers their creation order.
// It is not safe for concurrent use; the Hub goroutine owns it.
type Directory struct {
	rooms map[string]*Room
	order []string
}

// NewDirectory creates a directory holding only the default room.
func NewDirectory() *Directory {
	d := &Directory{rooms: make(map[string]*Room)}
	d.insert(newRoom(DefaultRoomName))
	return d
}

func (d *Directory) insert(room *Room) {
	d.rooms[room.Name] = room
	d.order = append(d.order, room.Name)
}

// Create adds an empty room. The name is trimmed first; it must be non-empty,
// at most MaxRoomNameRunes long and not already in use.
func (d *Directory) Create(name string) (*Room, *errs.CustomError) {
	name = strings.TrimSpace(name)

	if name == "" || utf8.RuneCountInString(name) > MaxRoomNameRunes {
		return nil, errs.NewError(errs.ErrInvalidName, MaxRoomNameRunes)
	}

	if _, exists := d.rooms[name]; exists {
		return nil, errs.NewError(errs.ErrDuplicateName)
	}

	room := newRoom(name)
	d.insert(room)

	return room, nil
}

// Get returns the room with the given name, or nil.
func (d *Directory) Get(name string) *Room {
	return d.rooms[name]
}

// Rooms returns every room in creation order, the default room first.
func (d *Directory) Rooms() []*Room {
	out := make([]*Room, 0, len(d.order))
	for _, name := range d.order {
		out = append(out, d.rooms[name])
	}
	return out
}

// Len returns the number of rooms.
func (d *Directory) Len() int { return len(d.rooms) }

// Seated returns the total number of members across all rooms.
func (d *Directory) Seated() int {
	total := 0
	for _, room := range d.rooms {
		total += room.Len()
	}
	return total
}

// collect deletes the room if it is empty and is not the default room.
// It reports whether the room was deleted.
func (d *Directory) collect(name string) bool {
	room, ok := d.rooms[name]
	if !ok || room.Len() > 0 || name == DefaultRoomName {
		return false
	}

	delete(d.rooms, name)
	d.order = slices.DeleteFunc(d.order, func(n string) bool { return n == name })

	return true
}
