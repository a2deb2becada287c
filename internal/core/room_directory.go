package core

import (
	"errors"
	"slices"
	"sort"

	"github.com/dkeye/Meet/internal/domain"
	"github.com/rs/zerolog/log"
)

var ErrInOtherRoom = errors.New("connection already joined another room")

type RoomInfo struct {
	Name        domain.RoomKey `json:"name"`
	MemberCount int            `json:"client_count"`
}

type room struct {
	key     domain.RoomKey
	state   domain.RoomState
	members []domain.ConnID
}

// Directory maps room keys to their ordered member lists and keeps a reverse
// index from connection to room. A room present in the directory is always
// Active and non-empty.
//
// Directory is not safe for concurrent use; it is owned by the orchestrator loop.
type Directory struct {
	rooms  map[domain.RoomKey]*room
	byConn map[domain.ConnID]domain.RoomKey
}

func NewDirectory() *Directory {
	return &Directory{
		rooms:  make(map[domain.RoomKey]*room),
		byConn: make(map[domain.ConnID]domain.RoomKey),
	}
}

// Join appends id to the member list of key, creating the room if absent.
// Joining the room id is already in is a no-op and reports added=false.
// A connection that is a member of another room gets ErrInOtherRoom.
func (d *Directory) Join(key domain.RoomKey, id domain.ConnID) (added bool, err error) {
	if cur, ok := d.byConn[id]; ok {
		if cur == key {
			return false, nil
		}
		return false, ErrInOtherRoom
	}
	r, ok := d.active(key)
	if !ok {
		r = &room{key: key, state: domain.RoomActive}
		d.rooms[key] = r
		log.Debug().Str("module", "core.directory").Str("room", string(key)).Msg("room opened")
	}
	r.members = append(r.members, id)
	d.byConn[id] = key
	return true, nil
}

// Leave removes id from key. The room is closed and deleted in the same call
// when its last member leaves. ok is false when id was not a member of key.
func (d *Directory) Leave(key domain.RoomKey, id domain.ConnID) (closed, ok bool) {
	r, found := d.active(key)
	if !found {
		return false, false
	}
	idx := slices.Index(r.members, id)
	if idx < 0 {
		return false, false
	}
	r.members = slices.Delete(r.members, idx, idx+1)
	delete(d.byConn, id)
	if len(r.members) == 0 {
		d.close(r)
		return true, true
	}
	return false, true
}

// active returns the room for key only while it is Active.
func (d *Directory) active(key domain.RoomKey) (*room, bool) {
	r, ok := d.rooms[key]
	if !ok || r.state != domain.RoomActive {
		return nil, false
	}
	return r, true
}

// close is the only path that ends a room.
func (d *Directory) close(r *room) {
	r.state = domain.RoomClosed
	delete(d.rooms, r.key)
	log.Debug().Str("module", "core.directory").Str("room", string(r.key)).Msg("room closed")
}

// MembersOf returns a copy of the member list in join order, nil if the room
// does not exist.
func (d *Directory) MembersOf(key domain.RoomKey) []domain.ConnID {
	r, ok := d.active(key)
	if !ok {
		return nil
	}
	return slices.Clone(r.members)
}

func (d *Directory) RoomContaining(id domain.ConnID) (domain.RoomKey, bool) {
	key, ok := d.byConn[id]
	return key, ok
}

func (d *Directory) Has(key domain.RoomKey) bool {
	_, ok := d.active(key)
	return ok
}

func (d *Directory) Len() int { return len(d.List()) }

// List returns all rooms sorted by name.
func (d *Directory) List() []RoomInfo {
	out := make([]RoomInfo, 0, len(d.rooms))
	for _, r := range d.rooms {
		if r.state != domain.RoomActive {
			continue
		}
		out = append(out, RoomInfo{Name: r.key, MemberCount: len(r.members)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
