package world

import (
	"homesim/internal/knowledge"
	"homesim/internal/pddl"
)

const (
	roomType       = "room"
	inRoomRelation = "room_has"

	roomParam     = "?a"
	roomItemParam = "?b"
)

// Room owns a set of stationary fixtures. Fixtures are attached when the
// outline is built; movables are distributed into them during population.
type Room struct {
	id         knowledge.EntityID
	name       string
	kind       *RoomKind
	fixtures   []Stationary
	queryables []Queryable
	attributes []knowledge.Attribute
}

func newRoom(ctx *Context, kind *RoomKind, name, token string) *Room {
	ctx.claim(token)
	return &Room{
		id:   knowledge.EntityID{Token: token, Kind: roomType},
		name: name,
		kind: kind,
	}
}

func (r *Room) Token() string { return r.id.Token }
func (r *Room) Name() string  { return r.name }

// Outline attaches one fixture of every kind the room accepts, in registry
// order, and returns the bundled movables those fixtures brought along.
func (r *Room) Outline(ctx *Context) []Movable {
	var bundled []Movable
	for _, k := range Kinds {
		if k.Movable || !r.kind.Accepts(k) {
			continue
		}
		fix, extra := k.NewFixture(ctx, r)
		r.addFixture(fix)
		bundled = append(bundled, extra...)
		r.attributes = append(r.attributes, knowledge.Attribute{Name: inRoomRelation, Value: fix.ID()})
	}
	return bundled
}

func (r *Room) addFixture(fix Stationary) {
	r.fixtures = append(r.fixtures, fix)
	if q, ok := fix.(Queryable); ok {
		r.queryables = append(r.queryables, q)
	}
}

// Populate shuffles the fixtures, fills every container from the free pool,
// and returns the room's narrated description.
func (r *Room) Populate(ctx *Context, free *[]Movable, maxPerContainer int) string {
	shuffle(ctx, r.fixtures)
	description := ""
	for i, fix := range r.fixtures {
		if h, ok := fix.(Holder); ok {
			populateHolder(h, free, maxPerContainer, ctx)
		}
		also := ""
		if i > 0 {
			also = " also"
		}
		description += capitalize(r.name) + also + " has a" + indefiniteSuffix(fix.Name()) + " " + fix.Name() + ". "
		description += fix.Description()
	}
	return description
}

// Act tries the room's fixtures in random order until one produces an
// action.
func (r *Room) Act(ctx *Context, p *Person) (string, bool) {
	for _, fix := range shuffledCopy(ctx, r.fixtures) {
		if narration, ok := fix.Act(ctx, p); ok {
			return narration, true
		}
	}
	return "", false
}

// Goal tries the room's fixtures in random order until one produces a goal.
func (r *Room) Goal(ctx *Context, w *World, p *Person) (pddl.Goal, bool) {
	for _, fix := range shuffledCopy(ctx, r.fixtures) {
		if goal, ok := fix.Goal(ctx, w, p); ok {
			return goal, true
		}
	}
	return pddl.Goal{}, false
}

// Query asks a uniformly random queryable fixture. Not every room has one.
func (r *Room) Query(ctx *Context) (string, string, bool) {
	if len(r.queryables) == 0 {
		return "", "", false
	}
	q := r.queryables[ctx.intn(len(r.queryables))]
	question, answer := q.Query(ctx)
	return question, answer, true
}

// Objects lists the room's planning objects: the room itself followed by its
// fixtures.
func (r *Room) Objects() []string {
	objects := []string{r.id.Token + " - " + roomType}
	for _, fix := range r.fixtures {
		objects = append(objects, fix.ID().Token+" - "+fix.Kind().Name)
	}
	return objects
}

func (r *Room) InitConditions() []string {
	var conditions []string
	for _, fix := range r.fixtures {
		conditions = append(conditions, fix.InitConditions()...)
	}
	return conditions
}

// Records lists the room's knowledge records: the room itself, carrying one
// containment attribute per fixture, followed by the fixtures.
func (r *Room) Records() []knowledge.Record {
	records := []knowledge.Record{{ID: r.id, Attributes: r.attributes}}
	for _, fix := range r.fixtures {
		records = append(records, knowledge.Record{ID: fix.ID(), Attributes: fix.Attributes()})
	}
	return records
}

func roomPredicates() []pddl.Predicate {
	return []pddl.Predicate{{
		Name:   inRoomRelation,
		Params: []string{roomParam + " - " + roomType, eitherParam(roomItemParam, stationaryKindNames())},
	}}
}
