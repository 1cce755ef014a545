package world

import (
	"fmt"
	"strings"

	"homesim/internal/knowledge"
	"homesim/internal/pddl"
)

// Stationary is the contract of every fixture attached to a room.
type Stationary interface {
	ID() knowledge.EntityID
	Kind() *Kind
	Name() string
	FullName() string
	Description() string
	InitConditions() []string
	Attributes() []knowledge.Attribute
	Act(ctx *Context, p *Person) (string, bool)
	Goal(ctx *Context, w *World, p *Person) (pddl.Goal, bool)
}

// Holder is the container trait on a stationary item: it owns an ordered
// collection of movables and declares which movable kinds it accepts.
type Holder interface {
	Stationary
	Owner
	CanHoldKind(k *Kind) bool
	RelativeLocation(ctx *Context) (string, Placement)
	ContainsPredicates(itemToken string, pl Placement) []string
	Contents() []Movable
}

// Planning parameter tokens shared by the container grammar.
const (
	itemParam      = "?a"
	containerParam = "?b"
	levelParam     = "?c"
)

// fixture is the stationary base: identity derived from the owning room's
// token plus the sanitized display name.
type fixture struct {
	id   knowledge.EntityID
	kind *Kind
	name string
	room *Room
}

func newFixture(ctx *Context, k *Kind, name string, room *Room) fixture {
	token := room.Token() + "_" + Sanitize(name)
	ctx.claim(token)
	return fixture{
		id:   knowledge.EntityID{Token: token, Kind: k.Name},
		kind: k,
		name: name,
		room: room,
	}
}

func (f *fixture) ID() knowledge.EntityID { return f.id }
func (f *fixture) Kind() *Kind            { return f.kind }
func (f *fixture) Name() string           { return f.name }
func (f *fixture) Room() *Room            { return f.room }

// FullName names the fixture with its room, as narration refers to it.
func (f *fixture) FullName() string {
	return f.name + " in " + f.room.name
}

func (f *fixture) InitConditions() []string {
	return []string{inRoomRelation + " " + f.room.Token() + " " + f.id.Token}
}

func (f *fixture) Attributes() []knowledge.Attribute { return nil }

func (f *fixture) Goal(ctx *Context, w *World, p *Person) (pddl.Goal, bool) {
	return pddl.Goal{}, false
}

// container adds the holding collection to a fixture.
type container struct {
	fixture
	items []Movable
}

func newContainer(ctx *Context, k *Kind, name string, room *Room) container {
	return container{fixture: newFixture(ctx, k, name, room)}
}

func (c *container) Contents() []Movable { return c.items }

func (c *container) CanHoldKind(k *Kind) bool { return c.kind.CanHold(k) }

func (c *container) holdItem(m Movable) { c.items = append(c.items, m) }

func (c *container) removeItem(m Movable) {
	for i, held := range c.items {
		if held == m {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
	panic(fmt.Sprintf("world: %s does not hold %s", c.id.Token, m.Base().id.Token))
}

func (c *container) ContainsPredicates(itemToken string, pl Placement) []string {
	return []string{containsCondition(c.kind, c.id.Token, itemToken)}
}

func (c *container) Description() string {
	if len(c.items) == 0 {
		return "The " + c.name + " is empty. "
	}
	return "The " + c.name + " has " + itemListDescription(c.items) + ". "
}

// moveToHolder relocates a movable into a container, assigning a fresh
// relative location. The single-ownership invariant is preserved: the item
// leaves its previous owner's collection in the same step.
func moveToHolder(m Movable, h Holder, ctx *Context) {
	it := m.Base()
	it.owner.removeItem(it.self())
	h.holdItem(it.self())
	it.owner = h
	it.relLoc, it.placement = h.RelativeLocation(ctx)
}

// moveToPerson relocates a movable into the person's hands.
func moveToPerson(m Movable, p *Person) {
	it := m.Base()
	it.owner.removeItem(it.self())
	p.holdItem(it.self())
	it.owner = p
	it.relLoc = ""
	it.placement = Placement{}
}

// populateHolder draws a bounded random subset of compatible free items into
// the container, removing them from the free pool.
func populateHolder(h Holder, free *[]Movable, maxAllowed int, ctx *Context) {
	var holdable []Movable
	for _, m := range *free {
		if h.CanHoldKind(m.Base().kind) {
			holdable = append(holdable, m)
		}
	}
	shuffle(ctx, holdable)
	if len(holdable) > maxAllowed {
		holdable = holdable[:maxAllowed]
	}
	for _, m := range holdable {
		removeMovable(free, m)
		it := m.Base()
		h.holdItem(m)
		it.owner = h
		it.relLoc, it.placement = h.RelativeLocation(ctx)
	}
	shuffleContents(h, ctx)
}

func shuffleContents(h Holder, ctx *Context) {
	shuffle(ctx, h.Contents())
}

func removeMovable(pool *[]Movable, m Movable) {
	for i, e := range *pool {
		if e == m {
			*pool = append((*pool)[:i], (*pool)[i+1:]...)
			return
		}
	}
}

// holderAct places one compatible item from the person's hands into the
// container.
func holderAct(h Holder, ctx *Context, p *Person) (string, bool) {
	for _, m := range shuffledCopy(ctx, p.items) {
		if !h.CanHoldKind(m.Base().kind) {
			continue
		}
		moveToHolder(m, h, ctx)
		it := m.Base()
		return fmt.Sprintf("I placed %s %s the %s.", it.short, it.relLoc, h.FullName()), true
	}
	return "", false
}

// holderGoal relocates a random compatible item into the container and
// returns the matching placement goal.
func holderGoal(h Holder, ctx *Context, w *World) (pddl.Goal, bool) {
	for _, m := range shuffledCopy(ctx, w.Items) {
		if !h.CanHoldKind(m.Base().kind) {
			continue
		}
		moveToHolder(m, h, ctx)
		it := m.Base()
		return pddl.Goal{
			Description: fmt.Sprintf("Place %s %s the %s.", it.short, it.relLoc, h.FullName()),
			Predicates:  h.ContainsPredicates(it.id.Token, it.placement),
		}, true
	}
	return pddl.Goal{}, false
}

// itemListDescription renders "a plate, a bowl, and a fork" style listings.
func itemListDescription(items []Movable) string {
	var b strings.Builder
	for i, m := range items {
		name := m.Base().name
		b.WriteString("a" + indefiniteSuffix(name) + " " + name)
		switch {
		case len(items) == 2 && i == 0:
			b.WriteString(" and ")
		case i < len(items)-2:
			b.WriteString(", ")
		case i == len(items)-2:
			b.WriteString(", and ")
		}
	}
	return b.String()
}

func indefiniteSuffix(name string) string {
	if strings.ContainsRune("aeiou", rune(name[0])) {
		return "n"
	}
	return ""
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Domain-grammar builders shared by all container kinds.

func containsRelation(k *Kind) string { return "placed_at_" + k.Name }

func containsCondition(k *Kind, containerToken, itemToken string) string {
	return containsRelation(k) + " " + itemToken + " " + containerToken
}

func holdableParam(k *Kind, token string) string {
	var names []string
	for _, mk := range Kinds {
		if mk.Movable && k.CanHold(mk) {
			names = append(names, mk.Name)
		}
	}
	return eitherParam(token, names)
}

func defaultParamList(k *Kind) []string {
	return []string{holdableParam(k, itemParam), containerParam + " - " + k.Name}
}

func containerPredicates(k *Kind) []pddl.Predicate {
	return []pddl.Predicate{{
		Name:   containsRelation(k),
		Params: []string{holdableParam(k, itemParam), containerParam + " - " + k.Name},
	}}
}

func placeAction(k *Kind, params, contains []string) pddl.Action {
	holding := holdingCondition(itemParam)
	return pddl.Action{
		Name:          "place_at_" + k.Name,
		Params:        params,
		Preconditions: []string{holding},
		Effects:       append([]string{pddl.Negate(holding)}, contains...),
	}
}

func removeAction(k *Kind, params, contains []string) pddl.Action {
	holding := holdingCondition(itemParam)
	effects := make([]string, 0, len(contains)+1)
	for _, c := range contains {
		effects = append(effects, pddl.Negate(c))
	}
	return pddl.Action{
		Name:          "remove_from_" + k.Name,
		Params:        params,
		Preconditions: contains,
		Effects:       append(effects, holding),
	}
}

func containerActions(k *Kind) []pddl.Action {
	params := defaultParamList(k)
	contains := []string{containsCondition(k, containerParam, itemParam)}
	return []pddl.Action{placeAction(k, params, contains), removeAction(k, params, contains)}
}
