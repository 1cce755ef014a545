package world

import (
	"homesim/internal/knowledge"
	"homesim/internal/pddl"
)

// Owner is anything that holds movable items: a container fixture or the
// person. Every movable belongs to exactly one owner at any instant.
type Owner interface {
	ID() knowledge.EntityID
	removeItem(Movable)
	holdItem(Movable)
}

// Movable is the contract of every item that moves between containers and
// the person's hands. Plain items only relocate; interactable movables also
// carry toggleable state.
type Movable interface {
	Base() *Item
	InitConditions() []string
	Attributes() []knowledge.Attribute
	Act(ctx *Context, p *Person) (string, bool)
	Goal(ctx *Context, w *World, p *Person) (pddl.Goal, bool)
	Query(ctx *Context) (question, answer string)
}

// Queryable can produce a question/answer pair reflecting its current state.
type Queryable interface {
	Query(ctx *Context) (question, answer string)
}

// Placement is the free-form extra placement data attached to a contained
// item, used by narration, init conditions and knowledge attributes alike.
type Placement struct {
	LevelNum   int
	LevelToken string
	Extra      []knowledge.Attribute
}

// Item is the movable base: identity, display names, and the current owner
// with its relative-location phrase. Interactable movables embed Item and
// set outer to themselves so ownership collections always track the full
// Movable value.
type Item struct {
	id    knowledge.EntityID
	kind  *Kind
	name  string
	short string
	outer Movable

	owner     Owner
	relLoc    string
	placement Placement
}

func newItem(ctx *Context, k *Kind, name, token, shortened string, article bool) *Item {
	ctx.claim(token)
	if article {
		shortened = "the " + shortened
	}
	return &Item{
		id:    knowledge.EntityID{Token: token, Kind: k.Name},
		kind:  k,
		name:  name,
		short: shortened,
	}
}

func (it *Item) Base() *Item            { return it }
func (it *Item) ID() knowledge.EntityID { return it.id }
func (it *Item) Kind() *Kind            { return it.kind }
func (it *Item) Name() string           { return it.name }
func (it *Item) Short() string          { return it.short }

func (it *Item) InitConditions() []string {
	return it.placementConditions()
}

func (it *Item) placementConditions() []string {
	switch o := it.owner.(type) {
	case *Person:
		return []string{inHandCondition(o.Token(), it.id.Token)}
	case Holder:
		return o.ContainsPredicates(it.id.Token, it.placement)
	default:
		panic("world: item " + it.id.Token + " has no owner")
	}
}

func (it *Item) Attributes() []knowledge.Attribute {
	var relation string
	switch o := it.owner.(type) {
	case *Person:
		relation = inHandRelation
	case Holder:
		relation = containsRelation(o.Kind())
	default:
		panic("world: item " + it.id.Token + " has no owner")
	}
	attrs := []knowledge.Attribute{{Name: relation, Value: it.owner.ID()}}
	return append(attrs, it.placement.Extra...)
}

// Act is a no-op for plain movables; only interactable movables act.
func (it *Item) Act(ctx *Context, p *Person) (string, bool) {
	return "", false
}

// Goal hands the item to the person. Bundled companions (foods, kitchenware,
// remotes) never generate their own goals; their fixtures do.
func (it *Item) Goal(ctx *Context, w *World, p *Person) (pddl.Goal, bool) {
	if it.kind.Bundled {
		return pddl.Goal{}, false
	}
	return it.handOverGoal(p)
}

func (it *Item) handOverGoal(p *Person) (pddl.Goal, bool) {
	if it.owner == Owner(p) || !p.CanCarry() {
		return pddl.Goal{}, false
	}
	moveToPerson(it.self(), p)
	return pddl.Goal{
		Description: "Hand me " + it.short + ".",
		Predicates:  []string{inHandCondition(p.Token(), it.id.Token)},
	}, true
}

func (it *Item) Query(ctx *Context) (string, string) {
	return it.locationQuery()
}

func (it *Item) locationQuery() (string, string) {
	question := "Where is " + it.short + "?"
	holder, ok := it.owner.(Holder)
	if !ok {
		return question, "You are holding " + it.short + "."
	}
	return question, capitalize(it.short) + " is " + it.relLoc + " the " + holder.FullName() + "."
}

// self resolves the Movable that carries this Item, so move helpers update
// the owner's collection with the right interface value even when the Item
// is embedded in an interactable movable.
func (it *Item) self() Movable {
	if it.outer != nil {
		return it.outer
	}
	return it
}
