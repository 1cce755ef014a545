package world

import (
	"homesim/internal/knowledge"
	"homesim/internal/pddl"
)

const (
	personType     = "person"
	personToken    = "me"
	inHandRelation = "in_hand"
)

// Person is the simulated inhabitant the robot serves. They hold movables in
// hand, up to a fixed capacity.
type Person struct {
	id       knowledge.EntityID
	items    []Movable
	capacity int
}

func NewPerson(ctx *Context, capacity int) *Person {
	ctx.claim(personToken)
	return &Person{
		id:       knowledge.EntityID{Token: personToken, Kind: personType},
		capacity: capacity,
	}
}

func (p *Person) ID() knowledge.EntityID { return p.id }
func (p *Person) Token() string          { return p.id.Token }

func (p *Person) holdItem(m Movable) { p.items = append(p.items, m) }

func (p *Person) removeItem(m Movable) {
	for i, held := range p.items {
		if held == m {
			p.items = append(p.items[:i], p.items[i+1:]...)
			return
		}
	}
	panic("world: person does not hold " + m.Base().id.Token)
}

// Holds reports whether the given movable is in the person's hands.
func (p *Person) Holds(m Movable) bool {
	target := m.Base().self()
	for _, held := range p.items {
		if held == target {
			return true
		}
	}
	return false
}

// CanCarry reports whether the person has a free hand.
func (p *Person) CanCarry() bool { return len(p.items) < p.capacity }

// Act picks up a random item from anywhere in the house, hands permitting.
// The candidate order is a fresh shuffle of the full item pool.
func (p *Person) Act(ctx *Context, w *World) (string, bool) {
	if !p.CanCarry() {
		return "", false
	}
	for _, m := range shuffledCopy(ctx, w.Items) {
		if p.Holds(m) {
			continue
		}
		narration := "I picked up " + m.Base().short + "."
		moveToPerson(m, p)
		return narration, true
	}
	return "", false
}

func (p *Person) Objects() []string {
	return []string{p.id.Token + " - " + personType}
}

func (p *Person) Record() knowledge.Record {
	return knowledge.Record{ID: p.id}
}

func inHandCondition(personToken, itemToken string) string {
	return inHandRelation + " " + itemToken + " " + personToken
}

func personPredicates() []pddl.Predicate {
	return []pddl.Predicate{{
		Name:   inHandRelation,
		Params: []string{eitherParam(itemParam, movableKindNames()), containerParam + " - " + personType},
	}}
}

// The robot itself never appears as a planning object; it contributes the
// carrying predicate and the three transfer actions.

func holdingCondition(itemToken string) string {
	return "held_by_robot " + itemToken
}

func robotPredicates() []pddl.Predicate {
	return []pddl.Predicate{{
		Name:   "held_by_robot",
		Params: []string{eitherParam(itemParam, movableKindNames())},
	}}
}

func robotActions() []pddl.Action {
	movables := eitherParam(itemParam, movableKindNames())
	holding := holdingCondition(itemParam)
	inHand := inHandCondition(containerParam, itemParam)
	return []pddl.Action{
		{
			Name:          "pick_up",
			Params:        []string{movables},
			Preconditions: []string{pddl.Negate(holding)},
			Effects:       []string{holding},
		},
		{
			Name:          "hand_to_person",
			Params:        []string{movables, containerParam + " - " + personType},
			Preconditions: []string{holding},
			Effects:       []string{pddl.Negate(holding), inHand},
		},
		{
			Name:          "take_from_person",
			Params:        []string{movables, containerParam + " - " + personType},
			Preconditions: []string{inHand},
			Effects:       []string{pddl.Negate(inHand), holding},
		},
	}
}
