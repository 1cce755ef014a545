package world

import (
	"fmt"
	"strings"

	"homesim/internal/knowledge"
	"homesim/internal/pddl"
)

const phoneRingingRelation = "phone_ringing"

// liquidNames are the liquid kinds a glass may be filled with; each is also
// a globally-shared planning object.
var liquidNames = []string{"water", "juice", "coffee", "soda"}

// Interactable movables embed Item, so their base accessor must not be
// shadowed by the embedded field.
var (
	_ Movable = (*Item)(nil)
	_ Movable = (*Phone)(nil)
	_ Movable = (*Glass)(nil)
)

func newBook(ctx *Context) (Movable, bool) {
	title, ok := ctx.draw(&ctx.bookTitles)
	if !ok {
		return nil, false
	}
	return newItem(ctx, BookKind,
		fmt.Sprintf("book called %q", title),
		Sanitize(title)+"_book",
		fmt.Sprintf("%q book", title), true), true
}

func newPen(ctx *Context) (Movable, bool) {
	color, ok := ctx.draw(&ctx.penColors)
	if !ok {
		return nil, false
	}
	return newItem(ctx, PenKind, color+" pen", color+"_pen", color+" pen", true), true
}

func newFood(ctx *Context) (Movable, bool) {
	name, ok := ctx.draw(&ctx.foodNames)
	if !ok {
		return nil, false
	}
	return newItem(ctx, FoodKind, name, Sanitize(name), name, true), true
}

func newKitchenware(ctx *Context) (Movable, bool) {
	name, ok := ctx.draw(&ctx.kitchenware)
	if !ok {
		return nil, false
	}
	return newItem(ctx, KitchenwareKind, name, Sanitize(name), name, true), true
}

func newRemote(ctx *Context, tv *TV) *Item {
	name := fmt.Sprintf("remote for %s TV", tv.room.name)
	return newItem(ctx, RemoteKind, name, tv.id.Token+"_remote", name, true)
}

// Phone is a movable interactable: it relocates like any item and toggles a
// ringing state independent of placement.
type Phone struct {
	Item
	ringing bool
}

func newPhone(ctx *Context) (Movable, bool) {
	owner, ok := ctx.draw(&ctx.phoneOwners)
	if !ok {
		return nil, false
	}
	p := &Phone{Item: *newItem(ctx, PhoneKind,
		fmt.Sprintf("phone that belongs to %s", owner),
		strings.ToLower(owner)+"_phone",
		owner+"'s phone", false)}
	p.outer = p
	return p, true
}

func (p *Phone) InitConditions() []string {
	conditions := p.placementConditions()
	if p.ringing {
		conditions = append(conditions, phoneRingingRelation+" "+p.id.Token)
	}
	return conditions
}

func (p *Phone) Attributes() []knowledge.Attribute {
	return append(p.Item.Attributes(), knowledge.Attribute{Name: phoneRingingRelation, Value: p.ringing})
}

func (p *Phone) Act(ctx *Context, person *Person) (string, bool) {
	p.ringing = !p.ringing
	verb := "stopped"
	if p.ringing {
		verb = "started"
	}
	return fmt.Sprintf("%s %s ringing.", p.short, verb), true
}

// Goal either asks for the phone to be handed over or, when ringing, to be
// answered.
func (p *Phone) Goal(ctx *Context, w *World, person *Person) (pddl.Goal, bool) {
	if ctx.coin() {
		if goal, ok := p.handOverGoal(person); ok {
			return goal, true
		}
	}
	if !p.ringing {
		return pddl.Goal{}, false
	}
	p.ringing = false
	return pddl.Goal{
		Description: "Answer " + p.short + ".",
		Predicates:  []string{pddl.Negate(phoneRingingRelation + " " + p.id.Token)},
	}, true
}

func (p *Phone) Query(ctx *Context) (string, string) {
	if ctx.coin() {
		answer := "No."
		if p.ringing {
			answer = "Yes."
		}
		return "Is " + p.short + " ringing?", answer
	}
	return p.locationQuery()
}

// Glass is the single liquid container: a movable interactable that cycles
// between empty and filled with one of the liquid kinds.
type Glass struct {
	Item
	liquid string
}

func newGlass(ctx *Context) (Movable, bool) {
	if ctx.glassMade {
		return nil, false
	}
	ctx.glassMade = true
	g := &Glass{Item: *newItem(ctx, GlassKind, "glass", "glass", "glass", true)}
	g.outer = g
	if !ctx.coin() {
		g.liquid = liquidNames[ctx.intn(len(liquidNames))]
	}
	return g, true
}

func (g *Glass) empty() bool { return g.liquid == "" }

func (g *Glass) InitConditions() []string {
	conditions := g.placementConditions()
	if g.empty() {
		return append(conditions, "glass_empty "+g.id.Token)
	}
	return append(conditions, "glass_has_liquid "+g.id.Token+" "+g.liquid)
}

func (g *Glass) Attributes() []knowledge.Attribute {
	attrs := append(g.Item.Attributes(), knowledge.Attribute{Name: "glass_empty", Value: g.empty()})
	if !g.empty() {
		attrs = append(attrs, knowledge.Attribute{
			Name:  "glass_has_liquid",
			Value: knowledge.EntityID{Token: g.liquid, Kind: liquidType},
		})
	}
	return attrs
}

func (g *Glass) Act(ctx *Context, person *Person) (string, bool) {
	if g.empty() {
		g.liquid = liquidNames[ctx.intn(len(liquidNames))]
		return fmt.Sprintf("I filled %s with %s.", g.short, g.liquid), true
	}
	g.liquid = ""
	return fmt.Sprintf("I emptied %s.", g.short), true
}

// Goal either empties the glass or fills it and hands it over.
func (g *Glass) Goal(ctx *Context, w *World, person *Person) (pddl.Goal, bool) {
	if !g.empty() && (ctx.coin() || !person.CanCarry()) {
		g.liquid = ""
		return pddl.Goal{
			Description: "Empty the glass.",
			Predicates:  []string{"glass_empty " + g.id.Token},
		}, true
	}
	if !person.CanCarry() {
		return pddl.Goal{}, false
	}
	g.liquid = liquidNames[ctx.intn(len(liquidNames))]
	if g.owner != Owner(person) {
		moveToPerson(g, person)
	}
	return pddl.Goal{
		Description: fmt.Sprintf("Hand me a glass of %s.", g.liquid),
		Predicates: []string{
			inHandCondition(person.Token(), g.id.Token),
			"glass_has_liquid " + g.id.Token + " " + g.liquid,
		},
	}, true
}

func (g *Glass) Query(ctx *Context) (string, string) {
	if ctx.coin() {
		question := "Is the glass empty? If not, what does it contain?"
		if g.empty() {
			return question, "It is empty."
		}
		return question, "It is not empty. It contains " + g.liquid + "."
	}
	return g.locationQuery()
}
