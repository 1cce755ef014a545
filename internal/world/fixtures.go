package world

import (
	"fmt"
	"strconv"

	"homesim/internal/knowledge"
	"homesim/internal/pddl"
)

// Table holds any movable on its surface.
type Table struct {
	container
}

func newTable(ctx *Context, room *Room) (Stationary, []Movable) {
	return &Table{container: newContainer(ctx, TableKind, "table", room)}, nil
}

func (t *Table) RelativeLocation(ctx *Context) (string, Placement) {
	return "on", Placement{}
}

func (t *Table) Act(ctx *Context, p *Person) (string, bool) {
	return holderAct(t, ctx, p)
}

func (t *Table) Goal(ctx *Context, w *World, p *Person) (pddl.Goal, bool) {
	return holderGoal(t, ctx, w)
}

// Shelf levels are shared typed planning objects: every shelf declares which
// of them it has, and placement records both the numeric level and the
// level's object token.
const (
	minShelfLevels = 3
	maxShelfLevels = 10
)

func shelfLevelName(level int) string {
	return "shelf_level_" + strconv.Itoa(level)
}

func shelfLevelID(level int) knowledge.EntityID {
	return knowledge.EntityID{Token: shelfLevelName(level), Kind: shelfLevelType}
}

type Shelf struct {
	container
	levels int
}

func newShelf(ctx *Context, room *Room) (Stationary, []Movable) {
	return &Shelf{
		container: newContainer(ctx, ShelfKind, "shelf", room),
		levels:    minShelfLevels + ctx.intn(maxShelfLevels-minShelfLevels+1),
	}, nil
}

func (s *Shelf) RelativeLocation(ctx *Context) (string, Placement) {
	level := 1 + ctx.intn(s.levels)
	return "on the " + ordinal(level) + " level of", Placement{
		LevelNum:   level,
		LevelToken: shelfLevelName(level),
		Extra:      []knowledge.Attribute{{Name: "on_shelf_level", Value: shelfLevelID(level)}},
	}
}

func (s *Shelf) ContainsPredicates(itemToken string, pl Placement) []string {
	return []string{
		containsCondition(ShelfKind, s.id.Token, itemToken),
		"on_shelf_level " + itemToken + " " + pl.LevelToken,
	}
}

func (s *Shelf) InitConditions() []string {
	conditions := s.fixture.InitConditions()
	for level := 1; level <= s.levels; level++ {
		conditions = append(conditions, "shelf_has_level "+s.id.Token+" "+shelfLevelName(level))
	}
	return conditions
}

func (s *Shelf) Attributes() []knowledge.Attribute {
	var attrs []knowledge.Attribute
	for level := 1; level <= s.levels; level++ {
		attrs = append(attrs, knowledge.Attribute{Name: "shelf_has_level", Value: shelfLevelID(level)})
	}
	return attrs
}

func (s *Shelf) Description() string {
	byLevel := make(map[int][]Movable)
	for _, m := range s.items {
		byLevel[m.Base().placement.LevelNum] = append(byLevel[m.Base().placement.LevelNum], m)
	}
	description := fmt.Sprintf("The shelf has %d levels. ", s.levels)
	for level := 1; level <= s.levels; level++ {
		if len(byLevel[level]) == 0 {
			continue
		}
		description += fmt.Sprintf("The %s level of the shelf has %s. ",
			ordinal(level), itemListDescription(byLevel[level]))
	}
	return description
}

func (s *Shelf) Act(ctx *Context, p *Person) (string, bool) {
	return holderAct(s, ctx, p)
}

func (s *Shelf) Goal(ctx *Context, w *World, p *Person) (pddl.Goal, bool) {
	return holderGoal(s, ctx, w)
}

func ordinal(n int) string {
	switch {
	case n%100 == 11, n%100 == 12, n%100 == 13:
		return strconv.Itoa(n) + "th"
	case n%10 == 1:
		return strconv.Itoa(n) + "st"
	case n%10 == 2:
		return strconv.Itoa(n) + "nd"
	case n%10 == 3:
		return strconv.Itoa(n) + "rd"
	default:
		return strconv.Itoa(n) + "th"
	}
}

// Fridge holds only food; its bundled foods are created with it and must end
// up placed somewhere before population completes.
type Fridge struct {
	container
	foods []Movable
}

const maxBundledItems = 5

func newFridge(ctx *Context, room *Room) (Stationary, []Movable) {
	f := &Fridge{container: newContainer(ctx, FridgeKind, "fridge", room)}
	for len(f.foods) < maxBundledItems {
		food, ok := newFood(ctx)
		if !ok {
			break
		}
		f.foods = append(f.foods, food)
	}
	return f, f.foods
}

func (f *Fridge) RelativeLocation(ctx *Context) (string, Placement) {
	return "inside", Placement{}
}

func (f *Fridge) Act(ctx *Context, p *Person) (string, bool) {
	return holderAct(f, ctx, p)
}

// Goal either places a random food or regathers every bundled food back
// inside the fridge.
func (f *Fridge) Goal(ctx *Context, w *World, p *Person) (pddl.Goal, bool) {
	if ctx.coin() {
		if goal, ok := holderGoal(f, ctx, w); ok {
			return goal, true
		}
	}
	var predicates []string
	for _, food := range f.foods {
		it := food.Base()
		if it.owner != Owner(f) {
			moveToHolder(food, f, ctx)
		}
		predicates = append(predicates, f.ContainsPredicates(it.id.Token, it.placement)...)
	}
	return pddl.Goal{
		Description: fmt.Sprintf("Please return all food items to the %s in %s.", f.name, f.room.name),
		Predicates:  predicates,
	}, true
}

// faucet is the toggle shared by both sink kinds.
type faucet struct {
	on bool
}

func (f *faucet) toggle(fullName string) string {
	f.on = !f.on
	return fmt.Sprintf("I turned %s the faucet of the %s.", onOff(f.on), fullName)
}

func (f *faucet) query(fullName string) (string, string) {
	return fmt.Sprintf("Is the faucet of the %s on or off?", fullName),
		fmt.Sprintf("The faucet is %s.", onOff(f.on))
}

func (f *faucet) initConditions(token string) []string {
	if f.on {
		return []string{faucetOnRelation + " " + token}
	}
	return nil
}

func (f *faucet) attributes() []knowledge.Attribute {
	return []knowledge.Attribute{{Name: faucetOnRelation, Value: f.on}}
}

func (f *faucet) description() string {
	return fmt.Sprintf("The sink has a faucet that can be turned on and off. It is currently %s. ", onOff(f.on))
}

// turnOffGoal flips a running faucet off and returns the negated predicate
// expected to hold afterwards.
func (f *faucet) turnOffGoal(fullName, token string) (pddl.Goal, bool) {
	if !f.on {
		return pddl.Goal{}, false
	}
	f.on = false
	return pddl.Goal{
		Description: fmt.Sprintf("Turn off the faucet of the %s.", fullName),
		Predicates:  []string{pddl.Negate(faucetOnRelation + " " + token)},
	}, true
}

const faucetOnRelation = "faucet_on"

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

// Sink is the plain faucet fixture.
type Sink struct {
	fixture
	faucet
}

func newSink(ctx *Context, room *Room) (Stationary, []Movable) {
	s := &Sink{fixture: newFixture(ctx, SinkKind, "sink", room)}
	s.on = ctx.coin()
	return s, nil
}

func (s *Sink) Description() string { return s.faucet.description() }

func (s *Sink) InitConditions() []string {
	return append(s.fixture.InitConditions(), s.faucet.initConditions(s.id.Token)...)
}

func (s *Sink) Attributes() []knowledge.Attribute { return s.faucet.attributes() }

func (s *Sink) Act(ctx *Context, p *Person) (string, bool) {
	return s.faucet.toggle(s.FullName()), true
}

func (s *Sink) Goal(ctx *Context, w *World, p *Person) (pddl.Goal, bool) {
	return s.faucet.turnOffGoal(s.FullName(), s.id.Token)
}

func (s *Sink) Query(ctx *Context) (string, string) {
	return s.faucet.query(s.FullName())
}

// KitchenSink combines the container and interactable traits: it holds
// kitchenware and the glass, and toggles a faucet. Both trait contributions
// are unioned in every projection.
type KitchenSink struct {
	container
	faucet
	dishes []Movable
}

func newKitchenSink(ctx *Context, room *Room) (Stationary, []Movable) {
	s := &KitchenSink{container: newContainer(ctx, KitchenSinkKind, "sink", room)}
	s.on = ctx.coin()
	for len(s.dishes) < maxBundledItems {
		dish, ok := newKitchenware(ctx)
		if !ok {
			break
		}
		s.dishes = append(s.dishes, dish)
	}
	if glass, ok := newGlass(ctx); ok {
		s.dishes = append(s.dishes, glass)
	}
	return s, s.dishes
}

func (s *KitchenSink) RelativeLocation(ctx *Context) (string, Placement) {
	return "in", Placement{}
}

func (s *KitchenSink) Description() string {
	return s.container.Description() + s.faucet.description()
}

func (s *KitchenSink) InitConditions() []string {
	return append(s.container.InitConditions(), s.faucet.initConditions(s.id.Token)...)
}

func (s *KitchenSink) Attributes() []knowledge.Attribute {
	return append(s.container.Attributes(), s.faucet.attributes()...)
}

// Act randomly prefers the faucet or the placement action; whichever is
// attempted first, one of them succeeds.
func (s *KitchenSink) Act(ctx *Context, p *Person) (string, bool) {
	if ctx.coin() {
		return s.faucet.toggle(s.FullName()), true
	}
	if narration, ok := holderAct(s, ctx, p); ok {
		return narration, true
	}
	return s.faucet.toggle(s.FullName()), true
}

func (s *KitchenSink) Goal(ctx *Context, w *World, p *Person) (pddl.Goal, bool) {
	if ctx.coin() {
		if goal, ok := s.interactableGoal(ctx); ok {
			return goal, true
		}
		return holderGoal(s, ctx, w)
	}
	if goal, ok := holderGoal(s, ctx, w); ok {
		return goal, true
	}
	return s.interactableGoal(ctx)
}

func (s *KitchenSink) interactableGoal(ctx *Context) (pddl.Goal, bool) {
	if ctx.coin() {
		if goal, ok := s.faucet.turnOffGoal(s.FullName(), s.id.Token); ok {
			return goal, true
		}
	}
	var predicates []string
	for _, dish := range s.dishes {
		it := dish.Base()
		if it.owner != Owner(s) {
			moveToHolder(dish, s, ctx)
		}
		predicates = append(predicates, s.ContainsPredicates(it.id.Token, it.placement)...)
	}
	return pddl.Goal{
		Description: fmt.Sprintf("Please return all dishes to the %s in %s.", s.name, s.room.name),
		Predicates:  predicates,
	}, true
}

func (s *KitchenSink) Query(ctx *Context) (string, string) {
	return s.faucet.query(s.FullName())
}

// Window toggles its blinds.
type Window struct {
	fixture
	open bool
}

func newWindow(ctx *Context, room *Room) (Stationary, []Movable) {
	return &Window{fixture: newFixture(ctx, WindowKind, "window", room), open: ctx.coin()}, nil
}

func (w *Window) Description() string {
	return fmt.Sprintf("The window has blinds that can open and close. They are currently %s. ", openClosed(w.open))
}

func (w *Window) InitConditions() []string {
	conditions := w.fixture.InitConditions()
	if w.open {
		conditions = append(conditions, "window_open "+w.id.Token)
	}
	return conditions
}

func (w *Window) Attributes() []knowledge.Attribute {
	return []knowledge.Attribute{{Name: "window_open", Value: w.open}}
}

func (w *Window) Act(ctx *Context, p *Person) (string, bool) {
	w.open = !w.open
	verb := "closed"
	if w.open {
		verb = "opened"
	}
	return fmt.Sprintf("I %s the blinds of the %s.", verb, w.FullName()), true
}

// Goal flips the blinds and returns the now-expected predicate, positive or
// negated.
func (w *Window) Goal(ctx *Context, wld *World, p *Person) (pddl.Goal, bool) {
	w.open = !w.open
	predicate := "window_open " + w.id.Token
	verb := "Close"
	if w.open {
		verb = "Open"
	} else {
		predicate = pddl.Negate(predicate)
	}
	return pddl.Goal{
		Description: fmt.Sprintf("%s the blinds of the %s.", verb, w.FullName()),
		Predicates:  []string{predicate},
	}, true
}

func (w *Window) Query(ctx *Context) (string, string) {
	return fmt.Sprintf("Are the blinds of the %s open or closed?", w.FullName()),
		fmt.Sprintf("The window blinds are %s.", openClosed(w.open))
}

func openClosed(open bool) string {
	if open {
		return "open"
	}
	return "closed"
}

// Light toggles on and off.
type Light struct {
	fixture
	on bool
}

func newLight(ctx *Context, room *Room) (Stationary, []Movable) {
	return &Light{fixture: newFixture(ctx, LightKind, "overhead light", room), on: ctx.coin()}, nil
}

func (l *Light) Description() string {
	return fmt.Sprintf("The light turns on and off. It is currently %s. ", onOff(l.on))
}

func (l *Light) InitConditions() []string {
	conditions := l.fixture.InitConditions()
	if l.on {
		conditions = append(conditions, "light_on "+l.id.Token)
	}
	return conditions
}

func (l *Light) Attributes() []knowledge.Attribute {
	return []knowledge.Attribute{{Name: "light_on", Value: l.on}}
}

func (l *Light) Act(ctx *Context, p *Person) (string, bool) {
	l.on = !l.on
	return fmt.Sprintf("I turned %s the %s.", onOff(l.on), l.FullName()), true
}

func (l *Light) Goal(ctx *Context, w *World, p *Person) (pddl.Goal, bool) {
	l.on = !l.on
	predicate := "light_on " + l.id.Token
	if !l.on {
		predicate = pddl.Negate(predicate)
	}
	return pddl.Goal{
		Description: fmt.Sprintf("Turn %s the %s.", onOff(l.on), l.FullName()),
		Predicates:  []string{predicate},
	}, true
}

func (l *Light) Query(ctx *Context) (string, string) {
	return fmt.Sprintf("Is the %s on or off?", l.FullName()),
		fmt.Sprintf("The light is %s.", onOff(l.on))
}

// tvChannel is one of the fixed channels shared by every TV.
type tvChannel struct {
	name  string
	token string
}

var tvChannels = func() []tvChannel {
	names := []string{"the Discovery Channel", "Cartoon Network", "NBC", "CNN", "Fox News", "ESPN"}
	channels := make([]tvChannel, 0, len(names))
	for _, n := range names {
		channels = append(channels, tvChannel{name: n, token: Sanitize(n)})
	}
	return channels
}()

// TV requires its bundled remote to be in the person's hands before any
// action or goal involving it is possible.
type TV struct {
	fixture
	on      bool
	channel tvChannel
	remote  *Item
}

func newTV(ctx *Context, room *Room) (Stationary, []Movable) {
	tv := &TV{
		fixture: newFixture(ctx, TVKind, "TV", room),
		on:      ctx.coin(),
		channel: tvChannels[ctx.intn(len(tvChannels))],
	}
	tv.remote = newRemote(ctx, tv)
	return tv, []Movable{tv.remote}
}

func (t *TV) Description() string {
	if t.on {
		return fmt.Sprintf("The TV is currently on and is playing %s. ", t.channel.name)
	}
	return "The TV is currently off. "
}

func (t *TV) InitConditions() []string {
	conditions := t.fixture.InitConditions()
	if t.on {
		conditions = append(conditions,
			"tv_on "+t.id.Token,
			"tv_playing_channel "+t.id.Token+" "+t.channel.token)
	}
	return conditions
}

func (t *TV) Attributes() []knowledge.Attribute {
	attrs := []knowledge.Attribute{{Name: "tv_on", Value: t.on}}
	if t.on {
		attrs = append(attrs, knowledge.Attribute{
			Name:  "tv_playing_channel",
			Value: knowledge.EntityID{Token: t.channel.token, Kind: channelType},
		})
	}
	return attrs
}

func (t *TV) Act(ctx *Context, p *Person) (string, bool) {
	if !p.Holds(t.remote) {
		return "", false
	}
	if t.on {
		if ctx.coin() {
			t.channel = tvChannels[ctx.intn(len(tvChannels))]
			return fmt.Sprintf("I switched the channel of the TV in %s to %s.", t.room.name, t.channel.name), true
		}
		t.on = false
		return fmt.Sprintf("I turned off the TV in %s.", t.room.name), true
	}
	t.on = true
	t.channel = tvChannels[ctx.intn(len(tvChannels))]
	return fmt.Sprintf("I turned on the TV in %s and set it to %s.", t.room.name, t.channel.name), true
}

// Goal asks for the remote to be handed over when the person lacks it.
func (t *TV) Goal(ctx *Context, w *World, p *Person) (pddl.Goal, bool) {
	if p.Holds(t.remote) || !p.CanCarry() {
		return pddl.Goal{}, false
	}
	moveToPerson(t.remote, p)
	return pddl.Goal{
		Description: fmt.Sprintf("I am trying to use the TV in %s but I need the remote. Please hand it to me.", t.room.name),
		Predicates:  []string{inHandCondition(p.Token(), t.remote.id.Token)},
	}, true
}

func (t *TV) Query(ctx *Context) (string, string) {
	question := fmt.Sprintf("Is the TV in %s on or off? If it's on, what channel is it playing?", t.room.name)
	if t.on {
		return question, fmt.Sprintf("The TV is on and is playing %s.", t.channel.name)
	}
	return question, "The TV is off."
}
