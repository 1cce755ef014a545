package world

import (
	"strings"
	"testing"

	"homesim/internal/pddl"
)

func newEmptyRoom(ctx *Context, name, token string) *Room {
	return newRoom(ctx, LivingRoomKind, name, token)
}

func TestOrdinal(t *testing.T) {
	cases := map[int]string{
		1: "1st", 2: "2nd", 3: "3rd", 4: "4th",
		11: "11th", 12: "12th", 13: "13th",
		21: "21st", 22: "22nd", 23: "23rd",
	}
	for n, want := range cases {
		if got := ordinal(n); got != want {
			t.Errorf("ordinal(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestSanitize(t *testing.T) {
	cases := map[string]string{
		"Fox News":        "fox_news",
		"the kitchen":     "the_kitchen",
		"Alice's bedroom": "alice_s_bedroom",
		"plate":           "plate",
	}
	for in, want := range cases {
		if got := Sanitize(in); got != want {
			t.Errorf("Sanitize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRegistryWiring(t *testing.T) {
	for _, k := range Kinds {
		if k.Movable && !k.Bundled && k.NewMovable == nil {
			t.Errorf("kind %s has no movable factory", k.Name)
		}
		if !k.Movable && k.NewFixture == nil {
			t.Errorf("kind %s has no fixture factory", k.Name)
		}
	}
	for _, rk := range RoomKinds {
		if rk.Accepts == nil || rk.NewEmpty == nil {
			t.Errorf("room kind %s is missing behavior wiring", rk.Name)
		}
	}

	ctx := newTestContext(12)
	if _, ok := KitchenKind.NewEmpty(ctx); !ok {
		t.Fatal("first kitchen was refused")
	}
	if _, ok := KitchenKind.NewEmpty(ctx); ok {
		t.Fatal("second kitchen was created")
	}
}

func TestShelf(t *testing.T) {
	ctx := newTestContext(1)
	room := newEmptyRoom(ctx, "the living room", "the_living_room")
	fix, bundled := newShelf(ctx, room)
	if len(bundled) != 0 {
		t.Fatalf("shelf bundled %d movables, want none", len(bundled))
	}
	shelf := fix.(*Shelf)

	if shelf.levels < minShelfLevels || shelf.levels > maxShelfLevels {
		t.Fatalf("shelf has %d levels, want %d..%d", shelf.levels, minShelfLevels, maxShelfLevels)
	}

	relLoc, placement := shelf.RelativeLocation(ctx)
	if !strings.HasPrefix(relLoc, "on the ") || !strings.HasSuffix(relLoc, " level of") {
		t.Errorf("unexpected relative location %q", relLoc)
	}
	if placement.LevelNum < 1 || placement.LevelNum > shelf.levels {
		t.Errorf("placement level %d out of range 1..%d", placement.LevelNum, shelf.levels)
	}
	if want := shelfLevelName(placement.LevelNum); placement.LevelToken != want {
		t.Errorf("placement token %q, want %q", placement.LevelToken, want)
	}

	contains := shelf.ContainsPredicates("plate", placement)
	if len(contains) != 2 {
		t.Fatalf("got %d contains predicates, want 2", len(contains))
	}
	if want := "placed_at_shelf plate " + shelf.id.Token; contains[0] != want {
		t.Errorf("contains[0] = %q, want %q", contains[0], want)
	}
	if want := "on_shelf_level plate " + placement.LevelToken; contains[1] != want {
		t.Errorf("contains[1] = %q, want %q", contains[1], want)
	}

	if got, want := len(shelf.InitConditions()), 1+shelf.levels; got != want {
		t.Errorf("got %d init conditions, want %d", got, want)
	}
	if got, want := len(shelf.Attributes()), shelf.levels; got != want {
		t.Errorf("got %d attributes, want %d", got, want)
	}
}

func TestSinkToggle(t *testing.T) {
	ctx := newTestContext(2)
	room := newEmptyRoom(ctx, "the living room", "the_living_room")
	fix, _ := newSink(ctx, room)
	sink := fix.(*Sink)
	sink.on = false

	narration, ok := sink.Act(ctx, nil)
	if !ok {
		t.Fatal("sink refused to act")
	}
	if want := "I turned on the faucet of the sink in the living room."; narration != want {
		t.Errorf("narration %q, want %q", narration, want)
	}
	if !sink.on {
		t.Fatal("faucet still off after toggle")
	}
	if got := sink.InitConditions(); len(got) != 2 || got[1] != "faucet_on "+sink.id.Token {
		t.Errorf("unexpected init conditions %v", got)
	}

	if narration, _ = sink.Act(ctx, nil); sink.on {
		t.Fatalf("faucet still on after second toggle (%q)", narration)
	}
}

func TestSinkGoalNegatesFaucet(t *testing.T) {
	ctx := newTestContext(3)
	room := newEmptyRoom(ctx, "the living room", "the_living_room")
	fix, _ := newSink(ctx, room)
	sink := fix.(*Sink)

	sink.on = false
	if _, ok := sink.Goal(ctx, nil, nil); ok {
		t.Fatal("idle faucet produced a goal")
	}

	sink.on = true
	goal, ok := sink.Goal(ctx, nil, nil)
	if !ok {
		t.Fatal("running faucet produced no goal")
	}
	if sink.on {
		t.Fatal("goal left the faucet running")
	}
	if want := pddl.Negate("faucet_on " + sink.id.Token); len(goal.Predicates) != 1 || goal.Predicates[0] != want {
		t.Errorf("goal predicates %v, want [%q]", goal.Predicates, want)
	}
}

func TestWindowToggle(t *testing.T) {
	ctx := newTestContext(4)
	room := newEmptyRoom(ctx, "the living room", "the_living_room")
	fix, _ := newWindow(ctx, room)
	window := fix.(*Window)
	window.open = false

	narration, _ := window.Act(ctx, nil)
	if want := "I opened the blinds of the window in the living room."; narration != want {
		t.Errorf("narration %q, want %q", narration, want)
	}
	if narration, _ = window.Act(ctx, nil); window.open {
		t.Fatalf("blinds still open after second toggle (%q)", narration)
	}

	goal, ok := window.Goal(ctx, nil, nil)
	if !ok || !window.open {
		t.Fatal("goal did not open the blinds")
	}
	if want := "window_open " + window.id.Token; goal.Predicates[0] != want {
		t.Errorf("goal predicate %q, want %q", goal.Predicates[0], want)
	}

	goal, _ = window.Goal(ctx, nil, nil)
	if want := pddl.Negate("window_open " + window.id.Token); goal.Predicates[0] != want {
		t.Errorf("goal predicate %q, want %q", goal.Predicates[0], want)
	}
}

func TestTVRequiresRemote(t *testing.T) {
	ctx := newTestContext(5)
	room := newEmptyRoom(ctx, "the living room", "the_living_room")
	person := NewPerson(ctx, 3)
	table, _ := newTable(ctx, room)

	fix, bundled := newTV(ctx, room)
	tv := fix.(*TV)
	if len(bundled) != 1 || bundled[0] != Movable(tv.remote) {
		t.Fatalf("TV bundled %d movables, want its remote", len(bundled))
	}
	if want := tv.id.Token + "_remote"; tv.remote.id.Token != want {
		t.Errorf("remote token %q, want %q", tv.remote.id.Token, want)
	}
	if want := "remote for the living room TV"; tv.remote.name != want {
		t.Errorf("remote name %q, want %q", tv.remote.name, want)
	}

	// Park the remote on the table so ownership moves are well-defined.
	tv.remote.owner = table.(Holder)
	table.(Holder).holdItem(tv.remote)

	if _, ok := tv.Act(ctx, person); ok {
		t.Fatal("TV acted without the remote in hand")
	}

	goal, ok := tv.Goal(ctx, nil, person)
	if !ok {
		t.Fatal("TV produced no hand-over goal")
	}
	if !person.Holds(tv.remote) {
		t.Fatal("goal did not hand the remote over")
	}
	if want := "in_hand " + tv.remote.id.Token + " me"; goal.Predicates[0] != want {
		t.Errorf("goal predicate %q, want %q", goal.Predicates[0], want)
	}

	if _, ok := tv.Goal(ctx, nil, person); ok {
		t.Fatal("TV produced a goal while the remote is already in hand")
	}
	if _, ok := tv.Act(ctx, person); !ok {
		t.Fatal("TV refused to act with the remote in hand")
	}
}

func TestGlassSingleton(t *testing.T) {
	ctx := newTestContext(6)
	if _, ok := newGlass(ctx); !ok {
		t.Fatal("first glass was refused")
	}
	if _, ok := newGlass(ctx); ok {
		t.Fatal("second glass was created")
	}
}

func TestGlassCycle(t *testing.T) {
	ctx := newTestContext(7)
	m, _ := newGlass(ctx)
	glass := m.(*Glass)
	glass.liquid = ""

	narration, _ := glass.Act(ctx, nil)
	if glass.empty() {
		t.Fatalf("glass still empty after filling (%q)", narration)
	}
	if !strings.HasPrefix(narration, "I filled the glass with ") {
		t.Errorf("unexpected narration %q", narration)
	}

	narration, _ = glass.Act(ctx, nil)
	if !glass.empty() {
		t.Fatalf("glass still full after emptying (%q)", narration)
	}
	if want := "I emptied the glass."; narration != want {
		t.Errorf("narration %q, want %q", narration, want)
	}
}

func TestPhoneRinging(t *testing.T) {
	ctx := newTestContext(8)
	m, ok := newPhone(ctx)
	if !ok {
		t.Fatal("phone pool empty")
	}
	phone := m.(*Phone)
	phone.ringing = false

	narration, _ := phone.Act(ctx, nil)
	if !phone.ringing || !strings.HasSuffix(narration, " started ringing.") {
		t.Fatalf("unexpected ring narration %q", narration)
	}

	narration, _ = phone.Act(ctx, nil)
	if phone.ringing || !strings.HasSuffix(narration, " stopped ringing.") {
		t.Fatalf("unexpected stop narration %q", narration)
	}
}

func TestKitchenSinkBundle(t *testing.T) {
	ctx := newTestContext(9)
	room := newEmptyRoom(ctx, "the kitchen", "the_kitchen")
	fix, bundled := newKitchenSink(ctx, room)
	sink := fix.(*KitchenSink)

	// Five kitchenware names plus the glass.
	if len(bundled) != 6 {
		t.Fatalf("kitchen sink bundled %d movables, want 6", len(bundled))
	}
	if !sink.CanHoldKind(KitchenwareKind) || !sink.CanHoldKind(GlassKind) {
		t.Error("kitchen sink rejects its own dishes")
	}
	if sink.CanHoldKind(BookKind) {
		t.Error("kitchen sink accepts books")
	}
}

func TestItemListDescription(t *testing.T) {
	ctx := newTestContext(10)
	plate := newItem(ctx, KitchenwareKind, "plate", "plate", "plate", true)
	apple := newItem(ctx, FoodKind, "apple", "apple", "apple", true)
	fork := newItem(ctx, KitchenwareKind, "fork", "fork", "fork", true)

	cases := []struct {
		items []Movable
		want  string
	}{
		{[]Movable{plate}, "a plate"},
		{[]Movable{plate, apple}, "a plate and an apple"},
		{[]Movable{plate, apple, fork}, "a plate, an apple, and a fork"},
	}
	for _, c := range cases {
		if got := itemListDescription(c.items); got != c.want {
			t.Errorf("itemListDescription = %q, want %q", got, c.want)
		}
	}
}

func TestBookPoolExhaustion(t *testing.T) {
	ctx := newTestContext(11)
	made := 0
	for {
		_, ok := newBook(ctx)
		if !ok {
			break
		}
		made++
	}
	if made != 20 {
		t.Fatalf("made %d books before exhaustion, want 20", made)
	}
}
