package world

import (
	"homesim/internal/knowledge"
	"homesim/internal/pddl"
)

// Entity kind descriptors. Behavior functions are wired in init below so the
// table can reference itself without an initialization cycle.
var (
	TableKind       = &Kind{Name: "table"}
	ShelfKind       = &Kind{Name: "shelf", AuxTypes: []string{shelfLevelType}}
	FridgeKind      = &Kind{Name: "fridge"}
	SinkKind        = &Kind{Name: "sink"}
	KitchenSinkKind = &Kind{Name: "kitchen_sink", Parent: "sink"}
	WindowKind      = &Kind{Name: "window"}
	LightKind       = &Kind{Name: "light"}
	TVKind          = &Kind{Name: "tv", AuxTypes: []string{channelType}}
	BookKind        = &Kind{Name: "book", Movable: true}
	PenKind         = &Kind{Name: "pen", Movable: true}
	PhoneKind       = &Kind{Name: "phone", Movable: true}
	FoodKind        = &Kind{Name: "food", Movable: true, Bundled: true}
	KitchenwareKind = &Kind{Name: "kitchenware", Movable: true, Bundled: true}
	GlassKind       = &Kind{Name: "glass", Parent: "kitchenware", AuxTypes: []string{liquidType}, Movable: true, Bundled: true}
	RemoteKind      = &Kind{Name: "remote", Movable: true, Bundled: true}
)

// Kinds is the full registry in declaration order. The order is load-bearing:
// it fixes the either-lists in domain predicates, the fixture layout of room
// outlines, and the static object listing.
var Kinds = []*Kind{
	TableKind,
	ShelfKind,
	FridgeKind,
	SinkKind,
	KitchenSinkKind,
	WindowKind,
	LightKind,
	TVKind,
	BookKind,
	PenKind,
	PhoneKind,
	FoodKind,
	KitchenwareKind,
	GlassKind,
	RemoteKind,
}

// RoomKind describes one room archetype: its instantiation rule and what
// fixture kinds it accepts.
type RoomKind struct {
	Name     string
	Accepts  func(*Kind) bool
	NewEmpty func(*Context) (*Room, bool)
}

var (
	KitchenKind    = &RoomKind{Name: "kitchen", Accepts: kitchenAccepts}
	LivingRoomKind = &RoomKind{Name: "living_room", Accepts: commonRoomAccepts}
	BedroomKind    = &RoomKind{Name: "bedroom", Accepts: commonRoomAccepts}
)

var RoomKinds = []*RoomKind{KitchenKind, LivingRoomKind, BedroomKind}

func kitchenAccepts(k *Kind) bool {
	return k == FridgeKind || k == KitchenSinkKind || k == LightKind
}

// commonRoomAccepts admits everything the kitchen does not claim, except the
// plain sink, plus the light shared by every room.
func commonRoomAccepts(k *Kind) bool {
	return (!kitchenAccepts(k) && k != SinkKind) || k == LightKind
}

func init() {
	KitchenKind.NewEmpty = func(ctx *Context) (*Room, bool) {
		if ctx.kitchenMade {
			return nil, false
		}
		ctx.kitchenMade = true
		return newRoom(ctx, KitchenKind, "the kitchen", "the_kitchen"), true
	}
	LivingRoomKind.NewEmpty = func(ctx *Context) (*Room, bool) {
		if ctx.livingRoomMade {
			return nil, false
		}
		ctx.livingRoomMade = true
		return newRoom(ctx, LivingRoomKind, "the living room", "the_living_room"), true
	}
	BedroomKind.NewEmpty = func(ctx *Context) (*Room, bool) {
		name, ok := ctx.draw(&ctx.roomOwners)
		if !ok {
			return nil, false
		}
		return newRoom(ctx, BedroomKind, name+"'s bedroom", Sanitize(name)+"_bedroom"), true
	}

	holdsAnything := func(*Kind) bool { return true }

	TableKind.CanHold = holdsAnything
	TableKind.Predicates = func() []pddl.Predicate { return containerPredicates(TableKind) }
	TableKind.Actions = func() []pddl.Action { return containerActions(TableKind) }
	TableKind.NewFixture = newTable

	ShelfKind.CanHold = holdsAnything
	ShelfKind.Predicates = shelfPredicates
	ShelfKind.Actions = shelfActions
	ShelfKind.Statics = shelfLevelObjects
	ShelfKind.NewFixture = newShelf

	FridgeKind.CanHold = func(k *Kind) bool { return k == FoodKind }
	FridgeKind.Predicates = func() []pddl.Predicate { return containerPredicates(FridgeKind) }
	FridgeKind.Actions = func() []pddl.Action { return containerActions(FridgeKind) }
	FridgeKind.NewFixture = newFridge

	SinkKind.Predicates = func() []pddl.Predicate {
		return []pddl.Predicate{{Name: faucetOnRelation, Params: []string{itemParam + " - " + SinkKind.Name}}}
	}
	SinkKind.Actions = func() []pddl.Action {
		faucetOn := faucetOnRelation + " " + itemParam
		params := []string{itemParam + " - " + SinkKind.Name}
		return []pddl.Action{
			{Name: "turn_on_faucet", Params: params, Preconditions: []string{pddl.Negate(faucetOn)}, Effects: []string{faucetOn}},
			{Name: "turn_off_faucet", Params: params, Preconditions: []string{faucetOn}, Effects: []string{pddl.Negate(faucetOn)}},
		}
	}
	SinkKind.NewFixture = newSink

	KitchenSinkKind.CanHold = func(k *Kind) bool { return k == KitchenwareKind || k == GlassKind }
	KitchenSinkKind.Predicates = func() []pddl.Predicate { return containerPredicates(KitchenSinkKind) }
	KitchenSinkKind.Actions = func() []pddl.Action { return containerActions(KitchenSinkKind) }
	KitchenSinkKind.NewFixture = newKitchenSink

	WindowKind.Predicates = func() []pddl.Predicate {
		return []pddl.Predicate{{Name: "window_open", Params: []string{itemParam + " - " + WindowKind.Name}}}
	}
	WindowKind.Actions = func() []pddl.Action {
		open := "window_open " + itemParam
		params := []string{itemParam + " - " + WindowKind.Name}
		return []pddl.Action{
			{Name: "open_window", Params: params, Preconditions: []string{pddl.Negate(open)}, Effects: []string{open}},
			{Name: "close_window", Params: params, Preconditions: []string{open}, Effects: []string{pddl.Negate(open)}},
		}
	}
	WindowKind.NewFixture = newWindow

	LightKind.Predicates = func() []pddl.Predicate {
		return []pddl.Predicate{{Name: "light_on", Params: []string{itemParam + " - " + LightKind.Name}}}
	}
	LightKind.Actions = func() []pddl.Action {
		on := "light_on " + itemParam
		params := []string{itemParam + " - " + LightKind.Name}
		return []pddl.Action{
			{Name: "turn_on_light", Params: params, Preconditions: []string{pddl.Negate(on)}, Effects: []string{on}},
			{Name: "turn_off_light", Params: params, Preconditions: []string{on}, Effects: []string{pddl.Negate(on)}},
		}
	}
	LightKind.NewFixture = newLight

	TVKind.Predicates = tvPredicates
	TVKind.Actions = tvActions
	TVKind.Statics = channelObjects
	TVKind.NewFixture = newTV

	BookKind.NewMovable = newBook
	PenKind.NewMovable = newPen

	PhoneKind.Predicates = func() []pddl.Predicate {
		return []pddl.Predicate{{Name: phoneRingingRelation, Params: []string{itemParam + " - " + PhoneKind.Name}}}
	}
	PhoneKind.Actions = func() []pddl.Action {
		ringing := phoneRingingRelation + " " + itemParam
		return []pddl.Action{{
			Name:          "answer_phone",
			Params:        []string{itemParam + " - " + PhoneKind.Name},
			Preconditions: []string{ringing},
			Effects:       []string{pddl.Negate(ringing)},
		}}
	}
	PhoneKind.NewMovable = newPhone

	GlassKind.Predicates = glassPredicates
	GlassKind.Actions = glassActions
	GlassKind.Statics = liquidObjects
}

func shelfPredicates() []pddl.Predicate {
	predicates := containerPredicates(ShelfKind)
	predicates = append(predicates,
		pddl.Predicate{Name: "shelf_has_level", Params: []string{itemParam + " - " + ShelfKind.Name, containerParam + " - " + shelfLevelType}},
		pddl.Predicate{Name: "on_shelf_level", Params: []string{holdableParam(ShelfKind, itemParam), containerParam + " - " + shelfLevelType}})
	return predicates
}

func shelfActions() []pddl.Action {
	params := append(defaultParamList(ShelfKind), levelParam+" - "+shelfLevelType)
	contains := []string{
		containsCondition(ShelfKind, containerParam, itemParam),
		"on_shelf_level " + itemParam + " " + levelParam,
	}
	place := placeAction(ShelfKind, params, contains)
	place.Preconditions = append(place.Preconditions, "shelf_has_level "+containerParam+" "+levelParam)
	return []pddl.Action{place, removeAction(ShelfKind, params, contains)}
}

func shelfLevelObjects() []knowledge.EntityID {
	objects := make([]knowledge.EntityID, 0, maxShelfLevels)
	for level := 1; level <= maxShelfLevels; level++ {
		objects = append(objects, shelfLevelID(level))
	}
	return objects
}

func tvPredicates() []pddl.Predicate {
	return []pddl.Predicate{
		{Name: "tv_on", Params: []string{itemParam + " - " + TVKind.Name}},
		{Name: "tv_playing_channel", Params: []string{itemParam + " - " + TVKind.Name, containerParam + " - " + channelType}},
	}
}

func tvActions() []pddl.Action {
	on := "tv_on " + itemParam
	playing := "tv_playing_channel " + itemParam + " " + containerParam
	playingNext := "tv_playing_channel " + itemParam + " " + levelParam
	twoParams := []string{itemParam + " - " + TVKind.Name, containerParam + " - " + channelType}
	return []pddl.Action{
		{
			Name:          "turn_tv_on",
			Params:        twoParams,
			Preconditions: []string{pddl.Negate(on)},
			Effects:       []string{on, playing},
		},
		{
			Name:          "turn_tv_off",
			Params:        twoParams,
			Preconditions: []string{on, playing},
			Effects:       []string{pddl.Negate(on), pddl.Negate(playing)},
		},
		{
			Name:          "switch_tv_channel",
			Params:        append(twoParams, levelParam+" - "+channelType),
			Preconditions: []string{playing},
			Effects:       []string{playingNext, pddl.Negate(playing)},
		},
	}
}

func channelObjects() []knowledge.EntityID {
	objects := make([]knowledge.EntityID, 0, len(tvChannels))
	for _, channel := range tvChannels {
		objects = append(objects, knowledge.EntityID{Token: channel.token, Kind: channelType})
	}
	return objects
}

func glassPredicates() []pddl.Predicate {
	return []pddl.Predicate{
		{Name: "glass_empty", Params: []string{itemParam + " - " + GlassKind.Name}},
		{Name: "glass_has_liquid", Params: []string{itemParam + " - " + GlassKind.Name, containerParam + " - " + liquidType}},
	}
}

func glassActions() []pddl.Action {
	empty := "glass_empty " + itemParam
	hasLiquid := "glass_has_liquid " + itemParam + " " + containerParam
	params := []string{itemParam + " - " + GlassKind.Name, containerParam + " - " + liquidType}
	return []pddl.Action{
		{
			Name:          "empty_glass",
			Params:        params,
			Preconditions: []string{hasLiquid},
			Effects:       []string{empty, pddl.Negate(hasLiquid)},
		},
		{
			Name:          "fill_with_liquid",
			Params:        params,
			Preconditions: []string{empty},
			Effects:       []string{pddl.Negate(empty), hasLiquid},
		},
	}
}

func liquidObjects() []knowledge.EntityID {
	objects := make([]knowledge.EntityID, 0, len(liquidNames))
	for _, liquid := range liquidNames {
		objects = append(objects, knowledge.EntityID{Token: liquid, Kind: liquidType})
	}
	return objects
}
