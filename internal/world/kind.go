package world

import (
	"strings"

	"homesim/internal/knowledge"
	"homesim/internal/pddl"
)

// Auxiliary planning types contributed by individual kinds.
const (
	shelfLevelType = "shelf_level"
	channelType    = "channel"
	liquidType     = "liquid"
)

// Kind is the static descriptor for one entity kind: its planning type, its
// contributions to the symbolic domain, its globally-shared planning objects,
// and its factory. The registry of kinds is an explicit table populated at
// startup; nothing is discovered by introspection.
type Kind struct {
	// Name is the planning type name and the kind half of every EntityID.
	Name string
	// Parent is the planning supertype; empty means "object".
	Parent string
	// AuxTypes are extra planning types the kind requires (shelf levels,
	// channels, liquid kinds).
	AuxTypes []string
	// Movable marks kinds held by containers or the person rather than
	// attached to rooms.
	Movable bool
	// Bundled marks movable kinds that only exist as companions of a fixture
	// and must be placed before population completes.
	Bundled bool

	// CanHold reports whether a container of this kind may hold items of the
	// given movable kind. Nil for non-container kinds.
	CanHold func(*Kind) bool
	// Predicates and Actions contribute to the symbolic domain.
	Predicates func() []pddl.Predicate
	Actions    func() []pddl.Action
	// Statics lists globally-shared planning objects declared once per
	// domain (shelf levels, channels, liquid kinds).
	Statics func() []knowledge.EntityID
	// NewMovable instantiates a free movable, drawing from the kind's name
	// pool; it reports false on pool exhaustion. Set only for kinds that can
	// be created outside a fixture bundle.
	NewMovable func(*Context) (Movable, bool)
	// NewFixture instantiates a stationary item in the given room along with
	// any bundled movables. Set only for stationary kinds.
	NewFixture func(*Context, *Room) (Stationary, []Movable)
}

// RequiredTypes lists the planning type declarations this kind needs in the
// domain's :types section.
func (k *Kind) RequiredTypes() []string {
	parent := k.Parent
	if parent == "" {
		parent = "object"
	}
	return append([]string{k.Name + " - " + parent}, k.AuxTypes...)
}

func (k *Kind) domainPredicates() []pddl.Predicate {
	if k.Predicates == nil {
		return nil
	}
	return k.Predicates()
}

func (k *Kind) domainActions() []pddl.Action {
	if k.Actions == nil {
		return nil
	}
	return k.Actions()
}

func (k *Kind) staticObjects() []knowledge.EntityID {
	if k.Statics == nil {
		return nil
	}
	return k.Statics()
}

func movableKindNames() []string {
	var names []string
	for _, k := range Kinds {
		if k.Movable {
			names = append(names, k.Name)
		}
	}
	return names
}

func stationaryKindNames() []string {
	var names []string
	for _, k := range Kinds {
		if !k.Movable {
			names = append(names, k.Name)
		}
	}
	return names
}

func creatableMovableKinds() []*Kind {
	var kinds []*Kind
	for _, k := range Kinds {
		if k.Movable && !k.Bundled {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// eitherParam renders a typed parameter ranging over several planning types.
func eitherParam(token string, typeNames []string) string {
	return token + " - (either " + strings.Join(typeNames, " ") + ")"
}
