package world

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homesim/internal/pddl"
)

func newTestContext(seed int64) *Context {
	return NewContext(rand.New(rand.NewSource(seed)))
}

func buildTestWorld(t *testing.T, seed int64) (*World, *Context) {
	t.Helper()
	ctx := newTestContext(seed)
	w, err := Build(ctx, DefaultParams())
	require.NoError(t, err)
	return w, ctx
}

func TestBuild(t *testing.T) {
	w, _ := buildTestWorld(t, 1)

	require.Len(t, w.Rooms, 4)
	names := make([]string, 0, len(w.Rooms))
	bedrooms := 0
	for _, room := range w.Rooms {
		names = append(names, room.Name())
		if room.kind == BedroomKind {
			bedrooms++
		}
	}
	assert.Contains(t, names, "the kitchen")
	assert.Contains(t, names, "the living room")
	assert.Equal(t, 2, bedrooms)

	// Three creatable kinds at seven apiece, plus the bundled companions:
	// five foods, five kitchenware, the glass, and one remote per TV.
	assert.Len(t, w.Items, 35)
	assert.Empty(t, w.Dropped)
	assert.NotEmpty(t, w.Description)

	for _, m := range w.Items {
		it := m.Base()
		require.NotNil(t, it.owner, "item %s has no owner", it.id.Token)
	}
}

func TestBuildSingleOwnership(t *testing.T) {
	w, _ := buildTestWorld(t, 2)

	held := make(map[string]int)
	for _, room := range w.Rooms {
		for _, fix := range room.fixtures {
			h, ok := fix.(Holder)
			if !ok {
				continue
			}
			for _, m := range h.Contents() {
				held[m.Base().id.Token]++
				assert.Equal(t, fix.ID().Token, m.Base().owner.ID().Token)
			}
		}
	}
	for _, m := range w.Person.items {
		held[m.Base().id.Token]++
	}

	require.Len(t, held, len(w.Items))
	for token, count := range held {
		assert.Equal(t, 1, count, "item %s held %d times", token, count)
	}
}

func TestBuildUniqueTokens(t *testing.T) {
	w, _ := buildTestWorld(t, 3)

	seen := make(map[string]struct{})
	claim := func(token string) {
		_, dup := seen[token]
		require.False(t, dup, "duplicate token %s", token)
		seen[token] = struct{}{}
	}
	for _, room := range w.Rooms {
		claim(room.Token())
		for _, fix := range room.fixtures {
			claim(fix.ID().Token)
		}
	}
	for _, m := range w.Items {
		claim(m.Base().id.Token)
	}
}

func TestDomain(t *testing.T) {
	d := Domain()

	names := d.PredicateNames()
	require.NotEmpty(t, names)
	assert.Equal(t, "in_hand", names[0])
	assert.Equal(t, "room_has", names[1])
	assert.Equal(t, "held_by_robot", names[len(names)-1])

	for _, want := range []string{
		"placed_at_table", "placed_at_shelf", "placed_at_fridge", "placed_at_kitchen_sink",
		"shelf_has_level", "on_shelf_level",
		"faucet_on", "window_open", "light_on",
		"tv_on", "tv_playing_channel",
		"phone_ringing", "glass_empty", "glass_has_liquid",
	} {
		assert.Contains(t, names, want)
	}

	for i := 1; i < len(d.Types); i++ {
		assert.LessOrEqual(t, len(d.Types[i-1]), len(d.Types[i]), "types not sorted by length")
	}
	assert.Contains(t, d.Types, "kitchen_sink - sink")
	assert.Contains(t, d.Types, "glass - kitchenware")
	assert.Contains(t, d.Types, "shelf_level")

	actionNames := make(map[string]struct{})
	for _, a := range d.Actions {
		_, dup := actionNames[a.Name]
		require.False(t, dup, "duplicate action %s", a.Name)
		actionNames[a.Name] = struct{}{}
	}
	for _, want := range []string{
		"place_at_table", "remove_from_shelf", "turn_on_faucet", "open_window",
		"turn_tv_on", "switch_tv_channel", "answer_phone", "fill_with_liquid",
		"pick_up", "hand_to_person", "take_from_person",
	} {
		assert.Contains(t, actionNames, want)
	}

	rendered := d.Render()
	assert.True(t, strings.HasPrefix(rendered, "(define (domain simulation)\n"))
	assert.Contains(t, rendered, "\t\t\t(shelf_has_level ?b ?c)\n")
}

func TestStaticObjects(t *testing.T) {
	statics := StaticObjects()

	kinds := make(map[string]int)
	for _, s := range statics {
		kinds[s.Kind]++
	}
	assert.Equal(t, 10, kinds[shelfLevelType])
	assert.Equal(t, 6, kinds[channelType])
	assert.Equal(t, 4, kinds[liquidType])
}

// requireConsistentSnapshot checks the closure of a problem/knowledge pair:
// every init token is declared, and the planning objects and knowledge
// records cover the same entity set.
func requireConsistentSnapshot(t *testing.T, w *World) {
	t.Helper()

	parsed, err := pddl.ParseProblem([]byte(w.Problem(nil).Render()))
	require.NoError(t, err)
	declared := parsed.DeclaredTokens()
	for _, lit := range parsed.Init {
		assert.False(t, lit.Negated)
		for _, arg := range lit.Args {
			_, ok := declared[arg]
			assert.True(t, ok, "init (%s) references undeclared token %s", lit.Predicate, arg)
		}
	}

	doc := w.Knowledge()
	recorded := make(map[string]struct{}, len(doc.Records))
	for _, record := range doc.Records {
		recorded[record.ID.Token] = struct{}{}
	}
	require.Len(t, recorded, len(doc.Records), "duplicate knowledge records")
	assert.Equal(t, len(declared), len(recorded))
	for token := range declared {
		_, ok := recorded[token]
		assert.True(t, ok, "object %s missing from knowledge dump", token)
	}
}

func TestSnapshotConsistency(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		t.Run(fmt.Sprintf("seed %d", seed), func(t *testing.T) {
			w, ctx := buildTestWorld(t, seed)
			requireConsistentSnapshot(t, w)

			for i := 0; i < 60; i++ {
				narration := w.StateChange(ctx)
				require.NotEmpty(t, narration)
			}
			requireConsistentSnapshot(t, w)
		})
	}
}

func TestStateChangeRespectsCapacity(t *testing.T) {
	w, ctx := buildTestWorld(t, 4)
	for i := 0; i < 200; i++ {
		w.StateChange(ctx)
		assert.LessOrEqual(t, len(w.Person.items), w.Person.capacity)
	}
}

func TestNextGoalHoldsAfterMutation(t *testing.T) {
	for seed := int64(1); seed <= 3; seed++ {
		t.Run(fmt.Sprintf("seed %d", seed), func(t *testing.T) {
			w, ctx := buildTestWorld(t, seed)
			for i := 0; i < 25; i++ {
				goal := w.NextGoal(ctx)
				require.NotEmpty(t, goal.Description)
				require.NotEmpty(t, goal.Predicates)

				// The goal mutates the world into its target state, so every
				// goal literal must hold against the post-mutation snapshot.
				parsed, err := pddl.ParseProblem([]byte(w.Problem(&goal).Render()))
				require.NoError(t, err)
				declared := parsed.DeclaredTokens()

				for _, lit := range parsed.Goal {
					for _, arg := range lit.Args {
						_, ok := declared[arg]
						require.True(t, ok, "goal (%s) references undeclared token %s", lit.Predicate, arg)
					}
					holds := false
					for _, init := range parsed.Init {
						if init.Predicate == lit.Predicate && equalArgs(init.Args, lit.Args) {
							holds = true
							break
						}
					}
					if lit.Negated {
						require.False(t, holds, "negated goal (%s %v) still holds", lit.Predicate, lit.Args)
					} else {
						require.True(t, holds, "goal (%s %v) does not hold after mutation", lit.Predicate, lit.Args)
					}
				}
			}
		})
	}
}

func equalArgs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestPersonActPicksUp(t *testing.T) {
	w, ctx := buildTestWorld(t, 5)

	narration, ok := w.Person.Act(ctx, w)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(narration, "I picked up "))
	require.Len(t, w.Person.items, 1)

	for len(w.Person.items) < w.Person.capacity {
		_, ok := w.Person.Act(ctx, w)
		require.True(t, ok)
	}
	_, ok = w.Person.Act(ctx, w)
	assert.False(t, ok, "person picked up beyond capacity")
}

func TestQueryAnswer(t *testing.T) {
	w, ctx := buildTestWorld(t, 6)
	for i := 0; i < 30; i++ {
		question, answer := w.QueryAnswer(ctx)
		assert.NotEmpty(t, question)
		assert.NotEmpty(t, answer)
	}
}

func TestKnowledgeTraversalOrder(t *testing.T) {
	w, _ := buildTestWorld(t, 7)
	doc := w.Knowledge()

	require.NotEmpty(t, doc.Records)
	assert.Equal(t, "me", doc.Records[len(doc.Records)-1].ID.Token)
	assert.Equal(t, w.Rooms[0].Token(), doc.Records[0].ID.Token)
}

func TestBuildFailsOnUnplacedBundled(t *testing.T) {
	ctx := newTestContext(9)

	// One slot per container cannot absorb the bundled foods, dishes and
	// remotes, so population must fail rather than drop them.
	params := DefaultParams()
	params.MaxPerContainer = 1
	_, err := Build(ctx, params)
	require.ErrorIs(t, err, ErrUnplacedBundled)
}

func TestBuildExhaustsBedroomNames(t *testing.T) {
	ctx := newTestContext(8)
	ctx.roomOwners = []string{"Alice"}

	// One bedroom name caps the house at three rooms; fewer free items keep
	// the smaller house able to place every bundled movable.
	params := DefaultParams()
	params.MaxRooms = 12
	params.MaxFreeItems = 6
	w, err := Build(ctx, params)
	require.NoError(t, err)

	bedrooms := 0
	for _, room := range w.Rooms {
		if room.kind == BedroomKind {
			bedrooms++
		}
	}
	assert.Equal(t, 1, bedrooms)
}
