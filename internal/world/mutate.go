package world

import "homesim/internal/pddl"

// StateChange mutates the world through one narrated event. Candidate actors
// are drawn without replacement from three pools, rooms, movables, and the
// person, until one produces an action. A world in which nothing can act is a
// contract violation, so exhaustion panics.
func (w *World) StateChange(ctx *Context) string {
	rooms := shuffledCopy(ctx, w.Rooms)
	movables := shuffledCopy(ctx, w.Items)
	personLeft := true
	for {
		switch pickPool(ctx, len(rooms), len(movables), personLeft) {
		case 0:
			var room *Room
			room, rooms = rooms[len(rooms)-1], rooms[:len(rooms)-1]
			if narration, ok := room.Act(ctx, w.Person); ok {
				return narration
			}
		case 1:
			var m Movable
			m, movables = movables[len(movables)-1], movables[:len(movables)-1]
			if narration, ok := m.Act(ctx, w.Person); ok {
				return narration
			}
		case 2:
			personLeft = false
			if narration, ok := w.Person.Act(ctx, w); ok {
				return narration
			}
		default:
			panic("world: no actor can produce a state change")
		}
	}
}

// NextGoal mutates the world into a reachable target state and returns the
// goal describing it. Selection mirrors StateChange.
func (w *World) NextGoal(ctx *Context) pddl.Goal {
	rooms := shuffledCopy(ctx, w.Rooms)
	movables := shuffledCopy(ctx, w.Items)
	for {
		switch pickPool(ctx, len(rooms), len(movables), false) {
		case 0:
			var room *Room
			room, rooms = rooms[len(rooms)-1], rooms[:len(rooms)-1]
			if goal, ok := room.Goal(ctx, w, w.Person); ok {
				return goal
			}
		case 1:
			var m Movable
			m, movables = movables[len(movables)-1], movables[:len(movables)-1]
			if goal, ok := m.Goal(ctx, w, w.Person); ok {
				return goal
			}
		default:
			panic("world: no entity can produce a goal")
		}
	}
}

// pickPool chooses uniformly among the non-empty candidate pools: 0 for
// rooms, 1 for movables, 2 for the person, -1 when all are spent.
func pickPool(ctx *Context, rooms, movables int, person bool) int {
	var open []int
	if rooms > 0 {
		open = append(open, 0)
	}
	if movables > 0 {
		open = append(open, 1)
	}
	if person {
		open = append(open, 2)
	}
	if len(open) == 0 {
		return -1
	}
	return open[ctx.intn(len(open))]
}

// QueryAnswer asks about a random movable or a random room. Every room holds
// at least one queryable fixture, so room queries cannot fail.
func (w *World) QueryAnswer(ctx *Context) (string, string) {
	if ctx.coin() {
		m := w.Items[ctx.intn(len(w.Items))]
		return m.Query(ctx)
	}
	question, answer, ok := w.Rooms[ctx.intn(len(w.Rooms))].Query(ctx)
	if !ok {
		panic("world: room has no queryable fixture")
	}
	return question, answer
}
