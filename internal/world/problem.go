package world

import "homesim/internal/pddl"

// ProblemParts captures the object and init sections reflecting the world's
// current state: person first, then rooms with their fixtures, then
// movables, with the shared static objects closing the object list.
func (w *World) ProblemParts() (objects, init []string) {
	objects = w.Person.Objects()
	for _, room := range w.Rooms {
		objects = append(objects, room.Objects()...)
		init = append(init, room.InitConditions()...)
	}
	for _, m := range w.Items {
		it := m.Base()
		objects = append(objects, it.id.Token+" - "+it.kind.Name)
		init = append(init, m.InitConditions()...)
	}
	for _, static := range StaticObjects() {
		objects = append(objects, static.Token+" - "+static.Kind)
	}
	return objects, init
}

// Problem snapshots the world as a planning problem, optionally carrying a
// goal block.
func (w *World) Problem(goal *pddl.Goal) pddl.Problem {
	objects, init := w.ProblemParts()
	return pddl.Problem{
		Name:    ProblemName,
		Domain:  DomainName,
		Objects: objects,
		Init:    init,
		Goal:    goal,
	}
}
