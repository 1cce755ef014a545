package world

import (
	"sort"

	"homesim/internal/knowledge"
	"homesim/internal/pddl"
)

// Planning artifact names shared by the domain and every problem snapshot.
const (
	DomainName  = "simulation"
	ProblemName = "simulation-a"
)

// Domain folds the registry into the planning domain: person and room
// predicates first, then every kind's contribution in registry order, with
// the robot's carrying predicate and transfer actions last.
func Domain() pddl.Domain {
	predicates := append(personPredicates(), roomPredicates()...)
	types := []string{personType, roomType}
	var actions []pddl.Action
	for _, k := range Kinds {
		predicates = append(predicates, k.domainPredicates()...)
		actions = append(actions, k.domainActions()...)
		types = append(types, k.RequiredTypes()...)
	}
	predicates = append(predicates, robotPredicates()...)
	actions = append(actions, robotActions()...)

	types = uniqueStrings(types)
	sort.SliceStable(types, func(i, j int) bool { return len(types[i]) < len(types[j]) })

	return pddl.Domain{
		Name:       DomainName,
		Types:      types,
		Predicates: predicates,
		Actions:    actions,
	}
}

// StaticObjects lists the globally-shared planning objects contributed by
// the registry: shelf levels, TV channels, and liquid kinds.
func StaticObjects() []knowledge.EntityID {
	var objects []knowledge.EntityID
	for _, k := range Kinds {
		objects = append(objects, k.staticObjects()...)
	}
	return objects
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, s := range in {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
