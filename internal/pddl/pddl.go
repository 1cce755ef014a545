// Package pddl renders and parses the planning-domain and planning-problem
// text emitted by the generator. The grammar is fixed: consumers feed these
// files to a classical planner unmodified, so indentation and ordering are
// part of the contract.
package pddl

import (
	"fmt"
	"strings"
)

// Predicate is a relation declaration in the domain.
type Predicate struct {
	Name   string
	Params []string
}

func (p Predicate) String() string {
	return fmt.Sprintf("(%s %s)", p.Name, strings.Join(p.Params, " "))
}

// Action is a domain action block. Preconditions and effects are bare
// predicate instantiations without their outer parentheses; negation is
// written as "not (...)".
type Action struct {
	Name          string
	Params        []string
	Preconditions []string
	Effects       []string
}

func (a Action) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "\t(:action %s\n", a.Name)
	fmt.Fprintf(&b, "\t\t:parameters (%s)\n", strings.Join(a.Params, " "))
	b.WriteString("\t\t:precondition (and\n")
	writeConditionList(&b, a.Preconditions, "\t\t\t")
	b.WriteString("\t\t)\n")
	b.WriteString("\t\t:effect (and\n")
	writeConditionList(&b, a.Effects, "\t\t\t")
	b.WriteString("\t\t)\n")
	b.WriteString("\t)\n")
	return b.String()
}

// Goal couples a natural-language instruction with the predicate
// instantiations expected to hold once it is satisfied.
type Goal struct {
	Description string
	Predicates  []string
}

// Block renders the (:goal ...) section appended to a problem.
func (g Goal) Block() string {
	var b strings.Builder
	b.WriteString("\t(:goal\n")
	b.WriteString("\t\t(and\n")
	writeConditionList(&b, g.Predicates, "\t\t\t")
	b.WriteString("\t\t)\n")
	b.WriteString("\t)\n")
	return b.String()
}

// Negate wraps a bare predicate instantiation in the negation form used by
// preconditions, effects and goals.
func Negate(condition string) string {
	return "not (" + condition + ")"
}

// Domain is the full planning-domain document.
type Domain struct {
	Name       string
	Types      []string
	Predicates []Predicate
	Actions    []Action
}

// PredicateNames lists relation names in declaration order. Downstream
// consumers use the list to validate the relations they extract.
func (d Domain) PredicateNames() []string {
	names := make([]string, 0, len(d.Predicates))
	for _, p := range d.Predicates {
		names = append(names, p.Name)
	}
	return names
}

func (d Domain) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "(define (domain %s)\n", d.Name)
	b.WriteString("\t(:requirements :typing :negative-preconditions)\n")
	b.WriteString("\t(:types\n")
	for _, t := range d.Types {
		b.WriteString("\t\t" + t + "\n")
	}
	b.WriteString("\t)\n")
	b.WriteString("\t(:predicates\n")
	for _, p := range d.Predicates {
		b.WriteString("\t\t" + p.String() + "\n")
	}
	b.WriteString("\t)\n\n")
	for i, a := range d.Actions {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(a.String())
	}
	b.WriteString(")\n")
	return b.String()
}

// Problem is a planning-problem snapshot. Objects are "token - type"
// declarations; Init holds bare predicate instantiations in traversal order.
type Problem struct {
	Name    string
	Domain  string
	Objects []string
	Init    []string
	Goal    *Goal
}

func (p Problem) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "(define (problem %s)\n", p.Name)
	fmt.Fprintf(&b, "\t(:domain %s)\n", p.Domain)
	b.WriteString("\t(:objects\n")
	for _, o := range p.Objects {
		b.WriteString("\t\t" + o + "\n")
	}
	b.WriteString("\t)\n")
	b.WriteString("\t(:init\n")
	writeConditionList(&b, p.Init, "\t\t")
	b.WriteString("\t)\n")
	if p.Goal != nil {
		b.WriteString(p.Goal.Block())
	}
	b.WriteString(")\n")
	return b.String()
}

func writeConditionList(b *strings.Builder, conditions []string, indent string) {
	for _, c := range conditions {
		b.WriteString(indent + "(" + c + ")\n")
	}
}
