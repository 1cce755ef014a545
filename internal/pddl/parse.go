package pddl

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotProblem   = errors.New("not a problem definition")
	ErrNoObjects    = errors.New("problem missing :objects section")
	ErrNoInit       = errors.New("problem missing :init section")
	ErrBadObject    = errors.New("malformed object declaration")
	ErrBadCondition = errors.New("malformed condition")
	ErrUnterminated = errors.New("unterminated section")
)

// Object is a parsed "token - type" declaration.
type Object struct {
	Token string
	Type  string
}

// Literal is a parsed predicate instantiation, possibly negated.
type Literal struct {
	Negated   bool
	Predicate string
	Args      []string
}

// ParsedProblem is the read-side view of a problem file, used to check
// emitted datasets without regenerating them.
type ParsedProblem struct {
	Name    string
	Domain  string
	Objects []Object
	Init    []Literal
	Goal    []Literal
}

// DeclaredTokens returns the set of object tokens declared by the problem.
func (p *ParsedProblem) DeclaredTokens() map[string]struct{} {
	tokens := make(map[string]struct{}, len(p.Objects))
	for _, o := range p.Objects {
		tokens[o.Token] = struct{}{}
	}
	return tokens
}

// ParseProblem parses a problem document produced by Problem.Render. It is a
// line-oriented parser for that fixed grammar, not a general s-expression
// reader.
func ParseProblem(data []byte) (*ParsedProblem, error) {
	lines := strings.Split(string(data), "\n")
	if len(lines) == 0 || !strings.HasPrefix(lines[0], "(define (problem ") {
		return nil, ErrNotProblem
	}
	parsed := &ParsedProblem{
		Name: strings.TrimSuffix(strings.TrimPrefix(lines[0], "(define (problem "), ")"),
	}

	const (
		sectionNone = iota
		sectionObjects
		sectionInit
		sectionGoal
	)
	section := sectionNone
	closed := false

	for _, raw := range lines[1:] {
		line := strings.TrimSpace(raw)
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "(:domain "):
			parsed.Domain = strings.TrimSuffix(strings.TrimPrefix(line, "(:domain "), ")")
		case line == "(:objects":
			section = sectionObjects
		case line == "(:init":
			section = sectionInit
		case line == "(:goal":
			section = sectionGoal
		case line == "(and":
			continue
		case line == ")":
			if section == sectionNone {
				closed = true
			}
			section = sectionNone
		default:
			switch section {
			case sectionObjects:
				obj, err := parseObject(line)
				if err != nil {
					return nil, err
				}
				parsed.Objects = append(parsed.Objects, obj)
			case sectionInit:
				lit, err := parseLiteral(line)
				if err != nil {
					return nil, err
				}
				parsed.Init = append(parsed.Init, lit)
			case sectionGoal:
				lit, err := parseLiteral(line)
				if err != nil {
					return nil, err
				}
				parsed.Goal = append(parsed.Goal, lit)
			}
		}
	}

	if parsed.Objects == nil {
		return nil, ErrNoObjects
	}
	if parsed.Init == nil {
		return nil, ErrNoInit
	}
	if !closed {
		return nil, ErrUnterminated
	}
	return parsed, nil
}

func parseObject(line string) (Object, error) {
	token, typeName, ok := strings.Cut(line, " - ")
	if !ok || strings.TrimSpace(token) == "" || strings.TrimSpace(typeName) == "" {
		return Object{}, fmt.Errorf("%w: %q", ErrBadObject, line)
	}
	return Object{Token: strings.TrimSpace(token), Type: strings.TrimSpace(typeName)}, nil
}

func parseLiteral(line string) (Literal, error) {
	inner, ok := stripParens(line)
	if !ok {
		return Literal{}, fmt.Errorf("%w: %q", ErrBadCondition, line)
	}
	negated := false
	if rest, found := strings.CutPrefix(inner, "not "); found {
		negated = true
		inner, ok = stripParens(strings.TrimSpace(rest))
		if !ok {
			return Literal{}, fmt.Errorf("%w: %q", ErrBadCondition, line)
		}
	}
	fields := strings.Fields(inner)
	if len(fields) == 0 {
		return Literal{}, fmt.Errorf("%w: %q", ErrBadCondition, line)
	}
	return Literal{Negated: negated, Predicate: fields[0], Args: fields[1:]}, nil
}

func stripParens(s string) (string, bool) {
	if !strings.HasPrefix(s, "(") || !strings.HasSuffix(s, ")") {
		return "", false
	}
	return s[1 : len(s)-1], true
}
