// Package verify re-reads a generated dataset and cross-checks its
// artifacts: every snapshot must be internally closed and the problem and
// knowledge views of each time step must describe the same state.
package verify

import (
	"fmt"
	"strings"

	"homesim/internal/knowledge"
	"homesim/internal/pddl"
)

type Severity string

const (
	SeverityError Severity = "error"
	SeverityWarn  Severity = "warning"
)

const (
	codeUnknownPredicate    = "unknown_predicate"
	codeUndeclaredToken     = "undeclared_token"
	codeMissingRecord       = "missing_knowledge_record"
	codeContainmentMismatch = "containment_mismatch"
	codeStateMismatch       = "state_mismatch"
	codeMissingGoal         = "missing_goal"
	codeManifestMismatch    = "manifest_mismatch"
)

type Issue struct {
	Severity Severity
	Code     string
	Message  string
	Step     string
	Entity   string
}

type Report struct {
	Issues []Issue
}

// Clean reports whether the dataset passed with no errors. Warnings do not
// fail a dataset.
func (r *Report) Clean() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			return false
		}
	}
	return true
}

// Run loads the dataset at dir and checks every snapshot.
func Run(dir string) (*Report, error) {
	ds, err := Load(dir)
	if err != nil {
		return nil, err
	}

	report := &Report{Issues: make([]Issue, 0)}
	predicates := make(map[string]struct{}, len(ds.PredicateNames))
	for _, name := range ds.PredicateNames {
		predicates[name] = struct{}{}
	}

	report.checkSnapshot("initial", ds.InitialProblem, ds.InitialKnowledge, predicates, true)

	for _, step := range ds.Steps {
		if step.Problem == nil {
			continue
		}
		// A goal step's problem snapshots the state before the goal mutation
		// while its knowledge dump reflects the state after it, so the two
		// views are not compared against each other there.
		strict := step.Kind != StepGoal
		report.checkSnapshot(step.Dir, step.Problem, step.Knowledge, predicates, strict)
		if step.Kind == StepGoal {
			report.checkGoal(step, predicates)
		}
	}

	if ds.Manifest.TimeSteps != len(ds.Steps) {
		report.add(Issue{
			Severity: SeverityError,
			Code:     codeManifestMismatch,
			Message: fmt.Sprintf("manifest declares %d time steps, found %d",
				ds.Manifest.TimeSteps, len(ds.Steps)),
		})
	}

	return report, nil
}

func (r *Report) add(issue Issue) {
	r.Issues = append(r.Issues, issue)
}

// checkSnapshot validates one problem/knowledge pair: predicate coverage,
// token closure, record coverage, and containment agreement.
func (r *Report) checkSnapshot(step string, problem *pddl.ParsedProblem, doc *knowledge.ParsedDocument, predicates map[string]struct{}, strict bool) {
	declared := problem.DeclaredTokens()

	for _, lit := range problem.Init {
		if _, known := predicates[lit.Predicate]; !known {
			r.add(Issue{
				Severity: SeverityError,
				Code:     codeUnknownPredicate,
				Message:  "init uses undeclared predicate " + lit.Predicate,
				Step:     step,
			})
		}
		for _, arg := range lit.Args {
			if _, ok := declared[arg]; !ok {
				r.add(Issue{
					Severity: SeverityError,
					Code:     codeUndeclaredToken,
					Message:  fmt.Sprintf("init condition (%s) references undeclared token %s", lit.Predicate, arg),
					Step:     step,
					Entity:   arg,
				})
			}
		}
	}

	for _, obj := range problem.Objects {
		if _, ok := doc.Record(obj.Token); !ok {
			r.add(Issue{
				Severity: SeverityError,
				Code:     codeMissingRecord,
				Message:  "object has no knowledge record",
				Step:     step,
				Entity:   obj.Token,
			})
		}
	}
	for _, record := range doc.Records {
		if _, ok := declared[record.ID.Token]; !ok {
			r.add(Issue{
				Severity: SeverityError,
				Code:     codeMissingRecord,
				Message:  "knowledge record has no planning object",
				Step:     step,
				Entity:   record.ID.Token,
			})
		}
		if strict {
			r.checkRecordState(step, record, problem)
		}
	}
}

// checkRecordState verifies that each attribute of a knowledge record agrees
// with the problem's init section: reference attributes must appear as a
// positive relation literal over both tokens, boolean attributes must match
// the presence of their unary literal.
func (r *Report) checkRecordState(step string, record knowledge.ParsedRecord, problem *pddl.ParsedProblem) {
	for _, attr := range record.Attributes {
		if ref, ok := attr.Ref(); ok {
			if !hasRelation(problem, attr.Name, record.ID.Token, ref.Token) {
				code := codeStateMismatch
				if isContainment(attr.Name) {
					code = codeContainmentMismatch
				}
				r.add(Issue{
					Severity: SeverityError,
					Code:     code,
					Message:  fmt.Sprintf("attribute %s -> %s has no matching init condition", attr.Name, ref.Token),
					Step:     step,
					Entity:   record.ID.Token,
				})
			}
			continue
		}
		if flag, ok := attr.Value.(bool); ok {
			if flag != hasUnary(problem, attr.Name, record.ID.Token) {
				r.add(Issue{
					Severity: SeverityError,
					Code:     codeStateMismatch,
					Message:  fmt.Sprintf("attribute %s=%t disagrees with init", attr.Name, flag),
					Step:     step,
					Entity:   record.ID.Token,
				})
			}
		}
	}
}

// checkGoal validates a goal snapshot: the goal block must exist and use only
// declared predicates and tokens.
func (r *Report) checkGoal(step Step, predicates map[string]struct{}) {
	if len(step.Problem.Goal) == 0 {
		r.add(Issue{
			Severity: SeverityError,
			Code:     codeMissingGoal,
			Message:  "goal step problem has no goal block",
			Step:     step.Dir,
		})
		return
	}
	declared := step.Problem.DeclaredTokens()
	for _, lit := range step.Problem.Goal {
		if _, known := predicates[lit.Predicate]; !known {
			r.add(Issue{
				Severity: SeverityError,
				Code:     codeUnknownPredicate,
				Message:  "goal uses undeclared predicate " + lit.Predicate,
				Step:     step.Dir,
			})
		}
		for _, arg := range lit.Args {
			if _, ok := declared[arg]; !ok {
				r.add(Issue{
					Severity: SeverityError,
					Code:     codeUndeclaredToken,
					Message:  fmt.Sprintf("goal condition (%s) references undeclared token %s", lit.Predicate, arg),
					Step:     step.Dir,
					Entity:   arg,
				})
			}
		}
	}
}

// hasRelation reports a positive init literal for the predicate whose args
// include both tokens. Argument order varies per relation, so membership is
// checked order-insensitively.
func hasRelation(problem *pddl.ParsedProblem, predicate, tokenA, tokenB string) bool {
	for _, lit := range problem.Init {
		if lit.Negated || lit.Predicate != predicate {
			continue
		}
		if containsArg(lit.Args, tokenA) && containsArg(lit.Args, tokenB) {
			return true
		}
	}
	return false
}

func hasUnary(problem *pddl.ParsedProblem, predicate, token string) bool {
	for _, lit := range problem.Init {
		if !lit.Negated && lit.Predicate == predicate && len(lit.Args) > 0 && lit.Args[0] == token {
			return true
		}
	}
	return false
}

func containsArg(args []string, token string) bool {
	for _, arg := range args {
		if arg == token {
			return true
		}
	}
	return false
}

func isContainment(name string) bool {
	return name == "in_hand" || strings.HasPrefix(name, "placed_at_")
}
