// Package topicgraph holds the directed "what to study next" relation
// between topics. Cycles are allowed: SQL and Database Management point at
// each other.
package topicgraph

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// Graph maps a topic to the topics a learner should explore after
// mastering it.
type Graph struct {
	next   map[string][]string
	topics []string
}

// DefaultRelations is the built-in progression table.
func DefaultRelations() map[string][]string {
	return map[string][]string{
		"Python":                  {"Data Structures", "Algorithms"},
		"Data Structures":         {"Algorithms", "Machine Learning"},
		"SQL":                     {"Database Management", "Data Structures"},
		"Machine Learning":        {"Artificial Intelligence", "Deep Learning"},
		"Artificial Intelligence": {"Deep Learning", "Computer Networks"},
		"Computer Networks":       {"Cybersecurity", "Database Management"},
		"Algorithms":              {"Machine Learning", "Artificial Intelligence"},
		"Database Management":     {"Machine Learning", "SQL"},
		"Cybersecurity":           {"Computer Networks", "Python"},
		"Deep Learning":           {"Machine Learning", "Artificial Intelligence"},
	}
}

// Default returns the graph built from DefaultRelations.
func Default() *Graph {
	g, err := New(DefaultRelations())
	if err != nil {
		panic(fmt.Sprintf("topicgraph: invalid default relations: %v", err))
	}
	return g
}

// New builds a graph from an adjacency table. Successor order is kept.
func New(relations map[string][]string) (*Graph, error) {
	if err := validateRelations(relations); err != nil {
		return nil, err
	}

	g := &Graph{next: make(map[string][]string, len(relations))}
	all := make(map[string]bool)
	for from, to := range relations {
		g.next[from] = slices.Clone(to)
		all[from] = true
		for _, t := range to {
			all[t] = true
		}
	}
	for t := range all {
		g.topics = append(g.topics, t)
	}
	sort.Strings(g.topics)
	return g, nil
}

// Successors returns the topics that follow topic, or nil.
func (g *Graph) Successors(topic string) []string {
	return slices.Clone(g.next[topic])
}

// Topics returns every topic the graph mentions, sorted.
func (g *Graph) Topics() []string {
	return slices.Clone(g.topics)
}

// Restrict returns a copy of the graph keeping only edges between known
// topics. A topic whose successors are all unknown drops out entirely.
func (g *Graph) Restrict(known []string) *Graph {
	k := make(map[string]bool, len(known))
	for _, t := range known {
		k[t] = true
	}

	out := &Graph{next: make(map[string][]string)}
	all := make(map[string]bool)
	for from, to := range g.next {
		if !k[from] {
			continue
		}
		var kept []string
		for _, t := range to {
			if k[t] {
				kept = append(kept, t)
			}
		}
		if len(kept) == 0 {
			continue
		}
		out.next[from] = kept
		all[from] = true
		for _, t := range kept {
			all[t] = true
		}
	}
	for t := range all {
		out.topics = append(out.topics, t)
	}
	sort.Strings(out.topics)
	return out
}

// Check compares the graph with the topics actually present in a bank and
// describes every edge that points at, or starts from, an unknown topic.
// The result is informational: Restrict is what the recommender uses.
func (g *Graph) Check(known []string) []string {
	k := make(map[string]bool, len(known))
	for _, t := range known {
		k[t] = true
	}

	var problems []string
	froms := make([]string, 0, len(g.next))
	for from := range g.next {
		froms = append(froms, from)
	}
	sort.Strings(froms)
	for _, from := range froms {
		if !k[from] {
			problems = append(problems, fmt.Sprintf("topic %q is not in the question bank", from))
			continue
		}
		for _, t := range g.next[from] {
			if !k[t] {
				problems = append(problems, fmt.Sprintf("topic %q points at %q, which is not in the question bank", from, t))
			}
		}
	}
	return problems
}

// validateRelations performs the structural checks on an adjacency table.
// Returns a combined error describing all problems found, or nil if valid.
func validateRelations(relations map[string][]string) error {
	var errs []string

	froms := make([]string, 0, len(relations))
	for from := range relations {
		froms = append(froms, from)
	}
	sort.Strings(froms)

	for _, from := range froms {
		if strings.TrimSpace(from) == "" {
			errs = append(errs, "empty topic name")
			continue
		}
		dup := make(map[string]bool)
		for _, to := range relations[from] {
			switch {
			case strings.TrimSpace(to) == "":
				errs = append(errs, fmt.Sprintf("topic %q has an empty successor", from))
			case to == from:
				errs = append(errs, fmt.Sprintf("topic %q lists itself as a successor", from))
			case dup[to]:
				errs = append(errs, fmt.Sprintf("topic %q lists successor %q twice", from, to))
			}
			dup[to] = true
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("topic graph validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
