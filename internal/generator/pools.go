package generator

import (
	"fmt"

	"github.com/user/eventseeder/internal/event"
)

// Pools holds the fixed vocabularies events are sampled from. Every list
// must be non-empty; Types restricts which event types a run produces.
type Pools struct {
	Orgs    []string
	Users   []string
	Repos   []string
	Members []string
	Types   []event.Type

	CommitMessages []string
	PRTitles       []string
	PRStates       []string
	Environments   []string
	DeployStatuses []string
	Refs           []string
}

// DefaultPools returns the built-in sample vocabularies.
func DefaultPools() Pools {
	return Pools{
		Orgs:    []string{"acme-corp", "tech-startup", "open-source-org"},
		Users:   []string{"alice", "bob", "charlie", "diana", "eve"},
		Repos:   []string{"web-app", "api-server", "mobile-app", "data-pipeline", "infrastructure", "docs", "frontend", "backend"},
		Members: []string{"alice", "bob", "charlie", "diana", "eve", "frank", "grace", "henry"},
		Types:   event.AllTypes(),
		CommitMessages: []string{
			"Fix bug in authentication",
			"Add new feature",
			"Update documentation",
			"Refactor code",
			"Improve performance",
			"Fix typo",
			"Add tests",
			"Update dependencies",
		},
		PRTitles: []string{
			"Add new feature",
			"Fix critical bug",
			"Update dependencies",
			"Improve documentation",
			"Refactor code",
			"Add tests",
			"Performance improvements",
		},
		PRStates:       []string{"open", "closed", "merged"},
		Environments:   []string{"production", "staging", "development"},
		DeployStatuses: []string{"success", "failure", "pending"},
		Refs:           []string{"main", "develop", "release/v1.0"},
	}
}

// Validate checks that every pool has at least one entry and that Types
// only names known event types.
func (p Pools) Validate() error {
	sizes := []struct {
		name string
		n    int
	}{
		{"orgs", len(p.Orgs)},
		{"users", len(p.Users)},
		{"repos", len(p.Repos)},
		{"members", len(p.Members)},
		{"types", len(p.Types)},
		{"commit messages", len(p.CommitMessages)},
		{"pr titles", len(p.PRTitles)},
		{"pr states", len(p.PRStates)},
		{"environments", len(p.Environments)},
		{"deploy statuses", len(p.DeployStatuses)},
		{"refs", len(p.Refs)},
	}
	for _, pool := range sizes {
		if pool.n == 0 {
			return fmt.Errorf("pool %q must not be empty", pool.name)
		}
	}
	for _, t := range p.Types {
		switch t {
		case event.TypeCommit, event.TypePullRequest, event.TypeDeploy:
		default:
			return fmt.Errorf("unknown event type in pool: %s", t)
		}
	}
	return nil
}
