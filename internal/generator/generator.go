// Package generator produces randomized activity events for seeding a
// downstream events table.
package generator

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/user/eventseeder/internal/event"
	"github.com/user/eventseeder/pkg/logger"
)

const (
	// Bounded retry budgets; exhaustion falls back to a random token
	// instead of looping forever.
	maxIDAttempts  = 100
	maxSHAAttempts = 100

	// CreatedAt jitter upper bound in seconds.
	createdAtJitterSec = 3600

	// First PR number per (owner, repo) is seeded in [1, prCounterSeedMax].
	prCounterSeedMax = 1000

	defaultSHAAlphabet = "0123456789abcdef"
	defaultSHALength   = 7
)

// Generator samples events from its pools. All uniqueness bookkeeping is
// scoped to one Generator instance and discarded with it.
type Generator struct {
	rng   *rand.Rand
	pools Pools

	shaAlphabet string
	shaLength   int

	usedIDs    map[string]struct{}
	prCounters map[string]int
	commitSHAs map[string]map[string]struct{}
}

// New creates a generator over the given pools. A zero seed derives one
// from the wall clock; any other value makes runs reproducible.
func New(pools Pools, seed int64) (*Generator, error) {
	if err := pools.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pools: %w", err)
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{
		rng:         rand.New(rand.NewSource(seed)),
		pools:       pools,
		shaAlphabet: defaultSHAAlphabet,
		shaLength:   defaultSHALength,
		usedIDs:     make(map[string]struct{}),
		prCounters:  make(map[string]int),
		commitSHAs:  make(map[string]map[string]struct{}),
	}, nil
}

// Generate produces count events with timestamps uniformly distributed in
// [start, end] at second granularity, sorted ascending by timestamp. Event
// IDs are unique across the returned collection.
func (g *Generator) Generate(count int, start, end time.Time) ([]event.Event, error) {
	if count < 0 {
		return nil, fmt.Errorf("count must not be negative, got %d", count)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("window end %s is before window start %s",
			end.Format(time.RFC3339), start.Format(time.RFC3339))
	}

	start = start.Truncate(time.Second)
	end = end.Truncate(time.Second)

	events := make([]event.Event, 0, count)
	for i := 0; i < count; i++ {
		events = append(events, g.next(start, end))
	}

	// Stable sort keeps generation order on equal timestamps.
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})

	return events, nil
}

// next samples one event's dimensions and builds its payload and ID.
func (g *Generator) next(start, end time.Time) event.Event {
	ownerType := event.OwnerOrganization
	owner := ""
	if g.rng.Intn(2) == 0 {
		owner = g.pick(g.pools.Orgs)
	} else {
		ownerType = event.OwnerUser
		owner = g.pick(g.pools.Users)
	}

	repo := g.pick(g.pools.Repos)
	member := g.pick(g.pools.Members)
	typ := g.pools.Types[g.rng.Intn(len(g.pools.Types))]

	id, payload := g.uniquePayload(typ, owner, repo)

	ts := g.timestampIn(start, end)
	createdAt := ts.Add(time.Duration(g.rng.Intn(createdAtJitterSec+1)) * time.Second)

	return event.Event{
		ID:        id,
		Type:      typ,
		Owner:     owner,
		OwnerType: ownerType,
		Repo:      repo,
		Member:    member,
		Timestamp: ts,
		Payload:   payload,
		CreatedAt: createdAt,
	}
}

// uniquePayload builds a type-specific payload and an event ID derived
// from its discriminator. An ID collision rebuilds the payload up to
// maxIDAttempts times; exhaustion falls back to a random-token ID so the
// loop always terminates.
func (g *Generator) uniquePayload(t event.Type, owner, repo string) (string, event.Payload) {
	var payload event.Payload
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		payload = g.buildPayload(t, owner, repo)
		id := eventID(owner, repo, payload)
		if _, taken := g.usedIDs[id]; !taken {
			g.usedIDs[id] = struct{}{}
			return id, payload
		}
	}

	id := fmt.Sprintf("%s-%s-%s-%s", owner, repo, t, g.token())
	g.usedIDs[id] = struct{}{}
	logger.Debug().
		Str("owner", owner).
		Str("repo", repo).
		Str("type", string(t)).
		Msg("ID attempts exhausted, using random token")
	return id, payload
}

// buildPayload samples the type-specific fields.
func (g *Generator) buildPayload(t event.Type, owner, repo string) event.Payload {
	switch t {
	case event.TypeCommit:
		return event.CommitPayload{
			SHA:          g.uniqueSHA(owner, repo),
			Message:      g.pick(g.pools.CommitMessages),
			Additions:    g.intBetween(10, 500),
			Deletions:    g.intBetween(5, 300),
			FilesChanged: g.intBetween(1, 20),
		}
	case event.TypePullRequest:
		return event.PullRequestPayload{
			Number:       g.nextPRNumber(owner, repo),
			Title:        g.pick(g.pools.PRTitles),
			State:        g.pick(g.pools.PRStates),
			Additions:    g.intBetween(50, 1000),
			Deletions:    g.intBetween(20, 500),
			FilesChanged: g.intBetween(1, 30),
		}
	case event.TypeDeploy:
		return event.DeployPayload{
			ID:          g.token(),
			Environment: g.pick(g.pools.Environments),
			Status:      g.pick(g.pools.DeployStatuses),
			Ref:         g.pick(g.pools.Refs),
			SHA:         g.randomSHA(),
		}
	default:
		// Pools.Validate rejects unknown types.
		panic(fmt.Sprintf("unknown event type: %s", t))
	}
}

// eventID derives the deterministic ID from an event's discriminator.
func eventID(owner, repo string, p event.Payload) string {
	switch p := p.(type) {
	case event.CommitPayload:
		return fmt.Sprintf("%s-%s-commit-%s", owner, repo, p.SHA)
	case event.PullRequestPayload:
		return fmt.Sprintf("%s-%s-pr-%d", owner, repo, p.Number)
	case event.DeployPayload:
		return fmt.Sprintf("%s-%s-deploy-%s", owner, repo, p.ID)
	default:
		return fmt.Sprintf("%s-%s-%s", owner, repo, p.Kind())
	}
}

// nextPRNumber returns the next PR number for (owner, repo). The first
// number per key is seeded randomly, later ones increment by one, so the
// sequence is strictly increasing within a run.
func (g *Generator) nextPRNumber(owner, repo string) int {
	key := ownerRepoKey(owner, repo)
	if n, ok := g.prCounters[key]; ok {
		g.prCounters[key] = n + 1
	} else {
		g.prCounters[key] = 1 + g.rng.Intn(prCounterSeedMax)
	}
	return g.prCounters[key]
}

// uniqueSHA returns a short commit SHA unused within (owner, repo),
// resampling up to maxSHAAttempts times before accepting a duplicate.
func (g *Generator) uniqueSHA(owner, repo string) string {
	key := ownerRepoKey(owner, repo)
	used, ok := g.commitSHAs[key]
	if !ok {
		used = make(map[string]struct{})
		g.commitSHAs[key] = used
	}

	sha := g.randomSHA()
	for attempt := 0; attempt < maxSHAAttempts; attempt++ {
		if _, taken := used[sha]; !taken {
			break
		}
		sha = g.randomSHA()
	}
	used[sha] = struct{}{}
	return sha
}

// randomSHA samples a short commit SHA.
func (g *Generator) randomSHA() string {
	b := make([]byte, g.shaLength)
	for i := range b {
		b[i] = g.shaAlphabet[g.rng.Intn(len(g.shaAlphabet))]
	}
	return string(b)
}

// token draws a UUID from the generator's RNG so a fixed seed reproduces
// deploy identifiers and fallback IDs.
func (g *Generator) token() string {
	u, err := uuid.NewRandomFromReader(g.rng)
	if err != nil {
		// rand.Rand.Read never fails; keep a safe fallback anyway.
		return uuid.New().String()
	}
	return u.String()
}

// timestampIn samples a second-granularity time in [start, end].
func (g *Generator) timestampIn(start, end time.Time) time.Time {
	span := int64(end.Sub(start)/time.Second) + 1
	return start.Add(time.Duration(g.rng.Int63n(span)) * time.Second)
}

// intBetween samples uniformly from [lo, hi].
func (g *Generator) intBetween(lo, hi int) int {
	return lo + g.rng.Intn(hi-lo+1)
}

func (g *Generator) pick(items []string) string {
	return items[g.rng.Intn(len(items))]
}

func ownerRepoKey(owner, repo string) string {
	return owner + "/" + repo
}
