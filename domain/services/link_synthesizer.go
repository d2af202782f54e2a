package services

import (
	"fmt"
	"math/rand/v2"
	"time"

	"socialgraph/domain/core/aggregates"
	"socialgraph/domain/core/valueobjects"
	pkgerrors "socialgraph/pkg/errors"
)

// SynthesisOptions controls random link generation
type SynthesisOptions struct {
	// MinLinks and MaxLinks bound the number of links each node initiates (inclusive)
	MinLinks int
	MaxLinks int
	// MaxAttempts caps rejection sampling for a single link
	MaxAttempts int
	// Seed makes generation reproducible; 0 derives a seed from the clock
	Seed int64
}

// DefaultSynthesisOptions returns 2-4 links per node with a 1000 sample cap
func DefaultSynthesisOptions() SynthesisOptions {
	return SynthesisOptions{
		MinLinks:    2,
		MaxLinks:    4,
		MaxAttempts: 1000,
	}
}

// Validate checks the option ranges
func (o SynthesisOptions) Validate() error {
	if o.MinLinks < 0 {
		return pkgerrors.NewValidationError("min links cannot be negative")
	}
	if o.MaxLinks < o.MinLinks {
		return pkgerrors.NewValidationError(fmt.Sprintf("max links (%d) must be >= min links (%d)", o.MaxLinks, o.MinLinks))
	}
	if o.MaxAttempts < 1 {
		return pkgerrors.NewValidationError("max attempts must be at least 1")
	}
	return nil
}

// NodeQuota records what synthesis did for one initiating node
type NodeQuota struct {
	Node      valueobjects.NodeID `json:"node"`
	Chosen    int                 `json:"chosen"`
	Created   int                 `json:"created"`
	Abandoned int                 `json:"abandoned"`
}

// SynthesisReport summarizes a synthesis run
type SynthesisReport struct {
	Seed         int64       `json:"seed"`
	Quotas       []NodeQuota `json:"quotas"`
	LinksCreated int         `json:"links_created"`
	Abandoned    int         `json:"abandoned"`
}

// LinkSynthesizer generates random undirected links between a graph's nodes
type LinkSynthesizer struct {
	opts SynthesisOptions
}

// NewLinkSynthesizer creates a synthesizer with validated options
func NewLinkSynthesizer(opts SynthesisOptions) (*LinkSynthesizer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &LinkSynthesizer{opts: opts}, nil
}

// Options returns the synthesizer's configuration
func (s *LinkSynthesizer) Options() SynthesisOptions {
	return s.opts
}

// Synthesize adds links to graph. Each node, in insertion order, picks a link count
// uniformly in [MinLinks, MaxLinks] and samples targets until one is neither itself nor
// already linked to it. A link whose sampling exceeds MaxAttempts is abandoned.
func (s *LinkSynthesizer) Synthesize(graph *aggregates.Graph) (*SynthesisReport, error) {
	if graph == nil {
		return nil, pkgerrors.NewValidationError("graph cannot be nil")
	}

	seed := s.opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1^0x9e3779b97f4a7c15))

	nodes := graph.NodeIDs()
	n := len(nodes)

	degree := make(map[valueobjects.NodeID]int, n)
	for _, link := range graph.Links() {
		degree[link.Source]++
		degree[link.Target]++
	}

	report := &SynthesisReport{
		Seed:   seed,
		Quotas: make([]NodeQuota, 0, n),
	}

	span := s.opts.MaxLinks - s.opts.MinLinks + 1
	for i, node := range nodes {
		quota := NodeQuota{
			Node:   node,
			Chosen: s.opts.MinLinks + rng.IntN(span),
		}

		for e := 0; e < quota.Chosen; e++ {
			// Saturated: every other node is already a neighbor.
			if degree[node] >= n-1 {
				quota.Abandoned += quota.Chosen - e
				break
			}

			target, ok := s.sampleTarget(rng, graph, nodes, i)
			if !ok {
				quota.Abandoned++
				continue
			}

			if _, err := graph.Connect(node, target); err != nil {
				return nil, pkgerrors.Wrap(err, "synthesize link")
			}
			degree[node]++
			degree[target]++
			quota.Created++
		}

		report.LinksCreated += quota.Created
		report.Abandoned += quota.Abandoned
		report.Quotas = append(report.Quotas, quota)
	}

	return report, nil
}

func (s *LinkSynthesizer) sampleTarget(rng *rand.Rand, graph *aggregates.Graph, nodes []valueobjects.NodeID, self int) (valueobjects.NodeID, bool) {
	for attempt := 0; attempt < s.opts.MaxAttempts; attempt++ {
		j := rng.IntN(len(nodes))
		if j == self || graph.IsLinked(nodes[self], nodes[j]) {
			continue
		}
		return nodes[j], true
	}
	return valueobjects.NodeID{}, false
}
