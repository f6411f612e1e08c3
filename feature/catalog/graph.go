package catalog

import (
	"errors"
	"fmt"
	"sort"

	"techtree/core/blk"
	"techtree/feature/shop"

	"github.com/dominikbraun/graph"
)

// BuildEdges derives the unlock dependency edges from structural records.
//
// Within each (country, rank) bucket the vehicles form a research sequence
// ordered by (tier row, tier column). A vehicle's primary predecessor is
// the immediately preceding vehicle in that sequence unless the entry
// carries an explicit reference: a non-empty reference is used verbatim
// (it may cross branches or ranks), an empty one means the vehicle is
// researchable from the start. The first vehicle of a non-initial rank
// must carry an explicit cross-rank reference; a missing one means the
// structural format changed and is reported as a shape error.
//
// Every edge endpoint must name a known vehicle and the resulting edge set
// must be acyclic; violations are integrity errors, never silently
// dropped.
func BuildEdges(file string, records []shop.Record) ([]DependencyEdge, error) {
	known := make(map[string]struct{}, len(records))
	for _, rec := range records {
		known[rec.ID] = struct{}{}
	}

	type bucketKey struct {
		country string
		rank    int
	}
	buckets := make(map[bucketKey][]shop.Record)
	var order []bucketKey
	for _, rec := range records {
		k := bucketKey{rec.Country, rec.Rank}
		if _, seen := buckets[k]; !seen {
			order = append(order, k)
		}
		buckets[k] = append(buckets[k], rec)
	}

	var edges []DependencyEdge
	for _, k := range order {
		bucket := buckets[k]
		sort.SliceStable(bucket, func(i, j int) bool {
			if bucket[i].TierRow != bucket[j].TierRow {
				return bucket[i].TierRow < bucket[j].TierRow
			}
			return bucket[i].TierColumn < bucket[j].TierColumn
		})

		for i, rec := range bucket {
			switch {
			case rec.Req != nil && *rec.Req == "":
				// explicitly free, no predecessor
			case rec.Req != nil:
				if _, ok := known[*rec.Req]; !ok {
					return nil, integrityErr("edge for %q references unknown vehicle %q", rec.ID, *rec.Req)
				}
				edges = append(edges, DependencyEdge{FromID: *rec.Req, ToID: rec.ID})
			case i == 0 && rec.Rank > 1:
				return nil, blk.ShapeErr(file,
					fmt.Sprintf("%s/rank[%d]/%s", rec.Country, rec.Rank, rec.ID),
					"an explicit cross-rank unlock reference on the first vehicle of a non-initial rank",
					"none")
			case i == 0:
				// first vehicle of the initial rank starts unlocked
			default:
				edges = append(edges, DependencyEdge{FromID: bucket[i-1].ID, ToID: rec.ID})
			}
		}
	}

	edges = dedupeEdges(edges)
	if err := checkAcyclic(records, edges); err != nil {
		return nil, err
	}
	return edges, nil
}

func dedupeEdges(edges []DependencyEdge) []DependencyEdge {
	seen := make(map[DependencyEdge]struct{}, len(edges))
	out := edges[:0]
	for _, e := range edges {
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}

// checkAcyclic rebuilds the edge set in a cycle-preventing directed graph.
// A rejected edge means the catalog contains an unlock cycle, which is
// always a parser or ordering bug.
func checkAcyclic(records []shop.Record, edges []DependencyEdge) error {
	g := graph.New(graph.StringHash, graph.Directed(), graph.PreventCycles())
	for _, rec := range records {
		// duplicate vertices are fine here, duplicates are handled by merge
		_ = g.AddVertex(rec.ID)
	}
	for _, e := range edges {
		if err := g.AddEdge(e.FromID, e.ToID); err != nil {
			if errors.Is(err, graph.ErrEdgeCreatesCycle) {
				return integrityErr("unlock cycle through %s -> %s", e.FromID, e.ToID)
			}
			if errors.Is(err, graph.ErrEdgeAlreadyExists) {
				continue
			}
			return fmt.Errorf("building dependency graph: %w", err)
		}
	}
	return nil
}
