package serve

import (
	"techtree/feature/catalog"

	"go.uber.org/zap"
)

// Service answers catalog queries from an in-memory pipeline result. The
// result is immutable for the lifetime of the server, so no locking is
// needed.
type Service struct {
	result *catalog.Result
	logger *zap.Logger

	byID    map[string]catalog.VehicleRecord
	edgesTo map[string][]catalog.DependencyEdge
}

// NewService indexes a pipeline result for serving.
func NewService(result *catalog.Result, logger *zap.Logger) *Service {
	s := &Service{
		result:  result,
		logger:  logger,
		byID:    make(map[string]catalog.VehicleRecord, len(result.Vehicles)),
		edgesTo: make(map[string][]catalog.DependencyEdge, len(result.Edges)),
	}
	for _, v := range result.Vehicles {
		s.byID[v.InternalID] = v
	}
	for _, e := range result.Edges {
		s.edgesTo[e.ToID] = append(s.edgesTo[e.ToID], e)
	}
	return s
}

// ListVehicles returns the vehicles matching the given filters. Empty
// country matches everything; a nil premium filter matches both kinds.
func (s *Service) ListVehicles(country string, rank int, premium *bool) []catalog.VehicleRecord {
	out := make([]catalog.VehicleRecord, 0, len(s.result.Vehicles))
	for _, v := range s.result.Vehicles {
		if country != "" && v.Country != country {
			continue
		}
		if rank > 0 && v.Rank != rank {
			continue
		}
		if premium != nil && v.Premium != *premium {
			continue
		}
		out = append(out, v)
	}
	return out
}

// GetVehicle looks up one vehicle by its canonical id.
func (s *Service) GetVehicle(id string) (catalog.VehicleRecord, bool) {
	v, ok := s.byID[id]
	return v, ok
}

// Prerequisites returns the unlock edges pointing at the given vehicle.
func (s *Service) Prerequisites(id string) []catalog.DependencyEdge {
	return s.edgesTo[id]
}

// ListEdges returns all unlock edges, optionally filtered by endpoint.
func (s *Service) ListEdges(from, to string) []catalog.DependencyEdge {
	out := make([]catalog.DependencyEdge, 0, len(s.result.Edges))
	for _, e := range s.result.Edges {
		if from != "" && e.FromID != from {
			continue
		}
		if to != "" && e.ToID != to {
			continue
		}
		out = append(out, e)
	}
	return out
}

// ListRankRequirements returns the rank gates, optionally for one country.
func (s *Service) ListRankRequirements(country string) []catalog.RankRequirement {
	out := make([]catalog.RankRequirement, 0, len(s.result.RankRequirements))
	for _, r := range s.result.RankRequirements {
		if country != "" && r.Country != country {
			continue
		}
		out = append(out, r)
	}
	return out
}

// RunID reports which pipeline run produced the served catalog.
func (s *Service) RunID() string {
	return s.result.RunID
}
