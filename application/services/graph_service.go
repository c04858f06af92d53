package services

import (
	"context"

	"alchemy-backend/application/ports"

	"go.uber.org/zap"
)

// GraphNode is one element in the discovery graph snapshot
type GraphNode struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	IconURL string `json:"iconUrl"`
}

// GraphLink is one directed parent-to-child fusion edge
type GraphLink struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Graph is the renderable discovery graph snapshot
type Graph struct {
	Nodes []GraphNode `json:"nodes"`
	Links []GraphLink `json:"links"`
}

// GraphService projects stored elements and their provenance into a
// node/link graph for visualization.
type GraphService struct {
	elements ports.ElementRepository
	logger   *zap.Logger
}

// NewGraphService creates a new graph service
func NewGraphService(elements ports.ElementRepository, logger *zap.Logger) *GraphService {
	return &GraphService{
		elements: elements,
		logger:   logger,
	}
}

// BuildGraph returns one node per element and one directed link per parent
// in every element's provenance, so a fused element contributes exactly two
// links and a root contributes none. No cycles are possible by construction:
// parents always existed strictly before their children.
func (s *GraphService) BuildGraph(ctx context.Context) (*Graph, error) {
	elements, err := s.elements.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	graph := &Graph{
		Nodes: make([]GraphNode, 0, len(elements)),
		Links: make([]GraphLink, 0, len(elements)*2),
	}

	for _, el := range elements {
		graph.Nodes = append(graph.Nodes, GraphNode{
			ID:      el.ID,
			Name:    el.Name,
			IconURL: el.IconURL,
		})
		for _, parentID := range el.CombinedFrom {
			graph.Links = append(graph.Links, GraphLink{
				Source: parentID,
				Target: el.ID,
			})
		}
	}

	s.logger.Debug("Built discovery graph",
		zap.Int("nodes", len(graph.Nodes)),
		zap.Int("links", len(graph.Links)),
	)

	return graph, nil
}
