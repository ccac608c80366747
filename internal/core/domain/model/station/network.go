package station

import (
	"errors"

	"relaypost/internal/core/domain/model/kernel"
	"relaypost/internal/pkg/errs"
)

// Errors returned by Network construction and routing.
var (
	// ErrNoPathFound is returned when two stations sit in disconnected
	// components of the network.
	ErrNoPathFound = errors.New("no path found between stations")
	// ErrDuplicateStation is returned when the same station id appears twice
	// in a network definition.
	ErrDuplicateStation = errors.New("duplicate station in network definition")
	// ErrUnknownNeighbor is returned when a station links to an id that is
	// not part of the network definition.
	ErrUnknownNeighbor = errors.New("station links to an unknown neighbor")
)

// Network is the immutable transit graph. It is built once from the full
// station list and safe for concurrent reads afterwards.
//
// The graph is undirected: a link listed on either endpoint connects both.
// Adjacency preserves definition order (first the station's own neighbor
// list, then reverse links in overall station order), which makes BFS
// results and therefore planned paths deterministic.
type Network struct {
	order     []kernel.UUID
	stations  map[kernel.UUID]Station
	adjacency map[kernel.UUID][]kernel.UUID
}

// NewNetwork builds a Network from the given stations.
// Every neighbor reference must resolve to a station in the list.
func NewNetwork(stations []Station) (*Network, error) {
	n := &Network{
		order:     make([]kernel.UUID, 0, len(stations)),
		stations:  make(map[kernel.UUID]Station, len(stations)),
		adjacency: make(map[kernel.UUID][]kernel.UUID, len(stations)),
	}

	for _, s := range stations {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if _, ok := n.stations[s.ID()]; ok {
			return nil, ErrDuplicateStation
		}
		n.order = append(n.order, s.ID())
		n.stations[s.ID()] = s
	}

	for _, id := range n.order {
		for _, neighbor := range n.stations[id].Neighbors() {
			if _, ok := n.stations[neighbor]; !ok {
				return nil, ErrUnknownNeighbor
			}
			n.link(id, neighbor)
			n.link(neighbor, id)
		}
	}

	return n, nil
}

// link records a directed edge unless it is already present.
func (n *Network) link(from, to kernel.UUID) {
	for _, existing := range n.adjacency[from] {
		if existing.IsEqual(to) {
			return
		}
	}
	n.adjacency[from] = append(n.adjacency[from], to)
}

// Contains reports whether the station id is part of the network.
func (n *Network) Contains(id kernel.UUID) bool {
	_, ok := n.stations[id]
	return ok
}

// Station returns the station with the given id.
func (n *Network) Station(id kernel.UUID) (Station, error) {
	s, ok := n.stations[id]
	if !ok {
		return Station{}, errs.NewObjectNotFoundError("station", id.String())
	}
	return s, nil
}

// Size returns the number of stations in the network.
func (n *Network) Size() int {
	return len(n.order)
}

// HopDistance returns the number of edges on a shortest route between two
// stations. The distance from a station to itself is zero. Fails with an
// ObjectNotFoundError when either id is unknown and with ErrNoPathFound when
// the stations are disconnected.
func (n *Network) HopDistance(from, to kernel.UUID) (int, error) {
	path, err := n.ShortestPath(from, to)
	if err != nil {
		return 0, err
	}
	return len(path) - 1, nil
}

// ShortestPath returns the station ids along a shortest route, including both
// endpoints. Runs a breadth-first search in O(V+E); the network is small and
// static, so no path cache is kept. Same failure modes as HopDistance.
func (n *Network) ShortestPath(from, to kernel.UUID) ([]kernel.UUID, error) {
	if _, ok := n.stations[from]; !ok {
		return nil, errs.NewObjectNotFoundError("station", from.String())
	}
	if _, ok := n.stations[to]; !ok {
		return nil, errs.NewObjectNotFoundError("station", to.String())
	}

	if from.IsEqual(to) {
		return []kernel.UUID{from}, nil
	}

	parent := map[kernel.UUID]kernel.UUID{from: from}
	queue := []kernel.UUID{from}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, neighbor := range n.adjacency[current] {
			if _, seen := parent[neighbor]; seen {
				continue
			}
			parent[neighbor] = current

			if neighbor.IsEqual(to) {
				return n.reconstruct(parent, from, to), nil
			}
			queue = append(queue, neighbor)
		}
	}

	return nil, ErrNoPathFound
}

// reconstruct walks the parent links back from the destination.
func (n *Network) reconstruct(parent map[kernel.UUID]kernel.UUID, from, to kernel.UUID) []kernel.UUID {
	path := []kernel.UUID{to}
	for current := to; !current.IsEqual(from); {
		current = parent[current]
		path = append(path, current)
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
