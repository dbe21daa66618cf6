// Package pathutil holds helpers shared by the search entry points.
package pathutil

// ReconstructPath walks cameFrom backward from current until start and
// returns the sequence start→current inclusive. It returns nil when current
// is not connected to start through cameFrom.
func ReconstructPath[NodeType comparable](
	cameFrom map[NodeType]NodeType,
	current NodeType,
	start NodeType,
) []NodeType {
	path := []NodeType{current}
	for current != start {
		previousNode, exists := cameFrom[current]
		if !exists {
			return nil
		}
		path = append(path, previousNode)
		current = previousNode
	}
	// reverse path
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path
}
