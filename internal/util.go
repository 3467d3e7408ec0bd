package internal

// ReconstructPath walks backwards from current using previous until it
// reports no predecessor, and returns the visited elements start first.
func ReconstructPath[T any](current T, previous func(T) (T, bool)) []T {
	path := []T{current}
	for {
		prev, ok := previous(current)
		if !ok {
			break
		}
		path = append(path, prev)
		current = prev
	}
	// reverse path
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path
}
