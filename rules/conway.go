package rules

/*
ApplyConwayRules applies Conway's Game of Life rules to determine the next state of a cell.

A live cell survives with 2 or 3 live neighbors and dies otherwise.
A dead cell becomes alive with exactly 3 live neighbors and stays dead otherwise.
*/
func ApplyConwayRules(neighbors int, alive bool) bool {
	if alive {
		return Survives(neighbors)
	}
	return Born(neighbors)
}

// Survives reports whether a live cell with the given neighbor count stays alive
func Survives(neighbors int) bool {
	return neighbors == 2 || neighbors == 3
}

// Born reports whether a dead cell with the given neighbor count comes alive
func Born(neighbors int) bool {
	return neighbors == 3
}
