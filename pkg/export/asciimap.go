package export

import (
	"strings"

	"github.com/XiaoConstantine/sco-go/pkg/errors"
	"github.com/XiaoConstantine/sco-go/pkg/optimizer"
)

// RenderASCIIMap draws the first two variables of the population on a
// size x size character grid: 'X' marks hubs, members print their society id
// modulo 10, '.' is empty space. Row zero of the output is the top of the
// map; the y axis is flipped so the lower bound sits at the bottom, as on a
// Cartesian plot.
func RenderASCIIMap(civ *optimizer.Civilization, size int) (string, error) {
	if size < 2 {
		return "", errors.Newf(errors.InvalidInput, "map size must be at least 2, got %d", size)
	}
	bounds := civ.Bounds()
	if bounds.Dim() < 2 {
		return "", errors.New(errors.InvalidInput, "ascii map needs at least 2 variables")
	}
	assignments := civ.Assignments()
	if len(assignments) == 0 || len(civ.Hubs()) == 0 {
		return "", errors.New(errors.InvalidState, "no clusters to display, run at least one step first")
	}

	grid := make([][]byte, size)
	for r := range grid {
		grid[r] = []byte(strings.Repeat(".", size))
	}

	isHub := make(map[int]bool, len(civ.Hubs()))
	for _, h := range civ.Hubs() {
		isHub[h] = true
	}

	for i, ind := range civ.Population() {
		x := (ind.Variables[0] - bounds.Lower[0]) / (bounds.Upper[0] - bounds.Lower[0])
		y := (ind.Variables[1] - bounds.Lower[1]) / (bounds.Upper[1] - bounds.Lower[1])

		col := int(x * float64(size-1))
		row := (size - 1) - int(y*float64(size-1))
		if row < 0 || row >= size || col < 0 || col >= size {
			continue
		}

		// Hubs win the cell when individuals overlap.
		if isHub[i] {
			grid[row][col] = 'X'
		} else if grid[row][col] != 'X' {
			grid[row][col] = byte('0' + assignments[i]%10)
		}
	}

	var b strings.Builder
	b.WriteString("[Map of Civilization (x1 vs x2)]\n")
	b.WriteString("X = hub, digit = society id\n")
	for _, row := range grid {
		b.Write(row)
		b.WriteByte('\n')
	}
	return b.String(), nil
}
