// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-classical.
//
// go-classical is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package railfence

// cell is one position of the decryption grid.
type cell struct {
	r      rune
	filled bool
	gap    bool
}

// period returns the number of columns after which the zigzag repeats.
func period(rails int) int {
	return 2 * (rails - 1)
}

// layout returns the ciphertext as it would read had the first offset
// columns of the fence been present, with those columns marked as gaps.
// Which concatenated positions they occupy depends only on the column rows,
// so the fence of offset+len(text) columns is enciphered without content.
// The rows repeat every period columns, so offset must already be reduced
// below period(rails).
func layout(text []rune, rails, offset int) []cell {
	width := offset + len(text)

	// Rail by rail, the column indexes in ciphertext order.
	byRail := make([][]int, rails)
	for x, row := range Rows(rails, width) {
		byRail[row] = append(byRail[row], x)
	}

	slots := make([]cell, 0, width)
	next := 0
	for _, columns := range byRail {
		for _, x := range columns {
			if x < offset {
				slots = append(slots, cell{gap: true})
				continue
			}
			slots = append(slots, cell{r: text[next]})
			next++
		}
	}
	return slots
}

// grid is the rails x width decryption grid. Every column lies on exactly
// one rail, so only that cell is stored.
type grid struct {
	rails int
	width int
	cells []cell
}

func newGrid(rails, width int) *grid {
	return &grid{rails: rails, width: width, cells: make([]cell, width)}
}

// fill places slots row by row. On each row the column advances by
// 2(rails-r-1) and 2r alternately; the top and bottom rows use a single
// jump of 2(rails-1).
func (g *grid) fill(slots []cell) {
	i := 0
	for rail := 0; rail < g.rails && rail < g.width; rail++ {
		down := rail != g.rails-1
		x := rail
		for x < g.width && i < len(slots) {
			c := slots[i]
			c.filled = true
			g.cells[x] = c
			if down {
				x += 2 * (g.rails - rail - 1)
			} else {
				x += 2 * rail
			}
			if rail != 0 && rail != g.rails-1 {
				down = !down
			}
			i++
		}
	}
}

// read walks the zigzag and collects every filled cell that is not a gap.
func (g *grid) read() string {
	out := make([]rune, 0, g.width)
	for _, c := range g.cells {
		if c.filled && !c.gap {
			out = append(out, c.r)
		}
	}
	return string(out)
}
