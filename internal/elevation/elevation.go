// Package elevation post-processes the raw tectonic heightmap: it adds
// coherent detail, carves ocean at the map borders, flood-fills the ocean
// mask from those borders, and derives a normalized sea-depth field.
package elevation

import (
	"context"

	"golang.org/x/sync/errgroup"

	"planetgen/internal/grid"
	"planetgen/internal/noise"
)

// AddNoise adds a coherent-noise field to h in place, then clamps every cell
// to [0,1]. An amplitude of 0 is a no-op (round-trip property). Rows are
// independent writes into disjoint slice regions, so the pass is split
// across goroutines by row range; the result is identical to a sequential
// pass since no row reads another row's output.
func AddNoise(h *grid.Heightmap, seed int64, scale, amplitude float64) {
	if amplitude == 0 {
		return
	}
	field := noise.New(seed, noise.ElevationSalt, 2, 2, 4)

	g, _ := errgroup.WithContext(context.Background())
	for _, rows := range rowChunks(h.Height, rowChunkSize) {
		rows := rows
		g.Go(func() error {
			for y := rows[0]; y < rows[1]; y++ {
				for x := 0; x < h.Width; x++ {
					n := field.At(float64(x)*scale, float64(y)*scale)
					v := h.Get(x, y) + n*amplitude
					if v < 0 {
						v = 0
					}
					if v > 1 {
						v = 1
					}
					h.Set(x, y, v)
				}
			}
			return nil
		})
	}
	_ = g.Wait() // no goroutine returns an error; Wait only blocks for completion
}

// rowChunkSize bounds how many rows a single goroutine handles per AddNoise
// call; small enough to spread work across cores on large worlds, large
// enough that per-goroutine overhead stays negligible on small ones.
const rowChunkSize = 32

func rowChunks(height, size int) [][2]int {
	var chunks [][2]int
	for start := 0; start < height; start += size {
		end := start + size
		if end > height {
			end = height
		}
		chunks = append(chunks, [2]int{start, end})
	}
	return chunks
}

// PlaceOceansAtBorders lowers every outer-ring cell to at most reduction,
// leaving interior cells untouched. Idempotent: calling it twice with the
// same reduction is identical to calling it once, since min(v, r) is
// idempotent.
func PlaceOceansAtBorders(h *grid.Heightmap, reduction float64) {
	for x := 0; x < h.Width; x++ {
		clampBorder(h, x, 0, reduction)
		clampBorder(h, x, h.Height-1, reduction)
	}
	for y := 0; y < h.Height; y++ {
		clampBorder(h, 0, y, reduction)
		clampBorder(h, h.Width-1, y, reduction)
	}
}

func clampBorder(h *grid.Heightmap, x, y int, reduction float64) {
	if v := h.Get(x, y); v > reduction {
		h.Set(x, y, reduction)
	}
}

// cardinalOffsets are the 4-connected neighbours used by the flood-fill and
// BFS passes in this package; diagonal movement would let flood-fill leak
// across a single-cell-wide ridge, which the specification forbids.
var cardinalOffsets = [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

// FillOcean performs a multi-source BFS from every border cell below
// seaLevel, marking every 4-connected reachable cell below seaLevel as
// ocean. Landlocked sub-sea-level pools are not reachable from the border
// and are therefore left as land (pit filling downstream preserves them as
// basins only when they cross its area and depth thresholds).
func FillOcean(h *grid.Heightmap, seaLevel float64) *grid.BoolGrid {
	ocean := grid.NewBoolGrid(h.Width, h.Height)

	type cell struct{ x, y int }
	queue := make([]cell, 0, h.Width*2+h.Height*2)

	enqueueIfOcean := func(x, y int) {
		if ocean.Get(x, y) {
			return
		}
		if h.Get(x, y) < seaLevel {
			ocean.Set(x, y, true)
			queue = append(queue, cell{x, y})
		}
	}

	for x := 0; x < h.Width; x++ {
		enqueueIfOcean(x, 0)
		enqueueIfOcean(x, h.Height-1)
	}
	for y := 0; y < h.Height; y++ {
		enqueueIfOcean(0, y)
		enqueueIfOcean(h.Width-1, y)
	}

	for i := 0; i < len(queue); i++ {
		c := queue[i]
		for _, off := range cardinalOffsets {
			nx, ny := c.x+off[0], c.y+off[1]
			if nx < 0 || nx >= h.Width || ny < 0 || ny >= h.Height {
				continue
			}
			enqueueIfOcean(nx, ny)
		}
	}

	return ocean
}

// ComputeSeaDepth derives a normalized [0,1] depth field: zero on land,
// increasing with distance below seaLevel on ocean cells, then smoothed at
// the shoreline by a single pass weighted by the fraction of land
// neighbours, so the coastline doesn't show a hard depth step.
func ComputeSeaDepth(h *grid.Heightmap, ocean *grid.BoolGrid, seaLevel float64) *grid.FloatGrid {
	depth := grid.NewFloatGrid(h.Width, h.Height)

	minOceanH := seaLevel
	found := false
	for y := 0; y < h.Height; y++ {
		for x := 0; x < h.Width; x++ {
			if !ocean.Get(x, y) {
				continue
			}
			v := h.Get(x, y)
			if !found || v < minOceanH {
				minOceanH = v
				found = true
			}
		}
	}

	span := seaLevel - minOceanH
	for y := 0; y < h.Height; y++ {
		for x := 0; x < h.Width; x++ {
			if !ocean.Get(x, y) {
				continue
			}
			var d float64
			if span > 0 {
				d = (seaLevel - h.Get(x, y)) / span
			}
			depth.Set(x, y, clamp01(d))
		}
	}

	return antiAliasShoreline(depth, ocean)
}

// antiAliasShoreline softens the depth discontinuity at the shoreline: each
// ocean cell's depth is blended with the fraction of its 4-connected
// neighbours that are land, pulling shoreline cells toward shallower depth.
func antiAliasShoreline(depth *grid.FloatGrid, ocean *grid.BoolGrid) *grid.FloatGrid {
	out := depth.Clone()
	for y := 0; y < depth.Height; y++ {
		for x := 0; x < depth.Width; x++ {
			if !ocean.Get(x, y) {
				continue
			}
			landNeighbours, total := 0, 0
			for _, off := range cardinalOffsets {
				nx, ny := x+off[0], y+off[1]
				if nx < 0 || nx >= depth.Width || ny < 0 || ny >= depth.Height {
					continue
				}
				total++
				if !ocean.Get(nx, ny) {
					landNeighbours++
				}
			}
			if total == 0 {
				continue
			}
			landFrac := float64(landNeighbours) / float64(total)
			out.Set(x, y, clamp01(depth.Get(x, y)*(1-landFrac)))
		}
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
