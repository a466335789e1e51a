// Package extract walks a solved model.Assignment in row-major order and
// yields one placement record per cell, the shape both the blueprint
// exporter and the glyph renderer consume.
package extract
