package blueprint

import (
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/dshills/beltbalancer/pkg/extract"
	"github.com/dshills/beltbalancer/pkg/geometry"
	"github.com/dshills/beltbalancer/pkg/model"
)

// directionCode is the wire encoding of a cardinal direction: the import
// format numbers the eight-way compass clockwise from north in steps of
// two, so only the four cardinals we ever emit are populated.
var directionCode = map[geometry.Dir]int{
	geometry.N: 0,
	geometry.E: 2,
	geometry.S: 4,
	geometry.W: 6,
}

// referenceVersion is the blueprint format version stamp the import feature
// expects verbatim; it is an opaque constant of the external protocol, not
// something this package assigns meaning to.
const referenceVersion int64 = 281479276344320

// Position is a blueprint entity's grid position. Splitters use a
// half-cell-shifted Position since they occupy two grid cells centred on a
// shared edge.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Entity is one placed blueprint object.
type Entity struct {
	EntityNumber int      `json:"entity_number"`
	Name         string   `json:"name"`
	Position     Position `json:"position"`
	Direction    int      `json:"direction,omitempty"`
	Type         string   `json:"type,omitempty"`
}

// Icon is one of the blueprint's preview icons.
type Icon struct {
	Index  int `json:"index"`
	Signal struct {
		Type string `json:"type"`
		Name string `json:"name"`
	} `json:"signal"`
}

// Blueprint is the root exported object.
type Blueprint struct {
	Item     string   `json:"item"`
	Label    string   `json:"label"`
	Icons    []Icon   `json:"icons"`
	Entities []Entity `json:"entities"`
	Version  int64    `json:"version"`
}

// Container wraps Blueprint under the "blueprint" key the import feature
// expects at the JSON root.
type Container struct {
	Blueprint Blueprint `json:"blueprint"`
}

func newIcon(name string) Icon {
	var icon Icon
	icon.Index = 1
	icon.Signal.Type = "item"
	icon.Signal.Name = name
	return icon
}

// Build turns a solved assignment into a Blueprint, walking it in the same
// row-major order pkg/extract defines. Mixer companion cells are skipped:
// a mixer is emitted once, at its anchor, as a single splitter entity
// positioned on the shared edge between the two cells.
func Build(a *model.Assignment, label string) Blueprint {
	bp := Blueprint{
		Item:  "blueprint",
		Label: label,
		Icons: []Icon{newIcon("transport-belt")},
	}

	next := 1
	for _, r := range extract.Walk(a) {
		yExport := float64(a.Height - 1 - r.Y)
		switch r.Component.Kind {
		case model.Empty, model.MixerCompanion:
			continue
		case model.Belt:
			bp.Entities = append(bp.Entities, Entity{
				EntityNumber: next,
				Name:         "transport-belt",
				Position:     Position{X: float64(r.X), Y: yExport},
				Direction:    directionCode[r.Component.Dir],
			})
		case model.MixerAnchor:
			cx, cy := geometry.MixerCompanion(r.X, r.Y, r.Component.Dir)
			centerX := (float64(r.X) + float64(cx)) / 2
			centerY := (float64(a.Height-1-r.Y) + float64(a.Height-1-cy)) / 2
			bp.Entities = append(bp.Entities, Entity{
				EntityNumber: next,
				Name:         "splitter",
				Position:     Position{X: centerX, Y: centerY},
				Direction:    directionCode[r.Component.Dir],
			})
		case model.TunnelEntrance:
			bp.Entities = append(bp.Entities, Entity{
				EntityNumber: next,
				Name:         "underground-belt",
				Position:     Position{X: float64(r.X), Y: yExport},
				Direction:    directionCode[r.Component.Dir],
				Type:         "input",
			})
		case model.TunnelExit:
			bp.Entities = append(bp.Entities, Entity{
				EntityNumber: next,
				Name:         "underground-belt",
				Position:     Position{X: float64(r.X), Y: yExport},
				Direction:    directionCode[r.Component.Dir],
				Type:         "output",
			})
		default:
			continue
		}
		next++
	}

	bp.Version = referenceVersion
	return bp
}

// Encode serialises a Blueprint to the exchange string: compact JSON,
// deflate-in-zlib, standard padded base64, prefixed with the "0" version
// byte. Serialization, compression, and encoding failures are all fatal:
// there is no fallback representation to fall back to.
func Encode(bp Blueprint) (string, error) {
	payload, err := json.Marshal(Container{Blueprint: bp})
	if err != nil {
		return "", fmt.Errorf("blueprint: marshal: %w", err)
	}

	var compressed bytes.Buffer
	w := zlib.NewWriter(&compressed)
	if _, err := w.Write(payload); err != nil {
		return "", fmt.Errorf("blueprint: compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("blueprint: compress: %w", err)
	}

	encoded := base64.StdEncoding.EncodeToString(compressed.Bytes())
	return "0" + encoded, nil
}
