package blueprint

import (
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/dshills/beltbalancer/pkg/geometry"
	"github.com/dshills/beltbalancer/pkg/model"
)

func TestBuildSkipsEmptyAndMixerCompanion(t *testing.T) {
	a := model.NewAssignment(2, 1, 1)
	a.Set(0, 0, model.Component{Kind: model.MixerAnchor, Dir: geometry.N})
	a.Set(1, 0, model.Component{Kind: model.MixerCompanion, Dir: geometry.N})

	bp := Build(a, "test")
	if len(bp.Entities) != 1 {
		t.Fatalf("got %d entities, want 1 (companion and any empty cells skipped)", len(bp.Entities))
	}
	if bp.Entities[0].Name != "splitter" {
		t.Fatalf("entity name = %q, want splitter", bp.Entities[0].Name)
	}
}

func TestBuildSplitterPositionIsMidpoint(t *testing.T) {
	a := model.NewAssignment(2, 1, 1)
	a.Set(0, 0, model.Component{Kind: model.MixerAnchor, Dir: geometry.N})
	a.Set(1, 0, model.Component{Kind: model.MixerCompanion, Dir: geometry.N})

	bp := Build(a, "test")
	got := bp.Entities[0].Position
	want := Position{X: 0.5, Y: 0}
	if got != want {
		t.Fatalf("splitter position = %+v, want %+v", got, want)
	}
}

func TestBuildEntityNumbersAreSequentialAcrossSkips(t *testing.T) {
	a := model.NewAssignment(3, 1, 1)
	a.Set(0, 0, model.Component{Kind: model.Belt, Dir: geometry.N})
	a.Set(1, 0, model.Component{}) // Empty, skipped
	a.Set(2, 0, model.Component{Kind: model.Belt, Dir: geometry.S})

	bp := Build(a, "test")
	if len(bp.Entities) != 2 {
		t.Fatalf("got %d entities, want 2", len(bp.Entities))
	}
	if bp.Entities[0].EntityNumber != 1 || bp.Entities[1].EntityNumber != 2 {
		t.Fatalf("entity numbers = %d, %d, want 1, 2", bp.Entities[0].EntityNumber, bp.Entities[1].EntityNumber)
	}
}

func TestBuildTunnelEndpointTypes(t *testing.T) {
	a := model.NewAssignment(1, 2, 1)
	a.Set(0, 0, model.Component{Kind: model.TunnelExit, Dir: geometry.N})
	a.Set(0, 1, model.Component{Kind: model.TunnelEntrance, Dir: geometry.N})

	bp := Build(a, "test")
	if len(bp.Entities) != 2 {
		t.Fatalf("got %d entities, want 2", len(bp.Entities))
	}
	byKind := map[string]Entity{}
	for _, e := range bp.Entities {
		byKind[e.Type] = e
	}
	if _, ok := byKind["input"]; !ok {
		t.Fatal("expected one underground-belt entity with type input")
	}
	if _, ok := byKind["output"]; !ok {
		t.Fatal("expected one underground-belt entity with type output")
	}
}

func TestEncodeProducesVersionPrefixedBase64Zlib(t *testing.T) {
	bp := Build(model.NewAssignment(1, 1, 1), "test")
	encoded, err := Encode(bp)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !strings.HasPrefix(encoded, "0") {
		t.Fatalf("encoded string missing version prefix: %q", encoded[:1])
	}

	raw, err := base64.StdEncoding.DecodeString(encoded[1:])
	if err != nil {
		t.Fatalf("base64 decode failed: %v", err)
	}
	zr, err := zlib.NewReader(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("zlib reader failed: %v", err)
	}
	payload, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("zlib read failed: %v", err)
	}

	var decoded Container
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("json unmarshal failed: %v", err)
	}
	if decoded.Blueprint.Label != "test" {
		t.Fatalf("label = %q, want test", decoded.Blueprint.Label)
	}
	if decoded.Blueprint.Version != referenceVersion {
		t.Fatalf("version = %d, want %d", decoded.Blueprint.Version, referenceVersion)
	}
}
