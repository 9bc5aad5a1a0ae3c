package scenario_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mars-sim/mars-sim-sub053/internal/adapters/scenario"
	"github.com/mars-sim/mars-sim-sub053/internal/application/economy"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/goods"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/shared"
)

const twoBases = `
name: twin bases
start: 100
settlements:
  - id: alpha
    name: Alpha Base
    phi: 1.0
    theta: 0.5
    objective: TRADE_CENTER
    citizens: 12
    resources:
      water: 9000
      methanol: 3000
    items:
      steel sheet: 400
    vehicles:
      cargo rover: 1
    essentials:
      water: {reserve: 40, max: 4000}
  - id: beta
    phi: 1.02
    theta: 0.52
    citizens: 20
    resources:
      water: 200
    disabled_missions: [delivery]
`

func newLoader(t *testing.T) *scenario.Loader {
	t.Helper()
	loader, err := scenario.NewLoader()
	require.NoError(t, err)
	return loader
}

func TestParse_ReadsSettlements(t *testing.T) {
	// Arrange
	loader := newLoader(t)

	// Act
	doc, err := loader.Parse([]byte(twoBases))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "twin bases", doc.Name)
	assert.Equal(t, shared.SimTime(100), doc.StartTime())
	require.Len(t, doc.Settlements, 2)
	alpha := doc.Settlements[0]
	assert.Equal(t, "alpha", alpha.ID)
	assert.Equal(t, 9000.0, alpha.Resources[goods.Water])
	assert.Equal(t, 1, alpha.Vehicles["cargo rover"])
	assert.Equal(t, 40, alpha.Essentials[goods.Water].Reserve)
	assert.Equal(t, []string{"delivery"}, doc.Settlements[1].Disabled)
}

func TestParse_RejectsInvalidDocuments(t *testing.T) {
	loader := newLoader(t)
	tests := []struct {
		name string
		body string
	}{
		{"not yaml", "settlements: [\n"},
		{"single settlement", "settlements:\n  - {id: a, phi: 1, theta: 0}\n"},
		{"missing coordinates", "settlements:\n  - {id: a, phi: 1}\n  - {id: b, phi: 1, theta: 0}\n"},
		{"unknown field", "settlements:\n  - {id: a, phi: 1, theta: 0, colour: red}\n  - {id: b, phi: 1, theta: 0}\n"},
		{"negative stock", "settlements:\n  - {id: a, phi: 1, theta: 0, resources: {water: -5}}\n  - {id: b, phi: 1, theta: 0}\n"},
		{"phi out of range", "settlements:\n  - {id: a, phi: 4, theta: 0}\n  - {id: b, phi: 1, theta: 0}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loader.Parse([]byte(tt.body))

			assert.Error(t, err)
		})
	}
}

func TestParse_RejectsDuplicateIDs(t *testing.T) {
	loader := newLoader(t)

	_, err := loader.Parse([]byte("settlements:\n  - {id: a, phi: 1, theta: 0}\n  - {id: a, phi: 1, theta: 0.1}\n"))

	assert.ErrorIs(t, err, scenario.ErrDuplicateID)
}

func TestBuildCatalog_DefaultsToStandard(t *testing.T) {
	loader := newLoader(t)
	doc, err := loader.Parse([]byte(twoBases))
	require.NoError(t, err)

	catalog, err := doc.BuildCatalog()

	require.NoError(t, err)
	_, err = catalog.LookupByName("cargo rover")
	assert.NoError(t, err)
}

func TestBuildCatalog_UsesScenarioCatalog(t *testing.T) {
	loader := newLoader(t)
	body := twoBases + `
catalog:
  resources:
    - {name: water, type: COMPOUND, phase: LIQUID, life_support: true}
    - {name: methanol, type: COMPOUND, phase: LIQUID}
  parts:
    - {name: steel sheet, type: METALLIC, mass: 3}
  equipment:
    - {name: barrel, mass: 5, capacity: 200, holds: LIQUID}
  vehicles:
    - {name: cargo rover, mass: 6000, cargo_capacity: 8000, base_speed: 25, fuel_resource: methanol, fuel_economy: 2, fuel_capacity: 1500, crew_capacity: 2}
  processes:
    - name: roll steel sheet
      kind: MANUFACTURING
      inputs: [{name: water, kind: AMOUNT_RESOURCE, amount: 1}]
      outputs: [{name: steel sheet, kind: PART, amount: 1}]
      work_time: 100
`
	doc, err := loader.Parse([]byte(body))
	require.NoError(t, err)

	catalog, err := doc.BuildCatalog()

	require.NoError(t, err)
	assert.Equal(t, 5, catalog.Len())
	_, err = catalog.LookupByName(goods.Oxygen)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestLoadFile_MissingFile(t *testing.T) {
	loader := newLoader(t)

	_, err := loader.LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))

	assert.Error(t, err)
}

func TestGenerate_IsDeterministicAndLoadable(t *testing.T) {
	// Arrange
	loader := newLoader(t)

	// Act
	first, err := scenario.Generate(7, 5)
	require.NoError(t, err)
	second, err := scenario.Generate(7, 5)
	require.NoError(t, err)
	data, err := scenario.Marshal(first)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "generated.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	loaded, err := loader.LoadFile(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, first.Settlements, loaded.Settlements)
	require.Len(t, loaded.Settlements, 5)

	catalog, err := loaded.BuildCatalog()
	require.NoError(t, err)
	engine, err := economy.NewEngine(catalog, loaded.StartTime(), loaded.Settlements, economy.DefaultConfig())
	require.NoError(t, err)
	assert.Len(t, engine.SettlementIDs(), 5)
}

func TestGenerate_DifferentSeedsDiffer(t *testing.T) {
	a, err := scenario.Generate(1, 3)
	require.NoError(t, err)
	b, err := scenario.Generate(2, 3)
	require.NoError(t, err)

	assert.NotEqual(t, a.Settlements[0].Resources, b.Settlements[0].Resources)
}

func TestGenerate_NeedsTwoSettlements(t *testing.T) {
	_, err := scenario.Generate(1, 1)

	assert.Error(t, err)
}
