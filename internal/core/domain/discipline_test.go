package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Test helpers ---

func testCatalog() []Discipline {
	return []Discipline{
		{Code: "MC102", Name: "Algoritmos e Programação de Computadores"},
		{
			Code: "MC202",
			Name: "Estruturas de Dados",
			Reqs: []RequirementGroup{
				{{Code: "MC102"}},
			},
		},
		{
			Code: "MC322",
			Name: "Programação Orientada a Objetos",
			Reqs: []RequirementGroup{
				{{Code: "MC202"}},
				{{Code: "AA200"}, {Code: "MC102", Partial: true}},
			},
		},
	}
}

// --- Tests ---

func TestIsDisciplineCode(t *testing.T) {
	assert.True(t, IsDisciplineCode("MC102"))
	assert.True(t, IsDisciplineCode("F 128"))
	assert.False(t, IsDisciplineCode("MC10"))
	assert.False(t, IsDisciplineCode("*MC102"))
	assert.False(t, IsDisciplineCode(""))
}

func TestCodes(t *testing.T) {
	codes := Codes(testCatalog())

	assert.Equal(t, []string{"MC102", "MC202", "MC322"}, codes.Values())
}

func TestMarkSpecialRequirements(t *testing.T) {
	catalog := testCatalog()

	MarkSpecialRequirements(catalog)

	// MC202's prerequisite exists in the catalog.
	assert.False(t, catalog[1].Reqs[0][0].Special)

	// AA200 is not a catalog subject; MC102 is.
	assert.True(t, catalog[2].Reqs[1][0].Special)
	assert.False(t, catalog[2].Reqs[1][1].Special)
}

func TestRequiredBy(t *testing.T) {
	catalog := testCatalog()

	dependents := RequiredBy(catalog, "MC102")
	assert.Equal(t, []string{"MC202", "MC322"}, dependents.Values())

	assert.Zero(t, RequiredBy(catalog, "HZ291").Len())
}

func TestDiscipline_JSONShape(t *testing.T) {
	d := Discipline{
		Code: "MC202",
		Name: "Estruturas de Dados",
		Reqs: []RequirementGroup{
			{{Code: "MC102", Partial: true}},
		},
	}

	data, err := json.Marshal(d)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"code": "MC202",
		"name": "Estruturas de Dados",
		"reqs": [[{"code": "MC102", "partial": true}]]
	}`, string(data))
}

func TestDiscipline_JSONOmitsEmptyReqs(t *testing.T) {
	data, err := json.Marshal(Discipline{Code: "MC102", Name: "Algoritmos"})
	require.NoError(t, err)

	assert.JSONEq(t, `{"code": "MC102", "name": "Algoritmos"}`, string(data))
}

func TestDisciplineSearch_Descriptor(t *testing.T) {
	d := testCatalog()[0]

	require.Len(t, DisciplineSearch.Fields, 2)
	assert.Equal(t, "MC102", DisciplineSearch.Fields[0].Value(d))
	assert.Equal(t, d.Name, DisciplineSearch.Fields[1].Value(d))
	assert.Equal(t, "MC102", DisciplineSearch.SortKey(d))

	summary := DisciplineSearch.Project(d)
	assert.Equal(t, DisciplineSummary{Code: "MC102", Name: d.Name}, summary)
}
