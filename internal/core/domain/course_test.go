package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourse_Semesters(t *testing.T) {
	single := Course{
		Code: "42",
		Name: "Ciência da Computação",
		Tree: []CodeSet{
			NewOrderedSet("MC102", "MA111"),
			NewOrderedSet("MC202"),
		},
	}
	assert.Equal(t, 2, single.Semesters())

	withVariants := Course{
		Code: "34",
		Name: "Engenharia",
		Variants: []Variant{
			{Name: "AA", Tree: []CodeSet{NewOrderedSet("F 128")}},
			{Name: "AB", Tree: []CodeSet{NewOrderedSet("F 128"), NewOrderedSet("F 228"), NewOrderedSet("F 328")}},
		},
	}
	assert.Equal(t, 3, withVariants.Semesters())

	assert.Zero(t, Course{Code: "1", Name: "X"}.Semesters())
}

func TestCourse_JSONShape(t *testing.T) {
	c := Course{
		Code: "42",
		Name: "Ciência da Computação",
		Tree: []CodeSet{NewOrderedSet("MC102", "MA111")},
	}

	data, err := json.Marshal(c)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"code": "42",
		"name": "Ciência da Computação",
		"tree": [["MA111", "MC102"]]
	}`, string(data))
}

func TestCourse_JSONVariantKey(t *testing.T) {
	c := Course{
		Code: "34",
		Name: "Engenharia",
		Variants: []Variant{
			{Name: "AA", Tree: []CodeSet{NewOrderedSet("F 128")}},
		},
	}

	data, err := json.Marshal(c)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"code": "34",
		"name": "Engenharia",
		"variant": [{"name": "AA", "tree": [["F 128"]]}]
	}`, string(data))
}

func TestCourse_JSONRoundTrip(t *testing.T) {
	original := Course{
		Code: "42",
		Name: "Ciência da Computação",
		Tree: []CodeSet{NewOrderedSet("MC102", "MA111"), NewOrderedSet("MC202")},
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Course
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, original.Code, decoded.Code)
	assert.Equal(t, original.Name, decoded.Name)
	require.Len(t, decoded.Tree, 2)
	assert.True(t, original.Tree[0].Equal(decoded.Tree[0]))
	assert.True(t, original.Tree[1].Equal(decoded.Tree[1]))
}

func TestCourseSearch_Descriptor(t *testing.T) {
	c := Course{Code: "42", Name: "Ciência da Computação"}

	require.Len(t, CourseSearch.Fields, 2)
	assert.Equal(t, "42", CourseSearch.Fields[0].Value(c))
	assert.Equal(t, c.Name, CourseSearch.Fields[1].Value(c))
	assert.Equal(t, CourseSummary{Code: "42", Name: c.Name}, CourseSearch.Project(c))
}
