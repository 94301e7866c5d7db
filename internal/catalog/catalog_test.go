package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCourseAcceptsBothIDForms(t *testing.T) {
	var payload struct {
		Data []Course `json:"data"`
	}
	body := `{"data":[
		{"_id":"c1","title":"Intro","image":{"url":"u1"}},
		{"id":"c2","title":"Go","image":{"url":"u2"}}
	]}`
	require.NoError(t, json.Unmarshal([]byte(body), &payload))
	require.Equal(t, []Course{
		{ID: "c1", Title: "Intro", Image: Image{URL: "u1"}},
		{ID: "c2", Title: "Go", Image: Image{URL: "u2"}},
	}, payload.Data)
	require.Equal(t, "/buy/c1", payload.Data[0].BuyPath())
}

func TestCourseWithoutIDIsRejected(t *testing.T) {
	var c Course
	require.Error(t, json.Unmarshal([]byte(`{"title":"orphan"}`), &c))
}

func TestSearch(t *testing.T) {
	courses := []Course{
		{ID: "1", Title: "Intro to Python"},
		{ID: "2", Title: "Advanced Golang"},
		{ID: "3", Title: "Web Design"},
		{ID: "4", Title: "Python for Data"},
	}

	require.Equal(t, courses, Search(courses, "  "))

	got := Search(courses, "python")
	require.Len(t, got, 2)
	require.Equal(t, "1", got[0].ID, "ties keep catalog order")
	require.Equal(t, "4", got[1].ID)

	// one typo still finds the course
	got = Search(courses, "golnag")
	require.Len(t, got, 1)
	require.Equal(t, "2", got[0].ID)

	require.Empty(t, Search(courses, "kubernetes"))
}
