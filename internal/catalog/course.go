package catalog

import (
	"encoding/json"
	"errors"
	"strings"
)

// Course is a catalog entry as served by the backend.
type Course struct {
	ID    string `json:"_id"`
	Title string `json:"title"`
	Image Image  `json:"image"`
}

// Image holds the course thumbnail location.
type Image struct {
	URL string `json:"url"`
}

var errMissingID = errors.New("course without id")

// UnmarshalJSON accepts both the Mongo style "_id" and a plain "id".
func (c *Course) UnmarshalJSON(data []byte) error {
	var raw struct {
		MongoID string `json:"_id"`
		ID      string `json:"id"`
		Title   string `json:"title"`
		Image   Image  `json:"image"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	id := raw.MongoID
	if id == "" {
		id = raw.ID
	}
	if strings.TrimSpace(id) == "" {
		return errMissingID
	}
	*c = Course{ID: id, Title: raw.Title, Image: raw.Image}
	return nil
}

// BuyPath is the route a course card links to.
func (c Course) BuyPath() string {
	return "/buy/" + c.ID
}
