package handlers

import (
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// pathID parses the {id} path value as an ObjectID.
func pathID(r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	return id, err == nil
}

// queryYear parses an optional ?year= query parameter.
func queryYear(r *http.Request) (*int, bool) {
	raw := r.URL.Query().Get("year")
	if raw == "" {
		return nil, true
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return nil, false
	}
	return &year, true
}

// queryString returns an optional query parameter, treating "" and "all" as
// absent (the dashboard sends "all" for unfiltered dropdowns).
func queryString(r *http.Request, name string) *string {
	raw := r.URL.Query().Get(name)
	if raw == "" || raw == "all" {
		return nil
	}
	return &raw
}

// queryObjectID parses an optional ObjectID query parameter.
func queryObjectID(r *http.Request, name string) (*primitive.ObjectID, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return nil, false
	}
	return &id, true
}
