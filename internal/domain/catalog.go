package domain

import "context"

// Direction is an event topic.
// swagger:model Direction
type Direction struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// City is where an event takes place.
// swagger:model City
type City struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CatalogRepository reads the direction and city catalogs.
type CatalogRepository interface {
	ListDirections(ctx context.Context) ([]*Direction, error)
	ListCities(ctx context.Context) ([]*City, error)
}

// CatalogService lists the catalogs alphabetically.
type CatalogService interface {
	ListDirections(ctx context.Context) ([]*Direction, error)
	ListCities(ctx context.Context) ([]*City, error)
}
