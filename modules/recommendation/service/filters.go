package service

import (
	"room-booking-api/modules/recommendation/entity"

	"github.com/gosimple/slug"
)

// ApplyFilters keeps the spaces that satisfy the request's hard limits.
// Building and category names are compared in slug form so "Bloc É",
// "bloc e" and "BLOC-E" match.
func ApplyFilters(spaces []entity.Space, req entity.Request) []entity.Space {
	buildings := slugSet(req.AcceptableBuildings)
	categories := slugSet(req.AcceptableCategories)

	out := make([]entity.Space, 0, len(spaces))
	for _, s := range spaces {
		if req.MinCapacity > 0 && s.Capacity < req.MinCapacity {
			continue
		}
		if req.MaxCapacity > 0 && s.Capacity > req.MaxCapacity {
			continue
		}
		if len(buildings) > 0 {
			if _, ok := buildings[slug.Make(s.Building)]; !ok {
				continue
			}
		}
		if len(categories) > 0 {
			if _, ok := categories[slug.Make(s.Category)]; !ok {
				continue
			}
		}
		out = append(out, s)
	}
	return out
}

func slugSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if k := slug.Make(v); k != "" {
			set[k] = struct{}{}
		}
	}
	return set
}
