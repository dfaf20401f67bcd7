package stor

import (
	"sort"
	"time"

	"github.com/astroedu/astroedu/pkg/aedb/aemodel"
	"github.com/astroedu/astroedu/pkg/visibility"
)

type InMemoryCollectionStor struct {
	collections []aemodel.Collection
}

func NewInMemoryCollectionStor(collections []aemodel.Collection) *InMemoryCollectionStor {
	return &InMemoryCollectionStor{collections: collections}
}

func (s *InMemoryCollectionStor) CreateCollection(collection *aemodel.Collection) (*aemodel.Collection, error) {
	collection.ID = len(s.collections) + 1
	s.collections = append(s.collections, *collection)
	return collection, nil
}

func (s *InMemoryCollectionStor) ListCollections(viewer visibility.Viewer, now time.Time) ([]aemodel.Collection, error) {
	var visible []aemodel.Collection
	for i := range s.collections {
		if visibility.CollectionVisible(&s.collections[i], viewer, now) {
			visible = append(visible, s.collections[i])
		}
	}

	sort.Slice(visible, func(i, j int) bool {
		if visible[i].Position != visible[j].Position {
			return visible[i].Position < visible[j].Position
		}
		return visible[i].Slug < visible[j].Slug
	})
	return visible, nil
}

func (s *InMemoryCollectionStor) GetCollectionBySlug(collectionSlug string, viewer visibility.Viewer, now time.Time) (*aemodel.Collection, error) {
	for i := range s.collections {
		if s.collections[i].Slug != collectionSlug {
			continue
		}
		if !visibility.CollectionVisible(&s.collections[i], viewer, now) {
			return nil, ErrNotFound
		}

		collection := s.collections[i]
		collection.Activities = visibility.FilterActivities(collection.Activities, viewer, now)
		return &collection, nil
	}
	return nil, ErrNotFound
}
