package projection

import (
	"reflect"

	"github.com/encryptedtouhid/SmartZone/model"
)

// LayerDiff describes what a map layer must repaint between two
// consecutive projections of the same view.
type LayerDiff[T model.Entity] struct {
	Added   []T
	Updated []T
	Removed []string
}

// Empty reports whether the diff requires no repaint at all.
func (d LayerDiff[T]) Empty() bool {
	return len(d.Added) == 0 && len(d.Updated) == 0 && len(d.Removed) == 0
}

// Diff compares two projection outputs by identity. Entities only in
// next are Added, entities in both with a changed payload are Updated,
// and identities only in prev are Removed. Order follows next for
// Added/Updated and prev for Removed, so the result is deterministic.
func Diff[T model.Entity](prev, next []T) LayerDiff[T] {
	prevByKey := make(map[string]T, len(prev))
	for _, e := range prev {
		prevByKey[e.Key()] = e
	}
	nextKeys := make(map[string]struct{}, len(next))

	var d LayerDiff[T]
	for _, e := range next {
		key := e.Key()
		nextKeys[key] = struct{}{}
		old, ok := prevByKey[key]
		if !ok {
			d.Added = append(d.Added, e)
			continue
		}
		if !reflect.DeepEqual(old, e) {
			d.Updated = append(d.Updated, e)
		}
	}
	for _, e := range prev {
		if _, ok := nextKeys[e.Key()]; !ok {
			d.Removed = append(d.Removed, e.Key())
		}
	}
	return d
}
