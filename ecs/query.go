package ecs

// Query returns the entities holding every kind, iterating the smallest
// store. A missing store yields nil.
func (w *World) Query(kinds ...Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(kinds))
	for _, k := range kinds {
		s := w.lookup(k.ID())
		if s.Len() == 0 {
			return nil
		}
		sets = append(sets, s)
	}

	smallest := sets[0]
	for _, s := range sets[1:] {
		if s.Len() < smallest.Len() {
			smallest = s
		}
	}

	out := make([]Entity, 0, smallest.Len())
next:
	for _, e := range smallest.Entities() {
		for _, s := range sets {
			if !s.Has(e) {
				continue next
			}
		}
		out = append(out, e)
	}
	return out
}

// First returns any one entity holding every kind.
func (w *World) First(kinds ...Kind) (Entity, bool) {
	ents := w.Query(kinds...)
	if len(ents) == 0 {
		return 0, false
	}
	return ents[0], true
}
