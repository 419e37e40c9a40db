package ui

import "github.com/kaval-sh/kaval/internal/model"

// addedKeys returns the keys present in next but not in prev. Used to
// highlight entries that appeared since the previous scan. The first scan
// (empty prev) highlights nothing.
func addedKeys(prev, next []model.PortEntry) map[model.Key]struct{} {
	if len(prev) == 0 {
		return nil
	}

	old := make(map[model.Key]struct{}, len(prev))
	for i := range prev {
		old[prev[i].EntryKey()] = struct{}{}
	}

	var added map[model.Key]struct{}
	for i := range next {
		k := next[i].EntryKey()
		if _, ok := old[k]; !ok {
			if added == nil {
				added = make(map[model.Key]struct{})
			}
			added[k] = struct{}{}
		}
	}
	return added
}
