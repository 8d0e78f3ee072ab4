package stats

import (
	"sort"

	"github.com/verte-zerg/muse/internal/corpus"
	"github.com/verte-zerg/muse/internal/model"
)

// TopContexts returns the n most frequent contexts of table, ordered by
// total count and then by key.
func TopContexts(table *corpus.Table, n int) []model.ContextStat {
	if n <= 0 || table.Empty() {
		return nil
	}
	keys := table.Keys()
	items := make([]model.ContextStat, 0, len(keys))
	for _, key := range keys {
		row := table.Successors(key)
		item := model.ContextStat{Key: string(key), Successors: len(row), Total: row.Total()}
		// First-seen successor wins ties.
		for _, s := range row {
			if s.Count > item.TopCount {
				item.Top = s.Token
				item.TopCount = s.Count
			}
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Total == items[j].Total {
			return items[i].Key < items[j].Key
		}
		return items[i].Total > items[j].Total
	})
	if n > len(items) {
		n = len(items)
	}
	return items[:n]
}
