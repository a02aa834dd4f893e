package board

import (
	"iter"
	"strings"
)

// TaskLookup resolves a task id into a task record.
type TaskLookup[T any] func(id string) (T, bool)

// Predicate filters resolved task records. A nil Predicate keeps everything.
type Predicate[T any] func(T) bool

// TasksForColumn yields the tasks of a column in board order. Ids that fail
// to resolve are skipped. The sequence is recomputed on every range, so it
// always reflects the board value and lookup it was built from.
func TasksForColumn[T any](b Board, columnID string, lookup TaskLookup[T], keep Predicate[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		col, ok := b.Columns[columnID]
		if !ok {
			return
		}
		for _, id := range col.TaskIDs {
			task, found := lookup(id)
			if !found {
				continue
			}
			if keep != nil && !keep(task) {
				continue
			}
			if !yield(task) {
				return
			}
		}
	}
}

// Searchable is implemented by task records that can be matched by MatchSearch.
type Searchable interface {
	SearchTitle() string
	SearchDescription() string
	SearchTags() []string
}

// MatchSearch returns a predicate doing a case-insensitive substring match of
// term against title, description and tags. An empty term matches everything.
func MatchSearch[T Searchable](term string) Predicate[T] {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}
	return func(t T) bool {
		if strings.Contains(strings.ToLower(t.SearchTitle()), term) ||
			strings.Contains(strings.ToLower(t.SearchDescription()), term) {
			return true
		}
		for _, tag := range t.SearchTags() {
			if strings.Contains(strings.ToLower(tag), term) {
				return true
			}
		}
		return false
	}
}
