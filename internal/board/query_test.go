package board_test

import (
	"slices"
	"testing"

	"visionflow/internal/board"

	"github.com/stretchr/testify/assert"
)

type card struct {
	id, title, desc string
	tags            []string
}

func (c card) SearchTitle() string       { return c.title }
func (c card) SearchDescription() string { return c.desc }
func (c card) SearchTags() []string      { return c.tags }

func cardLookup(cards ...card) board.TaskLookup[card] {
	byID := make(map[string]card, len(cards))
	for _, c := range cards {
		byID[c.id] = c
	}
	return func(id string) (card, bool) {
		c, ok := byID[id]
		return c, ok
	}
}

func ids(seq func(func(card) bool)) []string {
	var out []string
	for c := range seq {
		out = append(out, c.id)
	}
	return out
}

func TestTasksForColumn(t *testing.T) {
	b := sampleBoard()
	lookup := cardLookup(
		card{id: "A", title: "Create dashboard layout"},
		card{id: "B", title: "Kanban board", desc: "drag and DROP"},
		card{id: "D", title: "Reports", tags: []string{"charts", "Frontend"}},
	)

	t.Run("skips unresolved ids and keeps order", func(t *testing.T) {
		got := ids(board.TasksForColumn(b, "todo", lookup, nil))
		assert.Equal(t, []string{"A", "B", "D"}, got)
	})

	t.Run("search matches title description and tags", func(t *testing.T) {
		assert.Equal(t, []string{"A"}, ids(board.TasksForColumn(b, "todo", lookup, board.MatchSearch[card]("DASHBOARD"))))
		assert.Equal(t, []string{"B"}, ids(board.TasksForColumn(b, "todo", lookup, board.MatchSearch[card]("drop"))))
		assert.Equal(t, []string{"D"}, ids(board.TasksForColumn(b, "todo", lookup, board.MatchSearch[card]("frontend"))))
		assert.Empty(t, ids(board.TasksForColumn(b, "todo", lookup, board.MatchSearch[card]("missing"))))
	})

	t.Run("blank search keeps everything", func(t *testing.T) {
		assert.Nil(t, board.MatchSearch[card]("   "))
		assert.Equal(t, []string{"A", "B", "D"}, ids(board.TasksForColumn(b, "todo", lookup, board.MatchSearch[card](""))))
	})

	t.Run("unknown column yields nothing", func(t *testing.T) {
		assert.Empty(t, ids(board.TasksForColumn(b, "nope", lookup, nil)))
	})

	t.Run("restartable", func(t *testing.T) {
		seq := board.TasksForColumn(b, "todo", lookup, nil)
		first := slices.Collect(seq)
		second := slices.Collect(seq)
		assert.Equal(t, first, second)
	})

	t.Run("early break stops lookups", func(t *testing.T) {
		calls := 0
		counting := func(id string) (card, bool) {
			calls++
			return lookup(id)
		}
		for range board.TasksForColumn(b, "todo", counting, nil) {
			break
		}
		assert.Equal(t, 1, calls)
	})
}
