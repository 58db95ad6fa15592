package query

import (
	"sort"

	"github.com/sahilm/fuzzy"

	"github.com/marcus/nexaflow/internal/models"
)

// Kind names the collection a search hit came from.
type Kind string

const (
	KindTask    Kind = "task"
	KindProject Kind = "project"
	KindEvent   Kind = "event"
	KindGoal    Kind = "goal"
)

// Hit is one search result.
type Hit struct {
	Kind  Kind   `json:"kind"`
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Score int    `json:"score"`
}

type searchItem struct {
	hit  Hit
	text string
}

// searchSource adapts the collected items for the fuzzy library. Each item
// is matched on its title followed by its description.
type searchSource []searchItem

func (s searchSource) String(i int) string { return s[i].text }
func (s searchSource) Len() int            { return len(s) }

// Search fuzzy-matches q against every title and description in snap,
// best match first. An empty query returns nothing.
func Search(snap *models.Snapshot, q string) []Hit {
	if q == "" {
		return nil
	}
	var items searchSource
	add := func(kind Kind, id int64, title, desc string) {
		items = append(items, searchItem{
			hit:  Hit{Kind: kind, ID: id, Title: title},
			text: title + " " + desc,
		})
	}
	for _, t := range snap.Tasks {
		add(KindTask, t.ID, t.Title, t.Description)
	}
	for _, p := range snap.Projects {
		add(KindProject, p.ID, p.DisplayName(), p.Description)
	}
	for _, e := range snap.Events {
		add(KindEvent, e.ID, e.Title, e.Description)
	}
	for _, g := range snap.Goals {
		add(KindGoal, g.ID, g.Title, g.Description)
	}

	matches := fuzzy.FindFrom(q, items)
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	hits := make([]Hit, len(matches))
	for i, m := range matches {
		hits[i] = items[m.Index].hit
		hits[i].Score = m.Score
	}
	return hits
}
