package model

// Board is the whole persisted snapshot, the same shape the web client kept
// under its localStorage key.
type Board struct {
	Categories       []*Category `bson:"categories" json:"categories"`
	Tasks            []*Task     `bson:"tasks" json:"tasks"`
	ActiveCategoryID int64       `bson:"active_category_id" json:"activeCategoryId"`
}

// NewBoard seeds the two protected categories.
func NewBoard() *Board {
	return &Board{
		Categories: []*Category{
			{ID: CategoryWorkID, Name: "Work"},
			{ID: CategoryPersonalID, Name: "Personal"},
		},
		Tasks:            []*Task{},
		ActiveCategoryID: CategoryWorkID,
	}
}

// Normalize repairs a loaded snapshot: fills task defaults and drops tasks
// whose category no longer exists.
func (b *Board) Normalize() {
	if len(b.Categories) == 0 {
		seeded := NewBoard()
		b.Categories = seeded.Categories
	}
	byID := make(map[int64]bool, len(b.Categories))
	for _, c := range b.Categories {
		byID[c.ID] = true
	}

	kept := b.Tasks[:0]
	for _, t := range b.Tasks {
		if t == nil || !byID[t.CategoryID] {
			continue
		}
		t.Normalize()
		kept = append(kept, t)
	}
	b.Tasks = kept
	if b.Tasks == nil {
		b.Tasks = []*Task{}
	}

	if !byID[b.ActiveCategoryID] {
		b.ActiveCategoryID = b.Categories[0].ID
	}
}

// Category returns the category with the given id, or nil.
func (b *Board) Category(id int64) *Category {
	for _, c := range b.Categories {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// Task returns the task with the given id, or nil.
func (b *Board) Task(id int64) *Task {
	for _, t := range b.Tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}
