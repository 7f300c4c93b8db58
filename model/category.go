package model

// Reserved category ids seeded on first run; they can never be deleted.
const (
	CategoryWorkID     int64 = 1
	CategoryPersonalID int64 = 2
)

type Category struct {
	ID   int64  `bson:"id" json:"id"`
	Name string `bson:"name" json:"name" binding:"required"`
}

func ReservedCategoryID(id int64) bool {
	return id == CategoryWorkID || id == CategoryPersonalID
}
