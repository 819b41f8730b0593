package models

// Item is a named object that always belongs to exactly one user.
// Ownership changes only through a completed sending.
type Item struct {
	// ID is the unique identifier of the item, assigned by the store.
	ID int64 `json:"id"`

	// OwnerID references the user currently holding the item.
	OwnerID int64 `json:"-"`

	// Name is free text and is not required to be unique.
	Name string `json:"name"`
}

// TableName returns the name of the database table
// associated with the Item model.
func (i Item) TableName() string {
	return "items"
}
