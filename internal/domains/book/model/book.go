package model

// BookID is the surrogate key assigned by storage. Zero means not persisted yet.
type BookID int64

// Book is a catalog entry. It is only ever written as a whole.
type Book struct {
	ID     BookID     `json:"id" db:"id"`
	Title  string     `json:"title" db:"title"`
	Price  int64      `json:"price" db:"price"`
	Status BookStatus `json:"status" db:"status"`
}
