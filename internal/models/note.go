package models

import "time"

const UntitledNote = "Untitled Note"

type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	UserID    string    `json:"userId"`
}

// NoteInput carries user-editable fields for create and update.
type NoteInput struct {
	Title     string
	Content   string
	Completed bool
}

type NoteStats struct {
	Total     int
	Completed int
	Pending   int
	Today     int
}

type Draft struct {
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type Alarm struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	DateTime  time.Time `json:"dateTime"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UserID    string    `json:"userId"`
}
