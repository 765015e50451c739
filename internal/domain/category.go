package domain

import "github.com/google/uuid"

// Category is a named, colored tag for grouping income and expenses.
type Category struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Color string    `json:"color"`
}

// Default categories seeded on first run. IDs are fixed so budgets and rules
// referencing them survive re-seeding a fresh database.
var DefaultCategories = []Category{
	{ID: uuid.MustParse("0d9c2f66-9f0e-4f70-8a4d-2f1b71d2a001"), Name: "Food & Dining", Color: "#ef4444"},
	{ID: uuid.MustParse("0d9c2f66-9f0e-4f70-8a4d-2f1b71d2a002"), Name: "Transport", Color: "#3b82f6"},
	{ID: uuid.MustParse("0d9c2f66-9f0e-4f70-8a4d-2f1b71d2a003"), Name: "Shopping", Color: "#8b5cf6"},
	{ID: uuid.MustParse("0d9c2f66-9f0e-4f70-8a4d-2f1b71d2a004"), Name: "Bills & Utilities", Color: "#f59e0b"},
	{ID: uuid.MustParse("0d9c2f66-9f0e-4f70-8a4d-2f1b71d2a005"), Name: "Entertainment", Color: "#10b981"},
	{ID: uuid.MustParse("0d9c2f66-9f0e-4f70-8a4d-2f1b71d2a006"), Name: "Health & Fitness", Color: "#ec4899"},
	{ID: uuid.MustParse("0d9c2f66-9f0e-4f70-8a4d-2f1b71d2a007"), Name: "Education", Color: "#6366f1"},
	{ID: uuid.MustParse("0d9c2f66-9f0e-4f70-8a4d-2f1b71d2a008"), Name: "Other", Color: "#6b7280"},
}

type CategoryRepository interface {
	Create(category *Category) (*Category, error)
	GetByID(id uuid.UUID) (*Category, error)
	GetAll() ([]*Category, error)
	Update(category *Category) (*Category, error)
	Delete(id uuid.UUID) error
}
