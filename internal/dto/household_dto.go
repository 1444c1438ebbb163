package dto

import "gorm.io/datatypes"

type CreateToolRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description string  `json:"description"`
	Category    string  `json:"category" validate:"max=50"`
	Price       float64 `json:"price" validate:"gte=0"`
}

type UpdateToolRequest struct {
	Name        *string  `json:"name" validate:"omitempty,max=100"`
	Description *string  `json:"description"`
	Category    *string  `json:"category" validate:"omitempty,max=50"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Active      *bool    `json:"active"`
}

type PurchaseRequest struct {
	ToolID string `json:"tool_id" validate:"required,uuid"`
}

type CreateEventRequest struct {
	Title       string         `json:"title" validate:"required,max=200"`
	Description string         `json:"description"`
	Frequency   string         `json:"frequency" validate:"required,oneof=one_time weekly monthly annual"`
	StartDate   string         `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     *string        `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	DaysOfWeek  []int          `json:"days_of_week" validate:"omitempty,dive,gte=0,lte=6"`
	DayOfMonth  int            `json:"day_of_month" validate:"gte=0,lte=31"`
	EventTime   string         `json:"event_time" validate:"omitempty,datetime=15:04"`
	Metadata    datatypes.JSON `json:"metadata"`
}

type CreatePetRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	Species   string `json:"species" validate:"max=50"`
	Breed     string `json:"breed" validate:"max=100"`
	BirthDate string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	VetName   string `json:"vet_name" validate:"max=100"`
	VetPhone  string `json:"vet_phone" validate:"max=30"`
	FoodNotes string `json:"food_notes"`
}

type CreateGoalRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description"`
	TargetDate  string `json:"target_date" validate:"omitempty,datetime=2006-01-02"`
}

type UpdateGoalProgressRequest struct {
	Progress int `json:"progress" validate:"gte=0,lte=100"`
}

type CreateShoppingListRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type AddShoppingItemRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	Quantity int    `json:"quantity" validate:"gte=0"`
}

type SetSettingRequest struct {
	Value string `json:"value" validate:"required,max=255"`
}
