package api

// responses---------------------

type AskResponse struct {
	Answer         string  `json:"answer" example:"The ceremony starts at 4:00 PM in the Rose Garden."`
	Model          string  `json:"model" example:"gpt-5-nano"`
	ContextSummary *string `json:"context_summary" example:"- Ceremony 4:00 PM, Rose Garden"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Model  string `json:"model" example:"gpt-5-nano"`
}

type ErrorResponse struct {
	Detail string `json:"detail" example:"Question cannot be blank."`
}

// requests---------------------

// Required fields are pointers so a missing field can be told apart from a zero value.

type WeddingContext struct {
	Id        *int    `json:"id" validate:"required" example:"1"`
	Name      *string `json:"name" validate:"required" example:"Alex & Sam"`
	Date      *string `json:"date,omitempty" example:"2026-06-20"`
	VenueName *string `json:"venue_name,omitempty" example:"Rose Garden"`
}

type GuestContext struct {
	Id           *int    `json:"id,omitempty"`
	Name         *string `json:"name" validate:"required" example:"Jordan Lee"`
	Email        *string `json:"email,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	PlusOneCount int     `json:"plus_one_count,omitempty" example:"1"`
	DietaryNotes *string `json:"dietary_notes,omitempty" example:"vegetarian"`
}

type TaskContext struct {
	Id       *int    `json:"id,omitempty"`
	Title    *string `json:"title" validate:"required" example:"Confirm florist"`
	Status   *string `json:"status,omitempty" example:"pending"`
	Priority *string `json:"priority,omitempty" example:"high"`
}

type GuestbookEntryContext struct {
	Id        *int    `json:"id,omitempty"`
	GuestName *string `json:"guest_name" validate:"required" example:"Riley"`
	Message   *string `json:"message" validate:"required" example:"Congratulations!"`
	// IsPublic defaults to true when omitted.
	IsPublic *bool `json:"is_public,omitempty" example:"true"`
}

type AskRequest struct {
	Question         *string                 `json:"question" validate:"required" minLength:"1" maxLength:"4000" example:"What time is the ceremony?"`
	Wedding          *WeddingContext         `json:"wedding" validate:"required"`
	Guests           []GuestContext          `json:"guests"`
	Tasks            []TaskContext           `json:"tasks"`
	GuestbookEntries []GuestbookEntryContext `json:"guestbook_entries"`
}

type AskDocsRequest struct {
	Question *string `json:"question" validate:"required" minLength:"1" maxLength:"4000" example:"What is the RSVP deadline?"`
}
