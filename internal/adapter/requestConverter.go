package adapter

import (
	"fmt"
	"unicode/utf8"

	"github.com/SHoar/Wedding-AI/internal/api"
	"github.com/SHoar/Wedding-AI/internal/config"
	"github.com/SHoar/Wedding-AI/internal/domain/commonModels"
	"github.com/SHoar/Wedding-AI/internal/domain/planning"
	"github.com/SHoar/Wedding-AI/internal/rag"
)

// ValidateQuestion checks presence and length only. Whitespace-only questions are rejected later, after the credential check.
func ValidateQuestion(question *string) error {
	if question == nil {
		return &rag.ValidationError{Message: "question: field required"}
	}
	n := utf8.RuneCountInString(*question)
	if n < 1 {
		return &rag.ValidationError{Message: "question: should have at least 1 character"}
	}
	if n > config.MaxQuestionLength {
		return &rag.ValidationError{Message: fmt.Sprintf("question: should have at most %d characters", config.MaxQuestionLength)}
	}
	return nil
}

func ValidateAskRequest(req api.AskRequest) error {
	if err := ValidateQuestion(req.Question); err != nil {
		return err
	}
	if req.Wedding == nil {
		return required("wedding")
	}
	if req.Wedding.Id == nil {
		return required("wedding.id")
	}
	if req.Wedding.Name == nil {
		return required("wedding.name")
	}
	for i, g := range req.Guests {
		if g.Name == nil {
			return required(fmt.Sprintf("guests[%d].name", i))
		}
	}
	for i, t := range req.Tasks {
		if t.Title == nil {
			return required(fmt.Sprintf("tasks[%d].title", i))
		}
	}
	for i, e := range req.GuestbookEntries {
		if e.GuestName == nil {
			return required(fmt.Sprintf("guestbook_entries[%d].guest_name", i))
		}
		if e.Message == nil {
			return required(fmt.Sprintf("guestbook_entries[%d].message", i))
		}
	}
	return nil
}

func required(field string) error {
	return &rag.ValidationError{Message: field + ": field required"}
}

// ToAskInput assumes the request passed ValidateAskRequest.
func ToAskInput(req api.AskRequest) rag.AskInput {
	snapshot := planning.Snapshot{
		Wedding: planning.Wedding{
			ID:        *req.Wedding.Id,
			Name:      *req.Wedding.Name,
			Date:      req.Wedding.Date,
			VenueName: req.Wedding.VenueName,
		},
		Guests:           make([]planning.Guest, 0, len(req.Guests)),
		Tasks:            make([]planning.Task, 0, len(req.Tasks)),
		GuestbookEntries: make([]planning.GuestbookEntry, 0, len(req.GuestbookEntries)),
	}
	for _, g := range req.Guests {
		snapshot.Guests = append(snapshot.Guests, planning.Guest{
			ID:           g.Id,
			Name:         *g.Name,
			Email:        g.Email,
			Phone:        g.Phone,
			PlusOneCount: g.PlusOneCount,
			DietaryNotes: g.DietaryNotes,
		})
	}
	for _, t := range req.Tasks {
		snapshot.Tasks = append(snapshot.Tasks, planning.Task{
			ID:       t.Id,
			Title:    *t.Title,
			Status:   t.Status,
			Priority: t.Priority,
		})
	}
	for _, e := range req.GuestbookEntries {
		isPublic := true
		if e.IsPublic != nil {
			isPublic = *e.IsPublic
		}
		snapshot.GuestbookEntries = append(snapshot.GuestbookEntries, planning.GuestbookEntry{
			ID:        e.Id,
			GuestName: *e.GuestName,
			Message:   *e.Message,
			IsPublic:  isPublic,
		})
	}
	return rag.AskInput{Question: *req.Question, Snapshot: snapshot}
}

func ToAskResponse(answer commonModels.Answer) api.AskResponse {
	return api.AskResponse{
		Answer:         answer.Answer,
		Model:          answer.Model,
		ContextSummary: answer.ContextSummary,
	}
}
