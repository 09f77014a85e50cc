package planning

// Snapshot is the live planning data a client sends with a question.
type Snapshot struct {
	Wedding          Wedding
	Guests           []Guest
	Tasks            []Task
	GuestbookEntries []GuestbookEntry
}

type Wedding struct {
	ID        int
	Name      string
	Date      *string
	VenueName *string
}

type Guest struct {
	ID           *int
	Name         string
	Email        *string
	Phone        *string
	PlusOneCount int
	DietaryNotes *string
}

type Task struct {
	ID       *int
	Title    string
	Status   *string
	Priority *string
}

type GuestbookEntry struct {
	ID        *int
	GuestName string
	Message   string
	IsPublic  bool
}
