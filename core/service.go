package core

import (
	"fmt"
	"time"

	"event-planner/pkg/schema"
)

type ExpenseKind string

const (
	Vehicles   ExpenseKind = "vehicles"
	Equipments ExpenseKind = "equipments"
)

func ParseExpenseKind(value string) (ExpenseKind, error) {
	switch kind := ExpenseKind(value); kind {
	case Vehicles, Equipments:
		return kind, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownExpenseKind, value)
	}
}

// expenseSlots is the part of an expense entry that reservations touch.
type expenseSlots struct {
	Participants []Participant
	MaxQuantity  int
}

var expenseSlotsSchema = schema.New("ExpenseSlots",
	schema.Req("participants", schema.List(schema.Object(ParticipantSchema)),
		func(s *expenseSlots) *[]Participant { return &s.Participants }),
	schema.Req("maxQuantity", schema.Int(), func(s *expenseSlots) *int { return &s.MaxQuantity }),
)

func NewEvent(request EventCreateRequest, id string, now time.Time) Event {
	return Event{
		Id:           id,
		Title:        request.Title,
		Description:  request.Description.OrElse(""),
		Location:     request.Location,
		Date:         request.Date.OrElse(""),
		CreatedAt:    now.UTC().Format(time.RFC3339),
		Author:       request.Author,
		Participants: []Participant{},
		Capacity:     request.Capacity,
		ImageURI:     "",
		Expenses:     schema.None[map[string]any](),
		Difficulty:   request.Difficulty,
		Materials:    request.Materials,
	}
}

func ApplyUpdate(event *Event, update EventUpdateEvent) {
	if v, ok := update.Title.Get(); ok {
		event.Title = v
	}

	if v, ok := update.Description.Get(); ok {
		event.Description = v
	}

	if v, ok := update.Location.Get(); ok {
		event.Location = v
	}

	if v, ok := update.Date.Get(); ok {
		event.Date = v
	}

	if v, ok := update.Capacity.Get(); ok {
		event.Capacity = v
	}

	if v, ok := update.ImageURI.Get(); ok {
		event.ImageURI = v
	}

	if v, ok := update.Difficulty.Get(); ok {
		event.Difficulty = v
	}

	if v, ok := update.Materials.Get(); ok {
		event.Materials = v
	}
}

// AddParticipant registers a participant. A capacity of zero means unlimited.
func AddParticipant(event *Event, request EventAddParticipant) (Participant, error) {
	for _, p := range event.Participants {
		if p.Id == request.Id {
			return Participant{}, fmt.Errorf("%w: %s", ErrParticipantExists, request.Id)
		}
	}

	if event.Capacity > 0 && len(event.Participants) >= event.Capacity {
		return Participant{}, ErrEventFull
	}

	participant := Participant{
		Id:             request.Id,
		Name:           request.Name,
		Email:          request.Email.OrElse(""),
		ProfilePicture: request.ProfilePicture.OrElse(""),
		Status:         request.Status,
	}
	event.Participants = append(event.Participants, participant)

	return participant, nil
}

func AddVehicle(event *Event, request EventAddVehicle) map[string]any {
	entry := EventAddVehicleSchema.Encode(request)
	entry["id"] = nextExpenseId(event)
	appendExpense(event, Vehicles, entry)

	return entry
}

func AddEquipment(event *Event, request EventAddEquipment) ExpenseItem {
	item := ExpenseItem{
		Id:           nextExpenseId(event),
		Name:         request.Name,
		Cost:         request.Cost,
		Owner:        request.Owner,
		Participants: request.Participants,
		MaxQuantity:  request.MaxQuantity,
	}
	appendExpense(event, Equipments, ExpenseItemSchema.Encode(item))

	return item
}

// Reserve takes one unit of the expense for participant.
func Reserve(event *Event, kind ExpenseKind, expenseId int, participant Participant) error {
	entry, err := findExpense(event, kind, expenseId)
	if err != nil {
		return err
	}

	slots, err := expenseSlotsSchema.Validate(entry)
	if err != nil {
		return fmt.Errorf("expense %d is malformed: %w", expenseId, err)
	}

	for _, p := range slots.Participants {
		if p.Id == participant.Id {
			return fmt.Errorf("%w: %s", ErrParticipantExists, participant.Id)
		}
	}

	if len(slots.Participants) >= slots.MaxQuantity {
		return fmt.Errorf("%w: %d", ErrExpenseFull, expenseId)
	}

	slots.Participants = append(slots.Participants, participant)
	entry["participants"] = expenseSlotsSchema.Encode(slots)["participants"]

	return nil
}

func UpdateExpenseStatus(event *Event, kind ExpenseKind, expenseId int, request EventUpdateExpenseStatus) error {
	entry, err := findExpense(event, kind, expenseId)
	if err != nil {
		return err
	}

	slots, err := expenseSlotsSchema.Validate(entry)
	if err != nil {
		return fmt.Errorf("expense %d is malformed: %w", expenseId, err)
	}

	found := false

	for i := range slots.Participants {
		if slots.Participants[i].Id == request.ParticipantId {
			slots.Participants[i].Status = request.Status
			found = true
		}
	}

	if !found {
		return fmt.Errorf("%w: %s", ErrParticipantNotFound, request.ParticipantId)
	}

	entry["participants"] = expenseSlotsSchema.Encode(slots)["participants"]

	return nil
}

func expenseEntries(event *Event, kind ExpenseKind) []any {
	expenses, ok := event.Expenses.Get()
	if !ok {
		return nil
	}

	entries, _ := expenses[string(kind)].([]any)

	return entries
}

func appendExpense(event *Event, kind ExpenseKind, entry map[string]any) {
	expenses := event.Expenses.OrElse(nil)
	if expenses == nil {
		expenses = map[string]any{}
	}

	expenses[string(kind)] = append(expenseEntries(event, kind), entry)
	event.Expenses = schema.Some(expenses)
}

func nextExpenseId(event *Event) int {
	next := 1

	for _, kind := range []ExpenseKind{Vehicles, Equipments} {
		for _, raw := range expenseEntries(event, kind) {
			entry, ok := raw.(map[string]any)
			if !ok {
				continue
			}

			if id, ok := schema.AsInt(entry["id"]); ok && id >= next {
				next = id + 1
			}
		}
	}

	return next
}

func findExpense(event *Event, kind ExpenseKind, expenseId int) (map[string]any, error) {
	for _, raw := range expenseEntries(event, kind) {
		entry, ok := raw.(map[string]any)
		if !ok {
			continue
		}

		if id, ok := schema.AsInt(entry["id"]); ok && id == expenseId {
			return entry, nil
		}
	}

	return nil, fmt.Errorf("%w: %s %d", ErrExpenseNotFound, kind, expenseId)
}
