package core

import "event-planner/pkg/schema"

type Participant struct {
	Id             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	ProfilePicture string `json:"profilePicture"`
	Status         string `json:"status"`
}

// Owner identifies whoever pays for an event or an expense. ChavePix is the payment key used to
// reimburse them.
type Owner struct {
	Id             string                  `json:"id"`
	Name           string                  `json:"name"`
	Email          string                  `json:"email"`
	ProfilePicture string                  `json:"profilePicture"`
	ChavePix       schema.Optional[string] `json:"chavePix"`
}

type Author = Owner

// ExpenseItem is a shared cost. Cost is kept as the client sent it.
type ExpenseItem struct {
	Id           int           `json:"id"`
	Name         string        `json:"name"`
	Cost         string        `json:"cost"`
	Owner        Owner         `json:"owner"`
	Participants []Participant `json:"participants"`
	MaxQuantity  int           `json:"maxQuantity"`
}

type Location struct {
	Address string `json:"address"`
}

type Material struct {
	Name string `json:"name"`
}

// Event is the full event document as stored and served.
type Event struct {
	Id           string                          `json:"id"`
	Title        string                          `json:"title"`
	Description  string                          `json:"description"`
	Location     Location                        `json:"location"`
	Date         string                          `json:"date"`
	CreatedAt    string                          `json:"createdAt"`
	Author       Author                          `json:"author"`
	Participants []Participant                   `json:"participants"`
	Capacity     int                             `json:"capacity"`
	ImageURI     string                          `json:"imageURI"`
	Expenses     schema.Optional[map[string]any] `json:"expenses"`
	Difficulty   string                          `json:"difficulty"`
	Materials    []Material                      `json:"materials"`
}

type EventCreateRequest struct {
	Title       string                  `json:"title"`
	Capacity    int                     `json:"capacity"`
	Description schema.Optional[string] `json:"description"`
	Location    Location                `json:"location"`
	Date        schema.Optional[string] `json:"date"`
	Author      Owner                   `json:"author"`
	Difficulty  string                  `json:"difficulty"`
	Materials   []Material              `json:"materials"`
}

type EventAddParticipant struct {
	Id             string                  `json:"id"`
	Name           string                  `json:"name"`
	Email          schema.Optional[string] `json:"email"`
	ProfilePicture schema.Optional[string] `json:"profilePicture"`
	Status         string                  `json:"status"`
}

// EventAddVehicle carries its owner untyped, unlike EventAddEquipment.
type EventAddVehicle struct {
	Name         string         `json:"name"`
	Cost         string         `json:"cost"`
	Itinerary    string         `json:"itinerary"`
	Owner        map[string]any `json:"owner"`
	Participants []Participant  `json:"participants"`
	MaxQuantity  int            `json:"maxQuantity"`
}

type EventAddEquipment struct {
	Name         string        `json:"name"`
	Cost         string        `json:"cost"`
	Owner        Owner         `json:"owner"`
	Participants []Participant `json:"participants"`
	MaxQuantity  int           `json:"maxQuantity"`
}

type EventReserveEquipment struct {
	Participant Participant `json:"participant"`
}

type EventReserveVehicle struct {
	Participant Participant `json:"participant"`
}

type EventUpdateExpenseStatus struct {
	ParticipantId string `json:"participant_id"`
	Status        string `json:"status"`
}

// EventUpdateEvent is a patch: only present fields are applied.
type EventUpdateEvent struct {
	Title       schema.Optional[string]     `json:"title"`
	Description schema.Optional[string]     `json:"description"`
	Location    schema.Optional[Location]   `json:"location"`
	Date        schema.Optional[string]     `json:"date"`
	Capacity    schema.Optional[int]        `json:"capacity"`
	ImageURI    schema.Optional[string]     `json:"imageURI"`
	Difficulty  schema.Optional[string]     `json:"difficulty"`
	Materials   schema.Optional[[]Material] `json:"materials"`
}
