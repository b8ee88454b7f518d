package core

import (
	"sort"

	"event-planner/pkg/schema"
)

var ParticipantSchema = schema.New("Participant",
	schema.Req("id", schema.String(), func(p *Participant) *string { return &p.Id }),
	schema.Req("name", schema.String(), func(p *Participant) *string { return &p.Name }),
	schema.Req("email", schema.String(), func(p *Participant) *string { return &p.Email }),
	schema.Req("profilePicture", schema.String(), func(p *Participant) *string { return &p.ProfilePicture }),
	schema.Req("status", schema.String(), func(p *Participant) *string { return &p.Status }),
)

var ownerFields = []schema.Field[Owner]{
	schema.Req("id", schema.String(), func(o *Owner) *string { return &o.Id }),
	schema.Req("name", schema.String(), func(o *Owner) *string { return &o.Name }),
	schema.Req("email", schema.String(), func(o *Owner) *string { return &o.Email }),
	schema.Req("profilePicture", schema.String(), func(o *Owner) *string { return &o.ProfilePicture }),
	schema.Opt("chavePix", schema.String(), func(o *Owner) *schema.Optional[string] { return &o.ChavePix }),
}

var (
	OwnerSchema  = schema.New("Owner", ownerFields...)
	AuthorSchema = schema.New("Author", ownerFields...)
)

var LocationSchema = schema.New("Location",
	schema.Req("address", schema.String(), func(l *Location) *string { return &l.Address }),
)

var MaterialSchema = schema.New("Material",
	schema.Req("name", schema.String(), func(m *Material) *string { return &m.Name }),
)

var ExpenseItemSchema = schema.New("ExpenseItem",
	schema.Req("id", schema.Int(), func(e *ExpenseItem) *int { return &e.Id }),
	schema.Req("name", schema.String(), func(e *ExpenseItem) *string { return &e.Name }),
	schema.Req("cost", schema.String(), func(e *ExpenseItem) *string { return &e.Cost }),
	schema.Req("owner", schema.Object(OwnerSchema), func(e *ExpenseItem) *Owner { return &e.Owner }),
	schema.Req("participants", schema.List(schema.Object(ParticipantSchema)),
		func(e *ExpenseItem) *[]Participant { return &e.Participants }),
	schema.Req("maxQuantity", schema.Int(), func(e *ExpenseItem) *int { return &e.MaxQuantity }),
)

var EventSchema = schema.New("Event",
	schema.Req("id", schema.String(), func(e *Event) *string { return &e.Id }),
	schema.Req("title", schema.String(), func(e *Event) *string { return &e.Title }),
	schema.Req("description", schema.String(), func(e *Event) *string { return &e.Description }),
	schema.Req("location", schema.Object(LocationSchema), func(e *Event) *Location { return &e.Location }),
	schema.Req("date", schema.String(), func(e *Event) *string { return &e.Date }),
	schema.Req("createdAt", schema.String(), func(e *Event) *string { return &e.CreatedAt }),
	schema.Req("author", schema.Object(AuthorSchema), func(e *Event) *Author { return &e.Author }),
	schema.Req("participants", schema.List(schema.Object(ParticipantSchema)),
		func(e *Event) *[]Participant { return &e.Participants }),
	schema.Req("capacity", schema.Int(), func(e *Event) *int { return &e.Capacity }),
	schema.Req("imageURI", schema.String(), func(e *Event) *string { return &e.ImageURI }),
	schema.Opt("expenses", schema.Mapping(), func(e *Event) *schema.Optional[map[string]any] { return &e.Expenses }),
	schema.Req("difficulty", schema.String(), func(e *Event) *string { return &e.Difficulty }),
	schema.Req("materials", schema.List(schema.Object(MaterialSchema)),
		func(e *Event) *[]Material { return &e.Materials }),
)

var EventCreateRequestSchema = schema.New("EventCreateRequest",
	schema.Req("title", schema.String(), func(r *EventCreateRequest) *string { return &r.Title }),
	schema.Req("capacity", schema.Int(), func(r *EventCreateRequest) *int { return &r.Capacity }),
	schema.Opt("description", schema.String(),
		func(r *EventCreateRequest) *schema.Optional[string] { return &r.Description }),
	schema.Req("location", schema.Object(LocationSchema), func(r *EventCreateRequest) *Location { return &r.Location }),
	schema.Opt("date", schema.String(), func(r *EventCreateRequest) *schema.Optional[string] { return &r.Date }),
	schema.Req("author", schema.Object(OwnerSchema), func(r *EventCreateRequest) *Owner { return &r.Author }),
	schema.Req("difficulty", schema.String(), func(r *EventCreateRequest) *string { return &r.Difficulty }),
	schema.Req("materials", schema.List(schema.Object(MaterialSchema)),
		func(r *EventCreateRequest) *[]Material { return &r.Materials }),
)

var EventAddParticipantSchema = schema.New("EventAddParticipant",
	schema.Req("id", schema.String(), func(r *EventAddParticipant) *string { return &r.Id }),
	schema.Req("name", schema.String(), func(r *EventAddParticipant) *string { return &r.Name }),
	schema.Opt("email", schema.String(), func(r *EventAddParticipant) *schema.Optional[string] { return &r.Email }),
	schema.Opt("profilePicture", schema.String(),
		func(r *EventAddParticipant) *schema.Optional[string] { return &r.ProfilePicture }),
	schema.Req("status", schema.String(), func(r *EventAddParticipant) *string { return &r.Status }),
)

var EventAddVehicleSchema = schema.New("EventAddVehicle",
	schema.Req("name", schema.String(), func(r *EventAddVehicle) *string { return &r.Name }),
	schema.Req("cost", schema.String(), func(r *EventAddVehicle) *string { return &r.Cost }),
	schema.Req("itinerary", schema.String(), func(r *EventAddVehicle) *string { return &r.Itinerary }),
	// owner is untyped here while every other owner is an Owner record.
	schema.Req("owner", schema.Mapping(), func(r *EventAddVehicle) *map[string]any { return &r.Owner }),
	schema.Req("participants", schema.List(schema.Object(ParticipantSchema)),
		func(r *EventAddVehicle) *[]Participant { return &r.Participants }),
	schema.Req("maxQuantity", schema.Int(), func(r *EventAddVehicle) *int { return &r.MaxQuantity }),
)

var EventAddEquipmentSchema = schema.New("EventAddEquipment",
	schema.Req("name", schema.String(), func(r *EventAddEquipment) *string { return &r.Name }),
	schema.Req("cost", schema.String(), func(r *EventAddEquipment) *string { return &r.Cost }),
	schema.Req("owner", schema.Object(OwnerSchema), func(r *EventAddEquipment) *Owner { return &r.Owner }),
	schema.Req("participants", schema.List(schema.Object(ParticipantSchema)),
		func(r *EventAddEquipment) *[]Participant { return &r.Participants }),
	schema.Req("maxQuantity", schema.Int(), func(r *EventAddEquipment) *int { return &r.MaxQuantity }),
)

var EventReserveEquipmentSchema = schema.New("EventReserveEquipment",
	schema.Req("participant", schema.Object(ParticipantSchema),
		func(r *EventReserveEquipment) *Participant { return &r.Participant }),
)

var EventReserveVehicleSchema = schema.New("EventReserveVehicle",
	schema.Req("participant", schema.Object(ParticipantSchema),
		func(r *EventReserveVehicle) *Participant { return &r.Participant }),
)

var EventUpdateExpenseStatusSchema = schema.New("EventUpdateExpenseStatus",
	schema.Req("participant_id", schema.String(), func(r *EventUpdateExpenseStatus) *string { return &r.ParticipantId }),
	schema.Req("status", schema.String(), func(r *EventUpdateExpenseStatus) *string { return &r.Status }),
)

var EventUpdateEventSchema = schema.New("EventUpdateEvent",
	schema.Opt("title", schema.String(), func(r *EventUpdateEvent) *schema.Optional[string] { return &r.Title }),
	schema.Opt("description", schema.String(),
		func(r *EventUpdateEvent) *schema.Optional[string] { return &r.Description }),
	schema.Opt("location", schema.Object(LocationSchema),
		func(r *EventUpdateEvent) *schema.Optional[Location] { return &r.Location }),
	schema.Opt("date", schema.String(), func(r *EventUpdateEvent) *schema.Optional[string] { return &r.Date }),
	schema.Opt("capacity", schema.Int(), func(r *EventUpdateEvent) *schema.Optional[int] { return &r.Capacity }),
	schema.Opt("imageURI", schema.String(), func(r *EventUpdateEvent) *schema.Optional[string] { return &r.ImageURI }),
	schema.Opt("difficulty", schema.String(),
		func(r *EventUpdateEvent) *schema.Optional[string] { return &r.Difficulty }),
	schema.Opt("materials", schema.List(schema.Object(MaterialSchema)),
		func(r *EventUpdateEvent) *schema.Optional[[]Material] { return &r.Materials }),
)

// Schemas indexes every record schema by name.
var Schemas = func() map[string]schema.Checker {
	checkers := []schema.Checker{
		ParticipantSchema, OwnerSchema, AuthorSchema, ExpenseItemSchema, LocationSchema, MaterialSchema,
		EventSchema, EventCreateRequestSchema, EventAddParticipantSchema, EventAddVehicleSchema,
		EventAddEquipmentSchema, EventReserveEquipmentSchema, EventReserveVehicleSchema,
		EventUpdateExpenseStatusSchema, EventUpdateEventSchema,
	}

	out := make(map[string]schema.Checker, len(checkers))
	for _, c := range checkers {
		out[c.Name()] = c
	}

	return out
}()

func SchemaNames() []string {
	names := make([]string, 0, len(Schemas))
	for name := range Schemas {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

func ValidateParticipant(raw map[string]any) (Participant, error) { return ParticipantSchema.Validate(raw) }
func ValidateOwner(raw map[string]any) (Owner, error)             { return OwnerSchema.Validate(raw) }
func ValidateAuthor(raw map[string]any) (Author, error)           { return AuthorSchema.Validate(raw) }
func ValidateExpenseItem(raw map[string]any) (ExpenseItem, error) { return ExpenseItemSchema.Validate(raw) }
func ValidateLocation(raw map[string]any) (Location, error)       { return LocationSchema.Validate(raw) }
func ValidateMaterial(raw map[string]any) (Material, error)       { return MaterialSchema.Validate(raw) }
func ValidateEvent(raw map[string]any) (Event, error)             { return EventSchema.Validate(raw) }

func ValidateEventCreateRequest(raw map[string]any) (EventCreateRequest, error) {
	return EventCreateRequestSchema.Validate(raw)
}

func ValidateEventAddParticipant(raw map[string]any) (EventAddParticipant, error) {
	return EventAddParticipantSchema.Validate(raw)
}

func ValidateEventAddVehicle(raw map[string]any) (EventAddVehicle, error) {
	return EventAddVehicleSchema.Validate(raw)
}

func ValidateEventAddEquipment(raw map[string]any) (EventAddEquipment, error) {
	return EventAddEquipmentSchema.Validate(raw)
}

func ValidateEventReserveEquipment(raw map[string]any) (EventReserveEquipment, error) {
	return EventReserveEquipmentSchema.Validate(raw)
}

func ValidateEventReserveVehicle(raw map[string]any) (EventReserveVehicle, error) {
	return EventReserveVehicleSchema.Validate(raw)
}

func ValidateEventUpdateExpenseStatus(raw map[string]any) (EventUpdateExpenseStatus, error) {
	return EventUpdateExpenseStatusSchema.Validate(raw)
}

func ValidateEventUpdateEvent(raw map[string]any) (EventUpdateEvent, error) {
	return EventUpdateEventSchema.Validate(raw)
}
