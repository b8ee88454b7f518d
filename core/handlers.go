package core

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"event-planner/pkg/schema"
)

type Handlers interface {
	PostEvents(gctx *gin.Context)
	GetEvents(gctx *gin.Context)
	GetEvent(gctx *gin.Context)
	PatchEvent(gctx *gin.Context)
	PostParticipants(gctx *gin.Context)
	PostVehicles(gctx *gin.Context)
	PostEquipments(gctx *gin.Context)
	PostVehicleReservations(gctx *gin.Context)
	PostEquipmentReservations(gctx *gin.Context)
	PutVehicleStatus(gctx *gin.Context)
	PutEquipmentStatus(gctx *gin.Context)
	GetSchemas(gctx *gin.Context)
	PostSchemaValidation(gctx *gin.Context)
}

type handlers struct {
	repository Repository
	translator *Translator
	now        func() time.Time
	newId      func() string
}

func NewHandlers(repository Repository, translator *Translator) Handlers {
	return &handlers{
		repository: repository,
		translator: translator,
		now:        time.Now,
		newId:      uuid.NewString,
	}
}

func Register(router gin.IRouter, h Handlers) {
	router.POST("/events", h.PostEvents)
	router.GET("/events", h.GetEvents)
	router.GET("/events/id/:id", h.GetEvent)
	router.PATCH("/events/id/:id", h.PatchEvent)
	router.POST("/events/id/:id/participants", h.PostParticipants)
	router.POST("/events/id/:id/vehicles", h.PostVehicles)
	router.POST("/events/id/:id/equipments", h.PostEquipments)
	router.POST("/events/id/:id/vehicles/:expenseId/reservations", h.PostVehicleReservations)
	router.POST("/events/id/:id/equipments/:expenseId/reservations", h.PostEquipmentReservations)
	router.PUT("/events/id/:id/vehicles/:expenseId/status", h.PutVehicleStatus)
	router.PUT("/events/id/:id/equipments/:expenseId/status", h.PutEquipmentStatus)
	router.GET("/schemas", h.GetSchemas)
	router.POST("/schemas/:name/validate", h.PostSchemaValidation)
}

func (h *handlers) PostEvents(gctx *gin.Context) {
	request, ok := bind(h, gctx, EventCreateRequestSchema)
	if !ok {
		return
	}

	event := NewEvent(request, h.newId(), h.now())

	saved, err := h.repository.SaveEvent(gctx.Request.Context(), &event)
	if err != nil {
		h.fail(gctx, "saving event failed", err)
		return
	}

	gctx.JSON(http.StatusCreated, EventSchema.Encode(*saved))
}

func (h *handlers) GetEvents(gctx *gin.Context) {
	events, err := h.repository.ListEvents(gctx.Request.Context())
	if err != nil {
		h.fail(gctx, "listing events failed", err)
		return
	}

	out := make([]map[string]any, 0, len(events))
	for _, event := range events {
		out = append(out, EventSchema.Encode(event))
	}

	gctx.JSON(http.StatusOK, out)
}

func (h *handlers) GetEvent(gctx *gin.Context) {
	event, err := h.repository.GetEventById(gctx.Request.Context(), gctx.Param("id"))
	if err != nil {
		h.fail(gctx, "getting event failed", err)
		return
	}

	gctx.JSON(http.StatusOK, EventSchema.Encode(*event))
}

func (h *handlers) PatchEvent(gctx *gin.Context) {
	update, ok := bind(h, gctx, EventUpdateEventSchema)
	if !ok {
		return
	}

	h.modify(gctx, func(event *Event) error {
		ApplyUpdate(event, update)
		return nil
	})
}

func (h *handlers) PostParticipants(gctx *gin.Context) {
	request, ok := bind(h, gctx, EventAddParticipantSchema)
	if !ok {
		return
	}

	h.modify(gctx, func(event *Event) error {
		_, err := AddParticipant(event, request)
		return err
	})
}

func (h *handlers) PostVehicles(gctx *gin.Context) {
	request, ok := bind(h, gctx, EventAddVehicleSchema)
	if !ok {
		return
	}

	h.modify(gctx, func(event *Event) error {
		AddVehicle(event, request)
		return nil
	})
}

func (h *handlers) PostEquipments(gctx *gin.Context) {
	request, ok := bind(h, gctx, EventAddEquipmentSchema)
	if !ok {
		return
	}

	h.modify(gctx, func(event *Event) error {
		AddEquipment(event, request)
		return nil
	})
}

func (h *handlers) PostVehicleReservations(gctx *gin.Context) {
	expenseId, ok := h.expenseId(gctx)
	if !ok {
		return
	}

	request, ok := bind(h, gctx, EventReserveVehicleSchema)
	if !ok {
		return
	}

	h.modify(gctx, func(event *Event) error {
		return Reserve(event, Vehicles, expenseId, request.Participant)
	})
}

func (h *handlers) PostEquipmentReservations(gctx *gin.Context) {
	expenseId, ok := h.expenseId(gctx)
	if !ok {
		return
	}

	request, ok := bind(h, gctx, EventReserveEquipmentSchema)
	if !ok {
		return
	}

	h.modify(gctx, func(event *Event) error {
		return Reserve(event, Equipments, expenseId, request.Participant)
	})
}

func (h *handlers) PutVehicleStatus(gctx *gin.Context) {
	h.putExpenseStatus(gctx, Vehicles)
}

func (h *handlers) PutEquipmentStatus(gctx *gin.Context) {
	h.putExpenseStatus(gctx, Equipments)
}

func (h *handlers) putExpenseStatus(gctx *gin.Context, kind ExpenseKind) {
	expenseId, ok := h.expenseId(gctx)
	if !ok {
		return
	}

	request, ok := bind(h, gctx, EventUpdateExpenseStatusSchema)
	if !ok {
		return
	}

	h.modify(gctx, func(event *Event) error {
		return UpdateExpenseStatus(event, kind, expenseId, request)
	})
}

func (h *handlers) GetSchemas(gctx *gin.Context) {
	out := make([]schema.Descriptor, 0, len(Schemas))
	for _, name := range SchemaNames() {
		out = append(out, Schemas[name].Describe())
	}

	gctx.JSON(http.StatusOK, out)
}

// PostSchemaValidation checks a payload against any record schema and echoes its canonical form.
func (h *handlers) PostSchemaValidation(gctx *gin.Context) {
	checker, ok := Schemas[gctx.Param("name")]
	if !ok {
		h.abort(gctx, http.StatusNotFound, "schema_not_found", ErrSchemaNotFound)
		return
	}

	raw, ok := h.bindRaw(gctx)
	if !ok {
		return
	}

	normalized, err := checker.Normalize(raw)
	observeValidation(checker.Name(), err)

	if err != nil {
		h.reject(gctx, checker.Name(), err)
		return
	}

	gctx.JSON(http.StatusOK, normalized)
}

func (h *handlers) modify(gctx *gin.Context, fn func(event *Event) error) {
	event, err := h.repository.ModifyEvent(gctx.Request.Context(), gctx.Param("id"), fn)
	if err != nil {
		h.fail(gctx, "updating event failed", err)
		return
	}

	gctx.JSON(http.StatusOK, EventSchema.Encode(*event))
}

func (h *handlers) expenseId(gctx *gin.Context) (int, bool) {
	id, err := strconv.Atoi(gctx.Param("expenseId"))
	if err != nil {
		h.abort(gctx, http.StatusBadRequest, "invalid_expense_id", err)
		return 0, false
	}

	return id, true
}

// bindRaw reads the body as one JSON object, keeping numbers exact for the integer codecs.
func (h *handlers) bindRaw(gctx *gin.Context) (map[string]any, bool) {
	if gctx.Request.Body == nil {
		h.abort(gctx, http.StatusBadRequest, "invalid_json", ErrEmptyBody)
		return nil, false
	}

	decoded, err := schema.DecodeJSON(gctx.Request.Body)
	if err != nil {
		log.Ctx(gctx.Request.Context()).Error().Err(err).Msg("failed to bind JSON")
		h.abort(gctx, http.StatusBadRequest, "invalid_json", err)

		return nil, false
	}

	raw, ok := decoded.(map[string]any)
	if !ok {
		h.abort(gctx, http.StatusBadRequest, "invalid_json", ErrNotAnObject)
		return nil, false
	}

	return raw, true
}

func bind[R any](h *handlers, gctx *gin.Context, s *schema.Schema[R]) (R, bool) {
	var zero R

	raw, ok := h.bindRaw(gctx)
	if !ok {
		return zero, false
	}

	rec, err := s.Validate(raw)
	observeValidation(s.Name(), err)

	if err != nil {
		h.reject(gctx, s.Name(), err)
		return zero, false
	}

	return rec, true
}

func (h *handlers) reject(gctx *gin.Context, schemaName string, err error) {
	log.Ctx(gctx.Request.Context()).Info().Err(err).Str("schema", schemaName).Msg("payload validation failed")
	gctx.AbortWithStatusJSON(http.StatusUnprocessableEntity,
		NewValidationError(h.message(gctx, "validation_failed"), err))
}

func (h *handlers) abort(gctx *gin.Context, status int, key string, err error) {
	gctx.AbortWithStatusJSON(status, NewError(h.message(gctx, key), err))
}

func (h *handlers) message(gctx *gin.Context, key string) string {
	return h.translator.T(gctx.Request.Context(), gctx.GetHeader("Accept-Language"), key)
}

func (h *handlers) fail(gctx *gin.Context, msg string, err error) {
	ctx := gctx.Request.Context()

	var status int

	var key string

	switch {
	case errors.Is(err, ErrEventNotFound):
		status, key = http.StatusNotFound, "event_not_found"
	case errors.Is(err, ErrExpenseNotFound):
		status, key = http.StatusNotFound, "expense_not_found"
	case errors.Is(err, ErrParticipantNotFound):
		status, key = http.StatusNotFound, "participant_not_found"
	case errors.Is(err, ErrEventFull):
		status, key = http.StatusConflict, "event_full"
	case errors.Is(err, ErrExpenseFull):
		status, key = http.StatusConflict, "expense_full"
	case errors.Is(err, ErrParticipantExists):
		status, key = http.StatusConflict, "participant_exists"
	default:
		log.Ctx(ctx).Error().Err(err).Msg(msg)
		h.abort(gctx, http.StatusInternalServerError, "internal_error", err)

		return
	}

	log.Ctx(ctx).Info().Err(err).Msg(msg)
	h.abort(gctx, status, key, err)
}
