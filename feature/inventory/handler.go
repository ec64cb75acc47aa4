package inventory

import (
	"encoding/json"
	"errors"

	"snipe-netbox-sync/core/logger"
	"snipe-netbox-sync/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for sync runs.
type Handler struct {
	service *Service
	policy  reconcile.Policy
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler. policy is the default for triggered runs.
func NewHandler(service *Service, policy reconcile.Policy, logger *zap.Logger) *Handler {
	return &Handler{service: service, policy: policy, logger: logger}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/sync", h.HandleSync)
	app.Get("/runs", h.HandleListRuns)
	app.Get("/runs/:id", h.HandleGetRun)
	app.Get("/snapshots", h.HandleListSnapshots)
	app.Get("/snapshots/:id", h.HandleGetSnapshot)
}

// syncRequest overrides the default policy of a triggered run.
type syncRequest struct {
	AllowUpdates         *bool    `json:"allow_updates"`
	AllowLinking         *bool    `json:"allow_linking"`
	UpdateUniqueExisting *bool    `json:"update_unique_existing"`
	NoAppendAssetTag     *bool    `json:"no_append_assettag"`
	Phases               []string `json:"phases"`
}

func (r syncRequest) apply(policy reconcile.Policy) reconcile.Policy {
	if r.AllowUpdates != nil {
		policy.AllowUpdates = *r.AllowUpdates
	}
	if r.AllowLinking != nil {
		policy.AllowLinking = *r.AllowLinking
	}
	if r.UpdateUniqueExisting != nil {
		policy.UpdateUniqueExisting = *r.UpdateUniqueExisting
	}
	if r.NoAppendAssetTag != nil {
		policy.NoAppendAssetTag = *r.NoAppendAssetTag
	}
	return policy
}

// HandleSync runs a sync and returns its result.
// @Summary Run a sync
// @Description Reconciles Snipe-IT into NetBox. The body overrides the configured policy and phases.
// @Tags inventory
// @Accept json
// @Produce json
// @Param request body syncRequest false "Policy overrides"
// @Success 200 {object} RunResult
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 409 {object} map[string]string "Run In Progress"
// @Failure 500 {object} RunResult "Sync Failed"
// @Router /sync [post]
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	var body syncRequest
	if len(c.Body()) > 0 {
		if err := json.Unmarshal(c.Body(), &body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
	}
	phases, err := ParsePhases(body.Phases)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result, err := h.service.TryRun(c.UserContext(), RunRequest{Policy: body.apply(h.policy), Phases: phases})
	if errors.Is(err, ErrRunInProgress) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("Sync run failed", zap.Error(err))
		if result == nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(result)
	}
	return c.JSON(result)
}

// HandleListRuns returns the most recent runs.
// @Summary List sync runs
// @Description Returns the most recent sync runs without their items
// @Tags inventory
// @Accept json
// @Produce json
// @Param limit query int false "Maximum number of runs" default(20)
// @Success 200 {array} SyncRun
// @Failure 503 {object} map[string]string "History Disabled"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /runs [get]
func (h *Handler) HandleListRuns(c *fiber.Ctx) error {
	runs, err := h.service.Runs(c.UserContext(), c.QueryInt("limit", 20))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(runs)
}

// HandleGetRun returns one run with its items.
// @Summary Get a sync run
// @Description Returns one sync run with every recorded item
// @Tags inventory
// @Accept json
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} SyncRun
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 503 {object} map[string]string "History Disabled"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /runs/{id} [get]
func (h *Handler) HandleGetRun(c *fiber.Ctx) error {
	run, err := h.service.GetRun(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(run)
}

// HandleListSnapshots returns the archived Snipe-IT snapshots.
// @Summary List snapshots
// @Description Returns the archived Snipe-IT snapshots, newest first
// @Tags inventory
// @Accept json
// @Produce json
// @Success 200 {array} SnapshotInfo
// @Failure 503 {object} map[string]string "Snapshots Disabled"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /snapshots [get]
func (h *Handler) HandleListSnapshots(c *fiber.Ctx) error {
	snapshots, err := h.service.Snapshots(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(snapshots)
}

// HandleGetSnapshot returns the Snipe-IT collections archived by a run.
// @Summary Get a snapshot
// @Description Returns the Snipe-IT collections fetched by one run
// @Tags inventory
// @Accept json
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} snipe.Snapshot
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 503 {object} map[string]string "Snapshots Disabled"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /snapshots/{id} [get]
func (h *Handler) HandleGetSnapshot(c *fiber.Ctx) error {
	snap, err := h.service.Snapshot(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(snap)
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrRunNotFound), errors.Is(err, ErrSnapshotNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, errHistoryDisabled), errors.Is(err, errSnapshotsDisabled):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	logger.WithRayID(h.logger, c).Error("Request failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
