package inventory

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"snipe-netbox-sync/core/netbox"
	"snipe-netbox-sync/core/reconcile"
	"snipe-netbox-sync/core/snipe"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrRunInProgress is returned by TryRun while another run holds the service.
var ErrRunInProgress = errors.New("a sync run is already in progress")

// Phase is one step of a run.
type Phase string

const (
	PhaseTenants       Phase = "tenants"
	PhaseManufacturers Phase = "manufacturers"
	PhaseDeviceTypes   Phase = "devicetypes"
	PhaseLocations     Phase = "locations"
	PhaseDevices       Phase = "devices"
)

// AllPhases lists every phase in dependency order.
var AllPhases = []Phase{PhaseTenants, PhaseManufacturers, PhaseDeviceTypes, PhaseLocations, PhaseDevices}

// ParsePhases validates phase names and returns them in dependency order.
// No names selects every phase.
func ParsePhases(names []string) ([]Phase, error) {
	if len(names) == 0 {
		return slices.Clone(AllPhases), nil
	}

	selected := make(map[Phase]bool, len(names))
	for _, name := range names {
		p := Phase(strings.ToLower(strings.TrimSpace(name)))
		if !slices.Contains(AllPhases, p) {
			return nil, fmt.Errorf("unknown phase %q", name)
		}
		selected[p] = true
	}

	var phases []Phase
	for _, p := range AllPhases {
		if selected[p] {
			phases = append(phases, p)
		}
	}
	return phases, nil
}

// RunRequest selects the policy and phases of a run.
type RunRequest struct {
	Policy reconcile.Policy `json:"policy"`
	Phases []Phase          `json:"phases"`
}

// RunResult is the outcome of a run.
type RunResult struct {
	ID         string           `json:"id"`
	Policy     reconcile.Policy `json:"policy"`
	Phases     []Phase          `json:"phases"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt time.Time        `json:"finished_at"`
	Report     *Report          `json:"report"`
	Error      string           `json:"error,omitempty"`
}

// Service runs syncs. Runs are serialized.
type Service struct {
	provider  snipe.Provider
	registry  netbox.Registry
	history   *History
	snapshots *Snapshots
	options   Options
	logger    *zap.Logger

	mu  sync.Mutex
	now func() time.Time
}

// NewService creates a Service. history and snapshots are optional.
func NewService(provider snipe.Provider, registry netbox.Registry, history *History, snapshots *Snapshots, options Options, logger *zap.Logger) *Service {
	return &Service{
		provider:  provider,
		registry:  registry,
		history:   history,
		snapshots: snapshots,
		options:   options,
		logger:    logger,
		now:       time.Now,
	}
}

// Run executes a sync, waiting for a running one to finish first.
func (s *Service) Run(ctx context.Context, req RunRequest) (*RunResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.run(ctx, req)
}

// TryRun executes a sync unless one is already running.
func (s *Service) TryRun(ctx context.Context, req RunRequest) (*RunResult, error) {
	if !s.mu.TryLock() {
		return nil, ErrRunInProgress
	}
	defer s.mu.Unlock()
	return s.run(ctx, req)
}

func (s *Service) run(ctx context.Context, req RunRequest) (*RunResult, error) {
	phases := req.Phases
	if len(phases) == 0 {
		phases = slices.Clone(AllPhases)
	}

	result := &RunResult{
		ID:        uuid.NewString(),
		Policy:    req.Policy,
		Phases:    phases,
		StartedAt: s.now().UTC(),
	}
	l := s.logger.With(zap.String("run_id", result.ID))
	l.Info("Starting sync run",
		zap.Strings("phases", phaseNames(phases)),
		zap.Bool("allow_updates", req.Policy.AllowUpdates),
		zap.Bool("allow_linking", req.Policy.AllowLinking))

	if s.history != nil {
		err := s.history.Start(ctx, &SyncRun{
			ID:                   result.ID,
			Phases:               strings.Join(phaseNames(phases), ","),
			AllowUpdates:         req.Policy.AllowUpdates,
			AllowLinking:         req.Policy.AllowLinking,
			UpdateUniqueExisting: req.Policy.UpdateUniqueExisting,
			NoAppendAssetTag:     req.Policy.NoAppendAssetTag,
			StartedAt:            result.StartedAt,
		})
		if err != nil {
			l.Warn("Failed to record sync run", zap.Error(err))
		}
	}

	syncer := NewSyncer(s.registry, l, reconcile.NewRun(req.Policy, result.StartedAt), s.options)
	runErr := s.execute(ctx, l, syncer, result.ID, phases)

	result.FinishedAt = s.now().UTC()
	result.Report = syncer.Report()
	if runErr != nil {
		result.Error = runErr.Error()
	}

	if s.history != nil {
		if err := s.history.Finish(ctx, result.ID, result.FinishedAt, result.Report, runErr); err != nil {
			l.Warn("Failed to record sync run outcome", zap.Error(err))
		}
	}

	total := result.Report.Total()
	fields := []zap.Field{
		zap.Int("created", total.Created),
		zap.Int("linked", total.Linked),
		zap.Int("updated", total.Updated),
		zap.Int("unchanged", total.Unchanged),
		zap.Int("skipped", total.Skipped),
		zap.Int("failed", total.Failed),
		zap.Duration("duration", result.FinishedAt.Sub(result.StartedAt)),
	}
	if runErr != nil {
		l.Error("Sync run aborted", append(fields, zap.Error(runErr))...)
		return result, runErr
	}
	l.Info("Sync run finished", fields...)
	return result, nil
}

func (s *Service) execute(ctx context.Context, l *zap.Logger, syncer *Syncer, runID string, phases []Phase) error {
	snap, err := snipe.Fetch(ctx, s.provider)
	if err != nil {
		return err
	}
	l.Info("Fetched Snipe-IT inventory",
		zap.Int("companies", len(snap.Companies)),
		zap.Int("manufacturers", len(snap.Manufacturers)),
		zap.Int("models", len(snap.Models)),
		zap.Int("locations", len(snap.Locations)),
		zap.Int("assets", len(snap.Assets)))

	if s.snapshots != nil {
		if err := s.snapshots.Save(ctx, runID, snap); err != nil {
			l.Warn("Failed to archive snapshot", zap.Error(err))
		}
	}

	if err := syncer.EnsureCustomField(ctx); err != nil {
		return err
	}

	for _, phase := range phases {
		l.Info("Running phase", zap.String("phase", string(phase)))

		var err error
		switch phase {
		case PhaseTenants:
			err = syncer.Tenants(ctx, snap.Companies)
		case PhaseManufacturers:
			err = syncer.Manufacturers(ctx, snap.Manufacturers)
		case PhaseDeviceTypes:
			err = syncer.DeviceTypes(ctx, snap.Models)
		case PhaseLocations:
			err = syncer.Locations(ctx, snap.Locations)
		case PhaseDevices:
			err = syncer.Devices(ctx, snap.Assets)
		default:
			err = fmt.Errorf("unknown phase %q", phase)
		}
		if err != nil {
			return fmt.Errorf("phase %s: %w", phase, err)
		}
	}
	return nil
}

// Runs returns the most recent runs.
func (s *Service) Runs(ctx context.Context, limit int) ([]SyncRun, error) {
	if s.history == nil {
		return nil, errHistoryDisabled
	}
	return s.history.List(ctx, limit)
}

// GetRun returns one run with its items.
func (s *Service) GetRun(ctx context.Context, id string) (*SyncRun, error) {
	if s.history == nil {
		return nil, errHistoryDisabled
	}
	return s.history.Get(ctx, id)
}

// Snapshots returns the archived snapshots.
func (s *Service) Snapshots(ctx context.Context) ([]SnapshotInfo, error) {
	if s.snapshots == nil {
		return nil, errSnapshotsDisabled
	}
	return s.snapshots.List(ctx)
}

// Snapshot returns the archived Snipe-IT snapshot of a run.
func (s *Service) Snapshot(ctx context.Context, runID string) (*snipe.Snapshot, error) {
	if s.snapshots == nil {
		return nil, errSnapshotsDisabled
	}
	return s.snapshots.Load(ctx, runID)
}

var (
	errHistoryDisabled   = errors.New("run history is not enabled")
	errSnapshotsDisabled = errors.New("snapshot archive is not enabled")
)

func phaseNames(phases []Phase) []string {
	names := make([]string, len(phases))
	for i, p := range phases {
		names[i] = string(p)
	}
	return names
}
