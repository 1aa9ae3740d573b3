// Package service implements the operator identification engine: it keeps the
// latest identity signals of a cellular subscription, resolves them against
// the operator database to an MNO and optionally one of its MVNOs, and
// projects the effective operator profile.
//
// The engine is single-threaded. Every exported method runs to completion
// synchronously; only change notifications are deferred to the dispatcher.
package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"opinfo/internal/operator/database"
	"opinfo/internal/operator/metrics"
	"opinfo/internal/operator/models"
	"opinfo/internal/operator/ports"
)

// Type aliases for collaborator interfaces.
type (
	Source     = ports.Source
	Dispatcher = ports.Dispatcher
	Observer   = ports.Observer
)

// noMVNO marks the absence of a matched MVNO.
const noMVNO = -1

type Service struct {
	source     Source
	dispatcher Dispatcher
	logger     *slog.Logger
	metrics    *metrics.Metrics

	index *database.Index

	identity           identity
	candidatesByMCCMNC []database.MNOID
	candidatesByName   []database.MNOID
	currentMNO         database.MNOID
	currentMVNO        int

	profile  profile
	notifier *notifier
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(source Source, dispatcher Dispatcher, opts ...Option) (*Service, error) {
	if source == nil {
		return nil, fmt.Errorf("operator source is required")
	}
	if dispatcher == nil {
		return nil, fmt.Errorf("dispatcher is required")
	}

	svc := &Service{
		source:      source,
		dispatcher:  dispatcher,
		currentMNO:  database.NoMNO,
		currentMVNO: noMVNO,
	}

	for _, opt := range opts {
		opt(svc)
	}
	if svc.logger == nil {
		svc.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	svc.notifier = newNotifier(dispatcher, svc.logger, svc.metrics)

	return svc, nil
}

// Init loads the operator database from the source. It returns false when no
// record set could be loaded; the engine stays usable but matches nothing
// until Init succeeds. Identity values stored before Init are resolved
// against the new database.
func (s *Service) Init(ctx context.Context) bool {
	sets, err := s.source.Load(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "could not read any mobile operator database, will not be able to determine MVNO",
			"error", err,
		)
		s.swapIndex(nil)
		s.metrics.RecordLoad(false, 0)
		return false
	}

	idx, err := database.Load(sets...)
	if err != nil {
		s.logger.ErrorContext(ctx, "could not read any mobile operator database, will not be able to determine MVNO",
			"error", err,
		)
		s.swapIndex(nil)
		s.metrics.RecordLoad(false, 0)
		return false
	}

	if n := idx.IgnoredIMVNOs(); n > 0 {
		s.logger.ErrorContext(ctx, "international MVNOs are not supported, ignoring them",
			"imvno_count", n,
		)
	}
	s.logger.InfoContext(ctx, "loaded mobile operator database",
		"record_sets", len(sets),
		"mno_count", idx.Len(),
		"mvno_count", idx.MVNOCount(),
	)
	s.metrics.RecordLoad(true, idx.Len())
	s.swapIndex(idx)
	return true
}

// swapIndex replaces the database and re-resolves the stored identity. Arena
// ids from the old index are meaningless afterwards, so the match is dropped
// before resolving again.
func (s *Service) swapIndex(idx *database.Index) {
	wasKnown := s.IsMobileNetworkOperatorKnown()

	s.index = idx
	s.currentMNO = database.NoMNO
	s.currentMVNO = noMVNO
	s.candidatesByName = s.index.ByName(s.identity.operatorName)
	if s.identity.mccmnc != "" {
		s.candidatesByMCCMNC = s.index.ByMCCMNC(s.identity.mccmnc)
	} else {
		s.candidatesByMCCMNC = candidatesFromIMSI(s.index, s.identity.imsi)
	}

	s.updateMNO()
	s.updateMVNO()
	s.refreshProfile()
	if wasKnown || s.IsMobileNetworkOperatorKnown() {
		s.notifier.post()
	}
}

// AddObserver registers o for change notifications and returns the
// registration handle. Adding the same comparable observer twice has no
// effect and returns the first handle. Observers whose dynamic type is not
// comparable get a new handle on every call.
func (s *Service) AddObserver(o Observer) uuid.UUID {
	return s.notifier.add(o)
}

// RemoveObserver unregisters o. Observers that are not comparable must be
// removed with RemoveObserverByID.
func (s *Service) RemoveObserver(o Observer) {
	s.notifier.remove(o)
}

// RemoveObserverByID unregisters the observer behind the handle returned by
// AddObserver.
func (s *Service) RemoveObserverByID(id uuid.UUID) {
	s.notifier.removeID(id)
}

// Close drops all observers and turns notifications already queued on the
// dispatcher into no-ops.
func (s *Service) Close() {
	s.notifier.close()
}

func (s *Service) IsMobileNetworkOperatorKnown() bool {
	return s.currentMNO.Valid()
}

func (s *Service) IsMobileVirtualNetworkOperatorKnown() bool {
	return s.currentMVNO != noMVNO
}

func (s *Service) UUID() string         { return s.profile.uuid }
func (s *Service) OperatorName() string { return s.profile.operatorName }
func (s *Service) Country() string      { return s.profile.country }
func (s *Service) MCCMNC() string       { return s.profile.mccmnc }
func (s *Service) SID() string          { return s.profile.sid }
func (s *Service) NID() string          { return s.profile.nid }

func (s *Service) ActivationCode() string { return s.profile.activationCode }
func (s *Service) RequiresRoaming() bool  { return s.profile.requiresRoaming }

func (s *Service) OperatorNameList() []models.LocalizedName {
	return slices.Clone(s.profile.operatorNames)
}

func (s *Service) MCCMNCList() []string {
	return slices.Clone(s.profile.mccmncs)
}

func (s *Service) SIDList() []string {
	return slices.Clone(s.profile.sids)
}

func (s *Service) APNList() []models.APN {
	return cloneAPNs(s.profile.apns)
}

func (s *Service) OnlinePortalList() []models.OnlinePortal {
	return slices.Clone(s.profile.portals)
}

// Profile returns a copy of the whole effective profile.
func (s *Service) Profile() models.Profile {
	return models.Profile{
		UUID:             s.UUID(),
		MNOKnown:         s.IsMobileNetworkOperatorKnown(),
		MVNOKnown:        s.IsMobileVirtualNetworkOperatorKnown(),
		OperatorName:     s.OperatorName(),
		OperatorNameList: s.OperatorNameList(),
		Country:          s.Country(),
		MCCMNC:           s.MCCMNC(),
		MCCMNCList:       s.MCCMNCList(),
		SID:              s.SID(),
		SIDList:          s.SIDList(),
		NID:              s.NID(),
		APNList:          s.APNList(),
		OnlinePortalList: s.OnlinePortalList(),
		ActivationCode:   s.ActivationCode(),
		RequiresRoaming:  s.RequiresRoaming(),
	}
}
