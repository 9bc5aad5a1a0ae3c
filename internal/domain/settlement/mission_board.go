package settlement

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/mars-sim/mars-sim-sub053/internal/domain/commerce"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/shared"
)

// missionRecord tracks one mission through
// PLANNING → IN_PROGRESS → COMPLETED/ABORTED.
type missionRecord struct {
	mission   commerce.Mission
	createdAt shared.SimTime
	updatedAt shared.SimTime
	startedAt *shared.SimTime
	endedAt   *shared.SimTime
	reason    string
}

func (r *missionRecord) start(now shared.SimTime) error {
	if r.mission.Status != commerce.MissionPlanning {
		return fmt.Errorf("%w: cannot start from %s", ErrInvalidTransition, r.mission.Status)
	}
	r.mission.Status = commerce.MissionInProgress
	r.startedAt = &now
	r.updatedAt = now
	return nil
}

func (r *missionRecord) complete(now shared.SimTime) error {
	if r.mission.Status != commerce.MissionInProgress {
		return fmt.Errorf("%w: cannot complete from %s", ErrInvalidTransition, r.mission.Status)
	}
	r.mission.Status = commerce.MissionCompleted
	r.endedAt = &now
	r.updatedAt = now
	return nil
}

func (r *missionRecord) abort(now shared.SimTime, reason string) error {
	if !r.mission.IsActive() {
		return fmt.Errorf("%w: cannot abort from %s", ErrInvalidTransition, r.mission.Status)
	}
	r.mission.Status = commerce.MissionAborted
	r.reason = reason
	r.endedAt = &now
	r.updatedAt = now
	return nil
}

// MissionInfo is a read-only view of a mission and its timeline
type MissionInfo struct {
	commerce.Mission
	CreatedAt shared.SimTime
	StartedAt *shared.SimTime
	EndedAt   *shared.SimTime
	Reason    string
}

// MissionBoard is the run's list of trade and delivery missions.
// It satisfies commerce.MissionDirectory.
type MissionBoard struct {
	clock   shared.Clock
	records map[string]*missionRecord
}

// NewMissionBoard creates an empty board
func NewMissionBoard(clock shared.Clock) *MissionBoard {
	return &MissionBoard{clock: clock, records: make(map[string]*missionRecord)}
}

// Plan records a new mission in PLANNING
func (b *MissionBoard) Plan(t commerce.MissionType, starting, trading string) (commerce.Mission, error) {
	if starting == "" || trading == "" {
		return commerce.Mission{}, shared.NewValidationError("settlement", "mission needs both endpoints")
	}
	if starting == trading {
		return commerce.Mission{}, shared.NewValidationError("trading", "cannot trade with the starting settlement")
	}

	now := b.clock.Now()
	r := &missionRecord{
		mission: commerce.Mission{
			ID:       uuid.New().String(),
			Type:     t,
			Starting: starting,
			Trading:  trading,
			Status:   commerce.MissionPlanning,
		},
		createdAt: now,
		updatedAt: now,
	}
	b.records[r.mission.ID] = r
	return r.mission, nil
}

func (b *MissionBoard) Start(id string) error {
	r, err := b.find(id)
	if err != nil {
		return err
	}
	return r.start(b.clock.Now())
}

func (b *MissionBoard) Complete(id string) error {
	r, err := b.find(id)
	if err != nil {
		return err
	}
	return r.complete(b.clock.Now())
}

// Abort ends a planning or in-progress mission
func (b *MissionBoard) Abort(id, reason string) error {
	r, err := b.find(id)
	if err != nil {
		return err
	}
	return r.abort(b.clock.Now(), reason)
}

// Info returns a mission with its timeline
func (b *MissionBoard) Info(id string) (MissionInfo, error) {
	r, err := b.find(id)
	if err != nil {
		return MissionInfo{}, err
	}
	return MissionInfo{
		Mission:   r.mission,
		CreatedAt: r.createdAt,
		StartedAt: r.startedAt,
		EndedAt:   r.endedAt,
		Reason:    r.reason,
	}, nil
}

// Missions implements commerce.MissionDirectory, oldest first
func (b *MissionBoard) Missions() []commerce.Mission {
	records := make([]*missionRecord, 0, len(b.records))
	for _, r := range b.records {
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].createdAt != records[j].createdAt {
			return records[i].createdAt < records[j].createdAt
		}
		return records[i].mission.ID < records[j].mission.ID
	})

	out := make([]commerce.Mission, len(records))
	for i, r := range records {
		out[i] = r.mission
	}
	return out
}

// Prune drops finished missions that ended before cutoff
func (b *MissionBoard) Prune(cutoff shared.SimTime) int {
	removed := 0
	for id, r := range b.records {
		if r.endedAt != nil && *r.endedAt < cutoff {
			delete(b.records, id)
			removed++
		}
	}
	return removed
}

func (b *MissionBoard) find(id string) (*missionRecord, error) {
	r, ok := b.records[id]
	if !ok {
		return nil, shared.NewNotFoundError("mission", id)
	}
	return r, nil
}
