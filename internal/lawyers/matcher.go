package lawyers

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/juridia/juridia-platform/internal/availability"
)

// Directory lists active lawyers for a practice area.
type Directory interface {
	ListActiveByArea(ctx context.Context, area string) ([]Lawyer, error)
}

// ScheduleSource batch-loads weekly templates for a set of lawyers.
type ScheduleSource interface {
	GetMany(ctx context.Context, lawyerIDs []string) (map[string]availability.WeeklySchedule, error)
}

// SelectionPolicy picks one lawyer among equally valid candidates.
type SelectionPolicy interface {
	Pick(candidates []LawyerWithAvailability) LawyerWithAvailability
}

// RandomPolicy selects uniformly at random. The source is seedable so tests
// can pin the choice.
type RandomPolicy struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomPolicy creates a seeded random selection policy.
func NewRandomPolicy(seed int64) *RandomPolicy {
	return &RandomPolicy{rng: rand.New(rand.NewSource(seed))}
}

// Pick returns a uniformly random candidate.
func (p *RandomPolicy) Pick(candidates []LawyerWithAvailability) LawyerWithAvailability {
	p.mu.Lock()
	defer p.mu.Unlock()
	return candidates[p.rng.Intn(len(candidates))]
}

// Matcher filters the lawyer directory by practice area and slot.
type Matcher struct {
	directory Directory
	schedules ScheduleSource
	policy    SelectionPolicy
}

// NewMatcher creates a matcher. A nil policy falls back to random selection.
func NewMatcher(directory Directory, schedules ScheduleSource, policy SelectionPolicy) *Matcher {
	if policy == nil {
		policy = NewRandomPolicy(rand.Int63())
	}
	return &Matcher{directory: directory, schedules: schedules, policy: policy}
}

// FindAvailable returns active lawyers covering the practice area, each with
// its full weekly template attached. Lawyers who never configured
// availability get an empty template, not an error.
func (m *Matcher) FindAvailable(ctx context.Context, area string) ([]LawyerWithAvailability, error) {
	if area == "" {
		return nil, ErrMissingArea
	}

	candidates, err := m.directory.ListActiveByArea(ctx, area)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return []LawyerWithAvailability{}, nil
	}

	ids := make([]string, len(candidates))
	for i, lawyer := range candidates {
		ids[i] = lawyer.ID
	}
	schedules, err := m.schedules.GetMany(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("lawyers: load schedules: %w", err)
	}

	out := make([]LawyerWithAvailability, 0, len(candidates))
	for _, lawyer := range candidates {
		schedule := schedules[lawyer.ID]
		if schedule == nil {
			schedule = availability.WeeklySchedule{}
		}
		out = append(out, LawyerWithAvailability{
			ID:           lawyer.ID,
			Name:         lawyer.Name,
			Availability: schedule,
		})
	}
	return out, nil
}

// SelectForSlot filters candidates to those declaring (day, hour) and picks
// one via the selection policy. ErrNoLawyerAvailable when nobody matches.
func (m *Matcher) SelectForSlot(candidates []LawyerWithAvailability, day, hour string) (LawyerWithAvailability, error) {
	matching := make([]LawyerWithAvailability, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.Availability.Includes(day, hour) {
			matching = append(matching, candidate)
		}
	}
	if len(matching) == 0 {
		return LawyerWithAvailability{}, fmt.Errorf("%w for %s %s", ErrNoLawyerAvailable, day, hour)
	}
	return m.policy.Pick(matching), nil
}
