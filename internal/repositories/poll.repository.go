package repositories

import (
	"context"
	"math/rand"
	"sort"
	"strings"

	"server/config"
	"server/internal/database"
	"server/internal/logger"
	"server/internal/models"
)

const (
	pollIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	pollIDLength   = 6
)

type PollRepository interface {
	CreatePoll(ctx context.Context, poll *models.Poll) (string, error)
	GetPoll(ctx context.Context, id string) (*models.Poll, bool, error)
	ListPolls(ctx context.Context) ([]*models.Poll, error)
	UpdatePoll(ctx context.Context, id string, update models.PollUpdate) error
	DeletePoll(ctx context.Context, id string) error
	ToggleShowImages(ctx context.Context, id string, current bool) (*bool, error)
}

// pollRouter coordinates the tiers; it holds no record state of its own.
// Tiers are ordered highest durability first. Reads stop at the first hit,
// writes land in the highest reachable tier, and any update of a record
// found in a lower tier promotes it to the top tier with best-effort cleanup
// of the copy it came from.
type pollRouter struct {
	tiers           []Tier
	promoteOnToggle bool
	log             logger.Logger
}

func NewPoll(db database.DB, config config.Config) PollRepository {
	legacy := NewLegacyStore(config.LegacyStorePath)
	cache := NewCacheStore(config, legacy)
	durable := NewDurableStore(db)

	return NewPollRouter([]Tier{durable, cache}, config.PromoteOnToggle)
}

// NewPollRouter builds a router over an explicit tier list, highest
// durability first. Tests substitute in-memory tiers here.
func NewPollRouter(tiers []Tier, promoteOnToggle bool) PollRepository {
	return &pollRouter{
		tiers:           tiers,
		promoteOnToggle: promoteOnToggle,
		log:             logger.New("pollRepository"),
	}
}

// NewPollID generates the short external lookup key. Collisions are treated
// as negligible, matching the existing id population.
func NewPollID() string {
	b := make([]byte, pollIDLength)
	for i := range b {
		b[i] = pollIDAlphabet[rand.Intn(len(pollIDAlphabet))]
	}
	return strings.ToUpper(string(b))
}

func (r *pollRouter) CreatePoll(ctx context.Context, poll *models.Poll) (string, error) {
	log := r.log.Function("CreatePoll")

	poll.PollID = NewPollID()

	// A create has no prior lower-tier copy, so it never migrates: it just
	// lands in the highest tier that accepts the write.
	var lastErr error
	for _, tier := range r.tiers {
		if err := tier.Set(ctx, poll.PollID, poll); err != nil {
			lastErr = err
			log.Warn("tier rejected create, trying next tier", "tier", tier.Name(), "id", poll.PollID, "error", err)
			continue
		}
		return poll.PollID, nil
	}

	return "", log.Err("all tiers rejected create", lastErr, "id", poll.PollID)
}

func (r *pollRouter) GetPoll(ctx context.Context, id string) (*models.Poll, bool, error) {
	log := r.log.Function("GetPoll")

	var lastErr error
	answered := false
	for _, tier := range r.tiers {
		poll, found, err := tier.Get(ctx, id)
		if err != nil {
			lastErr = err
			log.Warn("tier read failed, trying next tier", "tier", tier.Name(), "id", id, "error", err)
			continue
		}
		answered = true
		if found {
			return poll, true, nil
		}
	}

	// A clean miss from any tier is a genuine not-found; total failure is not.
	if !answered {
		return nil, false, log.Err("all tiers failed to read poll", lastErr, "id", id)
	}

	return nil, false, nil
}

func (r *pollRouter) UpdatePoll(ctx context.Context, id string, update models.PollUpdate) error {
	log := r.log.Function("UpdatePoll")

	base, source, err := r.findBase(ctx, id)
	if err != nil {
		return err
	}
	if base == nil {
		return log.Error("poll not found", "id", id)
	}

	base.Apply(update)
	if err := base.Validate(); err != nil {
		return log.Err("rejected invalid update", err, "id", id)
	}

	if err := r.tiers[0].Set(ctx, id, base); err != nil {
		return log.Err("failed to save poll", err, "id", id)
	}

	// Migration cleanup is best effort; a lingering lower-tier duplicate is
	// healed by the list dedup rule.
	if source > 0 {
		if err := r.tiers[source].Delete(ctx, id); err != nil {
			log.Warn("failed to remove promoted poll from lower tier",
				"tier", r.tiers[source].Name(), "id", id, "error", err)
		}
	}

	return nil
}

func (r *pollRouter) DeletePoll(ctx context.Context, id string) error {
	log := r.log.Function("DeletePoll")

	// Every tier is attempted unconditionally so no orphan copy survives.
	var firstErr error
	for _, tier := range r.tiers {
		if err := tier.Delete(ctx, id); err != nil {
			log.Er("tier delete failed", err, "tier", tier.Name(), "id", id)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}

func (r *pollRouter) ListPolls(ctx context.Context) ([]*models.Poll, error) {
	log := r.log.Function("ListPolls")

	merged, err := r.tiers[0].List(ctx)
	if err != nil {
		return nil, log.Err("failed to list polls from primary tier", err)
	}

	seen := make(map[string]struct{}, len(merged))
	for _, poll := range merged {
		seen[poll.PollID] = struct{}{}
	}

	// The top tier is authoritative: lower-tier copies of an id it already
	// holds are discarded.
	for _, tier := range r.tiers[1:] {
		polls, err := tier.List(ctx)
		if err != nil {
			log.Warn("skipping unreadable tier in list", "tier", tier.Name(), "error", err)
			continue
		}
		for _, poll := range polls {
			if _, ok := seen[poll.PollID]; ok {
				continue
			}
			seen[poll.PollID] = struct{}{}
			merged = append(merged, poll)
		}
	}

	// Newest first; records that never reached the durable tier have a zero
	// creation time and sort last.
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})

	return merged, nil
}

// ToggleShowImages flips the stored flag, not the caller's possibly stale
// one, and returns the new value. A missing id is a no-op returning nil.
func (r *pollRouter) ToggleShowImages(ctx context.Context, id string, current bool) (*bool, error) {
	log := r.log.Function("ToggleShowImages")

	poll, source, err := r.findBase(ctx, id)
	if err != nil {
		return nil, err
	}
	if poll == nil {
		return nil, nil
	}

	newValue := !poll.ShowCandidateImages
	poll.ShowCandidateImages = newValue

	target := r.tiers[source]
	promote := source > 0 && r.promoteOnToggle
	if promote {
		target = r.tiers[0]
	}

	if err := target.Set(ctx, id, poll); err != nil {
		return nil, log.Err("failed to save toggled poll", err, "id", id)
	}

	if promote {
		if err := r.tiers[source].Delete(ctx, id); err != nil {
			log.Warn("failed to remove promoted poll from lower tier",
				"tier", r.tiers[source].Name(), "id", id, "error", err)
		}
	}

	return &newValue, nil
}

// findBase locates the freshest copy of a record and the tier index it came
// from, consulting tiers in priority order.
func (r *pollRouter) findBase(ctx context.Context, id string) (*models.Poll, int, error) {
	log := r.log.Function("findBase")

	var lastErr error
	answered := false
	for i, tier := range r.tiers {
		poll, found, err := tier.Get(ctx, id)
		if err != nil {
			lastErr = err
			log.Warn("tier read failed, trying next tier", "tier", tier.Name(), "id", id, "error", err)
			continue
		}
		answered = true
		if found {
			return poll, i, nil
		}
	}

	if !answered {
		return nil, 0, log.Err("all tiers failed to read poll", lastErr, "id", id)
	}

	return nil, 0, nil
}
