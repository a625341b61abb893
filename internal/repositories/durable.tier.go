package repositories

import (
	"context"
	"errors"

	"server/internal/database"
	"server/internal/logger"
	"server/internal/models"

	"gorm.io/gorm"
)

// DurableStore is the document-style tier and the source of truth once a
// record reaches it. Lookups go through the external poll_id, never the
// store's internal identity. CreatedAt is set by the store on first insert.
type DurableStore struct {
	db  database.DB
	log logger.Logger
}

func NewDurableStore(db database.DB) *DurableStore {
	return &DurableStore{
		db:  db,
		log: logger.New("durableStore"),
	}
}

func (s *DurableStore) Name() string { return "durable" }

func (s *DurableStore) Get(ctx context.Context, id string) (*models.Poll, bool, error) {
	var poll models.Poll
	err := s.db.SQLWithContext(ctx).First(&poll, "poll_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, s.log.Function("Get").Err("failed to get poll", err, "id", id)
	}

	return &poll, true, nil
}

// Set hydrates-then-upserts. A record promoted from a lower tier arrives
// without the internal identity, so the existing document is looked up by
// external id first; its identity and creation time survive the save.
func (s *DurableStore) Set(ctx context.Context, id string, poll *models.Poll) error {
	log := s.log.Function("Set")
	tx := s.db.SQLWithContext(ctx)

	poll.PollID = id

	var existing models.Poll
	err := tx.First(&existing, "poll_id = ?", id).Error
	switch {
	case err == nil:
		poll.DocID = existing.DocID
		if poll.CreatedAt.IsZero() {
			poll.CreatedAt = existing.CreatedAt
		}
		if err := tx.Save(poll).Error; err != nil {
			return log.Err("failed to update poll", err, "id", id)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		poll.DocID = 0
		createdAt := poll.CreatedAt
		if err := tx.Create(poll).Error; err != nil {
			if !errors.Is(err, gorm.ErrDuplicatedKey) {
				return log.Err("failed to create poll", err, "id", id)
			}
			// A concurrent promotion won the insert between the lookup and
			// the create; treat the conflict as already-promoted and retry
			// as an update of the winner's document.
			var winner models.Poll
			if err := tx.First(&winner, "poll_id = ?", id).Error; err != nil {
				return log.Err("failed to re-query poll after insert conflict", err, "id", id)
			}
			poll.DocID = winner.DocID
			if createdAt.IsZero() {
				poll.CreatedAt = winner.CreatedAt
			}
			if err := tx.Save(poll).Error; err != nil {
				return log.Err("failed to update poll after insert conflict", err, "id", id)
			}
		}
	default:
		return log.Err("failed to query poll before save", err, "id", id)
	}

	return nil
}

func (s *DurableStore) Delete(ctx context.Context, id string) error {
	if err := s.db.SQLWithContext(ctx).Delete(&models.Poll{}, "poll_id = ?", id).Error; err != nil {
		return s.log.Function("Delete").Err("failed to delete poll", err, "id", id)
	}

	return nil
}

func (s *DurableStore) List(ctx context.Context) ([]*models.Poll, error) {
	var polls []*models.Poll
	if err := s.db.SQLWithContext(ctx).Order("created_at DESC").Find(&polls).Error; err != nil {
		return nil, s.log.Function("List").Err("failed to list polls", err)
	}

	return polls, nil
}
