package seed

import (
	"context"

	"server/config"
	"server/internal/database"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/repositories"
	"server/internal/utils"
)

const demoPollID = "DEMO01"

func Seed(db database.DB, config config.Config, log logger.Logger) error {
	log = log.Function("seed")
	log.Info("Seeding development data")

	ctx := context.Background()
	durable := repositories.NewDurableStore(db)

	if _, found, err := durable.Get(ctx, demoPollID); err != nil {
		return err
	} else if found {
		log.Info("Demo poll already exists", "id", demoPollID)
		return nil
	}

	poll := &Poll{
		PollID:        demoPollID,
		Title:         "नगरपालिका सार्वत्रिक निवडणूक २०२६",
		SubTitle:      "डेमो मतदान यादी",
		PartyName:     "जनता विकास आघाडी",
		MainSymbolUrl: "/uploads/demo_symbol.png",
		VotingDate:    utils.FormatVotingDate("2026-01-15"),
		Candidates: CandidateList{
			{Seat: "अ", Name: "सौ. सुनीता पाटील", SerialNumber: "1"},
			{Seat: "अ", Name: "श्री. रमेश जाधव", SerialNumber: "2"},
			{Seat: "ब", Name: "श्री. विलास मोरे", SerialNumber: "1"},
		},
	}
	poll.ApplyDefaults()

	if err := durable.Set(ctx, poll.PollID, poll); err != nil {
		return log.Err("failed to seed demo poll", err, "id", poll.PollID)
	}

	log.Info("Seeded demo poll", "id", poll.PollID)
	return nil
}
