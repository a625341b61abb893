package polls

import (
	"context"
	"sync"

	"server/internal/assets"
	"server/internal/logger"
	"server/internal/models"
	"server/internal/repositories"
	"server/internal/utils"
)

type PollController struct {
	repo     repositories.PollRepository
	resolver *assets.Resolver
	log      logger.Logger
}

func New(repo repositories.PollRepository, resolver *assets.Resolver) *PollController {
	return &PollController{
		repo:     repo,
		resolver: resolver,
		log:      logger.New("pollController"),
	}
}

func (c *PollController) Create(ctx context.Context, request models.CreatePollRequest) (string, error) {
	log := c.log.Function("Create")

	mainSymbolUrl := ""
	if request.MainSymbolUpload != nil {
		mainSymbolUrl = c.resolver.Resolve(ctx, *request.MainSymbolUpload)
	}

	poll := &models.Poll{
		Title:               request.Title,
		SubTitle:            request.SubTitle,
		PartyName:           request.PartyName,
		MainSymbolUrl:       mainSymbolUrl,
		VotingDate:          utils.FormatVotingDate(request.VotingDate),
		BlueInfoText:        request.BlueInfoText,
		YellowTitleText:     request.YellowTitleText,
		YellowFooterText:    request.YellowFooterText,
		ContactNumber:       request.ContactNumber,
		CustomMessage:       request.CustomMessage,
		ElectionType:        request.ElectionType,
		ShowCandidateImages: true,
		Candidates:          c.resolveCandidates(ctx, request.Candidates),
	}
	poll.ApplyDefaults()

	if err := poll.Validate(); err != nil {
		return "", log.Err("rejected invalid poll", err)
	}

	return c.repo.CreatePoll(ctx, poll)
}

func (c *PollController) Get(ctx context.Context, id string) (*models.Poll, bool, error) {
	return c.repo.GetPoll(ctx, id)
}

func (c *PollController) List(ctx context.Context) ([]*models.Poll, error) {
	return c.repo.ListPolls(ctx)
}

func (c *PollController) Update(ctx context.Context, id string, request models.UpdatePollRequest) error {
	update := models.PollUpdate{
		Title:            request.Title,
		SubTitle:         request.SubTitle,
		PartyName:        request.PartyName,
		BlueInfoText:     request.BlueInfoText,
		YellowTitleText:  request.YellowTitleText,
		YellowFooterText: request.YellowFooterText,
		ContactNumber:    request.ContactNumber,
		CustomMessage:    request.CustomMessage,
		ElectionType:     request.ElectionType,
	}

	if request.VotingDate != nil {
		formatted := utils.FormatVotingDate(*request.VotingDate)
		update.VotingDate = &formatted
	}

	if request.MainSymbolUpload != nil {
		if reference := c.resolver.Resolve(ctx, *request.MainSymbolUpload); reference != "" {
			update.MainSymbolUrl = &reference
			update.OgImage = &reference
		}
	}

	if request.Candidates != nil {
		resolved := c.resolveCandidates(ctx, *request.Candidates)
		update.Candidates = &resolved
	}

	return c.repo.UpdatePoll(ctx, id, update)
}

func (c *PollController) Delete(ctx context.Context, id string) error {
	return c.repo.DeletePoll(ctx, id)
}

func (c *PollController) ToggleShowImages(ctx context.Context, id string, current bool) (*bool, error) {
	return c.repo.ToggleShowImages(ctx, id, current)
}

type PollEditView struct {
	Poll *models.Poll `json:"poll"`
	// VotingDateInput is the YYYY-MM-DD value recovered from the rendered
	// voting date, for pre-filling the edit form.
	VotingDateInput string `json:"votingDateInput"`
}

func (c *PollController) EditView(ctx context.Context, id string) (*PollEditView, bool, error) {
	poll, found, err := c.repo.GetPoll(ctx, id)
	if err != nil || !found {
		return nil, found, err
	}

	return &PollEditView{
		Poll:            poll,
		VotingDateInput: utils.ExtractVotingDate(poll.VotingDate),
	}, true, nil
}

// OgImage returns the bytes of the poll's share image when it is stored
// inline. Remote and local references are served by their own hosts.
func (c *PollController) OgImage(ctx context.Context, id string) (string, []byte, bool, error) {
	poll, found, err := c.repo.GetPoll(ctx, id)
	if err != nil || !found {
		return "", nil, false, err
	}

	reference := poll.OgImage
	if reference == "" {
		reference = poll.MainSymbolUrl
	}

	contentType, data, err := assets.ParseDataURI(reference)
	if err != nil {
		return "", nil, false, nil
	}

	return contentType, data, true, nil
}

// resolveCandidates places every candidate's uploads concurrently and joins
// before returning; order is preserved and rows without a name are dropped,
// matching the create form's behavior.
func (c *PollController) resolveCandidates(ctx context.Context, requests []models.CandidateRequest) models.CandidateList {
	resolved := make([]models.Candidate, len(requests))

	var wg sync.WaitGroup
	for i, request := range requests {
		wg.Add(1)
		go func(i int, request models.CandidateRequest) {
			defer wg.Done()

			candidate := models.Candidate{
				Seat:           request.Seat,
				Name:           request.Name,
				SerialNumber:   request.SerialNumber,
				HeaderMessage:  request.HeaderMessage,
				SymbolUrl:      request.SymbolUrl,
				PartySymbolUrl: request.PartySymbolUrl,
			}

			if request.SymbolUpload != nil {
				if reference := c.resolver.Resolve(ctx, *request.SymbolUpload); reference != "" {
					candidate.SymbolUrl = reference
				}
			}
			if request.PartySymbolUpload != nil {
				if reference := c.resolver.Resolve(ctx, *request.PartySymbolUpload); reference != "" {
					candidate.PartySymbolUrl = reference
				}
			}

			resolved[i] = candidate
		}(i, request)
	}
	wg.Wait()

	candidates := make(models.CandidateList, 0, len(resolved))
	for _, candidate := range resolved {
		if candidate.Name != "" {
			candidates = append(candidates, candidate)
		}
	}

	return candidates
}
