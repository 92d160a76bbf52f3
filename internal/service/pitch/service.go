package pitch

import (
	"context"
	stderrors "errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/founderhub/founder-api/internal/model"
	"github.com/founderhub/founder-api/internal/repository"
	"github.com/founderhub/founder-api/pkg/errors"
	"github.com/founderhub/founder-api/pkg/logger"
	"github.com/founderhub/founder-api/pkg/storage"
)

const presignTTL = time.Hour

type Service struct {
	repo        repository.PitchRepository
	profileRepo repository.ProfileRepository
	store       storage.ObjectStore
	logger      *logger.Logger
}

func NewService(repo repository.PitchRepository, profileRepo repository.ProfileRepository, store storage.ObjectStore, log *logger.Logger) *Service {
	return &Service{repo: repo, profileRepo: profileRepo, store: store, logger: log}
}

// UploadPitchDeck records the deck and returns a presigned URL the client
// uploads the file to directly.
func (s *Service) UploadPitchDeck(ctx context.Context, req *model.UploadPitchDeckRequest) (*model.UploadPitchDeckResponse, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, errors.InvalidArgument("title is required")
	}
	if strings.TrimSpace(req.FileName) == "" {
		return nil, errors.InvalidArgument("file name is required")
	}
	if !slices.Contains(model.AllowedPitchDeckTypes, req.FileType) {
		return nil, errors.InvalidArgument("file type must be pdf, ppt or pptx")
	}
	if req.FileSize > model.MaxPitchDeckFileSize {
		return nil, errors.InvalidArgument("file exceeds the 50MB size limit")
	}

	founderExists, err := s.profileRepo.FounderProfileExists(ctx, req.FounderID)
	if err != nil {
		return nil, errors.Internal(err)
	}
	if !founderExists {
		return nil, errors.NotFound("founder profile", nil)
	}

	deck := &model.PitchDeck{
		FounderID:   req.FounderID,
		Title:       req.Title,
		Description: req.Description,
		FileName:    req.FileName,
		FileSize:    req.FileSize,
		FileType:    req.FileType,
	}
	if err := s.repo.CreatePitchDeck(ctx, deck); err != nil {
		return nil, errors.Internal(err)
	}

	key := objectKey(deck.ID, deck.FileName)
	uploadURL, err := s.store.PresignedPutURL(ctx, key, presignTTL)
	if err != nil {
		return nil, errors.Internal(err)
	}
	if err := s.repo.UpdateFileURL(ctx, deck.ID, key); err != nil {
		return nil, errors.Internal(err)
	}

	s.logger.Info("pitch deck created", "pitch_deck_id", deck.ID, "founder_id", deck.FounderID)
	return &model.UploadPitchDeckResponse{PitchDeckID: deck.ID, UploadURL: uploadURL}, nil
}

// GetPitchDeck returns the deck with a short-lived download URL and bumps its
// view count.
func (s *Service) GetPitchDeck(ctx context.Context, id int64) (*model.PitchDeckWithURL, error) {
	deck, err := s.repo.GetPitchDeck(ctx, id)
	if stderrors.Is(err, repository.ErrNotFound) {
		return nil, errors.NotFound("pitch deck", err)
	}
	if err != nil {
		return nil, errors.Internal(err)
	}

	if err := s.repo.IncrementDeckViewCount(ctx, id); err != nil {
		s.logger.Warn("failed to increment deck view count", "pitch_deck_id", id, "error", err)
	} else {
		deck.ViewCount++
	}

	downloadURL, err := s.store.PresignedGetURL(ctx, deck.FileURL, presignTTL)
	if err != nil {
		return nil, errors.Internal(err)
	}

	return &model.PitchDeckWithURL{PitchDeck: *deck, DownloadURL: downloadURL}, nil
}

func (s *Service) ListPitchDecks(ctx context.Context, filters *model.PitchDeckFilters, page *model.Pagination) (*model.ListPitchDecksResponse, error) {
	page.Normalize()

	decks, total, err := s.repo.ListPitchDecks(ctx, filters, page.Limit, page.Offset)
	if err != nil {
		return nil, errors.Internal(err)
	}
	if decks == nil {
		decks = []*model.PitchDeckSummary{}
	}

	return &model.ListPitchDecksResponse{PitchDecks: decks, Total: total}, nil
}

func objectKey(deckID int64, fileName string) string {
	return fmt.Sprintf("pitch-decks/%d/%s", deckID, fileName)
}
