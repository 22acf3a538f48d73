package wants

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wantsapp/wants-backend/friends"
	"github.com/wantsapp/wants-backend/geocode"
	"github.com/wantsapp/wants-backend/imagestore"
	"github.com/wantsapp/wants-backend/model"
	"github.com/wantsapp/wants-backend/moderation"
	"github.com/wantsapp/wants-backend/storage"
	"github.com/wantsapp/wants-backend/users"
	"github.com/wantsapp/wants-backend/utils"
	Logger "github.com/wantsapp/wants-backend/utils/log"
)

// ServiceSettings carries the collaborators the want service orchestrates.
type ServiceSettings struct {
	Store       storage.WantStore
	Users       users.Lookup
	FriendGraph friends.Graph
	Geocoder    geocode.Geocoder
	Moderation  moderation.Classifier
	Images      imagestore.Store
}

// Service owns the want lifecycle (create, read, update) and the home feed.
// All validation runs to completion before any write; a failed check aborts
// the operation with nothing persisted.
type Service struct {
	settings  ServiceSettings
	resolver  *VisibilityResolver
	assembler *CandidateAssembler
}

func NewService(settings ServiceSettings) *Service {
	return &Service{
		settings:  settings,
		resolver:  NewVisibilityResolver(settings.Users, settings.Geocoder),
		assembler: NewCandidateAssembler(settings.Store, settings.FriendGraph, settings.Users),
	}
}

type CreateWantInput struct {
	CreatorId   string
	Title       string
	Description string
	Visibility  VisibilityInput
}

func (s *Service) CreateWant(ctx context.Context, input CreateWantInput) (*Want, error) {
	exists, err := s.settings.Users.Exists(ctx, input.CreatorId)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, utils.NewNotFoundError("User", input.CreatorId)
	}

	if strings.TrimSpace(input.Title) == "" {
		return nil, utils.NewInvalidArgumentError("title must not be empty")
	}
	if err := s.moderateText(ctx, "title", input.Title); err != nil {
		return nil, err
	}
	if input.Description != "" {
		if err := s.moderateText(ctx, "description", input.Description); err != nil {
			return nil, err
		}
	}

	visibility, err := s.resolver.Resolve(ctx, input.Visibility)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	want := &model.Want{
		Id:          uuid.New().String(),
		CreatedAt:   now,
		UpdatedAt:   now,
		CreatorId:   input.CreatorId,
		AdminIds:    []string{input.CreatorId},
		MemberIds:   []string{},
		Title:       input.Title,
		Description: input.Description,
		Visibility:  *visibility,
	}

	if err := s.settings.Store.Create(ctx, want); err != nil {
		return nil, err
	}

	Logger.Log.Info("created want ", want.Id, " by user ", want.CreatorId)
	return s.hydrate(want)
}

func (s *Service) GetWant(ctx context.Context, wantId string) (*Want, error) {
	want, err := s.settings.Store.GetById(ctx, wantId)
	if err != nil {
		return nil, err
	}
	if want == nil {
		return nil, utils.NewNotFoundError("Want", wantId)
	}
	return s.hydrate(want)
}

type ImageUpload struct {
	Data     []byte
	MimeType string
}

// UpdateWantInput carries the fields to change; nil fields are left
// untouched. An input with no fields set is a no-op.
type UpdateWantInput struct {
	AdminIds    []string
	MemberIds   []string
	Title       *string
	Description *string
	Visibility  *VisibilityInput
	Image       *ImageUpload
}

func (input *UpdateWantInput) isEmpty() bool {
	return input.AdminIds == nil &&
		input.MemberIds == nil &&
		input.Title == nil &&
		input.Description == nil &&
		input.Visibility == nil &&
		input.Image == nil
}

func (s *Service) UpdateWant(ctx context.Context, wantId string, input UpdateWantInput) (*Want, error) {
	existing, err := s.settings.Store.GetById(ctx, wantId)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, utils.NewNotFoundError("Want", wantId)
	}

	if input.isEmpty() {
		return s.hydrate(existing)
	}

	// Validate every supplied field before touching anything. The store
	// transaction below then applies all changes or none.
	if input.AdminIds != nil {
		if len(input.AdminIds) == 0 {
			return nil, utils.NewInvalidArgumentError("a want must keep at least one administrator")
		}
		if err := s.validateUsersExist(ctx, input.AdminIds); err != nil {
			return nil, err
		}
	}
	if input.MemberIds != nil {
		if err := s.validateUsersExist(ctx, input.MemberIds); err != nil {
			return nil, err
		}
	}

	nextAdminIds := existing.AdminIds
	if input.AdminIds != nil {
		nextAdminIds = utils.DedupStringSlice(input.AdminIds)
	}
	nextMemberIds := existing.MemberIds
	if input.MemberIds != nil {
		nextMemberIds = utils.DedupStringSlice(input.MemberIds)
	}
	if utils.StringSlicesOverlap(nextAdminIds, nextMemberIds) {
		return nil, utils.NewInvalidArgumentError("administrator and member lists must be disjoint")
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, utils.NewInvalidArgumentError("title must not be empty")
		}
		if err := s.moderateText(ctx, "title", *input.Title); err != nil {
			return nil, err
		}
	}
	if input.Description != nil && *input.Description != "" {
		if err := s.moderateText(ctx, "description", *input.Description); err != nil {
			return nil, err
		}
	}

	var visibility *model.WantVisibility
	if input.Visibility != nil {
		visibility, err = s.resolver.Resolve(ctx, *input.Visibility)
		if err != nil {
			return nil, err
		}
	}

	var imageRef *model.WantImageRef
	if input.Image != nil {
		if _, ok := imagestore.ExtensionForMimeType(input.Image.MimeType); !ok {
			return nil, utils.NewInvalidArgumentError(
				"invalid image mime type %s, allowed values: %s",
				input.Image.MimeType, strings.Join(imagestore.AllowedMimeTypes(), ","))
		}
		category, err := s.settings.Moderation.ClassifyImage(ctx, input.Image.Data)
		if err != nil {
			return nil, err
		}
		if category != "" {
			return nil, utils.NewExplicitContentError("image", category)
		}
		imageRef, err = s.settings.Images.Upload(wantId, input.Image.Data, input.Image.MimeType)
		if err != nil {
			return nil, err
		}
	}

	updated, err := s.settings.Store.Update(ctx, wantId, func(want *model.Want) error {
		want.AdminIds = nextAdminIds
		want.MemberIds = nextMemberIds
		if input.Title != nil {
			want.Title = *input.Title
		}
		if input.Description != nil {
			want.Description = *input.Description
		}
		if visibility != nil {
			want.Visibility = *visibility
		}
		if imageRef != nil {
			if err := want.SetImageRef(imageRef); err != nil {
				return err
			}
		}
		want.UpdatedAt = time.Now()
		return nil
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		// Deleted between the initial load and the transaction.
		return nil, utils.NewNotFoundError("Want", wantId)
	}

	Logger.Log.Info("updated want ", wantId)
	return s.hydrate(updated)
}

// GetHomeFeed assembles and ranks the wants visible to userId. origin is
// optional; without it location scopes neither filter nor score.
func (s *Service) GetHomeFeed(ctx context.Context, userId string, origin *model.GeolocationCoordinates) ([]*Want, error) {
	candidates, err := s.assembler.Assemble(ctx, userId, origin)
	if err != nil {
		return nil, err
	}

	ranked := Rank(candidates, origin, time.Now())

	feed := make([]*Want, 0, len(ranked))
	for _, want := range ranked {
		hydrated, err := s.hydrate(want)
		if err != nil {
			return nil, err
		}
		feed = append(feed, hydrated)
	}
	return feed, nil
}

func (s *Service) moderateText(ctx context.Context, field string, text string) error {
	category, err := s.settings.Moderation.ClassifyText(ctx, text)
	if err != nil {
		return err
	}
	if category != "" {
		return utils.NewExplicitContentError(field, category)
	}
	return nil
}

func (s *Service) validateUsersExist(ctx context.Context, userIds []string) error {
	for _, userId := range userIds {
		exists, err := s.settings.Users.Exists(ctx, userId)
		if err != nil {
			return err
		}
		if !exists {
			return utils.NewNotFoundError("User", userId)
		}
	}
	return nil
}

// hydrate converts a stored want into its client-facing projection,
// resolving the image reference into a signed URL.
func (s *Service) hydrate(want *model.Want) (*Want, error) {
	hydrated := &Want{
		Id:          want.Id,
		CreatorId:   want.CreatorId,
		AdminIds:    want.AdminIds,
		MemberIds:   want.MemberIds,
		Title:       want.Title,
		Description: want.Description,
		Visibility: Visibility{
			VisibleTo: want.Visibility.VisibleTo,
			TargetIds: want.Visibility.TargetIds,
		},
		CreatedAt: want.CreatedAt,
		UpdatedAt: want.UpdatedAt,
	}

	if location := want.Visibility.Location; location != nil {
		hydrated.Visibility.Location = &Location{
			Address:        location.Address,
			RadiusInMeters: location.RadiusInMeters,
		}
	}

	ref, err := want.ImageRef()
	if err != nil {
		return nil, err
	}
	if ref != nil {
		url, err := s.settings.Images.SignedUrl(ref)
		if err != nil {
			return nil, err
		}
		hydrated.ImageUrl = url
	}

	return hydrated, nil
}
