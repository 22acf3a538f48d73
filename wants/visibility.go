package wants

import (
	"context"
	"strings"

	"github.com/wantsapp/wants-backend/geocode"
	"github.com/wantsapp/wants-backend/model"
	"github.com/wantsapp/wants-backend/users"
	"github.com/wantsapp/wants-backend/utils"
)

// LocationInput is the client-requested geographic narrowing of a visibility
// policy. Only the free-text address and radius are accepted; coordinates are
// always derived by geocoding.
type LocationInput struct {
	Address        string `json:"address"`
	RadiusInMeters int    `json:"radiusInMeters"`
}

// VisibilityInput is the client-requested visibility policy of a want.
type VisibilityInput struct {
	VisibleTo model.WantVisibleTo `json:"visibleTo"`
	TargetIds []string            `json:"targetIds,omitempty"`
	Location  *LocationInput      `json:"location,omitempty"`
}

// VisibilityResolver turns a requested visibility policy into its stored,
// normalized form. Resolution is pure validation plus a single geocoding
// call; it persists nothing, so create and update share it and identical
// inputs resolve identically.
type VisibilityResolver struct {
	users    users.Lookup
	geocoder geocode.Geocoder
}

func NewVisibilityResolver(userLookup users.Lookup, geocoder geocode.Geocoder) *VisibilityResolver {
	return &VisibilityResolver{users: userLookup, geocoder: geocoder}
}

func (r *VisibilityResolver) Resolve(ctx context.Context, input VisibilityInput) (*model.WantVisibility, error) {
	visibility := &model.WantVisibility{VisibleTo: input.VisibleTo}

	switch input.VisibleTo {
	case model.WantVisibleToPublic, model.WantVisibleToFriends:
		if len(input.TargetIds) > 0 {
			return nil, utils.NewInvalidArgumentError("target user ids are only valid for %s visibility", model.WantVisibleToSpecific)
		}
	case model.WantVisibleToSpecific:
		if len(input.TargetIds) == 0 {
			return nil, utils.NewInvalidArgumentError("%s visibility requires a non-empty target user list", model.WantVisibleToSpecific)
		}
		for _, targetId := range input.TargetIds {
			exists, err := r.users.Exists(ctx, targetId)
			if err != nil {
				return nil, err
			}
			if !exists {
				return nil, utils.NewNotFoundError("User", targetId)
			}
		}
		visibility.TargetIds = utils.DedupStringSlice(input.TargetIds)
	default:
		return nil, utils.NewInvalidArgumentError("unknown visibility kind %q", input.VisibleTo)
	}

	if input.Location != nil {
		location, err := r.resolveLocation(ctx, input.Location)
		if err != nil {
			return nil, err
		}
		visibility.Location = location
	}

	return visibility, nil
}

func (r *VisibilityResolver) resolveLocation(ctx context.Context, input *LocationInput) (*model.WantLocation, error) {
	if strings.TrimSpace(input.Address) == "" {
		return nil, utils.NewInvalidArgumentError("location scope requires a non-empty address")
	}
	if input.RadiusInMeters <= 0 {
		return nil, utils.NewInvalidArgumentError("radiusInMeters must be a positive integer, got %d", input.RadiusInMeters)
	}

	geocoded, err := r.geocoder.Resolve(ctx, input.Address)
	if err != nil {
		return nil, err
	}
	if geocoded == nil {
		return nil, utils.NewNotFoundError("Address", input.Address)
	}

	// Store the geocoder's canonical formatted address, not the raw input.
	return &model.WantLocation{
		Address:       geocoded.FormattedAddress,
		GooglePlaceId: geocoded.PlaceId,
		Coordinates: model.GeolocationCoordinates{
			Latitude:  geocoded.Latitude,
			Longitude: geocoded.Longitude,
		},
		RadiusInMeters: input.RadiusInMeters,
	}, nil
}
