package services

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"kam-api/apperrors"
	"kam-api/geocode"
	"kam-api/models"
	"kam-api/store"
	"kam-api/timeutil"
)

type AddressStore interface {
	GetAddress(ctx context.Context, id uint) (*models.Address, error)
	CreateAddress(ctx context.Context, a *models.Address) error
	UpdateAddress(ctx context.Context, id uint, patch store.AddressPatch) (*models.Address, error)
}

// AddressService fills Address.Timezone from the geocode lookup. A nil
// lookup leaves timezones empty.
type AddressService struct {
	store  AddressStore
	lookup geocode.TimezoneLookup
	log    *logrus.Entry
}

func NewAddressService(s AddressStore, lookup geocode.TimezoneLookup, log *logrus.Entry) *AddressService {
	return &AddressService{store: s, lookup: lookup, log: log.WithField("component", "addresses")}
}

func (s *AddressService) Create(ctx context.Context, a *models.Address) error {
	if err := a.Validate(); err != nil {
		return err
	}
	a.Timezone = nil
	tz, err := s.resolve(ctx, a.City, a.Country)
	if err != nil {
		return err
	}
	a.Timezone = tz
	return s.store.CreateAddress(ctx, a)
}

// Update re-resolves the timezone when city or country change.
func (s *AddressService) Update(ctx context.Context, id uint, patch store.AddressPatch) (*models.Address, error) {
	patch.Timezone = nil
	if patch.City != nil || patch.Country != nil {
		current, err := s.store.GetAddress(ctx, id)
		if err != nil {
			return nil, err
		}
		city, country := current.City, current.Country
		if patch.City != nil {
			city = *patch.City
		}
		if patch.Country != nil {
			country = *patch.Country
		}
		if city != current.City || country != current.Country {
			tz, err := s.resolve(ctx, city, country)
			if err != nil {
				return nil, err
			}
			if tz != nil {
				patch.Timezone = tz
			}
		}
	}
	return s.store.UpdateAddress(ctx, id, patch)
}

func (s *AddressService) resolve(ctx context.Context, city, country string) (*string, error) {
	if s.lookup == nil || strings.TrimSpace(city) == "" || strings.TrimSpace(country) == "" {
		return nil, nil
	}
	tz, err := s.lookup.GetTimezone(ctx, city, country)
	if err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{"city": city, "country": country}).Warn("timezone lookup failed")
		if apperrors.KindOf(err) == "" {
			err = apperrors.Upstream(err, "failed to fetch timezone information")
		}
		return nil, err
	}
	if !timeutil.ValidTimezone(tz) {
		return nil, apperrors.Upstream(nil, "timezone lookup returned unknown zone %q", tz)
	}
	return &tz, nil
}
