// Package query answers campaign lookups through a repository port so the
// callers do not depend on the on-disk layout.
package query

import (
	"github.com/wingmate/wingmate/internal/campaign"
	"github.com/wingmate/wingmate/internal/parser"
)

// Repository is the read port campaign queries go through.
type Repository interface {
	Campaign(name string) (campaign.Descriptor, bool)
	Missions(name, serial string) []parser.Object
}

// Service serves campaign queries.
type Service struct {
	repo Repository
}

// NewService creates a Service over repo.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Campaign returns the descriptor of the named campaign.
func (s *Service) Campaign(name string) (campaign.Descriptor, bool) {
	return s.repo.Campaign(name)
}

// CampaignMissions returns the combat reports of the campaign's player
// pilot, or an empty list when the campaign does not exist.
func (s *Service) CampaignMissions(name string) []parser.Object {
	c, ok := s.repo.Campaign(name)
	if !ok {
		return []parser.Object{}
	}
	return s.repo.Missions(name, c.PlayerSerial)
}

type jsonRepository struct {
	reader *campaign.Reader
}

// NewJSONRepository adapts a campaign.Reader to Repository.
func NewJSONRepository(reader *campaign.Reader) Repository {
	return &jsonRepository{reader: reader}
}

func (r *jsonRepository) Campaign(name string) (campaign.Descriptor, bool) {
	return r.reader.Descriptor(name)
}

func (r *jsonRepository) Missions(name, serial string) []parser.Object {
	return r.reader.CombatReports(name, serial)
}
