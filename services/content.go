package services

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"sova/models"
)

//go:embed content/content.json
var siteContentJSON []byte

// ContentService serves the read-only marketing content of the site.
type ContentService struct {
	content    models.SiteContent
	targetDate string
}

// NewContentService loads the embedded content. Reward prices are taken from
// the reward catalog; a reward card without a catalog tier is an error.
func NewContentService(targetDate string) (*ContentService, error) {
	var content models.SiteContent
	if err := json.Unmarshal(siteContentJSON, &content); err != nil {
		return nil, fmt.Errorf("parse site content: %w", err)
	}
	for i := range content.Rewards {
		tier, ok := models.FindRewardTier(content.Rewards[i].Heading)
		if !ok {
			return nil, fmt.Errorf("reward card %q has no catalog tier", content.Rewards[i].Heading)
		}
		content.Rewards[i].Price = tier.UnitAmount
	}
	return &ContentService{content: content, targetDate: targetDate}, nil
}

func (s *ContentService) Hero() models.HeroContent { return s.content.Hero }

func (s *ContentService) Rewards() []models.RewardContent { return s.content.Rewards }

func (s *ContentService) ProductFeatures() []models.ProductFeature { return s.content.ProductFeatures }

func (s *ContentService) Products() []models.Product { return s.content.Products }

func (s *ContentService) Videos() []string { return s.content.Videos }

// TargetDate returns the campaign countdown date, empty when unset.
func (s *ContentService) TargetDate() string { return s.targetDate }
