package models

// RewardTier is a named pledge level. A pledge is valid when its amount is a
// positive multiple of UnitAmount. TemplateKey points at the certificate
// background under the public directory.
type RewardTier struct {
	Title       string `json:"title"`
	UnitAmount  int64  `json:"unitAmount"`
	TemplateKey string `json:"-"`
	NameColor   string `json:"-"`
}

// RewardCatalog is the canonical tier table shared by validation, reward
// content and certificate rendering. Titles are unique.
var RewardCatalog = []RewardTier{
	{Title: "Selfless Supporter", UnitAmount: 119, TemplateKey: "assets/images/Selfless-Supporter-post.png", NameColor: "#4cfa11"},
	{Title: "Helping Hands", UnitAmount: 299, TemplateKey: "assets/images/Helping-hands-post.png", NameColor: "#030303"},
	{Title: "Dual Impact", UnitAmount: 549, TemplateKey: "assets/images/Dual-impact-post.png", NameColor: "#030303"},
	{Title: "Caring Companion", UnitAmount: 899, TemplateKey: "assets/images/Caring-companion-post.png", NameColor: "#030303"},
	{Title: "Promising Protector", UnitAmount: 1399, TemplateKey: "assets/images/Promising-protector-post.png", NameColor: "#030303"},
	{Title: "Community Hero", UnitAmount: 1899, TemplateKey: "assets/images/Community-hero-post.png", NameColor: "#FFD700"},
	{Title: "Sova Champion", UnitAmount: 2399, TemplateKey: "assets/images/Sova-Champion-post.png", NameColor: "#FFD700"},
	{Title: "Architect of Impact", UnitAmount: 4999, TemplateKey: "assets/images/Architect-of-impact-post.png", NameColor: "#FFD700"},
}

// FindRewardTier looks a tier up by exact title.
func FindRewardTier(title string) (RewardTier, bool) {
	for _, tier := range RewardCatalog {
		if tier.Title == title {
			return tier, true
		}
	}
	return RewardTier{}, false
}
