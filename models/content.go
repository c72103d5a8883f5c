package models

type HeroContent struct {
	Heading     string   `json:"heading"`
	Author      string   `json:"author"`
	Appeal      string   `json:"appeal"`
	HeroHeading string   `json:"heroHeading"`
	HeroInfo    string   `json:"heroInfo"`
	Images      []string `json:"images"`
	Video       string   `json:"video"`
}

// RewardContent - карточка награды на странице. Price берётся из RewardCatalog.
type RewardContent struct {
	MainRewardImage string `json:"mainrewardImage"`
	Heading         string `json:"heading"`
	Price           int64  `json:"price"`
	Contribution    string `json:"contribution"`
	MainRewardInfo  string `json:"mainrewardinfo"`
	Reward2Img      string `json:"reward2img"`
	Reward2Info     string `json:"reward2info"`
	Reward3Img      string `json:"reward3img"`
	Reward3Info     string `json:"reward3info"`
	Reward4Img      string `json:"reward4img"`
	Reward4Info     string `json:"reward4info"`
}

type ProductFeature struct {
	ID          string  `json:"id"`
	Image       *string `json:"image"`
	Video       *string `json:"video"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
}

type Product struct {
	Name        string `json:"name"`
	Image       string `json:"image"`
	Length      string `json:"length"`
	Features    string `json:"features"`
	Description string `json:"description"`
	Price       string `json:"price"`
}

// SiteContent - весь статический контент сайта
type SiteContent struct {
	Hero            HeroContent      `json:"hero"`
	Rewards         []RewardContent  `json:"rewards"`
	ProductFeatures []ProductFeature `json:"productFeatures"`
	Products        []Product        `json:"products"`
	Videos          []string         `json:"videos"`
}
