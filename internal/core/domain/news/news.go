package news

// Article is the normalized shape every feed item is reduced to before
// merging. Link is the identity key for display purposes; deduplication
// across feeds happens on exact title match because aggregators frequently
// syndicate the same story under different URLs.
type Article struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	PubDate     string `json:"pubDate"`
	Source      string `json:"source"`
	Description string `json:"description,omitempty"`
}

// Feed describes one configured news source. The optional associations
// (CandidateID, RaceFilter, RaceTags) exist purely for client-side filtering;
// a feed tagged "all" is general-interest and matches every filter.
type Feed struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	URL         string   `json:"url"`
	Category    string   `json:"category"`
	Priority    int      `json:"priority"`
	Description string   `json:"description,omitempty"`
	CandidateID string   `json:"candidateId,omitempty"`
	RaceFilter  string   `json:"raceFilter,omitempty"`
	RaceTags    []string `json:"raceTags,omitempty"`
}

// FeedConfig is the /news/rss-feeds.json document.
type FeedConfig struct {
	Feeds          []Feed   `json:"feeds"`
	SearchKeywords []string `json:"searchKeywords"`
}

// FeaturedArticle is a hand-curated article from /news/featured-articles.json.
type FeaturedArticle struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Link        string `json:"link"`
	Source      string `json:"source"`
	PubDate     string `json:"pubDate"`
	Description string `json:"description"`
	Relevance   string `json:"relevance"`
	Category    string `json:"category"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Featured    bool   `json:"featured"`
}

type FeaturedArticlesResponse struct {
	Articles    []FeaturedArticle `json:"articles"`
	LastUpdated string            `json:"lastUpdated,omitempty"`
}

// ProxyItem is one raw item from the RSS-to-JSON proxy, before normalization.
type ProxyItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	PubDate     string `json:"pubDate"`
	Source      string `json:"source,omitempty"`
	Author      string `json:"author,omitempty"`
	Description string `json:"description,omitempty"`
}

// ProxyFeedInfo carries the channel-level fields of the parsed feed.
type ProxyFeedInfo struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

// ProxyResponse is the envelope returned by the RSS-to-JSON proxy.
// Status is "ok" on success; anything else carries a Message.
type ProxyResponse struct {
	Status  string         `json:"status"`
	Items   []ProxyItem    `json:"items,omitempty"`
	Feed    *ProxyFeedInfo `json:"feed,omitempty"`
	Message string         `json:"message,omitempty"`
}
