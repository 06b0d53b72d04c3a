package common

const (
	// NotAvailable is rendered in place of any field a provider did not supply.
	NotAvailable = "N/A"

	CacheKeyDashboardSection = "dashboard:%s:%s"
	CacheKeyNews             = "dashboard:news:%s:%s"
	CacheKeyResolve          = "dashboard:resolve:%s"

	SectionProfile         = "profile"
	SectionPrices          = "prices"
	SectionIncomeStatement = "income_statement"
	SectionNews            = "news"
	SectionSentiment       = "sentiment"
	SectionBullBear        = "bull_bear"

	DateLayout = "2006-01-02"
)
