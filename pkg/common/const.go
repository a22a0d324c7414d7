package common

const (
	KEY_SUGGEST_TAGS = "suggest_tags:%s"
	KEY_ATTRIBUTION  = "attribution:%s"
)

const (
	MARKET_A  = "A"
	MARKET_HK = "HK"
)

func GetMarketList() []string {
	return []string{
		MARKET_A,
		MARKET_HK,
	}
}
