package battlenet

// Region selects the API partition a client talks to
type Region string

const (
	RegionUS Region = "us"
	RegionEU Region = "eu"
	RegionKR Region = "kr"
	RegionTW Region = "tw"
	RegionCN Region = "cn"
)

// China runs on its own gateway and OAuth host; the other regions
// follow the <region>.api / <region>.battle.net pattern.
var regions = map[Region]struct {
	apiURL   string
	tokenURL string
	locale   string
}{
	RegionUS: {"https://us.api.blizzard.com", "https://us.battle.net/oauth/token", "en_US"},
	RegionEU: {"https://eu.api.blizzard.com", "https://eu.battle.net/oauth/token", "en_GB"},
	RegionKR: {"https://kr.api.blizzard.com", "https://kr.battle.net/oauth/token", "ko_KR"},
	RegionTW: {"https://tw.api.blizzard.com", "https://tw.battle.net/oauth/token", "zh_TW"},
	RegionCN: {"https://gateway.battlenet.com.cn", "https://www.battlenet.com.cn/oauth/token", "zh_CN"},
}

// Valid reports whether the region is one the API serves
func (r Region) Valid() bool {
	_, ok := regions[r]
	return ok
}

// APIURL returns the region's API base URL
func (r Region) APIURL() string {
	return regions[r].apiURL
}

// TokenURL returns the region's OAuth token endpoint
func (r Region) TokenURL() string {
	return regions[r].tokenURL
}

// Locale returns the region's default locale parameter
func (r Region) Locale() string {
	return regions[r].locale
}

// Namespace is the API partition qualifier sent with every request
type Namespace string

const (
	NamespaceProfile Namespace = "profile"
	NamespaceDynamic Namespace = "dynamic"
	NamespaceStatic  Namespace = "static"
)

// For qualifies the namespace with a region, e.g. "profile-eu"
func (n Namespace) For(r Region) string {
	return string(n) + "-" + string(r)
}
