package record

import (
	"strings"
)

// Continent is one of the federation's six continents. The zero value is
// the unknown continent.
type Continent string

// Continents.
const (
	ContinentUnknown Continent = ""
	Africa           Continent = "Africa"
	Asia             Continent = "Asia"
	Europe           Continent = "Europe"
	NorthAmerica     Continent = "North America"
	Oceania          Continent = "Oceania"
	SouthAmerica     Continent = "South America"
)

// ScopeWorld is the leaderboard scope covering every competitor.
const ScopeWorld = "world"

// UnknownCountryCode is the sentinel used when a payload names no country.
const UnknownCountryCode = "XX"

const (
	unknownRegionName     = "Unknown region"
	unknownCountryCodeLow = "xx"
)

var continentScopes = map[Continent]string{ //nolint:gochecknoglobals // immutable lookup
	Africa:       "africa",
	Asia:         "asia",
	Europe:       "europe",
	NorthAmerica: "north-america",
	Oceania:      "oceania",
	SouthAmerica: "south-america",
}

// ParseContinent accepts display names ("North America"), federation ids
// ("_North America") and scope codes ("north-america"), case-insensitively.
func ParseContinent(s string) Continent {
	key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "_")))
	key = strings.NewReplacer("-", " ", "_", " ").Replace(key)
	for c := range continentScopes {
		if strings.ToLower(string(c)) == key {
			return c
		}
	}
	return ContinentUnknown
}

// ScopeCode returns the continental leaderboard scope. Unmapped continents
// fall back to the world scope.
func (c Continent) ScopeCode() string {
	if code, ok := continentScopes[c]; ok {
		return code
	}
	return ScopeWorld
}

// Known reports whether c is one of the six continents.
func (c Continent) Known() bool {
	_, ok := continentScopes[c]
	return ok
}

// Country identifies a competitor's nationality. ISO2 is lowercase; the
// sentinel "xx" marks an unknown region.
type Country struct {
	Name string `json:"name"`
	ISO2 string `json:"iso2"`
}

// UnknownCountry is the unknown-region value.
func UnknownCountry() Country {
	return Country{Name: unknownRegionName, ISO2: unknownCountryCodeLow}
}

// Known reports whether the country was resolved from the payload.
func (c Country) Known() bool {
	return len(c.ISO2) == 2 && c.ISO2 != unknownCountryCodeLow
}

// Flag returns the regional-indicator emoji for the country, or "" for the
// unknown region.
func (c Country) Flag() string {
	if !c.Known() {
		return ""
	}
	const regionalA = 0x1F1E6
	var b strings.Builder
	for _, r := range strings.ToUpper(c.ISO2) {
		if r < 'A' || r > 'Z' {
			return ""
		}
		b.WriteRune(regionalA + (r - 'A'))
	}
	return b.String()
}

type countryInfo struct {
	name      string
	continent Continent
}

// countries maps lowercase ISO-2 codes to display name and continent.
var countries = map[string]countryInfo{ //nolint:gochecknoglobals // immutable lookup
	"ad": {"Andorra", Europe},
	"ae": {"United Arab Emirates", Asia},
	"af": {"Afghanistan", Asia},
	"ag": {"Antigua and Barbuda", NorthAmerica},
	"al": {"Albania", Europe},
	"am": {"Armenia", Europe},
	"ao": {"Angola", Africa},
	"ar": {"Argentina", SouthAmerica},
	"at": {"Austria", Europe},
	"au": {"Australia", Oceania},
	"az": {"Azerbaijan", Europe},
	"ba": {"Bosnia and Herzegovina", Europe},
	"bb": {"Barbados", NorthAmerica},
	"bd": {"Bangladesh", Asia},
	"be": {"Belgium", Europe},
	"bf": {"Burkina Faso", Africa},
	"bg": {"Bulgaria", Europe},
	"bh": {"Bahrain", Asia},
	"bi": {"Burundi", Africa},
	"bj": {"Benin", Africa},
	"bn": {"Brunei", Asia},
	"bo": {"Bolivia", SouthAmerica},
	"br": {"Brazil", SouthAmerica},
	"bs": {"Bahamas", NorthAmerica},
	"bt": {"Bhutan", Asia},
	"bw": {"Botswana", Africa},
	"by": {"Belarus", Europe},
	"bz": {"Belize", NorthAmerica},
	"ca": {"Canada", NorthAmerica},
	"cd": {"Democratic Republic of the Congo", Africa},
	"cf": {"Central African Republic", Africa},
	"cg": {"Congo", Africa},
	"ch": {"Switzerland", Europe},
	"ci": {"Côte d'Ivoire", Africa},
	"cl": {"Chile", SouthAmerica},
	"cm": {"Cameroon", Africa},
	"cn": {"China", Asia},
	"co": {"Colombia", SouthAmerica},
	"cr": {"Costa Rica", NorthAmerica},
	"cu": {"Cuba", NorthAmerica},
	"cv": {"Cabo Verde", Africa},
	"cy": {"Cyprus", Europe},
	"cz": {"Czech Republic", Europe},
	"de": {"Germany", Europe},
	"dj": {"Djibouti", Africa},
	"dk": {"Denmark", Europe},
	"dm": {"Dominica", NorthAmerica},
	"do": {"Dominican Republic", NorthAmerica},
	"dz": {"Algeria", Africa},
	"ec": {"Ecuador", SouthAmerica},
	"ee": {"Estonia", Europe},
	"eg": {"Egypt", Africa},
	"er": {"Eritrea", Africa},
	"es": {"Spain", Europe},
	"et": {"Ethiopia", Africa},
	"fi": {"Finland", Europe},
	"fj": {"Fiji", Oceania},
	"fm": {"Federated States of Micronesia", Oceania},
	"fr": {"France", Europe},
	"ga": {"Gabon", Africa},
	"gb": {"United Kingdom", Europe},
	"gd": {"Grenada", NorthAmerica},
	"ge": {"Georgia", Europe},
	"gh": {"Ghana", Africa},
	"gm": {"Gambia", Africa},
	"gn": {"Guinea", Africa},
	"gq": {"Equatorial Guinea", Africa},
	"gr": {"Greece", Europe},
	"gt": {"Guatemala", NorthAmerica},
	"gw": {"Guinea Bissau", Africa},
	"gy": {"Guyana", SouthAmerica},
	"hk": {"Hong Kong, China", Asia},
	"hn": {"Honduras", NorthAmerica},
	"hr": {"Croatia", Europe},
	"ht": {"Haiti", NorthAmerica},
	"hu": {"Hungary", Europe},
	"id": {"Indonesia", Asia},
	"ie": {"Ireland", Europe},
	"il": {"Israel", Europe},
	"in": {"India", Asia},
	"iq": {"Iraq", Asia},
	"ir": {"Iran", Asia},
	"is": {"Iceland", Europe},
	"it": {"Italy", Europe},
	"jm": {"Jamaica", NorthAmerica},
	"jo": {"Jordan", Asia},
	"jp": {"Japan", Asia},
	"ke": {"Kenya", Africa},
	"kg": {"Kyrgyzstan", Asia},
	"kh": {"Cambodia", Asia},
	"ki": {"Kiribati", Oceania},
	"km": {"Comoros", Africa},
	"kn": {"Saint Kitts and Nevis", NorthAmerica},
	"kp": {"Democratic People's Republic of Korea", Asia},
	"kr": {"Republic of Korea", Asia},
	"kw": {"Kuwait", Asia},
	"kz": {"Kazakhstan", Asia},
	"la": {"Laos", Asia},
	"lb": {"Lebanon", Asia},
	"lc": {"Saint Lucia", NorthAmerica},
	"li": {"Liechtenstein", Europe},
	"lk": {"Sri Lanka", Asia},
	"lr": {"Liberia", Africa},
	"ls": {"Lesotho", Africa},
	"lt": {"Lithuania", Europe},
	"lu": {"Luxembourg", Europe},
	"lv": {"Latvia", Europe},
	"ly": {"Libya", Africa},
	"ma": {"Morocco", Africa},
	"mc": {"Monaco", Europe},
	"md": {"Moldova", Europe},
	"me": {"Montenegro", Europe},
	"mg": {"Madagascar", Africa},
	"mh": {"Marshall Islands", Oceania},
	"mk": {"North Macedonia", Europe},
	"ml": {"Mali", Africa},
	"mm": {"Myanmar", Asia},
	"mn": {"Mongolia", Asia},
	"mo": {"Macau, China", Asia},
	"mr": {"Mauritania", Africa},
	"mt": {"Malta", Europe},
	"mu": {"Mauritius", Africa},
	"mv": {"Maldives", Asia},
	"mw": {"Malawi", Africa},
	"mx": {"Mexico", NorthAmerica},
	"my": {"Malaysia", Asia},
	"mz": {"Mozambique", Africa},
	"na": {"Namibia", Africa},
	"ne": {"Niger", Africa},
	"ng": {"Nigeria", Africa},
	"ni": {"Nicaragua", NorthAmerica},
	"nl": {"Netherlands", Europe},
	"no": {"Norway", Europe},
	"np": {"Nepal", Asia},
	"nr": {"Nauru", Oceania},
	"nz": {"New Zealand", Oceania},
	"om": {"Oman", Asia},
	"pa": {"Panama", NorthAmerica},
	"pe": {"Peru", SouthAmerica},
	"pg": {"Papua New Guinea", Oceania},
	"ph": {"Philippines", Asia},
	"pk": {"Pakistan", Asia},
	"pl": {"Poland", Europe},
	"pr": {"Puerto Rico", NorthAmerica},
	"ps": {"Palestine", Asia},
	"pt": {"Portugal", Europe},
	"pw": {"Palau", Oceania},
	"py": {"Paraguay", SouthAmerica},
	"qa": {"Qatar", Asia},
	"ro": {"Romania", Europe},
	"rs": {"Serbia", Europe},
	"ru": {"Russia", Europe},
	"rw": {"Rwanda", Africa},
	"sa": {"Saudi Arabia", Asia},
	"sb": {"Solomon Islands", Oceania},
	"sc": {"Seychelles", Africa},
	"sd": {"Sudan", Africa},
	"se": {"Sweden", Europe},
	"sg": {"Singapore", Asia},
	"si": {"Slovenia", Europe},
	"sk": {"Slovakia", Europe},
	"sl": {"Sierra Leone", Africa},
	"sm": {"San Marino", Europe},
	"sn": {"Senegal", Africa},
	"so": {"Somalia", Africa},
	"sr": {"Suriname", SouthAmerica},
	"ss": {"South Sudan", Africa},
	"st": {"São Tomé and Príncipe", Africa},
	"sv": {"El Salvador", NorthAmerica},
	"sy": {"Syria", Asia},
	"sz": {"Eswatini", Africa},
	"td": {"Chad", Africa},
	"tg": {"Togo", Africa},
	"th": {"Thailand", Asia},
	"tj": {"Tajikistan", Asia},
	"tl": {"Timor-Leste", Asia},
	"tm": {"Turkmenistan", Asia},
	"tn": {"Tunisia", Africa},
	"to": {"Tonga", Oceania},
	"tr": {"Turkey", Europe},
	"tt": {"Trinidad and Tobago", NorthAmerica},
	"tv": {"Tuvalu", Oceania},
	"tw": {"Chinese Taipei", Asia},
	"tz": {"Tanzania", Africa},
	"ua": {"Ukraine", Europe},
	"ug": {"Uganda", Africa},
	"us": {"United States", NorthAmerica},
	"uy": {"Uruguay", SouthAmerica},
	"uz": {"Uzbekistan", Asia},
	"va": {"Vatican City", Europe},
	"vc": {"Saint Vincent and the Grenadines", NorthAmerica},
	"ve": {"Venezuela", SouthAmerica},
	"vn": {"Vietnam", Asia},
	"vu": {"Vanuatu", Oceania},
	"ws": {"Samoa", Oceania},
	"xk": {"Kosovo", Europe},
	"ye": {"Yemen", Asia},
	"za": {"South Africa", Africa},
	"zm": {"Zambia", Africa},
	"zw": {"Zimbabwe", Africa},
}

// lookupCountry resolves an ISO-2 code or an English country name.
func lookupCountry(s string) (string, countryInfo, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 2 {
		iso := strings.ToLower(s)
		if iso == unknownCountryCodeLow {
			return "", countryInfo{}, false
		}
		info, ok := countries[iso]
		if !ok {
			// Still a usable two-letter code, just without table metadata.
			return iso, countryInfo{name: strings.ToUpper(iso)}, isLetters(iso)
		}
		return iso, info, true
	}
	for iso, info := range countries {
		if strings.EqualFold(info.name, s) {
			return iso, info, true
		}
	}
	return "", countryInfo{}, false
}

func isLetters(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return s != ""
}
