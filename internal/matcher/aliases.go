package matcher

// Static alias tables for pro-league team naming. The odds provider uses
// full names ("Los Angeles Lakers"), the prediction-market venue uses
// short codes in side labels ("LAL") and assorted forms in market
// titles. Everything funnels through these tables into a canonical code.
// Additional aliases can be layered on via Config.Aliases.

// cityPrefixes are stripped before nickname lookup, longest first.
var cityPrefixes = []string{
	"oklahoma city", "golden state", "san francisco", "new orleans",
	"kansas city", "san antonio", "tampa bay", "green bay", "las vegas",
	"new england", "los angeles", "salt lake", "new york", "san diego",
	"san jose", "st louis", "st. louis", "new jersey", "washington",
	"minnesota", "milwaukee", "baltimore", "cleveland", "cincinnati",
	"pittsburgh", "carolina", "tennessee", "jacksonville", "philadelphia",
	"indianapolis", "sacramento", "anaheim", "columbus", "edmonton",
	"calgary", "vancouver", "montreal", "winnipeg", "nashville",
	"portland", "memphis", "orlando", "buffalo", "arizona", "colorado",
	"florida", "toronto", "brooklyn", "detroit", "houston", "dallas",
	"atlanta", "chicago", "seattle", "phoenix", "denver", "boston",
	"miami", "ottawa", "utah",
}

// nicknameToCode maps a bare team nickname to the venue's team code.
var nicknameToCode = map[string]string{
	// NBA
	"hawks": "atl", "celtics": "bos", "nets": "bkn", "hornets": "cha",
	"bulls": "chi", "cavaliers": "cle", "cavs": "cle", "mavericks": "dal",
	"mavs": "dal", "nuggets": "den", "pistons": "det", "warriors": "gsw",
	"rockets": "hou", "pacers": "ind", "clippers": "lac", "lakers": "lal",
	"grizzlies": "mem", "heat": "mia", "bucks": "mil", "timberwolves": "min",
	"wolves": "min", "pelicans": "nop", "knicks": "nyk", "thunder": "okc",
	"magic": "orl", "76ers": "phi", "sixers": "phi", "suns": "phx",
	"trail blazers": "por", "blazers": "por", "spurs": "sas",
	"raptors": "tor", "jazz": "uta", "wizards": "was",
	// NFL
	"falcons": "atl", "ravens": "bal", "bills": "buf", "bears": "chi",
	"bengals": "cin", "browns": "cle", "cowboys": "dal", "broncos": "den",
	"lions": "det", "packers": "gb", "texans": "hou", "colts": "ind",
	"jaguars": "jax", "chiefs": "kc", "raiders": "lv", "chargers": "lac",
	"rams": "lar", "dolphins": "mia", "vikings": "min", "patriots": "ne",
	"pats": "ne", "saints": "no", "eagles": "phi", "steelers": "pit",
	"49ers": "sf", "niners": "sf", "seahawks": "sea", "buccaneers": "tb",
	"bucs": "tb", "titans": "ten", "commanders": "was",
	// NHL
	"ducks": "ana", "coyotes": "ari", "bruins": "bos", "sabres": "buf",
	"flames": "cgy", "hurricanes": "car", "blackhawks": "chi",
	"avalanche": "col", "blue jackets": "cbj", "stars": "dal",
	"red wings": "det", "oilers": "edm", "wild": "min",
	"canadiens": "mtl", "habs": "mtl", "predators": "nsh", "preds": "nsh",
	"devils": "njd", "islanders": "nyi", "senators": "ott", "sens": "ott",
	"flyers": "phi", "penguins": "pit", "pens": "pit", "sharks": "sjs",
	"kraken": "sea", "blues": "stl", "lightning": "tbl", "bolts": "tbl",
	"maple leafs": "tor", "leafs": "tor", "canucks": "van",
	"golden knights": "vgk", "knights": "vgk", "capitals": "wsh",
	"caps": "wsh",
	// MLB
	"diamondbacks": "ari", "d-backs": "ari", "braves": "atl",
	"orioles": "bal", "red sox": "bos", "cubs": "chc", "white sox": "cws",
	"reds": "cin", "guardians": "cle", "rockies": "col", "tigers": "det",
	"astros": "hou", "royals": "kc", "angels": "laa", "dodgers": "lad",
	"marlins": "mia", "brewers": "mil", "twins": "min", "mets": "nym",
	"yankees": "nyy", "athletics": "ath", "phillies": "phi",
	"pirates": "pit", "padres": "sd", "mariners": "sea", "rays": "tb",
	"blue jays": "tor", "jays": "tor", "nationals": "wsh", "nats": "wsh",
}

// fullNameToCode resolves ambiguous nicknames (Giants, Kings, Rangers,
// Panthers, Jets, Cardinals) and city-qualified forms directly.
var fullNameToCode = map[string]string{
	// NBA
	"atlanta hawks": "atl", "boston celtics": "bos", "brooklyn nets": "bkn",
	"charlotte hornets": "cha", "chicago bulls": "chi",
	"cleveland cavaliers": "cle", "dallas mavericks": "dal",
	"denver nuggets": "den", "detroit pistons": "det",
	"golden state warriors": "gsw", "houston rockets": "hou",
	"indiana pacers": "ind", "los angeles clippers": "lac",
	"la clippers": "lac", "los angeles lakers": "lal", "la lakers": "lal",
	"memphis grizzlies": "mem", "miami heat": "mia",
	"milwaukee bucks": "mil", "minnesota timberwolves": "min",
	"new orleans pelicans": "nop", "new york knicks": "nyk",
	"oklahoma city thunder": "okc", "orlando magic": "orl",
	"philadelphia 76ers": "phi", "phoenix suns": "phx",
	"portland trail blazers": "por", "sacramento kings": "sac",
	"san antonio spurs": "sas", "toronto raptors": "tor",
	"utah jazz": "uta", "washington wizards": "was",
	// NFL
	"arizona cardinals": "ari", "atlanta falcons": "atl",
	"baltimore ravens": "bal", "buffalo bills": "buf",
	"carolina panthers": "car", "chicago bears": "chi",
	"cincinnati bengals": "cin", "cleveland browns": "cle",
	"dallas cowboys": "dal", "denver broncos": "den",
	"detroit lions": "det", "green bay packers": "gb",
	"houston texans": "hou", "indianapolis colts": "ind",
	"jacksonville jaguars": "jax", "kansas city chiefs": "kc",
	"las vegas raiders": "lv", "los angeles chargers": "lac",
	"la chargers": "lac", "los angeles rams": "lar", "la rams": "lar",
	"miami dolphins": "mia", "minnesota vikings": "min",
	"new england patriots": "ne", "new orleans saints": "no",
	"new york giants": "nyg", "new york jets": "nyj",
	"philadelphia eagles": "phi", "pittsburgh steelers": "pit",
	"san francisco 49ers": "sf", "seattle seahawks": "sea",
	"tampa bay buccaneers": "tb", "tennessee titans": "ten",
	"washington commanders": "was",
	// NHL
	"anaheim ducks": "ana", "arizona coyotes": "ari",
	"boston bruins": "bos", "buffalo sabres": "buf",
	"calgary flames": "cgy", "carolina hurricanes": "car",
	"chicago blackhawks": "chi", "colorado avalanche": "col",
	"columbus blue jackets": "cbj", "dallas stars": "dal",
	"detroit red wings": "det", "edmonton oilers": "edm",
	"florida panthers": "fla", "los angeles kings": "la",
	"la kings": "la", "minnesota wild": "min",
	"montreal canadiens": "mtl", "nashville predators": "nsh",
	"new jersey devils": "njd", "new york islanders": "nyi",
	"new york rangers": "nyr", "ottawa senators": "ott",
	"philadelphia flyers": "phi", "pittsburgh penguins": "pit",
	"san jose sharks": "sjs", "seattle kraken": "sea",
	"st louis blues": "stl", "st. louis blues": "stl",
	"tampa bay lightning": "tbl", "toronto maple leafs": "tor",
	"utah hockey club": "uta", "vancouver canucks": "van",
	"vegas golden knights": "vgk", "washington capitals": "wsh",
	"winnipeg jets": "wpg",
	// MLB
	"arizona diamondbacks": "ari", "atlanta braves": "atl",
	"baltimore orioles": "bal", "boston red sox": "bos",
	"chicago cubs": "chc", "chicago white sox": "cws",
	"cincinnati reds": "cin", "cleveland guardians": "cle",
	"colorado rockies": "col", "detroit tigers": "det",
	"houston astros": "hou", "kansas city royals": "kc",
	"los angeles angels": "laa", "la angels": "laa",
	"los angeles dodgers": "lad", "la dodgers": "lad",
	"miami marlins": "mia", "milwaukee brewers": "mil",
	"minnesota twins": "min", "new york mets": "nym",
	"new york yankees": "nyy", "oakland athletics": "ath",
	"philadelphia phillies": "phi", "pittsburgh pirates": "pit",
	"san diego padres": "sd", "san francisco giants": "sf",
	"seattle mariners": "sea", "st louis cardinals": "stl",
	"st. louis cardinals": "stl", "tampa bay rays": "tb",
	"texas rangers": "tex", "toronto blue jays": "tor",
	"washington nationals": "wsh",
}

// sportKeyToVenue maps odds-provider sport keys to the venue's sport
// identifiers used on market contracts.
var sportKeyToVenue = map[string]string{
	"americanfootball_nfl": "nfl",
	"basketball_nba":       "nba",
	"basketball_ncaab":     "ncaab",
	"basketball_wncaab":    "ncaaw",
	"icehockey_nhl":        "nhl",
	"baseball_mlb":         "mlb",
}

// VenueSport translates an odds-provider sport key into the venue's
// sport identifier. Unknown keys pass through unchanged so the two
// catalogs can still be compared on equal footing.
func VenueSport(sportKey string) string {
	if venue, ok := sportKeyToVenue[sportKey]; ok {
		return venue
	}
	return sportKey
}
