package domain

// Member is a guild member as seen by a roster audit.
type Member struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
}

// MemberResult pairs a member with the decision on their nickname.
type MemberResult struct {
	Member   Member           `json:"member"`
	Decision CombinedDecision `json:"decision"`
}

// DuplicateGroup lists members whose handles look alike. Handle is the
// handle of the first member in input order.
type DuplicateGroup struct {
	Handle  string   `json:"handle"`
	Members []string `json:"members"`
}

// RosterReport is the outcome of auditing a member list. Results keep input
// order. Partial is set when the audit was cut short by cancellation.
type RosterReport struct {
	Checked    int              `json:"checked"`
	Rejected   int              `json:"rejected"`
	Results    []MemberResult   `json:"results"`
	Duplicates []DuplicateGroup `json:"duplicates"`
	Partial    bool             `json:"partial,omitempty"`
}

// SteamLinkKind is the profile addressing form.
type SteamLinkKind string

const (
	SteamVanity  SteamLinkKind = "id"
	SteamProfile SteamLinkKind = "profiles"
)

// SteamLinkProblem explains why a link was rejected.
type SteamLinkProblem string

const (
	SteamInvalidURL SteamLinkProblem = "invalid_url"
	SteamLookalike  SteamLinkProblem = "lookalike_domain"
	SteamPunycode   SteamLinkProblem = "punycode_host"
	SteamNotSteam   SteamLinkProblem = "not_steam"
	SteamBadPath    SteamLinkProblem = "bad_path"
	SteamBadSteamID SteamLinkProblem = "bad_steam_id"
)

// SteamLink is a classified Steam profile link. URL is the canonical form
// and is set only for valid links.
type SteamLink struct {
	Input       string           `json:"input"`
	URL         string           `json:"url,omitempty"`
	Host        string           `json:"host,omitempty"`
	Registrable string           `json:"registrable,omitempty"`
	Kind        SteamLinkKind    `json:"kind,omitempty"`
	Value       string           `json:"value,omitempty"`
	Valid       bool             `json:"valid"`
	Problem     SteamLinkProblem `json:"problem,omitempty"`
}
