package steamlink

import (
	"net/url"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/net/publicsuffix"

	"nickguard/internal/domain"
	"nickguard/internal/textsim"
)

const communityDomain = "steamcommunity.com"

// Phishing hosts seen in applications. Anything close enough to the real
// label is caught by similarity as well.
var knownFakes = []string{
	"xn--steamcommunity-vul.com",
	"steamcommunlty.com",
	"steamcommunitty.com",
	"steamcommunity.ru",
	"steamcommunity.org",
}

var (
	bareSteamID = regexp.MustCompile(`^\d{17}$`)
	steamID64   = regexp.MustCompile(`^7656119\d{10}$`)
	vanityName  = regexp.MustCompile(`^[A-Za-z0-9_-]{2,32}$`)
)

type Service struct {
	threshold float64
}

// New returns a checker that treats registrable labels at least threshold
// similar to "steamcommunity" as look-alikes. Zero means 0.8.
func New(threshold float64) *Service {
	if threshold <= 0 || threshold > 1 {
		threshold = 0.8
	}
	return &Service{threshold: threshold}
}

// Check classifies a profile link. A bare 17-digit SteamID64 is accepted and
// expanded; sub-pages such as /games or /badges are dropped from the
// canonical URL.
func (s *Service) Check(raw string) domain.SteamLink {
	link := domain.SteamLink{Input: raw}
	in := strings.TrimSpace(raw)
	if bareSteamID.MatchString(in) {
		in = "https://" + communityDomain + "/profiles/" + in
	}
	if !strings.Contains(in, "://") {
		in = "https://" + in
	}
	u, err := url.Parse(in)
	if err != nil || u.Hostname() == "" || (u.Scheme != "https" && u.Scheme != "http") {
		link.Problem = domain.SteamInvalidURL
		return link
	}

	host := strings.TrimSuffix(strings.ToLower(u.Hostname()), ".")
	registrable, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		registrable = host
	}
	link.Host, link.Registrable = host, registrable

	switch {
	case strings.Contains(host, "xn--"):
		link.Problem = domain.SteamPunycode
		return link
	case registrable != communityDomain:
		if s.lookalike(registrable) {
			link.Problem = domain.SteamLookalike
		} else {
			link.Problem = domain.SteamNotSteam
		}
		return link
	case host != communityDomain && host != "www."+communityDomain:
		link.Problem = domain.SteamBadPath
		return link
	}

	segs := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segs) < 2 || segs[1] == "" {
		link.Problem = domain.SteamBadPath
		return link
	}
	switch kind, value := segs[0], segs[1]; kind {
	case string(domain.SteamProfile):
		if !steamID64.MatchString(value) {
			link.Problem = domain.SteamBadSteamID
			return link
		}
		link.Kind, link.Value = domain.SteamProfile, value
	case string(domain.SteamVanity):
		if !vanityName.MatchString(value) {
			link.Problem = domain.SteamBadPath
			return link
		}
		link.Kind, link.Value = domain.SteamVanity, value
	default:
		link.Problem = domain.SteamBadPath
		return link
	}
	link.URL = "https://" + communityDomain + "/" + string(link.Kind) + "/" + link.Value
	link.Valid = true
	return link
}

func (s *Service) lookalike(registrable string) bool {
	if slices.Contains(knownFakes, registrable) {
		return true
	}
	label := registrable
	if suffix, _ := publicsuffix.PublicSuffix(registrable); suffix != "" {
		label = strings.TrimSuffix(registrable, "."+suffix)
	}
	return textsim.Alike(label, "steamcommunity", s.threshold)
}
