package tenant

// Kind tells the router what sort of host a request arrived on.
type Kind int

const (
	// KindBase is the platform itself: the base domain or localhost.
	KindBase Kind = iota
	// KindSubdomain is <slug>.<base>.
	KindSubdomain
	// KindCustom is anything else, treated as a candidate custom domain.
	KindCustom
)

func (k Kind) String() string {
	switch k {
	case KindBase:
		return "base"
	case KindSubdomain:
		return "subdomain"
	default:
		return "custom"
	}
}

// Classification is the result of Classify.
type Classification struct {
	Host string // normalized
	Kind Kind
	Slug string // set only for KindSubdomain
}

// Classify sorts host into base, tenant subdomain, or custom domain.  An
// empty host falls through to KindCustom and will not match any store.
func Classify(host, base string) Classification {
	h := NormalizeHost(host)
	b := NormalizeHost(base)

	if h == b || h == "localhost" {
		return Classification{Host: h, Kind: KindBase}
	}
	if slug, ok := ExtractSlug(h, b); ok {
		return Classification{Host: h, Kind: KindSubdomain, Slug: slug}
	}
	return Classification{Host: h, Kind: KindCustom}
}
