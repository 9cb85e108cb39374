package domain

// PackageAudience separates the visitor catalog from the partnership catalog.
type PackageAudience string

const (
	AudienceVisitor PackageAudience = "visitor"
	AudiencePartner PackageAudience = "partner"
)

// Package is a seeded catalog entry. The catalog is read-only at runtime;
// tier names are unique within an audience.
type Package struct {
	ID          int
	TierName    string
	Audience    PackageAudience
	Price       int
	Currency    string
	Description string
	Benefits    []string
	Popular     bool
}
