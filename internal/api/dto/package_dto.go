package dto

// PackageView is the wire form of a catalog entry.
type PackageView struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Price       int      `json:"price"`
	Currency    string   `json:"currency"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	Popular     bool     `json:"popular,omitempty"`
}

// PackageUpdateRequest assigns a tier to the calling account.
type PackageUpdateRequest struct {
	PackageType string `json:"package_type"`
}
