package lookup

import (
	"context"
	"fmt"
)

type ErrorKind string

const (
	ErrorKindNone    ErrorKind = ""
	ErrorKindNetwork ErrorKind = "network"
	ErrorKindHTTP    ErrorKind = "http"
)

// VendorResult is the outcome of a single vendor lookup. Exactly one of
// Vendor, NotFound or ErrorKind is meaningful.
type VendorResult struct {
	Vendor    string
	NotFound  bool
	ErrorKind ErrorKind
	Detail    string
}

func FoundVendor(vendor string) VendorResult {
	return VendorResult{Vendor: vendor}
}

func VendorNotFound() VendorResult {
	return VendorResult{NotFound: true}
}

func LookupError(kind ErrorKind, detail string) VendorResult {
	return VendorResult{ErrorKind: kind, Detail: detail}
}

func (r VendorResult) IsError() bool {
	return r.ErrorKind != ErrorKindNone
}

func (r VendorResult) String() string {
	switch {
	case r.ErrorKind == ErrorKindNetwork:
		return fmt.Sprintf("Network error: %s", r.Detail)
	case r.ErrorKind == ErrorKindHTTP:
		return "Error querying the API"
	case r.NotFound || r.Vendor == "":
		return "Vendor not found"
	}
	return r.Vendor
}

// Resolver maps a MAC address to the vendor that registered its OUI.
// Implementations report failures through the returned VendorResult.
type Resolver interface {
	Resolve(ctx context.Context, mac string) VendorResult
}

type ResolverFunc func(ctx context.Context, mac string) VendorResult

func (f ResolverFunc) Resolve(ctx context.Context, mac string) VendorResult {
	return f(ctx, mac)
}
