package lookup

import (
	"context"
	"fmt"
	"io"
	"regexp"

	"github.com/sirupsen/logrus"
)

// macLength is the length of a MAC address written as six two-digit octets
// joined by ':' or '-'.
const macLength = 17

// An IPv4-like token followed, on the same line, by a MAC-like token. Column
// layout differs between platforms so nothing else about the line is assumed.
var arpEntryPattern = regexp.MustCompile(
	`((?:\d{1,3}\.){3}\d{1,3})[^\n]*?((?:[0-9A-Fa-f]{2}[:-]){5}[0-9A-Fa-f]{2})`,
)

type ArpEntry struct {
	IP  string
	MAC string
}

type AnnotatedRow struct {
	IP      string
	MAC     string
	Vendor  VendorResult
	Invalid bool
}

func (r AnnotatedRow) String() string {
	vendor := "invalid MAC"
	if !r.Invalid {
		vendor = r.Vendor.String()
	}
	return fmt.Sprintf("%s / %s / %s", r.IP, r.MAC, vendor)
}

// RowIterator walks an ARP dump once, resolving the vendor of each entry as it
// is reached. It cannot be rewound.
type RowIterator struct {
	ctx      context.Context
	raw      string
	offset   int
	resolver Resolver
}

// ParseAndAnnotate returns an iterator over the entries of raw, an ARP table
// dump, in the order they appear. Vendors are resolved lazily by Next.
func ParseAndAnnotate(ctx context.Context, raw string, resolver Resolver) *RowIterator {
	return &RowIterator{
		ctx:      ctx,
		raw:      raw,
		resolver: resolver,
	}
}

// Next returns the next annotated row, or io.EOF once the dump is exhausted.
func (it *RowIterator) Next() (AnnotatedRow, error) {

	if it.offset >= len(it.raw) {
		return AnnotatedRow{}, io.EOF
	}

	loc := arpEntryPattern.FindStringSubmatchIndex(it.raw[it.offset:])
	if loc == nil {
		it.offset = len(it.raw)
		return AnnotatedRow{}, io.EOF
	}

	entry := ArpEntry{
		IP:  it.raw[it.offset+loc[2] : it.offset+loc[3]],
		MAC: it.raw[it.offset+loc[4] : it.offset+loc[5]],
	}
	it.offset += loc[1]

	return annotate(it.ctx, entry, it.resolver), nil
}

// Collect drains the iterator.
func (it *RowIterator) Collect() []AnnotatedRow {
	rows := []AnnotatedRow{}
	for {
		row, err := it.Next()
		if err != nil {
			return rows
		}
		rows = append(rows, row)
	}
}

func annotate(ctx context.Context, entry ArpEntry, resolver Resolver) AnnotatedRow {
	row := AnnotatedRow{
		IP:  entry.IP,
		MAC: entry.MAC,
	}

	if len(entry.MAC) != macLength {
		logrus.Debugf("Skipping vendor lookup for %s: invalid MAC %q", entry.IP, entry.MAC)
		row.Invalid = true
		return row
	}

	row.Vendor = resolver.Resolve(ctx, entry.MAC)
	return row
}
