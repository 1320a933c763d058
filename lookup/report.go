package lookup

import (
	"context"
	"fmt"
)

const Usage = "Use: ouilookup --mac <mac> | --ip <ip> | --arp | --help"

// Reporter turns each lookup mode into the lines printed to the user. Faults
// from the source or resolver end up in the lines, never as errors.
type Reporter struct {
	source       Source
	resolver     Resolver
	subnetPrefix string
}

func NewReporter(source Source, resolver Resolver, subnetPrefix string) *Reporter {
	return &Reporter{
		source:       source,
		resolver:     resolver,
		subnetPrefix: subnetPrefix,
	}
}

func (r *Reporter) MAC(ctx context.Context, mac string) []string {
	vendor := r.resolver.Resolve(ctx, mac)
	return []string{
		fmt.Sprintf("MAC address: %s", mac),
		fmt.Sprintf("Vendor: %s", vendor),
	}
}

func (r *Reporter) IP(ctx context.Context, ip string) []string {

	raw, err := r.source.Lookup(ctx, ip)
	if err != nil {
		return []string{fmt.Sprintf("Error: %s", err)}
	}

	mac, ok := ExtractMacForIP(raw, ip, r.subnetPrefix)
	if !ok {
		return []string{fmt.Sprintf("IP address: %s No vendor information found.", ip)}
	}

	vendor := r.resolver.Resolve(ctx, mac)
	return []string{
		fmt.Sprintf("IP address: %s MAC: %s Vendor: %s", ip, mac, vendor),
	}
}

func (r *Reporter) Table(ctx context.Context) []string {

	raw, err := r.source.Table(ctx)
	if err != nil {
		return []string{fmt.Sprintf("Error: %s", err)}
	}

	lines := []string{"IP/MAC/Vendor:"}
	for _, row := range ParseAndAnnotate(ctx, raw, r.resolver).Collect() {
		lines = append(lines, row.String())
	}
	return lines
}
