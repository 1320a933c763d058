package lookup

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"os/exec"
	"sort"
	"strings"

	"github.com/mostlygeek/arp"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/encoding/charmap"
)

// Source supplies the text of the local ARP table.
type Source interface {
	Table(ctx context.Context) (string, error)
	Lookup(ctx context.Context, ip string) (string, error)
}

// CommandSource runs the platform arp utility.
type CommandSource struct {
	command string
}

func NewCommandSource() *CommandSource {
	return &CommandSource{
		command: "arp",
	}
}

func (s *CommandSource) Table(ctx context.Context) (string, error) {
	return s.run(ctx, "-a")
}

func (s *CommandSource) Lookup(ctx context.Context, ip string) (string, error) {
	return s.run(ctx, "-a", ip)
}

func (s *CommandSource) run(ctx context.Context, args ...string) (string, error) {

	invocation := strings.Join(append([]string{s.command}, args...), " ")
	logrus.Debugf("Running %s...", invocation)

	output, err := exec.CommandContext(ctx, s.command, args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if msg := strings.TrimSpace(decodeLatin1(exitErr.Stderr)); msg != "" {
				return "", errors.Wrapf(err, "%s: %s", invocation, msg)
			}
		}
		return "", errors.Wrap(err, invocation)
	}

	return decodeLatin1(output), nil
}

// Some platforms print interface or host names in a legacy single-byte
// encoding, so stdout is read as ISO-8859-1 which accepts any byte.
func decodeLatin1(data []byte) string {
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return string(data)
	}
	return string(decoded)
}

var incompleteMACs = map[string]struct{}{
	"00:00:00:00:00:00": {},
	"(incomplete)":      {},
	"<incomplete>":      {},
}

// CacheSource reads the kernel ARP cache without shelling out on Linux, and
// renders it as "<ip> <mac> dynamic" rows sorted by address.
type CacheSource struct {
	table func() arp.ArpTable
}

func NewCacheSource() *CacheSource {
	return &CacheSource{
		table: arp.Table,
	}
}

func (s *CacheSource) Table(ctx context.Context) (string, error) {
	table, err := s.read()
	if err != nil {
		return "", err
	}

	ips := make([]string, 0, len(table))
	for ip, mac := range table {
		if _, ok := incompleteMACs[mac]; ok {
			continue
		}
		ips = append(ips, ip)
	}
	sortIPs(ips)

	buf := &bytes.Buffer{}
	for _, ip := range ips {
		buf.WriteString(cacheRow(ip, table[ip]))
	}
	return buf.String(), nil
}

func (s *CacheSource) Lookup(ctx context.Context, ip string) (string, error) {
	table, err := s.read()
	if err != nil {
		return "", err
	}

	mac, ok := table[ip]
	if !ok {
		return "", nil
	}
	if _, incomplete := incompleteMACs[mac]; incomplete {
		return "", nil
	}
	return cacheRow(ip, mac), nil
}

func (s *CacheSource) read() (arp.ArpTable, error) {
	logrus.Debugf("Reading ARP cache...")
	table := s.table()
	if table == nil {
		return nil, errors.New("unable to read the ARP cache")
	}
	return table, nil
}

func cacheRow(ip string, mac string) string {
	return fmt.Sprintf("%-16s %-18s %s\n", ip, mac, "dynamic")
}

func sortIPs(ips []string) {
	sort.Slice(ips, func(i, j int) bool {
		a, b := net.ParseIP(ips[i]), net.ParseIP(ips[j])
		if a == nil || b == nil {
			return ips[i] < ips[j]
		}
		return bytes.Compare(a.To16(), b.To16()) < 0
	})
}
