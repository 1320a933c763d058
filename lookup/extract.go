package lookup

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// DefaultSubnetPrefix restricts IP lookups to the usual home LAN.
const DefaultSubnetPrefix = "192.168.1."

// ExtractMacForIP scans whitespace-tokenised ARP output (ip first, MAC second)
// and returns the MAC of the first line whose ip starts with subnetPrefix and
// whose MAC has the canonical 17 character form. The output is expected to
// already be scoped to targetIP by the source, so targetIP is not matched.
func ExtractMacForIP(raw string, targetIP string, subnetPrefix string) (string, bool) {

	for _, line := range strings.Split(raw, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}

		ip, mac := fields[0], fields[1]
		if strings.HasPrefix(ip, subnetPrefix) && len(mac) == macLength {
			logrus.Debugf("Found %s for %s (requested %s)", mac, ip, targetIP)
			return mac, true
		}
	}

	logrus.Debugf("No entry in %s* for %s", subnetPrefix, targetIP)
	return "", false
}
