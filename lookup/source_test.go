package lookup

import (
	"context"
	"testing"

	"github.com/mostlygeek/arp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandSourceArguments(t *testing.T) {
	source := &CommandSource{command: "echo"}

	out, err := source.Table(context.Background())
	require.Nil(t, err)
	assert.Equal(t, "-a\n", out)

	out, err = source.Lookup(context.Background(), "192.168.1.5")
	require.Nil(t, err)
	assert.Equal(t, "-a 192.168.1.5\n", out)
}

func TestCommandSourceMissingBinary(t *testing.T) {
	source := &CommandSource{command: "ouilookup-no-such-arp-binary"}

	_, err := source.Table(context.Background())
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "ouilookup-no-such-arp-binary -a")
}

func TestDecodeLatin1(t *testing.T) {
	assert.Equal(t, "Señal é", decodeLatin1([]byte{'S', 'e', 0xf1, 'a', 'l', ' ', 0xe9}))
	assert.Equal(t, "plain", decodeLatin1([]byte("plain")))
}

func fakeCache(table arp.ArpTable) *CacheSource {
	return &CacheSource{
		table: func() arp.ArpTable {
			return table
		},
	}
}

func TestCacheSourceTable(t *testing.T) {
	source := fakeCache(arp.ArpTable{
		"192.168.1.20": "00:aa:bb:cc:dd:20",
		"192.168.1.3":  "00:aa:bb:cc:dd:03",
		"192.168.1.9":  "00:00:00:00:00:00",
		"10.0.0.1":     "00:aa:bb:cc:dd:01",
	})

	out, err := source.Table(context.Background())
	require.Nil(t, err)

	expected := "10.0.0.1         00:aa:bb:cc:dd:01  dynamic\n" +
		"192.168.1.3      00:aa:bb:cc:dd:03  dynamic\n" +
		"192.168.1.20     00:aa:bb:cc:dd:20  dynamic\n"
	assert.Equal(t, expected, out)

	rows := ParseAndAnnotate(context.Background(), out, acmeResolver()).Collect()
	require.Len(t, rows, 3)
	assert.Equal(t, "10.0.0.1", rows[0].IP)
	assert.Equal(t, "192.168.1.20", rows[2].IP)
}

func TestCacheSourceLookup(t *testing.T) {
	source := fakeCache(arp.ArpTable{
		"192.168.1.20": "00:aa:bb:cc:dd:20",
		"192.168.1.9":  "00:00:00:00:00:00",
	})

	out, err := source.Lookup(context.Background(), "192.168.1.20")
	require.Nil(t, err)
	mac, ok := ExtractMacForIP(out, "192.168.1.20", DefaultSubnetPrefix)
	assert.True(t, ok)
	assert.Equal(t, "00:aa:bb:cc:dd:20", mac)

	out, err = source.Lookup(context.Background(), "192.168.1.9")
	require.Nil(t, err)
	assert.Equal(t, "", out)

	out, err = source.Lookup(context.Background(), "192.168.1.77")
	require.Nil(t, err)
	assert.Equal(t, "", out)
}

func TestCacheSourceUnreadable(t *testing.T) {
	source := fakeCache(nil)

	_, err := source.Table(context.Background())
	assert.NotNil(t, err)

	_, err = source.Lookup(context.Background(), "192.168.1.1")
	assert.NotNil(t, err)
}
