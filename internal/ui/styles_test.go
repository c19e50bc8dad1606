package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageHelpersKeepText(t *testing.T) {
	cases := map[string]func(string) string{
		"✓":  Success,
		"⚠":  Warn,
		"✗":  Err,
		"ℹ":  Info,
		"💡": Hint,
	}
	for prefix, fn := range cases {
		out := fn("minted")
		assert.Contains(t, out, prefix)
		assert.Contains(t, out, "minted")
	}
}

func TestPlainFormatters(t *testing.T) {
	assert.Contains(t, Addr("0xABCDEF"), "0xABCDEF")
	assert.Contains(t, Val("0.01 ETH"), "0.01 ETH")
	assert.Contains(t, Meta("block 12"), "block 12")
	assert.Contains(t, ChainName("Sepolia"), "Sepolia")
	assert.Contains(t, Banner(), "devmint")
}

func TestTruncateAddr(t *testing.T) {
	assert.Equal(t, "0xf39F…2266", TruncateAddr("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"))
	assert.Equal(t, "0x1234", TruncateAddr("0x1234"))
	assert.Equal(t, "", TruncateAddr(""))
}

func TestConfirmFrom(t *testing.T) {
	cases := map[string]bool{
		"y\n":    true,
		"YES\n":  true,
		" yes ":  true,
		"n\n":    false,
		"\n":     false,
		"":       false,
		"yeah\n": false,
	}
	for input, want := range cases {
		var out bytes.Buffer
		got := ConfirmFrom(strings.NewReader(input), &out, "Mint for 0.01 ETH?")
		assert.Equal(t, want, got, "%q", input)
		assert.Contains(t, out.String(), "Mint for 0.01 ETH? [y/N]: ")
	}
}
