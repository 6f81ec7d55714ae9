package nodeid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name         string
		raw          string
		expectErr    bool
		expectedAddr *Address
	}{
		{name: "bare node defaults to output 0", raw: "mix", expectedAddr: New("mix", 0)},
		{name: "explicit index", raw: "split[2]", expectedAddr: New("split", 2)},
		{name: "hyphen and digits", raw: "num-input-1[0]", expectedAddr: New("num-input-1", 0)},
		{name: "error - empty string", raw: "", expectErr: true},
		{name: "error - non-numeric index", raw: "a[x]", expectErr: true},
		{name: "error - negative index", raw: "a[-1]", expectErr: true},
		{name: "error - dotted path", raw: "graph.node[0]", expectErr: true},
		{name: "error - just hyphen", raw: "-", expectErr: true},
		{name: "error - unterminated index", raw: "a[1", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			addr, err := Parse(tc.raw)

			if tc.expectErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, addr)
			assert.True(t, tc.expectedAddr.Equal(addr), "parsed %v, want %v", addr, tc.expectedAddr)
		})
	}
}
