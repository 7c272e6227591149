package ethrpc

import (
	"fmt"
	"math/big"
	"strings"
)

// HexQuantity is a JSON-RPC quantity such as "0x1a".
type HexQuantity string

func (h HexQuantity) Big() (*big.Int, error) {
	s := string(h)
	if s == "" {
		return nil, fmt.Errorf("empty hex quantity")
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
	}
	if s == "" {
		return big.NewInt(0), nil
	}
	n := new(big.Int)
	if _, ok := n.SetString(s, 16); !ok {
		return nil, fmt.Errorf("invalid hex quantity: %q", h)
	}
	return n, nil
}
