package ethrpc

import (
	"context"
	"math/big"
)

func (c *Client) ChainIDHex(ctx context.Context) (string, error) {
	var out string
	if err := c.Call(ctx, "eth_chainId", []any{}, &out); err != nil {
		return "", err
	}
	return out, nil
}

func (c *Client) ChainID(ctx context.Context) (*big.Int, error) {
	hexID, err := c.ChainIDHex(ctx)
	if err != nil {
		return nil, err
	}
	return HexQuantity(hexID).Big()
}
