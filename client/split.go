package client

import (
	"bytes"
	"context"
	"math/big"

	"github.com/remitwise/splitledger"
	"github.com/remitwise/splitledger/app"
	splitd "github.com/remitwise/splitledger/cmd/splitd/app"
	"github.com/remitwise/splitledger/errors"
	"github.com/remitwise/splitledger/x/split"
)

// AbciResponse contains a query result:
// a (possibly empty) list of key-value pairs, and the height
// at which it queried
type AbciResponse struct {
	Models []splitledger.Model
	Height int64
}

// AbciQuery calls abci query on tendermint rpc,
// verifies if it is an error or empty, and if there is
// data pulls out the ResultSets from keys and values into
// a useful AbciResponse struct
func (c *Client) AbciQuery(path string, data []byte) (AbciResponse, error) {
	var out AbciResponse

	resp := c.Query(RequestQuery{Path: path, Data: data})
	if resp.IsErr() {
		return out, errors.ABCIError(resp.Code, resp.Log)
	}
	out.Height = resp.Height
	if len(resp.Key) == 0 {
		return out, nil
	}

	var keys, vals app.ResultSet
	if err := keys.Unmarshal(resp.Key); err != nil {
		return out, errors.Wrap(err, "cannot unmarshal keys")
	}
	if err := vals.Unmarshal(resp.Value); err != nil {
		return out, errors.Wrap(err, "cannot unmarshal values")
	}
	models, err := app.JoinResults(&keys, &vals)
	if err != nil {
		return out, err
	}
	out.Models = models
	return out, nil
}

// InitializeSplit submits a new split and waits for its block. It returns
// false when the node rejected the percentages for not summing to 100.
func (c *Client) InitializeSplit(ctx context.Context, conf split.Config) (bool, error) {
	res, err := c.CommitTx(ctx, splitd.InitializeSplitTx(conf))
	if err != nil {
		return false, err
	}
	if res.Err != nil {
		return false, res.Err
	}
	return bytes.Equal(res.Result.Data, split.ResultAccepted), nil
}

// GetSplit returns the committed split percentages in bucket order.
func (c *Client) GetSplit(ctx context.Context) ([]uint32, error) {
	resp, err := c.AbciQuery(split.QueryPath, nil)
	if err != nil {
		return nil, err
	}
	if len(resp.Models) != 1 {
		return nil, errors.Wrapf(errors.ErrState, "expected one split, got %d", len(resp.Models))
	}
	var conf split.Config
	if err := conf.Unmarshal(resp.Models[0].Value); err != nil {
		return nil, err
	}
	return conf.Percentages(), nil
}

// CalculateSplit asks the node to divide total by the committed split.
func (c *Client) CalculateSplit(ctx context.Context, total *big.Int) ([]*big.Int, error) {
	if total == nil {
		return nil, errors.Wrap(split.ErrInvalidAmount, "missing amount")
	}
	resp, err := c.AbciQuery(split.CalculateQueryPath, []byte(total.String()))
	if err != nil {
		return nil, err
	}
	if len(resp.Models) != 1 {
		return nil, errors.Wrapf(errors.ErrState, "expected one result, got %d", len(resp.Models))
	}
	var amounts split.SplitAmounts
	if err := amounts.Unmarshal(resp.Models[0].Value); err != nil {
		return nil, err
	}
	return amounts.Amounts()
}
