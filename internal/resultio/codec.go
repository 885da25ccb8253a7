package resultio

import (
	"github.com/vmihailenco/msgpack/v5"

	"github.com/xcscore/xcscore/internal/league"
)

// Encode serializes a Result to a compact binary form for the route
// cache. The wire format is an implementation detail of this package;
// callers should only ever round-trip through Encode/Decode.
func Encode(res *league.Result) ([]byte, error) {
	return msgpack.Marshal(res)
}

// Decode is the inverse of Encode.
func Decode(b []byte) (*league.Result, error) {
	var res league.Result
	if err := msgpack.Unmarshal(b, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
