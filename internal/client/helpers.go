package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/freightflow/waybill-client/internal/constants"
	"github.com/freightflow/waybill-client/internal/transport"
)

// fetch dispatches the request and decodes the business payload into T. An
// empty or null payload decodes to the zero value.
func fetch[T any](ctx context.Context, pipeline *transport.Client, req *transport.Request) (T, error) {
	var out T

	data, err := pipeline.Do(ctx, req)
	if err != nil {
		return out, err
	}

	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return out, nil
	}

	err = json.Unmarshal(data, &out)
	if err != nil {
		return out, fmt.Errorf("decoding response from %s: %w", req.Path, err)
	}

	return out, nil
}

// pageQuery builds pagination parameters, substituting defaults for
// non-positive values.
func pageQuery(pageNo, pageSize int) url.Values {
	if pageNo <= 0 {
		pageNo = constants.DefaultPageNo
	}

	if pageSize <= 0 {
		pageSize = constants.DefaultPageSize
	}

	query := url.Values{}
	query.Set("pageNo", strconv.Itoa(pageNo))
	query.Set("pageSize", strconv.Itoa(pageSize))

	return query
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
