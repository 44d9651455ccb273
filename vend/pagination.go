package vend

import (
	"context"

	"github.com/s0up4200/vendctl/entity"
)

// DefaultPageSize is used by ListAll when params carry no page size.
const DefaultPageSize = 1000

// ListAll fetches every page of endpoint. Each response's version.max
// becomes the next request's after cursor; paging stops at an empty page
// or when the cursor stops advancing.
func (c *Client) ListAll(ctx context.Context, endpoint string, params *ListParams) ([]*entity.Properties, error) {
	p := ListParams{PageSize: DefaultPageSize}
	if params != nil {
		p = *params
		if p.PageSize == 0 {
			p.PageSize = DefaultPageSize
		}
	}

	var all []*entity.Properties
	for page := 1; ; page++ {
		resp, err := c.CallResponse(ctx, endpoint, methodGet, &p)
		if err != nil {
			return nil, err
		}

		items, err := resp.Items(endpoint)
		if err != nil {
			return nil, err
		}

		c.logger.Debug().
			Str("endpoint", endpoint).
			Int("page", page).
			Int("count", len(items)).
			Int("total", len(all)+len(items)).
			Msg("Retrieved page")

		if len(items) == 0 {
			break
		}
		all = append(all, items...)

		next, ok := resp.NextCursor()
		if !ok || next <= p.After {
			break
		}
		p.After = next
	}

	return all, nil
}

// NextCursor returns the version.max of a collection response.
func (r *Response) NextCursor() (int64, bool) {
	props, err := entity.ParseProperties(r.Body)
	if err != nil {
		return 0, false
	}
	ver, ok := props.Object("version")
	if !ok {
		return 0, false
	}
	highest, ok := ver.Float("max")
	if !ok {
		return 0, false
	}
	return int64(highest), true
}
