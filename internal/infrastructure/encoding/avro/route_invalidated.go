package avro

import (
	"fmt"
	"time"
)

type RouteInvalidated struct {
	Path          string
	InvalidatedAt time.Time
	Source        string
}

// RouteInvalidatedCodec maps RouteInvalidated to and from Avro binary.
type RouteInvalidatedCodec struct {
	rec *recordCodec
}

func NewRouteInvalidatedCodec() (*RouteInvalidatedCodec, error) {
	rec, err := newRecordCodec(RouteInvalidatedSchema)
	if err != nil {
		return nil, err
	}
	return &RouteInvalidatedCodec{rec: rec}, nil
}

func (c *RouteInvalidatedCodec) Encode(ev RouteInvalidated) ([]byte, error) {
	if ev.Path == "" {
		return nil, fmt.Errorf("route invalidated event has empty path")
	}

	var source interface{}
	if ev.Source != "" {
		source = map[string]interface{}{"string": ev.Source}
	}

	return c.rec.encode(map[string]interface{}{
		"path":           ev.Path,
		"invalidated_at": ev.InvalidatedAt.UTC(),
		"source":         source,
	})
}

func (c *RouteInvalidatedCodec) Decode(binary []byte) (RouteInvalidated, error) {
	m, err := c.rec.decode(binary)
	if err != nil {
		return RouteInvalidated{}, err
	}

	var ok bool
	var ev RouteInvalidated
	if ev.Path, ok = m["path"].(string); !ok {
		return RouteInvalidated{}, fmt.Errorf("route invalidated event: path missing")
	}
	if at, ok := m["invalidated_at"].(time.Time); ok {
		ev.InvalidatedAt = at.UTC()
	}
	if union, ok := m["source"].(map[string]interface{}); ok {
		ev.Source, _ = union["string"].(string)
	}
	return ev, nil
}
