package avro

// RouteInvalidatedSchema describes the event broadcast after a route was marked stale.
// invalidated_at is epoch milliseconds, source is the emitting app name.
const RouteInvalidatedSchema = `{
	"type": "record",
	"name": "RouteInvalidated",
	"namespace": "dashboard.revalidate",
	"fields": [
		{"name": "path", "type": "string"},
		{"name": "invalidated_at", "type": {"type": "long", "logicalType": "timestamp-millis"}},
		{"name": "source", "type": ["null", "string"], "default": null}
	]
}`
