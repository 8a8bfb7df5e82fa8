package schema

import "time"

const CartEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront",
	"name": "cart_event",
	"fields" : [
		{"name": "session_id", "type": "string"},
		{"name": "action", "type": "string"},
		{"name": "item_key", "type": "string"},
		{"name": "quantity", "type": "long"},
		{"name": "timestamp", "type": {"type": "long", "logicalType": "timestamp-millis"}}
	]
}`

type CartEventV1 struct {
	SessionID string    `avro:"session_id"`
	Action    string    `avro:"action"`
	ItemKey   string    `avro:"item_key"`
	Quantity  int64     `avro:"quantity"`
	Timestamp time.Time `avro:"timestamp"`
}
