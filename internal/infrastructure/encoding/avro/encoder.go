package avro

import (
	"fmt"

	"github.com/linkedin/goavro/v2"
)

// recordCodec binds one record schema. goavro codecs are safe for concurrent use.
type recordCodec struct {
	codec *goavro.Codec
}

func newRecordCodec(schema string) (*recordCodec, error) {
	codec, err := goavro.NewCodec(schema)
	if err != nil {
		return nil, fmt.Errorf("parse avro schema: %w", err)
	}
	return &recordCodec{codec: codec}, nil
}

func (r *recordCodec) encode(record map[string]interface{}) ([]byte, error) {
	binary, err := r.codec.BinaryFromNative(nil, record)
	if err != nil {
		return nil, fmt.Errorf("encode avro record: %w", err)
	}
	return binary, nil
}

// decode rejects trailing bytes, a message carries exactly one record.
func (r *recordCodec) decode(binary []byte) (map[string]interface{}, error) {
	native, rest, err := r.codec.NativeFromBinary(binary)
	if err != nil {
		return nil, fmt.Errorf("decode avro record: %w", err)
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("avro payload has %d trailing bytes", len(rest))
	}
	record, ok := native.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("unexpected avro native type %T", native)
	}
	return record, nil
}
