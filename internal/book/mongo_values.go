package book

import (
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Documents written by other clients do not always agree on field types, so
// the book fields decode from whatever scalar was stored. Values that cannot
// be converted decode to the zero value. Encoding uses the underlying kind.

type looseFloat float64

func (f *looseFloat) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.Double:
		*f = looseFloat(rv.Double())
	case bsontype.Int32:
		*f = looseFloat(rv.Int32())
	case bsontype.Int64:
		*f = looseFloat(rv.Int64())
	case bsontype.String:
		*f = looseFloat(parseFloat(rv.StringValue()))
	case bsontype.Decimal128:
		*f = looseFloat(parseFloat(rv.Decimal128().String()))
	default:
		*f = 0
	}
	return nil
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

type looseString string

func (s *looseString) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.String:
		*s = looseString(rv.StringValue())
	case bsontype.Int32:
		*s = looseString(strconv.FormatInt(int64(rv.Int32()), 10))
	case bsontype.Int64:
		*s = looseString(strconv.FormatInt(rv.Int64(), 10))
	case bsontype.Double:
		*s = looseString(strconv.FormatFloat(rv.Double(), 'f', -1, 64))
	case bsontype.Boolean:
		*s = looseString(strconv.FormatBool(rv.Boolean()))
	default:
		*s = ""
	}
	return nil
}
