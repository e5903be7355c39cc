package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// GetIDList returns the list of numeric record identifiers stored under the
// given key. A missing key is treated as an empty list.
func GetIDList(ctx storage.Context, key interface{}) []int {
	data := storage.Get(ctx, key)
	if data != nil {
		return std.Deserialize(data.([]byte)).([]int)
	}

	return []int{}
}

// AppendID appends id to the identifier list stored under the given key.
// The list keeps insertion order.
func AppendID(ctx storage.Context, key interface{}, id int) {
	list := GetIDList(ctx, key)
	list = append(list, id)
	SetSerialized(ctx, key, list)
}

// SetSerialized serializes data and puts it into contract storage.
func SetSerialized(ctx storage.Context, key interface{}, value interface{}) {
	data := std.Serialize(value)
	storage.Put(ctx, key, data)
}
