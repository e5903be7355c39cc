package sensor

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/convert"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/agritrace-dev/agritrace-contract/common"
)

type (
	// SensorRecord is a raw reading appended by an IoT sensor gateway.
	// Records are immutable once created.
	SensorRecord struct {
		ID         int
		SensorID   []byte
		Region     string
		ContentRef []byte
		Timestamp  int
		Submitter  interop.Hash160
	}
)

const (
	counterKey       = "sensorCounter"
	rolesContractKey = "rolesScriptHash"

	recordKeyPrefix = 'x'
	regionKeyPrefix = 'g'
)

// NotFoundError is returned on lookup of a sensor record that was never
// created.
const NotFoundError = "sensor record does not exist"

// nolint:deadcode,unused
func _deploy(data interface{}, isUpdate bool) {
	ctx := storage.GetContext()
	args := data.([]interface{})

	if isUpdate {
		version := args[len(args)-1].(int)
		common.CheckVersion(version)
		return
	}

	addrRoles := args[0].(interop.Hash160)
	if len(addrRoles) != interop.Hash160Len {
		panic("init: incorrect length of roles contract script hash")
	}

	storage.Put(ctx, rolesContractKey, addrRoles)
	storage.Put(ctx, counterKey, 0)

	runtime.Log("sensor contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(script []byte, manifest []byte, data interface{}) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("sensor contract updated")
}

// RecordSensorData appends a raw sensor reading tied to a region and returns
// its identifier. It can be invoked only by a member of the sensor group and
// the call transaction must be signed by the caller. The identifier sequence
// is the contract's own and is independent of report identifiers.
//
// ContentRef is an opaque reference to the off-chain reading payload; the
// contract does not interpret it.
//
// It produces SensorDataRecorded notification.
func RecordSensorData(caller interop.Hash160, sensorID []byte, region string, contentRef []byte) int {
	ctx := storage.GetContext()

	common.CheckWitness(caller)
	addrRoles := storage.Get(ctx, rolesContractKey).(interop.Hash160)
	common.RequireRole(addrRoles, common.RoleSensor, caller)

	if len(sensorID) == 0 {
		panic(common.ErrInvalidInput + ": empty sensor identifier")
	}
	if len(region) == 0 {
		panic(common.ErrInvalidInput + ": empty region")
	}

	id := storage.Get(ctx, counterKey).(int) + 1
	storage.Put(ctx, counterKey, id)

	rec := SensorRecord{
		ID:         id,
		SensorID:   sensorID,
		Region:     region,
		ContentRef: contentRef,
		Timestamp:  runtime.GetTime(),
		Submitter:  caller,
	}

	common.SetSerialized(ctx, recordKey(id), rec)
	common.AppendID(ctx, regionKey(region), id)

	runtime.Notify("SensorDataRecorded", id, sensorID, region, caller)
	runtime.Log("recordSensorData: added new sensor record")

	return id
}

// GetRecord returns the sensor record by its identifier. It panics with
// NotFoundError if the record was never created.
func GetRecord(id int) SensorRecord {
	ctx := storage.GetReadOnlyContext()

	data := storage.Get(ctx, recordKey(id))
	if data == nil {
		panic(NotFoundError)
	}

	return std.Deserialize(data.([]byte)).(SensorRecord)
}

// ListByRegion returns identifiers of all sensor records of the region in
// creation order.
func ListByRegion(region string) []int {
	ctx := storage.GetReadOnlyContext()
	return common.GetIDList(ctx, regionKey(region))
}

// Count returns the number of sensor records, which equals the last assigned
// identifier.
func Count() int {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, counterKey).(int)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func recordKey(id int) []byte {
	return append([]byte{recordKeyPrefix}, convert.ToBytes(id)...)
}

func regionKey(region string) []byte {
	return append([]byte{regionKeyPrefix}, []byte(region)...)
}
