/*
Package sensor contains implementation of the Sensor contract for AgriTrace
systems.

Sensor contract is the looser-permissioned append-only store of raw IoT
readings. Gateways holding the sensor role append records tied to a region;
records carry an opaque reference to the off-chain payload and are never
modified or removed. The identifier sequence is independent of the report
contract's one.

Unlike the report contract, RecordSensorData keeps no in-progress marker:
its only external call, the read-only role check, happens before any state
is touched, so no nested call can observe or corrupt a half-written record.

# Contract notifications

SensorDataRecorded notification. This notification is produced when a
gateway appends a reading via RecordSensorData method.

	SensorDataRecorded
	  - name: id
	    type: Integer
	  - name: sensorId
	    type: ByteArray
	  - name: region
	    type: String
	  - name: submitter
	    type: Hash160
*/
package sensor

/*
Contract storage model.

# Summary
Key-value storage format:
 - 'sensorCounter' -> int
   last assigned sensor record identifier
 - 'x<id>' -> std.Serialize(SensorRecord)
   sensor record by identifier (little-endian int bytes)
 - 'g<region>' -> std.Serialize([]int)
   identifiers of the region's records in creation order
 - 'rolesScriptHash' -> 20-byte script hash
   Roles contract reference
*/
