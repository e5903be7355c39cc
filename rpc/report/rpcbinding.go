// Package report contains RPC wrappers for AgriTrace Report contract.
package report

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// ReportTestReport is a contract-specific report.TestReport type used by its methods.
type ReportTestReport struct {
	ID             *big.Int
	Farmer         util.Uint160
	CropType       string
	Region         string
	ContentRef     []byte
	Timestamp      *big.Int
	Moisture       *big.Int
	Impurity       *big.Int
	GrainSize      *big.Int
	SuggestedPrice *big.Int
	Grade          *big.Int
	Lab            util.Uint160
	Disputed       bool
}

// ReportRecordedEvent represents "ReportRecorded" event emitted by the contract.
type ReportRecordedEvent struct {
	ID             *big.Int
	Farmer         util.Uint160
	Lab            util.Uint160
	ContentRef     []byte
	SuggestedPrice *big.Int
	Moisture       *big.Int
	Impurity       *big.Int
	GrainSize      *big.Int
	Grade          *big.Int
}

// ReportDisputedEvent represents "ReportDisputed" event emitted by the contract.
type ReportDisputedEvent struct {
	ID     *big.Int
	Caller util.Uint160
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...interface{}) (*result.Invoke, error)
	CallAndExpandIterator(contract util.Uint160, method string, maxItems int, params ...interface{}) (*result.Invoke, error)
	TerminateSession(sessionID uuid.UUID) error
	TraverseIterator(sessionID uuid.UUID, iterator *result.Iterator, num int) ([]stackitem.Item, error)
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	MakeCall(contract util.Uint160, method string, params ...interface{}) (*transaction.Transaction, error)
	MakeRun(script []byte) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...interface{}) (*transaction.Transaction, error)
	MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...interface{}) (util.Uint256, uint32, error)
	SendRun(script []byte) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	invoker Invoker
	hash    util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	actor Actor
	hash  util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{ContractReader{actor, hash}, actor, hash}
}

// Count invokes `count` method of contract.
func (c *ContractReader) Count() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "count"))
}

// Exists invokes `exists` method of contract.
func (c *ContractReader) Exists(id *big.Int) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "exists", id))
}

// GetReport invokes `getReport` method of contract.
func (c *ContractReader) GetReport(id *big.Int) (*ReportTestReport, error) {
	return itemToReportTestReport(unwrap.Item(c.invoker.Call(c.hash, "getReport", id)))
}

// ListByFarmer invokes `listByFarmer` method of contract.
func (c *ContractReader) ListByFarmer(farmer util.Uint160) ([]*big.Int, error) {
	return unwrap.ArrayOfBigInts(c.invoker.Call(c.hash, "listByFarmer", farmer))
}

// Reports invokes `reports` method of contract.
func (c *ContractReader) Reports() (uuid.UUID, result.Iterator, error) {
	return unwrap.SessionIterator(c.invoker.Call(c.hash, "reports"))
}

// ReportsExpanded is similar to Reports (uses the same contract
// method), but can be useful if the server used doesn't support sessions and
// doesn't expand iterators. It creates a script that will get the specified
// number of result items from the iterator right in the VM and return them to
// you. It's only limited by VM stack and GAS available for RPC invocations.
func (c *ContractReader) ReportsExpanded(_numOfIteratorItems int) ([]stackitem.Item, error) {
	return unwrap.Array(c.invoker.CallAndExpandIterator(c.hash, "reports", _numOfIteratorItems))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// MarkDisputed creates a transaction invoking `markDisputed` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) MarkDisputed(caller util.Uint160, id *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "markDisputed", caller, id)
}

// MarkDisputedTransaction creates a transaction invoking `markDisputed` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) MarkDisputedTransaction(caller util.Uint160, id *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "markDisputed", caller, id)
}

// MarkDisputedUnsigned creates a transaction invoking `markDisputed` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) MarkDisputedUnsigned(caller util.Uint160, id *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "markDisputed", nil, caller, id)
}

// RecordReport creates a transaction invoking `recordReport` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) RecordReport(caller util.Uint160, farmer util.Uint160, cropType string, region string, contentRef []byte, moisture *big.Int, impurity *big.Int, grainSize *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "recordReport", caller, farmer, cropType, region, contentRef, moisture, impurity, grainSize)
}

// RecordReportTransaction creates a transaction invoking `recordReport` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) RecordReportTransaction(caller util.Uint160, farmer util.Uint160, cropType string, region string, contentRef []byte, moisture *big.Int, impurity *big.Int, grainSize *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "recordReport", caller, farmer, cropType, region, contentRef, moisture, impurity, grainSize)
}

// RecordReportUnsigned creates a transaction invoking `recordReport` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) RecordReportUnsigned(caller util.Uint160, farmer util.Uint160, cropType string, region string, contentRef []byte, moisture *big.Int, impurity *big.Int, grainSize *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "recordReport", nil, caller, farmer, cropType, region, contentRef, moisture, impurity, grainSize)
}

// Update creates a transaction invoking `update` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Update(script []byte, manifest []byte, data interface{}) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "update", script, manifest, data)
}

// UpdateTransaction creates a transaction invoking `update` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateTransaction(script []byte, manifest []byte, data interface{}) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "update", script, manifest, data)
}

// UpdateUnsigned creates a transaction invoking `update` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateUnsigned(script []byte, manifest []byte, data interface{}) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "update", nil, script, manifest, data)
}

// itemToReportTestReport converts stack item into *ReportTestReport.
func itemToReportTestReport(item stackitem.Item, err error) (*ReportTestReport, error) {
	if err != nil {
		return nil, err
	}
	var res = new(ReportTestReport)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of ReportTestReport from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *ReportTestReport) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 13 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	res.ID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field ID: %w", err)
	}

	index++
	res.Farmer, err = itemToUint160(arr[index])
	if err != nil {
		return fmt.Errorf("field Farmer: %w", err)
	}

	index++
	res.CropType, err = itemToString(arr[index])
	if err != nil {
		return fmt.Errorf("field CropType: %w", err)
	}

	index++
	res.Region, err = itemToString(arr[index])
	if err != nil {
		return fmt.Errorf("field Region: %w", err)
	}

	index++
	res.ContentRef, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field ContentRef: %w", err)
	}

	index++
	res.Timestamp, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Timestamp: %w", err)
	}

	index++
	res.Moisture, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Moisture: %w", err)
	}

	index++
	res.Impurity, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Impurity: %w", err)
	}

	index++
	res.GrainSize, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field GrainSize: %w", err)
	}

	index++
	res.SuggestedPrice, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field SuggestedPrice: %w", err)
	}

	index++
	res.Grade, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Grade: %w", err)
	}

	index++
	res.Lab, err = itemToUint160(arr[index])
	if err != nil {
		return fmt.Errorf("field Lab: %w", err)
	}

	index++
	res.Disputed, err = arr[index].TryBool()
	if err != nil {
		return fmt.Errorf("field Disputed: %w", err)
	}

	return nil
}

// ReportRecordedEventsFromApplicationLog retrieves a set of all emitted events
// with "ReportRecorded" name from the provided [result.ApplicationLog].
func ReportRecordedEventsFromApplicationLog(log *result.ApplicationLog) ([]*ReportRecordedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*ReportRecordedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "ReportRecorded" {
				continue
			}
			event := new(ReportRecordedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize ReportRecordedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to ReportRecordedEvent or
// returns an error if it's not possible to do to so.
func (e *ReportRecordedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 9 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	e.ID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field ID: %w", err)
	}

	index++
	e.Farmer, err = itemToUint160(arr[index])
	if err != nil {
		return fmt.Errorf("field Farmer: %w", err)
	}

	index++
	e.Lab, err = itemToUint160(arr[index])
	if err != nil {
		return fmt.Errorf("field Lab: %w", err)
	}

	index++
	e.ContentRef, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field ContentRef: %w", err)
	}

	index++
	e.SuggestedPrice, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field SuggestedPrice: %w", err)
	}

	index++
	e.Moisture, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Moisture: %w", err)
	}

	index++
	e.Impurity, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Impurity: %w", err)
	}

	index++
	e.GrainSize, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field GrainSize: %w", err)
	}

	index++
	e.Grade, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Grade: %w", err)
	}

	return nil
}

// ReportDisputedEventsFromApplicationLog retrieves a set of all emitted events
// with "ReportDisputed" name from the provided [result.ApplicationLog].
func ReportDisputedEventsFromApplicationLog(log *result.ApplicationLog) ([]*ReportDisputedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*ReportDisputedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "ReportDisputed" {
				continue
			}
			event := new(ReportDisputedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize ReportDisputedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to ReportDisputedEvent or
// returns an error if it's not possible to do to so.
func (e *ReportDisputedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	e.ID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field ID: %w", err)
	}

	index++
	e.Caller, err = itemToUint160(arr[index])
	if err != nil {
		return fmt.Errorf("field Caller: %w", err)
	}

	return nil
}

func itemToUint160(item stackitem.Item) (util.Uint160, error) {
	b, err := item.TryBytes()
	if err != nil {
		return util.Uint160{}, err
	}
	return util.Uint160DecodeBytesBE(b)
}

func itemToString(item stackitem.Item) (string, error) {
	b, err := item.TryBytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}
