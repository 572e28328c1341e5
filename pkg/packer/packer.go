package packer

import (
	"bytes"
	"fmt"
	"reflect"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/pkg/errors"
)

type Event interface {
	Pack(abi abi.ABI) (*ethtypes.Log, error)
}

type Error interface {
	Pack(abi abi.ABI) error
}

func PackEvent(eventStruct any, event abi.Event) (*ethtypes.Log, error) {
	if eventStruct == nil {
		return nil, errors.New("event struct is nil")
	}
	// references: https://medium.com/mycrypto/understanding-event-logs-on-the-ethereum-blockchain-f4ae7ba50378
	var noIndexedArgs []any
	topicArgs := [][]any{
		{event.ID},
	}
	v := reflect.ValueOf(eventStruct).Elem()
	for _, input := range event.Inputs {
		field := v.FieldByName(abi.ToCamelCase(input.Name))
		if !field.IsValid() {
			return nil, errors.Errorf("event %s missing field %s", event.Name, abi.ToCamelCase(input.Name))
		}
		if !input.Indexed {
			noIndexedArgs = append(noIndexedArgs, field.Interface())
		} else {
			topicArgs = append(topicArgs, []any{field.Interface()})
		}
	}

	topics, err := abi.MakeTopics(topicArgs...)
	if err != nil {
		return nil, errors.Wrapf(err, "event %s make topics error", event.Name)
	}

	packedData, err := event.Inputs.NonIndexed().Pack(noIndexedArgs...)
	if err != nil {
		return nil, errors.Wrapf(err, "event %s pack args error", event.Name)
	}

	log := &ethtypes.Log{
		Data:    packedData,
		Removed: false,
	}
	for _, t := range topics {
		log.Topics = append(log.Topics, t[0])
	}
	return log, nil
}

// Sentinel names a custom error, errors.Is matches every RevertError packed with the same name.
type Sentinel struct {
	Name string
}

func NewSentinel(name string) *Sentinel {
	return &Sentinel{Name: name}
}

func (s *Sentinel) Error() string {
	return s.Name
}

type RevertError struct {
	Err error

	// Name is the abi error name
	Name string

	// Data is encoded reverted reason, or result
	Data []byte

	// reverted result
	Str string

	// Cause is the lower level error that triggered the revert, may be nil
	Cause error
}

func (e *RevertError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s errdata %s: %s", e.Err.Error(), e.Str, e.Cause.Error())
	}
	return fmt.Sprintf("%s errdata %s", e.Err.Error(), e.Str)
}

func (e *RevertError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Err, e.Cause}
	}
	return []error{e.Err}
}

// ErrorCode is the json-rpc error code of an execution revert.
func (e *RevertError) ErrorCode() int {
	return 3
}

// ErrorData returns the hex encoded revert data for json-rpc clients.
func (e *RevertError) ErrorData() any {
	return hexutil.Encode(e.Data)
}

func (e *RevertError) Is(target error) bool {
	s, ok := target.(*Sentinel)
	return ok && s.Name == e.Name
}

// WithCause attaches cause to a RevertError, other errors are returned unchanged.
func WithCause(err error, cause error) error {
	var revertErr *RevertError
	if errors.As(err, &revertErr) {
		revertErr.Cause = cause
	}
	return err
}

func PackError(errStruct any, abiErr abi.Error) error {
	if errStruct == nil {
		return errors.New("error struct is nil")
	}
	selector := common.CopyBytes(abiErr.ID.Bytes()[:4])
	var args []any
	v := reflect.ValueOf(errStruct).Elem()
	for _, input := range abiErr.Inputs {
		args = append(args, v.FieldByName(abi.ToCamelCase(input.Name)).Interface())
	}
	packed, err := abiErr.Inputs.Pack(args...)
	if err != nil {
		return err
	}

	return &RevertError{
		Err:  vm.ErrExecutionReverted,
		Name: abiErr.Name,
		Data: append(selector, packed...),
		Str:  fmt.Sprintf("%s, args: %v", abiErr.String(), args),
	}
}

// UnpackError decodes revert data produced by PackError back into the error name and its arguments.
func UnpackError(contractABI abi.ABI, data []byte) (string, []any, error) {
	if len(data) < 4 {
		return "", nil, errors.New("invalid revert data")
	}
	for name, abiErr := range contractABI.Errors {
		if !bytes.Equal(abiErr.ID.Bytes()[:4], data[:4]) {
			continue
		}
		args, err := abiErr.Inputs.Unpack(data[4:])
		if err != nil {
			return "", nil, errors.Wrapf(err, "unpack error %s", name)
		}
		return name, args, nil
	}
	return "", nil, errors.Errorf("unknown error selector %x", data[:4])
}
