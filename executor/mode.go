package executor

import (
	"fmt"

	"github.com/joaolago1113/fuel-core/types"
)

// ExecutionKind tells which of the three execution flavors a payload belongs
// to: a speculative dry run, the production of a new block, or the validation
// of a complete block against consensus rules.
type ExecutionKind uint8

const (
	KindDryRun ExecutionKind = iota
	KindProduction
	KindValidation
)

func (k ExecutionKind) String() string {
	switch k {
	case KindDryRun:
		return "dry_run"
	case KindProduction:
		return "production"
	case KindValidation:
		return "validation"
	default:
		return fmt.Sprintf("execution_kind(%d)", uint8(k))
	}
}

// ExecutionMode is a tagged wrapper whose payload type depends on the kind of
// execution: P is carried while dry running or producing, V while validating.
// The two types genuinely differ at the executor's entry point, where
// production starts from a partial block and validation from a full one.
//
// Values are built through the DryRun, Production and Validation constructors
// only; the zero value is a dry run of P's zero value.
type ExecutionMode[P, V any] struct {
	kind       ExecutionKind
	production P
	validation V
}

// DryRun wraps a payload that is executed speculatively.
func DryRun[P, V any](payload P) ExecutionMode[P, V] {
	return ExecutionMode[P, V]{kind: KindDryRun, production: payload}
}

// Production wraps a payload that is being built into a new block.
func Production[P, V any](payload P) ExecutionMode[P, V] {
	return ExecutionMode[P, V]{kind: KindProduction, production: payload}
}

// Validation wraps a complete block that is being checked.
func Validation[P, V any](payload V) ExecutionMode[P, V] {
	return ExecutionMode[P, V]{kind: KindValidation, validation: payload}
}

// Kind returns the execution kind without consuming the payload.
func (m ExecutionMode[P, V]) Kind() ExecutionKind { return m.kind }

// ProductionPayload returns the wrapped payload if the mode is DryRun or
// Production.
func (m ExecutionMode[P, V]) ProductionPayload() (P, bool) {
	return m.production, m.kind != KindValidation
}

// ValidationPayload returns the wrapped payload if the mode is Validation.
func (m ExecutionMode[P, V]) ValidationPayload() (V, bool) {
	return m.validation, m.kind == KindValidation
}

// MapProduction applies f to the payload of a DryRun or Production wrapper.
// A Validation payload passes through unchanged. Mapping functions are free
// functions because Go methods cannot introduce new type parameters.
func MapProduction[P, V, Q any](m ExecutionMode[P, V], f func(P) Q) ExecutionMode[Q, V] {
	out := ExecutionMode[Q, V]{kind: m.kind}
	switch m.kind {
	case KindValidation:
		out.validation = m.validation
	default:
		out.production = f(m.production)
	}
	return out
}

// MapValidation applies f to the payload of a Validation wrapper. DryRun and
// Production payloads pass through unchanged.
func MapValidation[P, V, W any](m ExecutionMode[P, V], f func(V) W) ExecutionMode[P, W] {
	out := ExecutionMode[P, W]{kind: m.kind}
	switch m.kind {
	case KindValidation:
		out.validation = f(m.validation)
	default:
		out.production = m.production
	}
	return out
}

// Ref projects the wrapper onto pointers to its payloads so call sites can
// inspect or mutate in place without consuming the wrapper. Only the pointer
// matching the kind is non-nil.
func Ref[P, V any](m *ExecutionMode[P, V]) ExecutionMode[*P, *V] {
	switch m.kind {
	case KindValidation:
		return Validation[*P](&m.validation)
	case KindProduction:
		return Production[*P, *V](&m.production)
	default:
		return DryRun[*P, *V](&m.production)
	}
}

// Single collapses a wrapper whose two payload types coincide into the
// single-type form.
func Single[T any](m ExecutionMode[T, T]) ExecutionType[T] {
	if m.kind == KindValidation {
		return ExecutionType[T]{kind: m.kind, value: m.validation}
	}
	return ExecutionType[T]{kind: m.kind, value: m.production}
}

// ExecutionType is the single-type specialization of ExecutionMode: the same
// payload type regardless of kind. The executor's core loop is written
// against this form; the two-type form exists only at the API seam.
type ExecutionType[T any] struct {
	kind  ExecutionKind
	value T
}

// Wrap tags a payload with an execution kind. It is the single construction
// point for the single-type form.
func Wrap[T any](kind ExecutionKind, value T) ExecutionType[T] {
	return ExecutionType[T]{kind: kind, value: value}
}

// Kind returns the execution kind without consuming the payload.
func (t ExecutionType[T]) Kind() ExecutionKind { return t.kind }

// IntoInner discards the kind and returns the payload.
func (t ExecutionType[T]) IntoInner() T { return t.value }

// Split returns the kind together with the payload.
func (t ExecutionType[T]) Split() (ExecutionKind, T) { return t.kind, t.value }

// Inner gives direct access to the payload, letting generic block-processing
// code treat the wrapper as the payload itself.
func (t *ExecutionType[T]) Inner() *T { return &t.value }

// Map applies f to the payload, whichever kind holds it.
func Map[T, U any](t ExecutionType[T], f func(T) U) ExecutionType[U] {
	return ExecutionType[U]{kind: t.kind, value: f(t.value)}
}

// FilterMap applies f to the payload; if f yields no value the whole wrapper
// collapses to absent and the second result is false.
func FilterMap[T, U any](t ExecutionType[T], f func(T) (U, bool)) (ExecutionType[U], bool) {
	value, ok := f(t.value)
	if !ok {
		return ExecutionType[U]{}, false
	}
	return ExecutionType[U]{kind: t.kind, value: value}, true
}

// ExecutionBlock is the executor's starting point: production and dry runs
// begin with a partial block, validation with a full one.
type ExecutionBlock = ExecutionMode[*types.PartialBlock, *types.Block]

// ValidationBlockID returns the id of the full block if validating.
func ValidationBlockID(block ExecutionBlock) (types.BlockID, bool) {
	if b, ok := block.ValidationPayload(); ok {
		return b.ID(), true
	}
	return types.BlockID{}, false
}
