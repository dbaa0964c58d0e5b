package factory

// Tick counts simulation steps. One tick is 100ms of simulated time, so
// elapsed seconds = tick/10. The clock never decreases and is incremented
// exactly once per loop iteration, after dispatch.
type Tick uint64

// FooUnit is the serial number of one mined foo. Serials are assigned from
// a per-kind counter owned by State and are never reset or reused, even
// after a failed assembly destroys the unit.
type FooUnit uint64

// BarUnit is the serial number of one mined bar.
type BarUnit uint64

// Foobar is a sellable good: one foo and one bar consumed into a pair.
// The pairing is recorded; the serials are retired with it.
type Foobar struct {
	Foo FooUnit `json:"foo"`
	Bar BarUnit `json:"bar"`
}

// Money is the factory's cash balance. Signed on purpose: every legitimate
// debit is affordability-gated at dispatch, so a negative balance can only
// mean a policy bug and is worth being able to observe.
type Money int64

// Robot is an autonomous worker. Identity is positional (its slot in
// State.Robots); each robot owns exactly one current Action.
type Robot struct {
	Action Action `json:"action"`

	// Last is the kind this robot most recently completed, tracked
	// separately from Action so the coordination scan can consult busy
	// robots too. KindNone until the first completion.
	Last ActionKind `json:"last,omitempty"`
}

// NewRobot returns a fresh robot, idle with no work history.
func NewRobot() *Robot {
	return &Robot{Action: NewIdle(KindNone)}
}

// Event is a notable occurrence, one per mined unit, assembly attempt,
// sale, and purchase. Collected by State and drained each tick for the
// log and the event store.
type Event struct {
	Tick        uint64 `json:"tick" db:"tick"`
	Category    string `json:"category" db:"category"`
	Description string `json:"description" db:"description"`
}

// Event categories.
const (
	CategoryMining   = "mining"
	CategoryAssembly = "assembly"
	CategorySale     = "sale"
	CategoryPurchase = "purchase"
)
