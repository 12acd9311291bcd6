package compute

// Func identifies an operation in the function registry. The constants
// below form the stable exposed catalog; registries may carry additional
// names, so the tag is openly extensible, but callers of this package go
// through the typed entry points and never build names by hand.
type Func string

// Arithmetic functions. Checked variants report overflow as an execution
// error instead of wrapping.
const (
	FuncAbs             Func = "abs"
	FuncAbsChecked      Func = "abs_checked"
	FuncNegate          Func = "negate"
	FuncNegateChecked   Func = "negate_checked"
	FuncAdd             Func = "add"
	FuncAddChecked      Func = "add_checked"
	FuncSubtract        Func = "subtract"
	FuncSubtractChecked Func = "subtract_checked"
	FuncMultiply        Func = "multiply"
	FuncMultiplyChecked Func = "multiply_checked"
	FuncDivide          Func = "divide"
	FuncDivideChecked   Func = "divide_checked"
	FuncPower           Func = "power"
	FuncPowerChecked    Func = "power_checked"
)

// Element-wise aggregate functions over variable arity.
const (
	FuncElementWiseMax Func = "element_wise_max"
	FuncElementWiseMin Func = "element_wise_min"
)

// Set-membership functions.
const (
	FuncIsIn    Func = "is_in"
	FuncIndexIn Func = "index_in"
)

// Boolean functions.
const (
	FuncInvert       Func = "invert"
	FuncAnd          Func = "and"
	FuncKleeneAnd    Func = "and_kleene"
	FuncOr           Func = "or"
	FuncKleeneOr     Func = "or_kleene"
	FuncXor          Func = "xor"
	FuncAndNot       Func = "and_not"
	FuncKleeneAndNot Func = "and_not_kleene"
)

// Comparison functions.
const (
	FuncEqual        Func = "equal"
	FuncNotEqual     Func = "not_equal"
	FuncGreater      Func = "greater"
	FuncGreaterEqual Func = "greater_equal"
	FuncLess         Func = "less"
	FuncLessEqual    Func = "less_equal"
)

// Validity functions.
const (
	FuncIsValid  Func = "is_valid"
	FuncIsNull   Func = "is_null"
	FuncIsNan    Func = "is_nan"
	FuncFillNull Func = "fill_null"
	FuncIfElse   Func = "if_else"
)

// Temporal component extraction functions.
const (
	FuncYear        Func = "year"
	FuncMonth       Func = "month"
	FuncDay         Func = "day"
	FuncDayOfWeek   Func = "day_of_week"
	FuncDayOfYear   Func = "day_of_year"
	FuncISOYear     Func = "iso_year"
	FuncISOWeek     Func = "iso_week"
	FuncISOCalendar Func = "iso_calendar"
	FuncQuarter     Func = "quarter"
	FuncHour        Func = "hour"
	FuncMinute      Func = "minute"
	FuncSecond      Func = "second"
	FuncMillisecond Func = "millisecond"
	FuncMicrosecond Func = "microsecond"
	FuncNanosecond  Func = "nanosecond"
	FuncSubsecond   Func = "subsecond"
)

// OptionsClass names the options record a function binds, if any.
type OptionsClass string

const (
	OptionsNone                 OptionsClass = ""
	OptionsArithmetic           OptionsClass = "ArithmeticOptions"
	OptionsCompare              OptionsClass = "CompareOptions"
	OptionsSetLookup            OptionsClass = "SetLookupOptions"
	OptionsElementWiseAggregate OptionsClass = "ElementWiseAggregateOptions"
)

// FuncSpec describes one catalog entry: its fixed arity and the options
// record its entry point binds. The typed entry points are the contract;
// this table backs catalog listings and exhaustiveness tests.
type FuncSpec struct {
	Arity   Arity
	Options OptionsClass
}

var catalog = map[Func]FuncSpec{
	FuncAbs:             {Unary(), OptionsArithmetic},
	FuncAbsChecked:      {Unary(), OptionsArithmetic},
	FuncNegate:          {Unary(), OptionsArithmetic},
	FuncNegateChecked:   {Unary(), OptionsArithmetic},
	FuncAdd:             {Binary(), OptionsArithmetic},
	FuncAddChecked:      {Binary(), OptionsArithmetic},
	FuncSubtract:        {Binary(), OptionsArithmetic},
	FuncSubtractChecked: {Binary(), OptionsArithmetic},
	FuncMultiply:        {Binary(), OptionsArithmetic},
	FuncMultiplyChecked: {Binary(), OptionsArithmetic},
	FuncDivide:          {Binary(), OptionsArithmetic},
	FuncDivideChecked:   {Binary(), OptionsArithmetic},
	FuncPower:           {Binary(), OptionsArithmetic},
	FuncPowerChecked:    {Binary(), OptionsArithmetic},

	FuncElementWiseMax: {VarArgs(1), OptionsElementWiseAggregate},
	FuncElementWiseMin: {VarArgs(1), OptionsElementWiseAggregate},

	FuncIsIn:    {Unary(), OptionsSetLookup},
	FuncIndexIn: {Unary(), OptionsSetLookup},

	FuncInvert:       {Unary(), OptionsNone},
	FuncAnd:          {Binary(), OptionsNone},
	FuncKleeneAnd:    {Binary(), OptionsNone},
	FuncOr:           {Binary(), OptionsNone},
	FuncKleeneOr:     {Binary(), OptionsNone},
	FuncXor:          {Binary(), OptionsNone},
	FuncAndNot:       {Binary(), OptionsNone},
	FuncKleeneAndNot: {Binary(), OptionsNone},

	FuncEqual:        {Binary(), OptionsCompare},
	FuncNotEqual:     {Binary(), OptionsCompare},
	FuncGreater:      {Binary(), OptionsCompare},
	FuncGreaterEqual: {Binary(), OptionsCompare},
	FuncLess:         {Binary(), OptionsCompare},
	FuncLessEqual:    {Binary(), OptionsCompare},

	FuncIsValid:  {Unary(), OptionsNone},
	FuncIsNull:   {Unary(), OptionsNone},
	FuncIsNan:    {Unary(), OptionsNone},
	FuncFillNull: {Binary(), OptionsNone},
	FuncIfElse:   {Ternary(), OptionsNone},

	FuncYear:        {Unary(), OptionsNone},
	FuncMonth:       {Unary(), OptionsNone},
	FuncDay:         {Unary(), OptionsNone},
	FuncDayOfWeek:   {Unary(), OptionsNone},
	FuncDayOfYear:   {Unary(), OptionsNone},
	FuncISOYear:     {Unary(), OptionsNone},
	FuncISOWeek:     {Unary(), OptionsNone},
	FuncISOCalendar: {Unary(), OptionsNone},
	FuncQuarter:     {Unary(), OptionsNone},
	FuncHour:        {Unary(), OptionsNone},
	FuncMinute:      {Unary(), OptionsNone},
	FuncSecond:      {Unary(), OptionsNone},
	FuncMillisecond: {Unary(), OptionsNone},
	FuncMicrosecond: {Unary(), OptionsNone},
	FuncNanosecond:  {Unary(), OptionsNone},
	FuncSubsecond:   {Unary(), OptionsNone},
}

// Catalog returns the spec for a cataloged function and whether the name is
// part of the stable exposed catalog.
func Catalog(fn Func) (FuncSpec, bool) {
	spec, ok := catalog[fn]
	return spec, ok
}

// CatalogNames returns every cataloged function name. The result is a
// fresh slice; callers may reorder it.
func CatalogNames() []Func {
	names := make([]Func, 0, len(catalog))
	for fn := range catalog {
		names = append(names, fn)
	}
	return names
}
