package compute

// Temporal component extraction. Each function extracts one calendar or
// clock component from a temporal-typed input.
var (
	Year        = eagerUnary(FuncYear)
	Month       = eagerUnary(FuncMonth)
	Day         = eagerUnary(FuncDay)
	DayOfWeek   = eagerUnary(FuncDayOfWeek)
	DayOfYear   = eagerUnary(FuncDayOfYear)
	ISOYear     = eagerUnary(FuncISOYear)
	ISOWeek     = eagerUnary(FuncISOWeek)
	ISOCalendar = eagerUnary(FuncISOCalendar)
	Quarter     = eagerUnary(FuncQuarter)
	Hour        = eagerUnary(FuncHour)
	Minute      = eagerUnary(FuncMinute)
	Second      = eagerUnary(FuncSecond)
	Millisecond = eagerUnary(FuncMillisecond)
	Microsecond = eagerUnary(FuncMicrosecond)
	Nanosecond  = eagerUnary(FuncNanosecond)
	Subsecond   = eagerUnary(FuncSubsecond)
)
