package config

// SourceFileExt is the extension of script files.
const SourceFileExt = ".mc"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".mc", ".mcomp"}

// DefaultConfigFile is looked up next to the script when no -config flag is given.
const DefaultConfigFile = "mcomp.yaml"

// Version is reported by `mcomp version`.
const Version = "0.3.0"

// Names the rewritten body calls; resolved in the instantiation environment.
const (
	BindFuncName  = "__bind__"
	UnitFuncName  = "__unit__"
	GuardFuncName = "__guard__"
)

// DecoratorName is the decorator that triggers the comprehension rewrite.
const DecoratorName = "comprehend"

// Built-in function names
const (
	PrintFuncName  = "print"
	LenFuncName    = "len"
	RangeFuncName  = "range"
	ConcatFuncName = "concat"
	MapFuncName    = "map"
	MonadFuncName  = "monad"
	ShowFuncName   = "show"
)

// Built-in constructor and monad names
const (
	SomeCtorName = "Some"
	NoneCtorName = "None"
	OkCtorName   = "Ok"
	FailCtorName = "Fail"

	ListMonadName     = "List"
	OptionMonadName   = "Option"
	ResultMonadName   = "Result"
	IdentityMonadName = "Identity"
)

// FilterMode selects how filter clauses in a comprehension are rewritten.
type FilterMode string

const (
	// FilterReject refuses comprehensions with filter clauses.
	FilterReject FilterMode = "reject"
	// FilterGuard rewrites a filter c into bind(guard(c), \_ -> rest).
	FilterGuard FilterMode = "guard"
)

// ColorMode controls ANSI colouring of diagnostics.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)
