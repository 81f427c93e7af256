package parser

const (
	// Positional parameter names of the builtin annotation schemas
	ParamMethod     = "method"
	ParamPath       = "path"
	ParamName       = "name"
	ParamStatusCode = "StatusCode"
	ParamConvention = "Name"

	// Option names
	OptionMatch = "Match"
	OptionType  = "Type"
)
