package commutators

// config carries the naming conventions shared by the pipeline stages.
// All names are single identifiers; derived symbols append _<index> or
// jet brackets.
type config struct {
	partial string // operator variable
	coeff   string // generic coefficient prefix
	flag    string // flag constant prefix
	ansatz  string // ansatz coefficient prefix
	varname string // ansatz polynomial variable
}

func defaultConfig() config {
	return config{partial: "z", coeff: "u", flag: "c", ansatz: "b", varname: "x"}
}

func applyOptions(opts []Option) config {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}

// Option customizes the naming conventions of a pipeline stage.
// Option constructors validate their input and panic on meaningless
// values; the algorithms themselves return errors.
type Option func(*config)

// WithPartialName sets the operator variable name (default "z").
func WithPartialName(name string) Option {
	if name == "" {
		panic(`commutators: WithPartialName("")`)
	}
	return func(c *config) { c.partial = name }
}

// WithCoefficientName sets the prefix of the generic operator
// coefficients (default "u").
func WithCoefficientName(name string) Option {
	if name == "" {
		panic(`commutators: WithCoefficientName("")`)
	}
	return func(c *config) { c.coeff = name }
}

// WithFlagName sets the prefix of the flag constants (default "c").
func WithFlagName(name string) Option {
	if name == "" {
		panic(`commutators: WithFlagName("")`)
	}
	return func(c *config) { c.flag = name }
}

// WithAnsatzName sets the prefix of the ansatz coefficient symbols
// (default "b").
func WithAnsatzName(name string) Option {
	if name == "" {
		panic(`commutators: WithAnsatzName("")`)
	}
	return func(c *config) { c.ansatz = name }
}

// WithVariableName sets the ansatz polynomial variable (default "x").
func WithVariableName(name string) Option {
	if name == "" {
		panic(`commutators: WithVariableName("")`)
	}
	return func(c *config) { c.varname = name }
}
