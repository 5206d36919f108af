package codegen

// Config holds the naming and layout choices of the generated program.
type Config struct {
	// IndentWidth is the number of spaces per indentation level (default: 4).
	IndentWidth int

	// EntryLabel is the label the generated program starts from (default:
	// "start"). It opens the output, ahead of the define section; the
	// script's own *start is a separate label under LabelPrefix.
	EntryLabel string

	// LabelPrefix is prepended to every script label (default: "l_").
	LabelPrefix string

	// AliasPrefix is prepended to every numalias/stralias name (default: "a_").
	AliasPrefix string

	// NumericStore, StringStore and ArrayStore name the global stores that
	// back %n, $n and ?n (defaults: "nsv", "ssv", "nsa").
	NumericStore string
	StringStore  string
	ArrayStore   string

	// JumpfPrefix names `~` markers that a jumpf lands on (default:
	// "jumpf_"); TildePrefix names the ones only reached by falling
	// through (default: "tilde_").
	JumpfPrefix string
	TildePrefix string

	// WarningsAsComments writes every warning into the output as a
	// "# WARNING:" comment (default: true).
	WarningsAsComments *bool
}

// applyDefaults fills in default values for unset Config fields.
func (c *Config) applyDefaults() {
	if c.IndentWidth <= 0 {
		c.IndentWidth = 4
	}
	if c.EntryLabel == "" {
		c.EntryLabel = "start"
	}
	if c.LabelPrefix == "" {
		c.LabelPrefix = "l_"
	}
	if c.AliasPrefix == "" {
		c.AliasPrefix = "a_"
	}
	if c.NumericStore == "" {
		c.NumericStore = "nsv"
	}
	if c.StringStore == "" {
		c.StringStore = "ssv"
	}
	if c.ArrayStore == "" {
		c.ArrayStore = "nsa"
	}
	if c.JumpfPrefix == "" {
		c.JumpfPrefix = "jumpf_"
	}
	if c.TildePrefix == "" {
		c.TildePrefix = "tilde_"
	}
	if c.WarningsAsComments == nil {
		enabled := true
		c.WarningsAsComments = &enabled
	}
}
