package model

// BlockRule describes one tracked array literal: the substring that opens it
// and the field prefix dropped while it is open.
type BlockRule struct {
	Name        string `mapstructure:"name" yaml:"name"`
	StartMarker string `mapstructure:"start_marker" yaml:"start_marker"`
	DropPrefix  string `mapstructure:"drop_prefix" yaml:"drop_prefix"`
}

// RuleSet is an ordered list of block rules plus the token closing any block.
// Rule order is the priority order for block entry and for the drop decision.
type RuleSet struct {
	Rules    []BlockRule `mapstructure:"rules" yaml:"rules"`
	EndToken string      `mapstructure:"end_token" yaml:"end_token"`
}
