package config

import (
	"fmt"
	"regexp"
)

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

var validModifiers = map[string]bool{
	"mod1": true, "mod2": true, "mod3": true, "mod4": true, "mod5": true,
	"control": true,
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if len(c.Tags) == 0 {
		return fmt.Errorf("no workspace tags configured")
	}
	seen := make(map[string]bool, len(c.Tags))
	for i, tag := range c.Tags {
		if tag == "" {
			return fmt.Errorf("tag %d: empty tag", i)
		}
		if seen[tag] {
			return fmt.Errorf("duplicate tag: %s", tag)
		}
		seen[tag] = true
	}

	if !validModifiers[c.Modifier] {
		return fmt.Errorf("unknown modifier: %s", c.Modifier)
	}
	if !colorPattern.MatchString(c.NormalBorderColor) {
		return fmt.Errorf("invalid normal border color: %s", c.NormalBorderColor)
	}
	if !colorPattern.MatchString(c.FocusedBorderColor) {
		return fmt.Errorf("invalid focused border color: %s", c.FocusedBorderColor)
	}
	if c.Terminal == "" {
		return fmt.Errorf("no terminal configured")
	}
	return nil
}
