package vchart

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
)

// ErrCommandDisabled is returned when executing a command that is not active.
var ErrCommandDisabled = errors.New("command disabled")

// Command is a user action offered by a chart.
type Command struct {
	Ident  string
	Name   string
	Action func(chart *Chart) error
}

// Command returns the declared command with ident or nil.
func (c *Chart) Command(ident string) *Command {
	for _, cmd := range c.Commands {
		if cmd.Ident == ident {
			return cmd
		}
	}
	return nil
}

// SetCommandEnabled adds the command to or removes it from
// the active commands and updates the UI action.
// Enabling an active or disabling an inactive command changes nothing.
func (c *Chart) SetCommandEnabled(ident string, enabled bool) error {
	if c.Command(ident) == nil {
		return newConfigError(c.Ident, "unknown command %q", ident)
	}
	if enabled {
		c.activeCommands[ident] = struct{}{}
	} else {
		delete(c.activeCommands, ident)
	}
	c.display.SetCommandEnabled(ident, enabled)
	return nil
}

// IsCommandActive returns true if the command with ident is enabled.
func (c *Chart) IsCommandActive(ident string) bool {
	_, ok := c.activeCommands[ident]
	return ok
}

// ActiveCommands returns the idents of the enabled commands
// in declaration order.
func (c *Chart) ActiveCommands() []string {
	var idents []string
	for _, cmd := range c.Commands {
		if c.IsCommandActive(cmd.Ident) {
			idents = append(idents, cmd.Ident)
		}
	}
	return idents
}

// ExecuteCommand runs the action of an active command.
func (c *Chart) ExecuteCommand(ident string) error {
	cmd := c.Command(ident)
	if cmd == nil {
		return newConfigError(c.Ident, "unknown command %q", ident)
	}
	if !c.IsCommandActive(ident) {
		return fmt.Errorf("%w: %s", ErrCommandDisabled, ident)
	}
	if cmd.Action == nil {
		return nil
	}
	return cmd.Action(c)
}

// enableCommands enables every declared command
// for which the CMDACCESS trigger grants access.
func (c *Chart) enableCommands() error {
	for _, cmd := range c.Commands {
		if err := c.SetCommandEnabled(cmd.Ident, c.commandAccess(cmd.Ident)); err != nil {
			return err
		}
	}
	return nil
}

// commandAccess fails open: a failing trigger enables the command.
func (c *Chart) commandAccess(ident string) (access bool) {
	trigger := c.Triggers.CmdAccess[ident]
	if trigger == nil {
		return true
	}
	defer func() {
		if r := recover(); r != nil {
			c.log.Warn("CMDACCESS trigger panicked, command stays enabled",
				slog.String("command", ident),
				slog.Any("panic", r),
			)
			access = true
		}
	}()
	access, err := trigger()
	if err != nil {
		c.log.Warn("CMDACCESS trigger failed, command stays enabled",
			slog.String("command", ident),
			slog.Any("err", err),
		)
		return true
	}
	return access
}

func checkCommands(chartIdent string, commands []*Command) error {
	var idents []string
	for _, cmd := range commands {
		if cmd == nil || cmd.Ident == "" {
			return newConfigError(chartIdent, "command without ident")
		}
		if slices.Contains(idents, cmd.Ident) {
			return newConfigError(chartIdent, "duplicate command %q", cmd.Ident)
		}
		idents = append(idents, cmd.Ident)
	}
	return nil
}
