package core

import "sort"

var commands = make(map[string]Command)

// RegisterCommand makes a command resolvable by its name and aliases.
func RegisterCommand(cmd Command) {
	commands[cmd.Name()] = cmd
	for _, alias := range cmd.Aliases() {
		commands[alias] = cmd
	}
}

// GetCommand resolves a command name or alias.
func GetCommand(name string) (Command, bool) {
	cmd, ok := commands[name]
	return cmd, ok
}

// AllCommands lists every registered command once, sorted by name.
func AllCommands() []Command {
	byName := make(map[string]Command, len(commands))
	for _, cmd := range commands {
		byName[cmd.Name()] = cmd
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	list := make([]Command, 0, len(names))
	for _, name := range names {
		list = append(list, byName[name])
	}
	return list
}
