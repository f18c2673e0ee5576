package models

import "strings"

// CommandType enumerates the line commands understood by the inventory shell.
type CommandType string

const (
	CommandAdd     CommandType = "add"
	CommandEdit    CommandType = "edit"
	CommandSave    CommandType = "save"
	CommandCancel  CommandType = "cancel"
	CommandDelete  CommandType = "delete"
	CommandSearch  CommandType = "search"
	CommandList    CommandType = "list"
	CommandSummary CommandType = "summary"
	CommandHelp    CommandType = "help"
	CommandQuit    CommandType = "quit"
	CommandUnknown CommandType = "unknown"
)

// Command represents a parsed shell instruction.
type Command struct {
	Type CommandType
	Raw  string
	Args []string
}

// ParseCommand derives a Command from one input line. The keyword is matched
// case-insensitively; arguments keep their case. Arguments of add are
// comma-separated so names may contain spaces.
func ParseCommand(line string) Command {
	trimmed := strings.TrimSpace(line)
	cmd := Command{Type: CommandUnknown, Raw: line}
	if trimmed == "" {
		return cmd
	}

	head, rest, _ := strings.Cut(trimmed, " ")
	rest = strings.TrimSpace(rest)

	switch CommandType(strings.ToLower(strings.TrimPrefix(head, "/"))) {
	case CommandAdd:
		cmd.Type = CommandAdd
		if rest != "" {
			for _, part := range strings.Split(rest, ",") {
				cmd.Args = append(cmd.Args, strings.TrimSpace(part))
			}
		}
		return cmd
	case CommandEdit:
		cmd.Type = CommandEdit
	case CommandSave:
		cmd.Type = CommandSave
	case CommandCancel:
		cmd.Type = CommandCancel
	case CommandDelete, "rm":
		cmd.Type = CommandDelete
	case CommandSearch, "find":
		cmd.Type = CommandSearch
		if rest != "" {
			cmd.Args = []string{rest}
		}
		return cmd
	case CommandList, "ls":
		cmd.Type = CommandList
	case CommandSummary:
		cmd.Type = CommandSummary
	case CommandHelp, "?":
		cmd.Type = CommandHelp
	case CommandQuit, "exit":
		cmd.Type = CommandQuit
	}

	cmd.Args = strings.Fields(rest)
	return cmd
}
