package domain

import "encoding/json"

// CommandType — тип команды клиента после разбора.
type CommandType string

const (
	CmdUnknown        CommandType = ""
	CmdInit           CommandType = "INIT"
	CmdInput          CommandType = "INPUT"
	CmdSelectAction   CommandType = "SELECT_ACTION"
	CmdSelectTarget   CommandType = "SELECT_TARGET"
	CmdClearSelection CommandType = "CLEAR_SELECTION"
	CmdMapClick       CommandType = "MAP_CLICK"
	CmdPause          CommandType = "PAUSE"
	CmdResume         CommandType = "RESUME"
	CmdSetNight       CommandType = "SET_NIGHT"
)

// ParseCommand переводит строку действия с провода во внутренний тип.
func ParseCommand(s string) CommandType {
	switch CommandType(s) {
	case CmdInit, CmdInput, CmdSelectAction, CmdSelectTarget,
		CmdClearSelection, CmdMapClick, CmdPause, CmdResume, CmdSetNight:
		return CommandType(s)
	}
	return CmdUnknown
}

// InternalCommand — команда внутри движка: уже распознанный тип плюс
// сырые данные для хендлера.
type InternalCommand struct {
	Type    CommandType
	Session string
	Payload json.RawMessage
}
